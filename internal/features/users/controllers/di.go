package users_controllers

import (
	"taskhive/internal/config"
	users_services "taskhive/internal/features/users/services"

	"golang.org/x/time/rate"
)

var authController = &AuthController{
	userService:  users_services.GetUserService(),
	oauthService: users_services.GetOAuthService(),
	loginLimiter: rate.NewLimiter(rate.Limit(5), 10),
	frontendURL:  config.GetEnv().FrontendURL,
}

func GetAuthController() *AuthController {
	return authController
}
