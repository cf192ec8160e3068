package users_services

import (
	users_repositories "taskhive/internal/features/users/repositories"
)

var userRepository = &users_repositories.UserRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}

var userService = &UserService{
	userRepository,
	secretKeyRepository,
}

var oauthService = &OAuthService{
	userRepository,
	userService,
}

func GetUserService() *UserService {
	return userService
}

func GetOAuthService() *OAuthService {
	return oauthService
}
