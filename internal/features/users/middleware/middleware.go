package users_middleware

import (
	"net/http"

	users_models "taskhive/internal/features/users/models"
	users_services "taskhive/internal/features/users/services"
	"taskhive/internal/util/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and adds the user to context
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			response.Fail(ctx, http.StatusUnauthorized, "Authorization token required")
			ctx.Abort()
			return
		}

		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			response.Fail(ctx, http.StatusUnauthorized, "Invalid token")
			ctx.Abort()
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok
}
