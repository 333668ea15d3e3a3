package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"museworks_backend/internal/auth"
	"museworks_backend/internal/logger"
	"museworks_backend/pkg/apperrors"
)

// UserIDKey - ключ gin.Context с ID аутентифицированного пользователя
const UserIDKey = "userID"

// AuthMiddleware - middleware проверки JWT.
// Роль не проверяется здесь: права решает authz по роли из БД.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abort(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "token rejected", "error", err.Error(), "path", c.Request.URL.Path)
			if errors.Is(err, auth.ErrExpiredToken) {
				abort(c, apperrors.NewUnauthorizedError("Token expired"))
				return
			}
			abort(c, apperrors.NewUnauthorizedError("Invalid token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}

func abort(c *gin.Context, err *apperrors.AppError) {
	apperrors.HandleError(c, err)
	c.Abort()
}
