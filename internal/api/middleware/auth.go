package middleware

import (
	"net/http"
	"strings"

	"equipment-tracker/internal/models"
	"equipment-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// Ключи контекста gin с данными сессии
const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(jwtManager utils.JWTManagerInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Отсутствует токен авторизации",
			})
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Неверный формат токена",
			})
			return
		}

		claims, err := jwtManager.ValidateToken(tokenParts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Неверный токен: " + err.Error(),
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole пропускает запрос, если роль пользователя входит в список разрешенных
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(UserRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Message: "Нет данных о пользователе",
			})
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
			Message: "Доступ запрещен: недостаточно прав",
		})
	}
}

// UserID возвращает идентификатор пользователя текущей сессии
func UserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
