package handlers

import (
	"errors"
	"net/http"

	"equipment-tracker/internal/config"
	"equipment-tracker/internal/db/queries"
	"equipment-tracker/internal/models"
	"equipment-tracker/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler содержит обработчики для регистрации и входа
type AuthHandler struct {
	jwtManager      utils.JWTManagerInterface
	userQueries     queries.UserQueriesInterface
	passwordChecker utils.PasswordCheckerInterface
	admin           config.AdminConfig
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(jwtManager utils.JWTManagerInterface, userQueries queries.UserQueriesInterface, passwordChecker utils.PasswordCheckerInterface, admin config.AdminConfig) *AuthHandler {
	return &AuthHandler{
		jwtManager:      jwtManager,
		userQueries:     userQueries,
		passwordChecker: passwordChecker,
		admin:           admin,
	}
}

// Register регистрирует нового сотрудника
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     models.RoleEmployee,
	}

	id, err := h.userQueries.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, queries.ErrUserExists) {
			respondError(c, http.StatusBadRequest, "Пользователь с таким логином или email уже существует")
			return
		}
		respondInternal(c, err, "failed to register user")
		return
	}

	user.ID = id
	c.JSON(http.StatusCreated, user)
}

// Login выдает токен сессии. Сначала проверяется суперпользователь из конфигурации.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if h.isSuperuser(req.Username, req.Password) {
		token, err := h.jwtManager.GenerateToken(0, models.RoleAdmin)
		if err != nil {
			respondInternal(c, err, "failed to generate token")
			return
		}
		c.JSON(http.StatusOK, models.LoginResponse{Token: token, Role: models.RoleAdmin})
		return
	}

	user, err := h.userQueries.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Неверные учетные данные")
			return
		}
		respondInternal(c, err, "failed to authenticate")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		respondInternal(c, err, "failed to generate token")
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user,
		Role:  user.Role,
	})
}

func (h *AuthHandler) isSuperuser(username, password string) bool {
	if h.admin.PasswordHash == "" || username != h.admin.Username {
		return false
	}
	return h.passwordChecker.CheckPassword(password, h.admin.PasswordHash) == nil
}
