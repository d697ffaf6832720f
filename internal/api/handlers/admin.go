package handlers

import (
	"errors"
	"net/http"

	"equipment-tracker/internal/db/queries"
	"equipment-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminHandler содержит обработчики суперпользователя для учетных записей техников
type AdminHandler struct {
	userQueries  queries.UserQueriesInterface
	seedUsername string
}

// NewAdminHandler создает новый экземпляр AdminHandler.
// seedUsername скрывается из списка техников и защищен от удаления.
func NewAdminHandler(userQueries queries.UserQueriesInterface, seedUsername string) *AdminHandler {
	return &AdminHandler{
		userQueries:  userQueries,
		seedUsername: seedUsername,
	}
}

// ListTechnicians возвращает техников без учетной записи по умолчанию
func (h *AdminHandler) ListTechnicians(c *gin.Context) {
	users, err := h.userQueries.ListTechnicians(c.Request.Context(), h.seedUsername)
	if err != nil {
		respondInternal(c, err, "failed to list technicians")
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateTechnician создает учетную запись техника
func (h *AdminHandler) CreateTechnician(c *gin.Context) {
	var req models.CreateTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     models.RoleTechnician,
	}

	id, err := h.userQueries.CreateUser(c.Request.Context(), user)
	if err != nil {
		if errors.Is(err, queries.ErrUserExists) {
			respondError(c, http.StatusBadRequest, "Пользователь с таким логином или email уже существует")
			return
		}
		respondInternal(c, err, "failed to create technician")
		return
	}

	user.ID = id
	c.JSON(http.StatusCreated, user)
}

// DeleteUser удаляет пользователя вместе с его оборудованием и заявками
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := h.userQueries.GetUserByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Пользователь не найден")
			return
		}
		respondInternal(c, err, "failed to get user")
		return
	}

	if user.Username == h.seedUsername {
		respondError(c, http.StatusBadRequest, "Нельзя удалить техника по умолчанию")
		return
	}

	if err := h.userQueries.DeleteUser(c.Request.Context(), id); err != nil {
		respondInternal(c, err, "failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}
