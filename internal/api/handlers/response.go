package handlers

import (
	"net/http"
	"strconv"

	"equipment-tracker/internal/api/middleware"
	"equipment-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "Внутренняя ошибка сервера"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Message: message})
}

// respondInternal пишет ошибку в лог запроса, клиенту уходит только общее сообщение
func respondInternal(c *gin.Context, err error, msg string) {
	middleware.LoggerFrom(c).Error(msg, zap.Error(err))
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, internalErrorMessage)
}

func respondBadRequest(c *gin.Context, err error) {
	respondError(c, http.StatusBadRequest, "Неверный запрос: "+err.Error())
}

// pathID разбирает параметр :id. При ошибке ответ уже отправлен.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "Неверный идентификатор")
		return 0, false
	}
	return id, true
}

// currentUserID возвращает пользователя сессии. При ошибке ответ уже отправлен.
func currentUserID(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserID(c)
	if !ok || id == 0 {
		respondError(c, http.StatusUnauthorized, "Нет данных о пользователе")
		return 0, false
	}
	return id, true
}
