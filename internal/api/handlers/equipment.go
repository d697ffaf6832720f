package handlers

import (
	"errors"
	"net/http"

	"equipment-tracker/internal/db/queries"
	"equipment-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// EquipmentHandler содержит обработчики сотрудника: его оборудование и заявки на замену
type EquipmentHandler struct {
	equipmentQueries queries.EquipmentQueriesInterface
	requestQueries   queries.RequestQueriesInterface
}

// NewEquipmentHandler создает новый экземпляр EquipmentHandler
func NewEquipmentHandler(equipmentQueries queries.EquipmentQueriesInterface, requestQueries queries.RequestQueriesInterface) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentQueries: equipmentQueries,
		requestQueries:   requestQueries,
	}
}

// List возвращает оборудование текущего пользователя
func (h *EquipmentHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.equipmentQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c, err, "failed to list equipment")
		return
	}

	c.JSON(http.StatusOK, items)
}

// Add закрепляет новое оборудование за текущим пользователем
func (h *EquipmentHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	equipment, err := h.equipmentQueries.AddEquipment(c.Request.Context(), userID, req.Type, req.InventoryID)
	if err != nil {
		if errors.Is(err, queries.ErrEquipmentExists) {
			respondError(c, http.StatusBadRequest, "Оборудование с таким инвентарным номером уже существует")
			return
		}
		respondInternal(c, err, "failed to add equipment")
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

// Delete удаляет оборудование текущего пользователя вместе с заявками по нему
func (h *EquipmentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if !h.ownEquipment(c, userID, id) {
		return
	}

	if err := h.equipmentQueries.DeleteEquipment(c.Request.Context(), id); err != nil {
		respondInternal(c, err, "failed to delete equipment")
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateRequest подает заявку на замену оборудования
func (h *EquipmentHandler) CreateRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	request, err := h.requestQueries.CreateRequest(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrNotFound):
			respondError(c, http.StatusNotFound, "Оборудование не найдено")
		case errors.Is(err, queries.ErrActiveRequestExists):
			respondError(c, http.StatusBadRequest, "По этому оборудованию уже есть активная заявка")
		default:
			respondInternal(c, err, "failed to create request")
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ownEquipment проверяет, что оборудование существует и принадлежит пользователю.
// Чужое оборудование неотличимо от отсутствующего.
func (h *EquipmentHandler) ownEquipment(c *gin.Context, userID, id int64) bool {
	equipment, err := h.equipmentQueries.GetEquipment(c.Request.Context(), id)
	if err != nil && !errors.Is(err, queries.ErrNotFound) {
		respondInternal(c, err, "failed to get equipment")
		return false
	}
	if err != nil || equipment.UserID != userID {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return false
	}
	return true
}
