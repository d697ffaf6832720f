package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"equipment-tracker/internal/db/queries"
	"equipment-tracker/internal/models"
	"equipment-tracker/internal/report"

	"github.com/gin-gonic/gin"
)

// RequestHandler содержит обработчики техника для очереди заявок
type RequestHandler struct {
	requestQueries queries.RequestQueriesInterface
}

// NewRequestHandler создает новый экземпляр RequestHandler
func NewRequestHandler(requestQueries queries.RequestQueriesInterface) *RequestHandler {
	return &RequestHandler{requestQueries: requestQueries}
}

// ListActive возвращает заявки в ожидании и принятые, от старых к новым
func (h *RequestHandler) ListActive(c *gin.Context) {
	items, err := h.requestQueries.ListActive(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list active requests")
		return
	}

	c.JSON(http.StatusOK, items)
}

// Export отдает очередь активных заявок файлом XLSX
func (h *RequestHandler) Export(c *gin.Context) {
	items, err := h.requestQueries.ListActive(c.Request.Context())
	if err != nil {
		respondInternal(c, err, "failed to list active requests")
		return
	}

	var buf bytes.Buffer
	if err := report.WriteActiveRequests(&buf, items); err != nil {
		respondInternal(c, err, "failed to build report")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+report.FileName(time.Now()))
	c.Data(http.StatusOK, report.ContentType, buf.Bytes())
}

// Accept принимает заявку в работу
func (h *RequestHandler) Accept(c *gin.Context) {
	h.updateStatus(c, models.StatusAccepted)
}

// Reject отклоняет заявку
func (h *RequestHandler) Reject(c *gin.Context) {
	h.updateStatus(c, models.StatusRejected)
}

func (h *RequestHandler) updateStatus(c *gin.Context, status models.RequestStatus) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	request, err := h.requestQueries.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidTransition) {
			respondError(c, http.StatusBadRequest, "Недопустимая смена статуса заявки")
			return
		}
		respondInternal(c, err, "failed to update request status")
		return
	}

	// Отсутствующая заявка: ничего не изменилось
	if request == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, request)
}

// Complete завершает принятую заявку и присваивает оборудованию новый инвентарный номер
func (h *RequestHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.CompleteRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	request, err := h.requestQueries.Resolve(c.Request.Context(), id, req.NewInventoryID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidTransition):
			respondError(c, http.StatusBadRequest, "Завершить можно только принятую заявку")
		case errors.Is(err, queries.ErrEquipmentExists):
			respondError(c, http.StatusBadRequest, "Оборудование с таким инвентарным номером уже существует")
		default:
			respondInternal(c, err, "failed to resolve request")
		}
		return
	}

	if request == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, request)
}
