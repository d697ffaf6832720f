package models

import (
	"time"

	"github.com/aarondl/null/v8"
)

// RequestStatus статус заявки на замену оборудования
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusAccepted  RequestStatus = "accepted"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
)

// ActiveStatuses перечисляет статусы заявок, которые ждут действий техника
var ActiveStatuses = []RequestStatus{StatusPending, StatusAccepted}

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

func (s RequestStatus) IsActive() bool {
	return s == StatusPending || s == StatusAccepted
}

func (s RequestStatus) IsFinal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// Label возвращает название статуса для отображения пользователю
func (s RequestStatus) Label() string {
	switch s {
	case StatusPending:
		return "В ожидании"
	case StatusAccepted:
		return "Принята"
	case StatusRejected:
		return "Отклонена"
	case StatusCompleted:
		return "Завершена"
	}
	return string(s)
}

// CanTransitionTo сообщает, допустим ли переход из s в next.
// pending -> accepted | rejected, accepted -> completed; rejected и completed конечные.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusAccepted || next == StatusRejected
	case StatusAccepted:
		return next == StatusCompleted
	case StatusRejected, StatusCompleted:
		return false
	default:
		return false
	}
}

// Request представляет заявку на замену оборудования
type Request struct {
	ID          int64         `json:"id" db:"id"`
	UserID      int64         `json:"userId" db:"user_id"`
	EquipmentID int64         `json:"equipmentId" db:"equipment_id"`
	Status      RequestStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	ResolvedAt  null.Time     `json:"resolvedAt" db:"resolved_at"`
}

// ActiveRequest описывает строку очереди заявок техника
type ActiveRequest struct {
	ID            int64         `json:"id" db:"id"`
	Username      string        `json:"username" db:"username"`
	FullName      string        `json:"fullName" db:"full_name"`
	EquipmentID   int64         `json:"equipmentId" db:"equipment_id"`
	EquipmentType string        `json:"equipmentType" db:"equipment_type"`
	InventoryID   int64         `json:"inventoryId" db:"inventory_id"`
	Status        RequestStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

// CompleteRequestRequest представляет запрос на завершение заявки с новым инвентарным номером
type CompleteRequestRequest struct {
	NewInventoryID int64 `json:"newInventoryId" binding:"required,min=1"`
}
