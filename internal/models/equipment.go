package models

import "github.com/aarondl/null/v8"

// Типы оборудования
const (
	EquipmentMonitor = "Монитор"
	EquipmentPC      = "ПК"
	EquipmentLaptop  = "Ноутбук"
	EquipmentPrinter = "Принтер"
	EquipmentPhone   = "Телефон"
)

// EquipmentTypes перечисляет допустимые типы в порядке отображения
var EquipmentTypes = []string{
	EquipmentMonitor,
	EquipmentPC,
	EquipmentLaptop,
	EquipmentPrinter,
	EquipmentPhone,
}

func IsValidEquipmentType(t string) bool {
	for _, et := range EquipmentTypes {
		if et == t {
			return true
		}
	}
	return false
}

// Equipment представляет единицу оборудования, закрепленную за пользователем.
// InventoryID уникален в пределах одного владельца.
type Equipment struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	Type        string `json:"type" db:"equipment_type"`
	InventoryID int64  `json:"inventoryId" db:"inventory_id"`
}

// EquipmentWithStatus дополняет оборудование статусом последней заявки на замену
type EquipmentWithStatus struct {
	Equipment
	LastRequestStatus null.String `json:"lastRequestStatus" db:"last_request_status"`
	HasActiveRequest  bool        `json:"hasActiveRequest" db:"-"`
}

// CreateEquipmentRequest представляет запрос на добавление оборудования
type CreateEquipmentRequest struct {
	Type        string `json:"type" binding:"required,equipment_type"`
	InventoryID int64  `json:"inventoryId" binding:"required,min=1"`
}
