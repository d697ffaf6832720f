package models

// Роли пользователей
const (
	RoleEmployee   = "employee"
	RoleTechnician = "technician"
	// RoleAdmin выдается только суперпользователю из конфигурации и не хранится в базе
	RoleAdmin = "admin"
)

// ErrorResponse представляет ошибку API
type ErrorResponse struct {
	Message string `json:"message"`
}
