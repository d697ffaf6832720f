package queries

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// Нарушения уникальности
	ErrUserExists          = errors.New("username or email already taken")
	ErrEquipmentExists     = errors.New("equipment with this inventory id already exists")
	ErrActiveRequestExists = errors.New("equipment already has an active request")

	// ErrInvalidTransition возвращается при недопустимой смене статуса заявки
	ErrInvalidTransition = errors.New("invalid request status transition")
)
