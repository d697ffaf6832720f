package handlers

import (
	"errors"

	"equipment-tracker/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators добавляет в валидатор gin правило equipment_type
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	return v.RegisterValidation("equipment_type", func(fl validator.FieldLevel) bool {
		return models.IsValidEquipmentType(fl.Field().String())
	})
}
