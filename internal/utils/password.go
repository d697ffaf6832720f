package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCheckerInterface проверяет пароль по bcrypt-хешу
type PasswordCheckerInterface interface {
	CheckPassword(password, hashedPassword string) error
}

// PasswordChecker реализует PasswordCheckerInterface через bcrypt
type PasswordChecker struct{}

func (PasswordChecker) CheckPassword(password, hashedPassword string) error {
	return CheckPassword(password, hashedPassword)
}

// HashPassword создает хеш пароля с использованием bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword сравнивает пароль с хешем. Пустой хеш никогда не совпадает.
func CheckPassword(password, hashedPassword string) error {
	if hashedPassword == "" {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
