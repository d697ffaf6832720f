package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomInt генерирует случайное число в заданном диапазоне
func RandomInt(min, max int64) int64 {
	return min + rand.Int63n(max-min+1)
}

// RandomString генерирует случайную строку заданной длины
func RandomString(n int) string {
	var sb strings.Builder
	k := len(alphabet)

	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[rand.Intn(k)])
	}

	return sb.String()
}

// RandomUsername возвращает уникальное с высокой вероятностью имя для тестовых учетных записей
func RandomUsername() string {
	return RandomString(8)
}

func RandomEmail() string {
	return fmt.Sprintf("%s@example.com", RandomString(6))
}
