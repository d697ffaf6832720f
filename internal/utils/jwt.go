package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"equipment-tracker/internal/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var ErrInvalidClaims = errors.New("invalid token claims")

// JWTManagerInterface определяет интерфейс для выдачи и проверки токенов сессии
type JWTManagerInterface interface {
	GenerateToken(userID int64, role string) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// JWTManager управляет созданием и проверкой JWT токенов
type JWTManager struct {
	secretKey  string
	expireTime time.Duration
}

// NewJWTManager создает новый экземпляр JWTManager
func NewJWTManager(config *config.JWTConfig) *JWTManager {
	return &JWTManager{
		secretKey:  config.Secret,
		expireTime: config.ExpireTime,
	}
}

// CustomClaims представляет данные, которые будут закодированы в JWT.
// Суперпользователь не хранится в базе, у него UserID равен 0.
type CustomClaims struct {
	jwt.StandardClaims
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// GenerateToken создает токен сессии для пользователя с указанной ролью
func (manager *JWTManager) GenerateToken(userID int64, role string) (string, error) {
	now := time.Now()

	claims := &CustomClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			ExpiresAt: now.Add(manager.expireTime).Unix(),
			IssuedAt:  now.Unix(),
			Subject:   strconv.FormatInt(userID, 10),
		},
		UserID: userID,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(manager.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken проверяет подпись и срок действия токена
func (manager *JWTManager) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(manager.secretKey), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Role == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
