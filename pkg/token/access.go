package token

import (
	"errors"
	"fmt"
	"harvest_slots/internal/model"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken Выпуск токена для игрока. В сервисе используется только в тестах и локальной отладке
func GenerateAccessToken(userID int, secretKey []byte, ttl time.Duration) (string, error) {
	claims := model.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyToken(tokenStr string, secretKey []byte) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// UserID - ID игрока из claims
func UserID(claims *model.UserClaims) (int, error) {
	id, err := strconv.Atoi(claims.ID)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id in token: %q", claims.ID)
	}
	return id, nil
}
