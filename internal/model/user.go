package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims - claims токена доступа. ID игрока лежит в RegisteredClaims.ID
type UserClaims struct {
	jwt.RegisteredClaims
}
