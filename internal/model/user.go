package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims - access token claims, the subject carries the player id
type UserClaims struct {
	jwt.RegisteredClaims
}
