package utils

import (
	"lms_commerce/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the token payload issued by the external auth provider.
type Claims struct {
	UserID string `json:"user_id"`
	Role   int    `json:"role"`
	jwt.RegisteredClaims
}

// Roles carried in the token role claim.
const (
	RoleUser  = 1
	RoleAdmin = 9
)

// ParseToken verifies an HS256 token against the shared provider secret.
// Tokens are minted by the auth provider, never by this service.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.GlobalConfig.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}
