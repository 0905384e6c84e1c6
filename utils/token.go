package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ramonsanvesti/vesti-founder-sub001/config"
)

// UserIDFromToken parses and validates a bearer token and returns its user_id
// claim. There is no signup flow in the founder edition; tokens exist only so
// a future auth layer can hand out tenant identities.
func UserIDFromToken(tokenString string) (string, error) {
	if config.JWTSecret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("token has no user_id claim")
	}
	return userID, nil
}
