package utils

import (
	"os"
	"time"

	"vitrine_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT émet le token de session de l'application mobile.
// Le claim "sid" référence la session Redis : supprimer la session
// invalide le token avant son expiration.
func GenerateJWT(user models.User, sessionID string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"sid":     sessionID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
