package utils

import (
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQR encode un texte arbitraire en PNG (équivalent de l'API avatars
// du BaaS d'origine, utilisée par l'app pour partager des liens produits).
func GenerateQR(text string, size int) ([]byte, error) {
	if size <= 0 || size > 1024 {
		size = 256
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}
