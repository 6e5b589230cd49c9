package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestGenerateQR(t *testing.T) {
	png, err := GenerateQR("https://vitrine.app/products/1", 256)
	assert.NoError(t, err)
	assert.Equal(t, pngHeader, png[:4])
}

func TestGenerateQRTailleInvalide(t *testing.T) {
	// Taille hors bornes → taille par défaut, pas d'erreur
	png, err := GenerateQR("hello", -5)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
}
