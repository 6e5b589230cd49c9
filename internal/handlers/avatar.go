package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"vitrine_back_end/internal/database"
	"vitrine_back_end/internal/services"
	"vitrine_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// 🖼️ POST /api/account/avatar
func UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier 'avatar' manquant"})
		return
	}

	url, err := services.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload avatar"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	database.MongoAuthDB.Collection("users").UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"avatarUrl": url}},
	)

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

// 🔳 GET /api/avatars/qr?text=...&size=256
func GetQR(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'text' requis"})
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := utils.GenerateQR(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
