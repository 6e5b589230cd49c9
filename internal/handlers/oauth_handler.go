package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"vitrine_back_end/internal/config"
	"vitrine_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// 🟢 GET /api/auth/oauth/:provider — flux web (goth)
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// 🟢 GET /api/auth/oauth/:provider/callback
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := upsertSocialUser(ctx, gothUser.Provider, gothUser.UserID,
		gothUser.Email, gothUser.Name, gothUser.AvatarURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	sessionID, err := Sessions.CreateSession(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	token, err := utils.GenerateJWT(user, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"provider": user.Provider,
		"email":    user.Email,
		"userId":   user.ID,
	})
}

// 🟢 POST /api/auth/google/token — flux mobile : l'app Expo envoie le code
// d'autorisation, on l'échange ici contre le profil Google.
func GoogleTokenExchange(c *gin.Context) {
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code manquant"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conf := config.GoogleOAuthConfig()
	oauthToken, err := conf.Exchange(ctx, input.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Échange du code refusé par Google"})
		return
	}

	res, err := conf.Client(ctx, oauthToken).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Profil Google injoignable"})
		return
	}
	defer res.Body.Close()

	var profile struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(res.Body).Decode(&profile); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Profil Google invalide"})
		return
	}

	user, err := upsertSocialUser(ctx, "google", profile.ID, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	sessionID, err := Sessions.CreateSession(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	token, err := utils.GenerateJWT(user, sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
	})
}
