package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"vitrine_back_end/internal/database"
	"vitrine_back_end/internal/models"
	"vitrine_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ================== AUTH LOCALE ==================

// 🟢 POST /api/auth/signup
func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// email déjà pris pour un compte local ?
	var existing models.User
	err := database.MongoAuthDB.Collection("users").
		FindOne(ctx, bson.M{"email": input.Email, "provider": "local"}).
		Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	user := models.User{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Provider: "local",
	}

	if _, err := database.MongoAuthDB.Collection("users").InsertOne(ctx, user); err != nil {
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

	// E-mail de bienvenue, sans bloquer la réponse
	go func(email, name string) {
		if err := utils.SendWelcomeEmail(email, name); err != nil {
			log.Printf("⚠️ E-mail de bienvenue non envoyé à %s: %v", email, err)
		}
	}(user.Email, user.Name)

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
	})
}

// 🟢 POST /api/auth/login
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.MongoAuthDB.Collection("users").
		FindOne(ctx, bson.M{"email": input.Email, "provider": "local"}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
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

// 🔴 POST /api/auth/logout
func LogoutUser(c *gin.Context) {
	userID := c.GetString("user_id")
	sessionID := c.GetString("session_id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sessionID != "" {
		if err := Sessions.DestroySession(ctx, sessionID); err != nil {
			log.Printf("⚠️ Erreur fermeture session %s: %v", sessionID, err)
		}
	}

	// L'état local du panier est détruit avec la session ; il sera rebâti
	// depuis le store distant à la prochaine connexion
	if userID != "" {
		Carts.Drop(userID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// 🔵 GET /api/auth/me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.MongoAuthDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).
		Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// upsertSocialUser crée le document utilisateur s'il n'existe pas encore
// (même logique que la création paresseuse au login de l'app d'origine).
func upsertSocialUser(ctx context.Context, provider, providerID, email, name, avatar string) (models.User, error) {
	coll := database.MongoAuthDB.Collection("users")

	var user models.User
	err := coll.FindOne(ctx, bson.M{"provider": provider, "providerId": providerID}).Decode(&user)
	if err == nil {
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	user = models.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Provider:   provider,
		ProviderID: providerID,
		AvatarURL:  avatar,
	}
	if _, err := coll.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	log.Printf("✅ Nouvel utilisateur %s via %s", email, provider)
	return user, nil
}
