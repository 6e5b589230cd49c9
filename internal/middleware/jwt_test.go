package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrine_back_end/internal/identity"
	"vitrine_back_end/internal/models"
	"vitrine_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestAuthRequiredSansToken(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredFormatInvalide(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredTokenCorrompu(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer pas.un.jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredTokenValide(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var gotUserID string
	var gotSessionID string
	var sessionInCtx bool
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		gotUserID = c.GetString("user_id")
		gotSessionID = c.GetString("session_id")
		_, sessionInCtx = identity.SessionIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{})
	})

	token, err := utils.GenerateJWT(models.User{ID: "u1", Email: "test@vitrine.app"}, "sid-42")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, "sid-42", gotSessionID)
	// L'identifiant de session doit être propagé au contexte de la requête
	// pour le fournisseur d'identité
	assert.True(t, sessionInCtx)
}
