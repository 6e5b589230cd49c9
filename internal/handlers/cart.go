package handlers

import (
	"context"
	"errors"
	"net/http"

	"vitrine_back_end/internal/cart"
	"vitrine_back_end/internal/database"
	"vitrine_back_end/internal/models"
	"vitrine_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// cartResponse renvoie l'état courant du panier avec ses agrégats,
// recalculés à chaque lecture.
func cartResponse(m *cart.Manager) gin.H {
	totalItems, totalPrice := m.Totals()
	return gin.H{
		"items":      m.Lines(),
		"totalItems": totalItems,
		"totalPrice": totalPrice,
	}
}

// notifyCart prévient les WebSockets de l'utilisateur qu'il faut rafraîchir.
func notifyCart(userID string) {
	database.Redis.Publish(context.Background(), "cart:"+userID, "updated")
}

func abortCartError(c *gin.Context, err error) {
	if errors.Is(err, cart.ErrNoOwner) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}
	// RemoteUnavailable / RecordNotFound sur update : l'état local est resté
	// celui confirmé par le store, on remonte juste l'échec
	c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur synchronisation panier"})
}

// 🟢 GET /api/cart
func GetCart(c *gin.Context) {
	m, err := Carts.ForSession(c.Request.Context())
	if err != nil {
		abortCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartResponse(m))
}

// 🟢 POST /api/cart/add
func AddToCart(c *gin.Context) {
	var input struct {
		ProductID string  `json:"productId"`
		Title     string  `json:"title"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
		Quantity  int     `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.ProductID == "" || input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	m, err := Carts.ForSession(c.Request.Context())
	if err != nil {
		abortCartError(c, err)
		return
	}

	line := models.CartLine{
		ProductID: input.ProductID,
		Title:     input.Title,
		Price:     input.Price,
		Image:     input.Image,
		Quantity:  input.Quantity,
	}
	if err := m.Add(c.Request.Context(), line); err != nil {
		abortCartError(c, err)
		return
	}

	utils.LogCartEvent(m.Owner(), utils.ActionCartAdd, input.ProductID, input.Quantity)
	notifyCart(m.Owner())

	c.JSON(http.StatusOK, cartResponse(m))
}

// 🔼 POST /api/cart/:productId/increase
func IncreaseQuantity(c *gin.Context) {
	productID := c.Param("productId")

	m, err := Carts.ForSession(c.Request.Context())
	if err != nil {
		abortCartError(c, err)
		return
	}

	if err := m.IncreaseQuantity(c.Request.Context(), productID); err != nil {
		abortCartError(c, err)
		return
	}

	utils.LogCartEvent(m.Owner(), utils.ActionCartIncrease, productID, 1)
	notifyCart(m.Owner())

	c.JSON(http.StatusOK, cartResponse(m))
}

// 🔽 POST /api/cart/:productId/decrease
func DecreaseQuantity(c *gin.Context) {
	productID := c.Param("productId")

	m, err := Carts.ForSession(c.Request.Context())
	if err != nil {
		abortCartError(c, err)
		return
	}

	if err := m.DecreaseQuantity(c.Request.Context(), productID); err != nil {
		abortCartError(c, err)
		return
	}

	utils.LogCartEvent(m.Owner(), utils.ActionCartDecrease, productID, 1)
	notifyCart(m.Owner())

	c.JSON(http.StatusOK, cartResponse(m))
}

// ❌ DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	productID := c.Param("productId")

	m, err := Carts.ForSession(c.Request.Context())
	if err != nil {
		abortCartError(c, err)
		return
	}

	if err := m.DeleteLine(c.Request.Context(), productID); err != nil {
		abortCartError(c, err)
		return
	}

	utils.LogCartEvent(m.Owner(), utils.ActionCartDelete, productID, 0)
	notifyCart(m.Owner())

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   m.Lines(),
	})
}
