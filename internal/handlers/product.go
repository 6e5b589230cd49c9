package handlers

import (
	"net/http"

	"vitrine_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Proxy en lecture seule sur le catalogue externe : aucune transformation,
// les produits partent tels quels vers l'application.

// 🔵 GET /api/products
func GetProducts(c *gin.Context) {
	products, err := Catalog.Products(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalogue indisponible"})
		return
	}

	// Alimente le miroir de recherche sans retarder la réponse
	go services.IndexProducts(products)

	c.JSON(http.StatusOK, products)
}

// 🔵 GET /api/products/:id
func GetProduct(c *gin.Context) {
	product, err := Catalog.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// 🔵 GET /api/categories
func GetCategories(c *gin.Context) {
	categories, err := Catalog.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalogue indisponible"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// 🔵 GET /api/categories/:category/products
func GetProductsByCategory(c *gin.Context) {
	products, err := Catalog.ProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalogue indisponible"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// 🔍 GET /api/search?q=...
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre 'q' requis"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}
