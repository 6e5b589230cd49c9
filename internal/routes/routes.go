package routes

import (
	"vitrine_back_end/internal/handlers"
	"vitrine_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.POST("/signup", handlers.CreateUser)
	auth.POST("/login", middleware.LoginRateLimit(), handlers.LoginUser)
	auth.POST("/logout", middleware.AuthRequired(), handlers.LogoutUser)
	auth.GET("/me", middleware.AuthRequired(), handlers.GetCurrentUser)
	auth.POST("/google/token", handlers.GoogleTokenExchange)
	auth.GET("/oauth/:provider", handlers.BeginAuth)
	auth.GET("/oauth/:provider/callback", handlers.CallbackAuth)

	// Catalogue (lecture seule, public)
	api.GET("/products", handlers.GetProducts)
	api.GET("/products/:id", handlers.GetProduct)
	api.GET("/categories", handlers.GetCategories)
	api.GET("/categories/:category/products", handlers.GetProductsByCategory)
	api.GET("/search", handlers.SearchProducts)

	// Panier (authentifié)
	cart := api.Group("/cart", middleware.AuthRequired())
	cart.GET("", handlers.GetCart)
	cart.GET("/ws", handlers.CartWebSocket)
	cart.POST("/add", middleware.CartRateLimit(), handlers.AddToCart)
	cart.POST("/:productId/increase", middleware.CartRateLimit(), handlers.IncreaseQuantity)
	cart.POST("/:productId/decrease", middleware.CartRateLimit(), handlers.DecreaseQuantity)
	cart.DELETE("/:productId", handlers.RemoveFromCart)

	// Avatars / stockage
	api.POST("/account/avatar", middleware.AuthRequired(), handlers.UploadAvatar)
	api.GET("/avatars/qr", handlers.GetQR)
}
