// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/fertishop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes. Catalog browsing and
// register/login stay open; cart, orders and the current-user endpoint
// sit behind the auth gate.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg, logger)

	requireAuth := middleware.RequireAuth(db, cfg, logger)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	rg.GET("/categories", catalogHandler.ListCategories)
	rg.GET("/use-cases", catalogHandler.ListUseCases)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.ListProducts)
		products.GET("/featured", catalogHandler.FeaturedProducts)
		products.GET("/:id", catalogHandler.GetProduct)
		products.GET("/:id/related", catalogHandler.RelatedProducts)
	}

	cart := rg.Group("/cart")
	cart.Use(requireAuth)
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	orders := rg.Group("/orders")
	orders.Use(requireAuth)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
	}
}
