// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/domain/cart"
	"github.com/your-org/fertishop-backend/internal/domain/catalog"
	"github.com/your-org/fertishop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService    *cart.Service
	catalogService *catalog.Service
	config         *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService:    cart.NewService(db, cfg),
		catalogService: catalog.NewService(db, cfg),
		config:         cfg,
	}
}

// AddToCartRequest represents add-to-cart request data
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a quantity update
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	items, err := h.cartService.Items(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"items": items,
			"total": total,
		},
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// The ledger does not validate products; the boundary does
	if _, err := h.catalogService.GetProduct(req.ProductID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.cartService.Add(userID, req.ProductID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
	})
}

// UpdateCartItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// A positive quantity must not exceed the product's current stock;
	// zero and below fall through to deletion
	if req.Quantity > 0 {
		product, err := h.catalogService.GetProduct(uint(productID))
		if err != nil {
			respondError(c, err)
			return
		}
		if !product.InStock(req.Quantity) {
			respondError(c, apperrors.NewValidationError("quantity",
				fmt.Sprintf("exceeds available stock (%d available)", product.Stock)))
			return
		}
	}

	changed, err := h.cartService.SetQuantity(userID, uint(productID), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Cart updated"
	if !changed {
		message = "Item was not in the cart"
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// RemoveFromCart handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	removed, err := h.cartService.Remove(userID, uint(productID))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Item removed from cart"
	if !removed {
		message = "Item was not in the cart"
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.UserIDFromContext(c)

	removed, err := h.cartService.Clear(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Cart cleared"
	if removed == 0 {
		message = "Cart was already empty"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"removed": removed,
	})
}
