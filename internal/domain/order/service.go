// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/domain/cart"
	"github.com/your-org/fertishop-backend/internal/domain/catalog"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service converts carts into durable orders and tracks their status
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// CreateRequest represents order creation data
type CreateRequest struct {
	Address       Address `json:"address" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
}

// Create converts the user's cart into an order. Item snapshots, stock
// decrements, sold-count increments and the cart clear all happen in
// one transaction: a failure at any step rolls everything back, so a
// retry starts from the untouched cart. Product rows are locked for
// the duration so concurrent orders serialize on stock.
func (s *Service) Create(userID uint, req *CreateRequest) (*Order, error) {
	if req.Address.IsEmpty() {
		return nil, apperrors.NewValidationError("address", "is required")
	}
	if req.PaymentMethod == "" {
		return nil, apperrors.NewValidationError("payment_method", "is required")
	}

	var created Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cartItems []cart.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&cartItems).Error; err != nil {
			return apperrors.NewInternalError("order.Create", err)
		}
		if len(cartItems) == 0 {
			return apperrors.NewValidationError("cart", "cart is empty")
		}

		items := make([]OrderItem, 0, len(cartItems))
		for _, line := range cartItems {
			var product catalog.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", line.ProductID).
				First(&product).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFoundError("product", strconv.FormatUint(uint64(line.ProductID), 10))
				}
				return apperrors.NewInternalError("order.Create", err)
			}

			// Stock is re-checked here, under the row lock, so it can
			// never go negative through the pipeline
			if !product.InStock(line.Quantity) {
				return apperrors.NewValidationError(
					"stock",
					fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
						product.Name, line.Quantity, product.Stock),
				)
			}

			items = append(items, NewItemSnapshot(&product, line.Quantity))
		}

		created = Order{
			UserID:        userID,
			Total:         ComputeTotal(items),
			Status:        StatusToPay,
			Address:       req.Address,
			PaymentMethod: req.PaymentMethod,
		}
		if err := tx.Create(&created).Error; err != nil {
			return apperrors.NewInternalError("order.Create", err)
		}

		for i := range items {
			items[i].OrderID = created.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return apperrors.NewInternalError("order.Create", err)
			}

			err := tx.Model(&catalog.Product{}).
				Where("id = ?", items[i].ProductID).
				UpdateColumns(map[string]interface{}{
					"sold_count": gorm.Expr("sold_count + ?", items[i].Quantity),
					"stock":      gorm.Expr("stock - ?", items[i].Quantity),
				}).Error
			if err != nil {
				return apperrors.NewInternalError("order.Create", err)
			}
		}

		// Clearing the cart inside the transaction keeps cart and order
		// consistent: either the order exists and the cart is empty, or
		// neither happened
		if err := tx.Where("user_id = ?", userID).Delete(&cart.CartItem{}).Error; err != nil {
			return apperrors.NewInternalError("order.Create", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": created.ID,
		"user_id":  userID,
		"total":    created.Total,
	}).Info("order created")

	return s.Get(created.ID, userID)
}

// Get retrieves an order scoped to its owner. An order belonging to a
// different user is reported as not found, never as forbidden, so
// order IDs leak no existence information.
func (s *Service) Get(orderID, userID uint) (*Order, error) {
	var o Order
	result := s.db.
		Preload("Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order", strconv.FormatUint(uint64(orderID), 10))
		}
		return nil, apperrors.NewInternalError("order.Get", result.Error)
	}
	return &o, nil
}

// ListForUser returns all of a user's orders, newest first, with items
func (s *Service) ListForUser(userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.NewInternalError("order.ListForUser", err)
	}
	return orders, nil
}

// UpdateStatus updates an order's status. Values outside the valid set
// are rejected before the store is touched; within the set, transition
// policy is delegated to CanTransition.
func (s *Service) UpdateStatus(orderID uint, status Status) error {
	if !status.IsValid() {
		return apperrors.NewValidationError("status",
			fmt.Sprintf("%q is not a valid order status", status))
	}

	var o Order
	if err := s.db.Where("id = ?", orderID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("order", strconv.FormatUint(uint64(orderID), 10))
		}
		return apperrors.NewInternalError("order.UpdateStatus", err)
	}

	if !CanTransition(o.Status, status) {
		return apperrors.NewValidationError("status",
			fmt.Sprintf("cannot transition from %q to %q", o.Status, status))
	}

	if err := s.db.Model(&o).Update("status", status).Error; err != nil {
		return apperrors.NewInternalError("order.UpdateStatus", err)
	}

	return nil
}
