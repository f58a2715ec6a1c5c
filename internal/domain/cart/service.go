// internal/domain/cart/service.go
package cart

import (
	"errors"

	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/domain/catalog"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Service handles the per-user cart ledger. Stock limits are a
// pipeline concern; the ledger only maintains the (user, product) →
// quantity mapping and its invariants.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// Add adds qty units of a product to the user's cart. If a line for
// (user, product) already exists the quantity is added to it, never
// duplicated into a second row.
func (s *Service) Add(userID, productID uint, qty int) error {
	if qty <= 0 {
		return apperrors.NewValidationError("quantity", "must be a positive integer")
	}

	var existing CartItem
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperrors.NewInternalError("cart.Add", result.Error)
		}
		item := CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  qty,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return apperrors.NewInternalError("cart.Add", err)
		}
		return nil
	}

	existing.Quantity += qty
	if err := s.db.Save(&existing).Error; err != nil {
		return apperrors.NewInternalError("cart.Add", err)
	}
	return nil
}

// SetQuantity sets the absolute quantity of a cart line. A quantity of
// zero or less deletes the line. Returns whether any row changed.
func (s *Service) SetQuantity(userID, productID uint, qty int) (bool, error) {
	if qty <= 0 {
		return s.Remove(userID, productID)
	}

	result := s.db.Model(&CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", qty)
	if result.Error != nil {
		return false, apperrors.NewInternalError("cart.SetQuantity", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes a cart line. Removing an absent line is not an error;
// the return value tells the caller whether anything was removed.
func (s *Service) Remove(userID, productID uint) (bool, error) {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&CartItem{})
	if result.Error != nil {
		return false, apperrors.NewInternalError("cart.Remove", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Clear removes every line from the user's cart and returns how many
// were removed. Clearing an empty cart succeeds with a zero count.
func (s *Service) Clear(userID uint) (int64, error) {
	result := s.db.Where("user_id = ?", userID).Delete(&CartItem{})
	if result.Error != nil {
		return 0, apperrors.NewInternalError("cart.Clear", result.Error)
	}
	return result.RowsAffected, nil
}

// Items returns the user's cart lines joined with each product's live
// name, price, stock and image.
func (s *Service) Items(userID uint) ([]ItemView, error) {
	var items []CartItem
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.NewInternalError("cart.Items", err)
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		var product catalog.Product
		err := s.db.Where("id = ?", item.ProductID).First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product removed from the catalog after being carted
				continue
			}
			return nil, apperrors.NewInternalError("cart.Items", err)
		}

		views = append(views, ItemView{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Stock:     product.Stock,
			Image:     product.ImageOrPlaceholder(),
		})
	}

	return views, nil
}
