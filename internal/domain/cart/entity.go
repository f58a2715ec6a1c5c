// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartItem represents one cart line for an authenticated user. At most
// one row exists per (user, product) pair and quantity is always
// positive: a zero or negative quantity deletes the row instead.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// ItemView is a cart line joined with the product's present-moment
// state. Prices and stock are live, not a snapshot: the cart is a
// wish-list view, not a priced commitment.
type ItemView struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"`
	Image     string `json:"image"`
}

// Subtotal returns price times quantity for this line
func (v ItemView) Subtotal() int64 {
	return v.Price * int64(v.Quantity)
}
