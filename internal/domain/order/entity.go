// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/fertishop-backend/internal/domain/catalog"
)

// Status represents the order status
type Status string

const (
	StatusToPay     Status = "to-pay"
	StatusToShip    Status = "to-ship"
	StatusToReceive Status = "to-receive"
	StatusCompleted Status = "completed"
)

// ValidStatuses is the fixed ordered set of allowed status values
var ValidStatuses = []Status{StatusToPay, StatusToShip, StatusToReceive, StatusCompleted}

// IsValid reports whether s is one of the allowed status values
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// CanTransition is the single place transition policy lives. Any value
// in the valid set is currently accepted regardless of the current
// state; tightening to forward-only ordering means changing only this
// function.
func CanTransition(from, to Status) bool {
	return to.IsValid()
}

// Address is the structured shipping address. It travels with the
// order and is persisted as serialized JSON text.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// IsEmpty reports whether no address fields are set
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Order represents a placed order. Total is fixed at creation time and
// never re-derived; status only changes through UpdateStatus.
type Order struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Total         int64     `gorm:"not null" json:"total"` // In cents, Σ price×qty at creation
	Status        Status    `gorm:"not null;size:20" json:"status"`
	Address       Address   `gorm:"serializer:json;type:text;not null" json:"address"`
	PaymentMethod string    `gorm:"not null;size:100" json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem snapshots a product at purchase time. It is intentionally
// decoupled from the live product row so historical orders stay
// accurate when products change or disappear.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `gorm:"not null" json:"price"` // Unit price in cents at purchase
	Quantity  int       `gorm:"not null" json:"quantity"`
	Image     string    `gorm:"size:500" json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// NewItemSnapshot copies the purchase-relevant product fields into an
// order item at this moment.
func NewItemSnapshot(p *catalog.Product, quantity int) OrderItem {
	return OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Image:     p.ImageOrPlaceholder(),
	}
}

// ComputeTotal sums price×quantity over the items
func ComputeTotal(items []OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
