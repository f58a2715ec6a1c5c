// internal/domain/catalog/entity.go
package catalog

import (
	"time"
)

// PlaceholderImage is used when a product has no image of its own
const PlaceholderImage = "/placeholder.svg"

// Category represents a product category. Static reference data.
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;size:255" json:"name"`
	Slug  string `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Image string `gorm:"size:500" json:"image"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// UseCase tags products with a symptom or purpose label
// (e.g. "yellow leaves"). Static reference data.
type UseCase struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;size:255" json:"name"`
	Slug string `gorm:"uniqueIndex;not null;size:255" json:"slug"`
}

// Product represents a catalog product
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null;size:255" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        int64     `gorm:"not null" json:"price"` // Price in cents
	CategoryID   uint      `gorm:"not null;index" json:"category_id"`
	Image        string    `gorm:"size:500" json:"image"`
	SoldCount    int       `gorm:"not null;default:0" json:"sold_count"`
	Stock        int       `gorm:"not null;default:0" json:"stock"`
	TreatmentFor string    `gorm:"type:text" json:"treatment_for"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Category Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	UseCases []UseCase `gorm:"many2many:product_use_cases;" json:"use_cases"`
}

// TableName overrides
func (Category) TableName() string { return "categories" }
func (UseCase) TableName() string  { return "use_cases" }
func (Product) TableName() string  { return "products" }

// ImageOrPlaceholder returns the product image, falling back to the
// shared placeholder when none is set.
func (p *Product) ImageOrPlaceholder() string {
	if p.Image == "" {
		return PlaceholderImage
	}
	return p.Image
}

// InStock reports whether at least qty units are available
func (p *Product) InStock(qty int) bool {
	return p.Stock >= qty
}
