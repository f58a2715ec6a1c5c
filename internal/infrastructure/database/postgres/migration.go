// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/fertishop-backend/internal/domain/cart"
	"github.com/your-org/fertishop-backend/internal/domain/catalog"
	"github.com/your-org/fertishop-backend/internal/domain/order"
	"github.com/your-org/fertishop-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Dependency order: reference data first, then user-owned rows
	models := []interface{}{
		&user.User{},

		&catalog.Category{},
		&catalog.UseCase{},
		&catalog.Product{},

		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",

		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_sold_count ON products(sold_count DESC)",
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",
		"CREATE INDEX IF NOT EXISTS idx_use_cases_slug ON use_cases(slug)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("Database indexes created successfully")
	return nil
}

// SeedInitialData seeds the catalog with initial reference data in
// development environments. Idempotent: skips when categories exist.
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	log.Println("Seeding initial catalog data...")

	categories := []catalog.Category{
		{Name: "Organic Fertilizers", Slug: "organic-fertilizers", Image: "/images/categories/organic.jpg"},
		{Name: "Mineral Fertilizers", Slug: "mineral-fertilizers", Image: "/images/categories/mineral.jpg"},
		{Name: "Soil Improvers", Slug: "soil-improvers", Image: "/images/categories/soil.jpg"},
		{Name: "Plant Protection", Slug: "plant-protection", Image: "/images/categories/protection.jpg"},
	}
	if err := m.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	useCases := []catalog.UseCase{
		{Name: "Yellow Leaves", Slug: "yellow-leaves"},
		{Name: "Slow Growth", Slug: "slow-growth"},
		{Name: "Poor Flowering", Slug: "poor-flowering"},
		{Name: "Root Development", Slug: "root-development"},
		{Name: "Pest Damage", Slug: "pest-damage"},
	}
	if err := m.db.Create(&useCases).Error; err != nil {
		return fmt.Errorf("failed to seed use cases: %w", err)
	}

	products := []catalog.Product{
		{
			Name:         "NitroBoost Organic Compost",
			Description:  "Nitrogen-rich organic compost for leafy growth.",
			Price:        1999,
			CategoryID:   categories[0].ID,
			Image:        "/images/products/nitroboost.jpg",
			Stock:        120,
			TreatmentFor: "Nitrogen deficiency, pale or yellowing foliage",
			UseCases:     []catalog.UseCase{useCases[0], useCases[1]},
		},
		{
			Name:         "BloomMax NPK 5-10-10",
			Description:  "Phosphorus-heavy mineral blend for abundant flowering.",
			Price:        1449,
			CategoryID:   categories[1].ID,
			Image:        "/images/products/bloommax.jpg",
			Stock:        80,
			TreatmentFor: "Weak flowering, poor fruit set",
			UseCases:     []catalog.UseCase{useCases[2]},
		},
		{
			Name:         "RootGrow Mycorrhizal Mix",
			Description:  "Beneficial fungi blend that accelerates root establishment.",
			Price:        2599,
			CategoryID:   categories[2].ID,
			Stock:        45,
			TreatmentFor: "Transplant shock, shallow root systems",
			UseCases:     []catalog.UseCase{useCases[3], useCases[1]},
		},
		{
			Name:         "LeafShield Neem Spray",
			Description:  "Cold-pressed neem oil concentrate for common garden pests.",
			Price:        1299,
			CategoryID:   categories[3].ID,
			Image:        "/images/products/leafshield.jpg",
			Stock:        200,
			TreatmentFor: "Aphids, spider mites, whiteflies",
			UseCases:     []catalog.UseCase{useCases[4]},
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("Initial catalog data seeded successfully")
	return nil
}
