// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// Default limits mirror the storefront pages that consume them
const (
	DefaultListLimit     = 20
	DefaultFeaturedLimit = 6
	DefaultRelatedLimit  = 4
)

// Service handles catalog reads and reference-data maintenance
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
	CategorySlug string `form:"category"`
	UseCaseSlug  string `form:"use_case"`
	Search       string `form:"search"`
}

// ListCategories returns all categories
func (s *Service) ListCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.NewInternalError("catalog.ListCategories", err)
	}
	return categories, nil
}

// ListUseCases returns all use-case tags
func (s *Service) ListUseCases() ([]UseCase, error) {
	var useCases []UseCase
	if err := s.db.Order("id ASC").Find(&useCases).Error; err != nil {
		return nil, apperrors.NewInternalError("catalog.ListUseCases", err)
	}
	return useCases, nil
}

// ListProducts retrieves products filtered by category slug, use-case
// slug and a case-insensitive substring search over name/description,
// with limit+offset pagination. Best sellers come first. Every product
// is returned with its use-case tags attached.
func (s *Service) ListProducts(req *ProductListRequest) ([]Product, error) {
	if req.Limit <= 0 {
		req.Limit = DefaultListLimit
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	query := s.db.Model(&Product{}).
		Preload("Category").
		Preload("UseCases")

	if req.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", req.CategorySlug)
	}

	if req.UseCaseSlug != "" {
		query = query.
			Joins("JOIN product_use_cases ON product_use_cases.product_id = products.id").
			Joins("JOIN use_cases ON use_cases.id = product_use_cases.use_case_id").
			Where("use_cases.slug = ?", req.UseCaseSlug)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", search, search)
	}

	var products []Product
	err := query.
		Order("products.sold_count DESC").
		Limit(req.Limit).
		Offset(req.Offset).
		Find(&products).Error
	if err != nil {
		return nil, apperrors.NewInternalError("catalog.ListProducts", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by ID with its use-case tags
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("UseCases").
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("product", strconv.FormatUint(uint64(id), 10))
		}
		return nil, apperrors.NewInternalError("catalog.GetProduct", result.Error)
	}

	return &product, nil
}

// FeaturedProducts returns the top-selling products
func (s *Service) FeaturedProducts(limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	var products []Product
	err := s.db.
		Preload("Category").
		Preload("UseCases").
		Order("sold_count DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, apperrors.NewInternalError("catalog.FeaturedProducts", err)
	}

	return products, nil
}

// RelatedProducts returns the top sellers from the same category,
// excluding the product itself. A missing anchor product yields an
// empty slice rather than an error.
func (s *Service) RelatedProducts(productID uint, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	var anchor Product
	result := s.db.Select("id", "category_id").Where("id = ?", productID).First(&anchor)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return []Product{}, nil
		}
		return nil, apperrors.NewInternalError("catalog.RelatedProducts", result.Error)
	}

	var products []Product
	err := s.db.
		Preload("Category").
		Preload("UseCases").
		Where("category_id = ? AND id <> ?", anchor.CategoryID, productID).
		Order("sold_count DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, apperrors.NewInternalError("catalog.RelatedProducts", err)
	}

	return products, nil
}

// CreateCategory creates a new category. Duplicate slugs are conflicts.
func (s *Service) CreateCategory(name, slug, image string) (*Category, error) {
	if name == "" || slug == "" {
		return nil, apperrors.NewValidationError("category", "name and slug are required")
	}

	var existing Category
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, apperrors.NewConflictError("category", fmt.Sprintf("slug %q already exists", slug))
	}

	category := Category{Name: name, Slug: slug, Image: image}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperrors.NewInternalError("catalog.CreateCategory", err)
	}

	return &category, nil
}

// CreateUseCase creates a new use-case tag. Duplicate slugs are conflicts.
func (s *Service) CreateUseCase(name, slug string) (*UseCase, error) {
	if name == "" || slug == "" {
		return nil, apperrors.NewValidationError("use_case", "name and slug are required")
	}

	var existing UseCase
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, apperrors.NewConflictError("use_case", fmt.Sprintf("slug %q already exists", slug))
	}

	useCase := UseCase{Name: name, Slug: slug}
	if err := s.db.Create(&useCase).Error; err != nil {
		return nil, apperrors.NewInternalError("catalog.CreateUseCase", err)
	}

	return &useCase, nil
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	CategoryID   uint   `json:"category_id" binding:"required"`
	Image        string `json:"image"`
	Stock        int    `json:"stock"`
	TreatmentFor string `json:"treatment_for"`
}

// CreateProduct creates a new product in an existing category
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name", "is required")
	}
	if req.Price < 0 {
		return nil, apperrors.NewValidationError("price", "must not be negative")
	}
	if req.Stock < 0 {
		return nil, apperrors.NewValidationError("stock", "must not be negative")
	}

	var category Category
	if err := s.db.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("category", strconv.FormatUint(uint64(req.CategoryID), 10))
		}
		return nil, apperrors.NewInternalError("catalog.CreateProduct", err)
	}

	product := Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		CategoryID:   req.CategoryID,
		Image:        req.Image,
		Stock:        req.Stock,
		TreatmentFor: req.TreatmentFor,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, apperrors.NewInternalError("catalog.CreateProduct", err)
	}

	return s.GetProduct(product.ID)
}

// TagProduct associates a use-case with a product. Tagging twice is a
// conflict, matching the association's primary-key uniqueness.
func (s *Service) TagProduct(productID, useCaseID uint) error {
	var product Product
	if err := s.db.Preload("UseCases").Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("product", strconv.FormatUint(uint64(productID), 10))
		}
		return apperrors.NewInternalError("catalog.TagProduct", err)
	}

	var useCase UseCase
	if err := s.db.Where("id = ?", useCaseID).First(&useCase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFoundError("use_case", strconv.FormatUint(uint64(useCaseID), 10))
		}
		return apperrors.NewInternalError("catalog.TagProduct", err)
	}

	for _, existing := range product.UseCases {
		if existing.ID == useCaseID {
			return apperrors.NewConflictError("product_use_case", "product already tagged with this use case")
		}
	}

	if err := s.db.Model(&product).Association("UseCases").Append(&useCase); err != nil {
		return apperrors.NewInternalError("catalog.TagProduct", err)
	}

	return nil
}
