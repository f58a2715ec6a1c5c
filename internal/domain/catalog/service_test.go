package catalog

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertishop-backend/internal/config"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewService(db, &config.Config{}), mock
}

func TestGetProductNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}))

	_, err := svc.GetProduct(42)
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelatedProductsMissingAnchor(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT "id","category_id" FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id"}))

	products, err := svc.RelatedProducts(42, 4)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProductValidation(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.CreateProduct(&CreateProductRequest{Name: "", CategoryID: 1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateProduct(&CreateProductRequest{Name: "Urea", CategoryID: 1, Price: -1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateProduct(&CreateProductRequest{Name: "Urea", CategoryID: 1, Stock: -1})
	assert.True(t, apperrors.IsValidation(err))

	// All rejected before any query
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryValidation(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.CreateCategory("", "organic", "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.CreateCategory("Organic", "", "")
	assert.True(t, apperrors.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Organic", "organic"))

	_, err := svc.CreateCategory("Organic Again", "organic", "")
	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUseCaseDuplicateSlug(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "use_cases"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Yellow Leaves", "yellow-leaves"))

	_, err := svc.CreateUseCase("Yellowing", "yellow-leaves")
	assert.True(t, apperrors.IsConflict(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageOrPlaceholder(t *testing.T) {
	withImage := Product{Image: "/images/npk.jpg"}
	assert.Equal(t, "/images/npk.jpg", withImage.ImageOrPlaceholder())

	withoutImage := Product{}
	assert.Equal(t, PlaceholderImage, withoutImage.ImageOrPlaceholder())
}

func TestInStock(t *testing.T) {
	p := Product{Stock: 5}

	assert.True(t, p.InStock(1))
	assert.True(t, p.InStock(5))
	assert.False(t, p.InStock(6))

	empty := Product{}
	assert.False(t, empty.InStock(1))
}
