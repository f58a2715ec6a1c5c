package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fertishop-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newCartTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	handler := NewCartHandler(db, &config.Config{})

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", uint(7)) })
	router.PUT("/cart/items/:productId", handler.UpdateCartItem)

	return router, mock
}

func expectProductLookup(mock sqlmock.Sqlmock, stock int) {
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "category_id"}).
			AddRow(3, "NPK 19-19-19", 54900, stock, 1))
	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(1, "Mineral", "mineral"))
	mock.ExpectQuery(`SELECT \* FROM "product_use_cases"`).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "use_case_id"}))
}

func TestUpdateCartItemRejectsQuantityBeyondStock(t *testing.T) {
	router, mock := newCartTestRouter(t)

	expectProductLookup(mock, 2)

	req := httptest.NewRequest(http.MethodPut, "/cart/items/3",
		strings.NewReader(`{"quantity": 5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "exceeds available stock")
	// The cart row is never touched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCartItemWithinStock(t *testing.T) {
	router, mock := newCartTestRouter(t)

	expectProductLookup(mock, 10)
	mock.ExpectExec(`UPDATE "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPut, "/cart/items/3",
		strings.NewReader(`{"quantity": 4}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart updated")
	assert.NoError(t, mock.ExpectationsWereMet())
}
