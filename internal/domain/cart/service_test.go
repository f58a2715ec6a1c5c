package cart

import (
	"testing"
	"time"

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

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.Add(1, 1, 0)
	assert.True(t, apperrors.IsValidation(err))

	err = svc.Add(1, 1, -3)
	assert.True(t, apperrors.IsValidation(err))

	// Validation happens before any query
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCreatesNewLine(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity"}))
	mock.ExpectQuery(`INSERT INTO "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := svc.Add(7, 3, 2)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAccumulatesExistingLine(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "created_at", "updated_at"}).
			AddRow(1, 7, 3, 2, now, now))
	// 2 already carted + 3 more = 5, on the same row
	mock.ExpectExec(`UPDATE "cart_items"`).
		WithArgs(7, 3, 5, sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.Add(7, 3, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`UPDATE "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := svc.SetQuantity(7, 3, 4)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetQuantityZeroDeletesLine(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	changed, err := svc.SetQuantity(7, 3, 0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveAbsentLine(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := svc.Remove(7, 99)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearEmptyCart(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`DELETE FROM "cart_items"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	count, err := svc.Clear(7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemsSkipsRemovedProducts(t *testing.T) {
	svc, mock := newTestService(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "created_at", "updated_at"}).
			AddRow(1, 7, 3, 2, now, now).
			AddRow(2, 7, 8, 1, now, now))
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "image"}).
			AddRow(3, "NPK 19-19-19", 54900, 12, ""))
	// Product 8 no longer exists in the catalog
	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stock", "image"}))

	views, err := svc.Items(7)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, uint(3), views[0].ProductID)
	assert.Equal(t, "NPK 19-19-19", views[0].Name)
	assert.Equal(t, 2, views[0].Quantity)
	assert.Equal(t, "/placeholder.svg", views[0].Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemViewSubtotal(t *testing.T) {
	v := ItemView{Price: 54900, Quantity: 3}
	assert.Equal(t, int64(164700), v.Subtotal())
}
