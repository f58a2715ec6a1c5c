package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/fertishop-backend/internal/domain/catalog"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}

	assert.False(t, Status("shipped").IsValid())
	assert.False(t, Status("").IsValid())
	assert.False(t, Status("TO-PAY").IsValid())
}

func TestCanTransition(t *testing.T) {
	// Any valid target is accepted from any source, including backwards
	assert.True(t, CanTransition(StatusToPay, StatusToShip))
	assert.True(t, CanTransition(StatusCompleted, StatusToPay))
	assert.True(t, CanTransition(StatusToShip, StatusToShip))

	assert.False(t, CanTransition(StatusToPay, Status("cancelled")))
	assert.False(t, CanTransition(StatusToPay, Status("")))
}

func TestAddressIsEmpty(t *testing.T) {
	assert.True(t, Address{}.IsEmpty())
	assert.False(t, Address{City: "Pune"}.IsEmpty())
}

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{Price: 100, Quantity: 2},
		{Price: 50, Quantity: 1},
	}

	assert.Equal(t, int64(250), ComputeTotal(items))
	assert.Equal(t, int64(0), ComputeTotal(nil))
}

func TestNewItemSnapshot(t *testing.T) {
	p := &catalog.Product{
		ID:    7,
		Name:  "NPK 19-19-19",
		Price: 54900,
		Image: "/images/npk.jpg",
		Stock: 12,
	}

	item := NewItemSnapshot(p, 3)

	assert.Equal(t, uint(7), item.ProductID)
	assert.Equal(t, "NPK 19-19-19", item.Name)
	assert.Equal(t, int64(54900), item.Price)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "/images/npk.jpg", item.Image)
}

func TestNewItemSnapshotPlaceholderImage(t *testing.T) {
	p := &catalog.Product{ID: 8, Name: "Compost Mix", Price: 19900}

	item := NewItemSnapshot(p, 1)

	assert.Equal(t, catalog.PlaceholderImage, item.Image)
}
