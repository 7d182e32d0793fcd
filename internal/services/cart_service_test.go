// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buyx/backend/internal/models"
)

func TestCartTotalEmpty(t *testing.T) {
	assert.True(t, CartTotal(nil).IsZero())
	assert.True(t, CartTotal([]models.CartItem{}).IsZero())
}

func TestCartTotal(t *testing.T) {
	items := []models.CartItem{
		{
			Quantity: 2,
			Product:  models.Product{Price: decimal.NewFromInt(10000), Discount: 10},
		},
		{
			Quantity: 1,
			Product:  models.Product{Price: decimal.RequireFromString("499.50")},
		},
	}

	// 2 * 9000 + 499.50
	assert.True(t, CartTotal(items).Equal(decimal.RequireFromString("18499.50")))
}

func TestAddItemUpsertsPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	userID := uuid.New()
	product := seedProduct(t, db, 10)

	_, err := svc.AddItem(userID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	item, err := svc.AddItem(userID, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	// Repeated adds increment the quantity of the single (user, product) row
	assert.Equal(t, 5, item.Quantity)

	var rows int64
	db.Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, product.ID).Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestAddItemRejectsInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	product := seedProduct(t, db, 1)

	_, err := svc.AddItem(uuid.New(), &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}
