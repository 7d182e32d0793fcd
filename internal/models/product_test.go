// internal/models/product_test.go
package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	product := Product{
		Brand:     "Samsung",
		ModelName: "Galaxy S24",
		Price:     decimal.NewFromInt(10000),
		Discount:  10,
	}

	assert.True(t, product.DiscountedPrice().Equal(decimal.NewFromInt(9000)))
}

func TestDiscountedPriceNoDiscount(t *testing.T) {
	product := Product{
		Price:    decimal.NewFromInt(10000),
		Discount: 0,
	}

	assert.True(t, product.DiscountedPrice().Equal(product.Price))
}

func TestDiscountedPriceFractional(t *testing.T) {
	product := Product{
		Price:    decimal.RequireFromString("999.99"),
		Discount: 25,
	}

	// 999.99 - 249.9975 = 749.9925
	assert.True(t, product.DiscountedPrice().Equal(decimal.RequireFromString("749.9925")))
}

func TestDisplayName(t *testing.T) {
	product := Product{Brand: "Apple", ModelName: "iPhone 15"}
	assert.Equal(t, "Apple iPhone 15", product.DisplayName())
}

func TestCartItemTotalPrice(t *testing.T) {
	item := CartItem{
		Quantity: 2,
		Product: Product{
			Price:    decimal.NewFromInt(10000),
			Discount: 10,
		},
	}

	assert.True(t, item.TotalPrice().Equal(decimal.NewFromInt(18000)))
}

func TestOrderItemTotalPrice(t *testing.T) {
	item := OrderItem{
		ProductPrice: decimal.RequireFromString("749.50"),
		Quantity:     3,
	}

	assert.True(t, item.TotalPrice().Equal(decimal.RequireFromString("2248.50")))
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())

	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestIsValidBrand(t *testing.T) {
	assert.True(t, IsValidBrand("Samsung"))
	assert.True(t, IsValidBrand("Other"))

	assert.False(t, IsValidBrand("samsung"))
	assert.False(t, IsValidBrand("Nothing"))
	assert.False(t, IsValidBrand(""))
}
