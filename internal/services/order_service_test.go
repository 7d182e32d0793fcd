// internal/services/order_service_test.go
package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusConfirmed, models.OrderStatusProcessing, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusProcessing, models.OrderStatusShipped, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, true},

		// No skipping forward
		{models.OrderStatusPending, models.OrderStatusProcessing, false},
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusConfirmed, models.OrderStatusDelivered, false},

		// No going backwards
		{models.OrderStatusShipped, models.OrderStatusProcessing, false},
		{models.OrderStatusConfirmed, models.OrderStatusPending, false},

		// Terminal states stay terminal
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
		{models.OrderStatusDelivered, models.OrderStatusShipped, false},

		// No self transitions
		{models.OrderStatusPending, models.OrderStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func testDelivery() *DeliveryDetails {
	return &DeliveryDetails{
		Name:    "Ravi Kumar",
		Phone:   "9876543210",
		Email:   "ravi@example.com",
		Address: "12 MG Road, Bengaluru",
	}
}

func TestBuildOrderSnapshot(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	items := []models.CartItem{
		{
			UserID:    userID,
			ProductID: productID,
			Quantity:  2,
			Product: models.Product{
				Brand:     "Samsung",
				ModelName: "Galaxy S24",
				Price:     decimal.NewFromInt(10000),
				Discount:  10,
				Stock:     5,
			},
		},
	}

	order, err := buildOrder(userID, items, testDelivery())
	require.NoError(t, err)

	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	// Delivery details are captured verbatim
	assert.Equal(t, "Ravi Kumar", order.DeliveryName)
	assert.Equal(t, "9876543210", order.DeliveryPhone)
	assert.Equal(t, "ravi@example.com", order.DeliveryEmail)
	assert.Equal(t, "12 MG Road, Bengaluru", order.DeliveryAddress)
	assert.Nil(t, order.DeliveryLocation)

	// One item freezing name, discounted unit price and quantity
	require.Len(t, order.Items, 1)
	item := order.Items[0]
	require.NotNil(t, item.ProductID)
	assert.Equal(t, productID, *item.ProductID)
	assert.Equal(t, "Samsung Galaxy S24", item.ProductName)
	assert.True(t, item.ProductPrice.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, 2, item.Quantity)

	// Total is the sum of discounted item totals
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(18000)))
}

func TestBuildOrderMultipleItems(t *testing.T) {
	userID := uuid.New()

	items := []models.CartItem{
		{
			ProductID: uuid.New(),
			Quantity:  1,
			Product: models.Product{
				Brand:     "Apple",
				ModelName: "iPhone 15",
				Price:     decimal.NewFromInt(79900),
			},
		},
		{
			ProductID: uuid.New(),
			Quantity:  3,
			Product: models.Product{
				Brand:     "Xiaomi",
				ModelName: "Redmi Note 13",
				Price:     decimal.NewFromInt(20000),
				Discount:  15,
			},
		},
	}

	order, err := buildOrder(userID, items, testDelivery())
	require.NoError(t, err)

	require.Len(t, order.Items, 2)
	// 79900 + 3 * 17000
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(130900)))
}

func TestBuildOrderCapturesCoordinates(t *testing.T) {
	delivery := testDelivery()
	delivery.Latitude = "12.9716"
	delivery.Longitude = "77.5946"

	order, err := buildOrder(uuid.New(), []models.CartItem{
		{
			ProductID: uuid.New(),
			Quantity:  1,
			Product:   models.Product{Brand: "Nokia", ModelName: "G42", Price: decimal.NewFromInt(12000)},
		},
	}, delivery)
	require.NoError(t, err)

	require.NotNil(t, order.DeliveryLocation)
	assert.Equal(t, "12.9716", order.DeliveryLocation["latitude"])
	assert.Equal(t, "77.5946", order.DeliveryLocation["longitude"])
}

func TestNewOrderNumberFormat(t *testing.T) {
	number, err := newOrderNumber()
	require.NoError(t, err)

	// XM + 14-digit timestamp + 4 random digits
	assert.Len(t, number, 20)
	assert.Regexp(t, regexp.MustCompile(`^XM[0-9]{18}$`), number)
}

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db, NewCartService(db), nil, NewBuyNowStore(time.Minute))
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(db)

	_, err := svc.Checkout(uuid.New(), testDelivery())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDecrementsStockAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	cartService := NewCartService(db)
	svc := NewOrderService(db, cartService, nil, NewBuyNowStore(time.Minute))

	userID := uuid.New()
	product := seedProduct(t, db, 5)

	_, err := cartService.AddItem(userID, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	order, err := svc.Checkout(userID, testDelivery())
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(18000)))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	var remaining models.Product
	require.NoError(t, db.First(&remaining, product.ID).Error)
	assert.Equal(t, 3, remaining.Stock)

	// The same transaction that created the order emptied the cart
	var cartRows int64
	db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&cartRows)
	assert.EqualValues(t, 0, cartRows)

	var itemRows int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemRows)
	assert.EqualValues(t, 1, itemRows)
}

func TestCheckoutInsufficientStockLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	cartService := NewCartService(db)
	svc := NewOrderService(db, cartService, nil, NewBuyNowStore(time.Minute))

	userID := uuid.New()
	product := seedProduct(t, db, 1)

	_, err := cartService.AddItem(userID, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	// Stock sold out between cart add and checkout
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).Update("stock", 0).Error)

	_, err = svc.Checkout(userID, testDelivery())
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The transaction rolled back: no order, cart intact, stock still zero
	var orderRows int64
	db.Model(&models.Order{}).Count(&orderRows)
	assert.EqualValues(t, 0, orderRows)

	var cartRows int64
	db.Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&cartRows)
	assert.EqualValues(t, 1, cartRows)

	var remaining models.Product
	require.NoError(t, db.First(&remaining, product.ID).Error)
	assert.Equal(t, 0, remaining.Stock)
}

func TestProcessPaymentConfirmsPendingOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newTestOrderService(db)

	userID := uuid.New()
	order := seedOrder(t, db, userID, models.OrderStatusPending)

	paid, err := svc.ProcessPayment(userID, order.OrderNumber,
		&ProcessPaymentRequest{PaymentMethod: models.PaymentMethodCOD})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, paid.Status)
	assert.Equal(t, models.PaymentStatusPending, paid.PaymentStatus)
}

func TestProcessPaymentRejectsNonPendingOrder(t *testing.T) {
	statuses := []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			db := newTestDB(t)
			svc := newTestOrderService(db)

			userID := uuid.New()
			order := seedOrder(t, db, userID, status)

			_, err := svc.ProcessPayment(userID, order.OrderNumber,
				&ProcessPaymentRequest{PaymentMethod: models.PaymentMethodCOD})
			assert.ErrorIs(t, err, ErrInvalidTransition)

			// A cancelled or delivered order must not come back as confirmed
			var reloaded models.Order
			require.NoError(t, db.First(&reloaded, order.ID).Error)
			assert.Equal(t, status, reloaded.Status)
		})
	}
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, status models.OrderStatus) *models.Order {
	t.Helper()

	number, err := newOrderNumber()
	require.NoError(t, err)

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     number,
		DeliveryName:    "Ravi Kumar",
		DeliveryPhone:   "9876543210",
		DeliveryEmail:   "ravi@example.com",
		DeliveryAddress: "12 MG Road, Bengaluru",
		TotalAmount:     decimal.NewFromInt(9000),
		Status:          status,
		PaymentStatus:   models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}
