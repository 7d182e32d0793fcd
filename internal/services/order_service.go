// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/models"
	"github.com/buyx/backend/internal/utils"
)

// OrderService drives the order lifecycle: cart and buy-now conversion into
// frozen order snapshots, the Cash-on-Delivery payment step and the status
// state machine.
type OrderService struct {
	db                  *gorm.DB
	cartService         *CartService
	notificationService *NotificationService
	buyNowStore         *BuyNowStore
}

type DeliveryDetails struct {
	Name      string `json:"delivery_name" validate:"required,max=100"`
	Phone     string `json:"delivery_phone" validate:"required,inphone"`
	Email     string `json:"delivery_email" validate:"required,email"`
	Address   string `json:"delivery_address" validate:"required"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

type BuyNowRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// statusTransitions is the validated transition table. cancelled is reachable
// from every non-terminal state; delivered and cancelled are terminal.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered:  {},
	models.OrderStatusCancelled:  {},
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func NewOrderService(db *gorm.DB, cartService *CartService, notificationService *NotificationService, buyNowStore *BuyNowStore) *OrderService {
	return &OrderService{
		db:                  db,
		cartService:         cartService,
		notificationService: notificationService,
		buyNowStore:         buyNowStore,
	}
}

// Checkout converts the user's cart into an order. The whole conversion —
// order insert, item inserts, stock decrements and cart clearing — runs in
// one transaction, so a failure anywhere leaves no partial state behind.
func (s *OrderService) Checkout(userID uuid.UUID, delivery *DeliveryDetails) (*models.Order, error) {
	if err := utils.ValidateStruct(delivery); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	items, err := s.cartService.Items(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := buildOrder(userID, items, delivery)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			if err := decrementStock(tx, items[i].ProductID, items[i].Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// BuyNow records a single-item selection for the user, bypassing the cart.
// The selection lives in the expiring buy-now store until the delivery
// details are submitted.
func (s *OrderService) BuyNow(userID uuid.UUID, req *BuyNowRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if product.Stock == 0 {
		return nil, ErrOutOfStock
	}
	if product.Stock < req.Quantity {
		return nil, ErrInsufficientStock
	}

	s.buyNowStore.Put(userID, req.ProductID, req.Quantity)

	return &product, nil
}

// CheckoutBuyNow finishes the buy-now flow: same conversion as Checkout for
// a single line item, then the selection is cleared.
func (s *OrderService) CheckoutBuyNow(userID uuid.UUID, delivery *DeliveryDetails) (*models.Order, error) {
	if err := utils.ValidateStruct(delivery); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sel, ok := s.buyNowStore.Get(userID)
	if !ok {
		return nil, ErrNoSelectionPending
	}

	var product models.Product
	if err := s.db.First(&product, sel.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.buyNowStore.Clear(userID)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	items := []models.CartItem{{
		ProductID: product.ID,
		Quantity:  sel.Quantity,
		Product:   product,
	}}

	order, err := buildOrder(userID, items, delivery)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return decrementStock(tx, product.ID, sel.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.buyNowStore.Clear(userID)

	return order, nil
}

// ProcessPayment handles the payment step. Only Cash-on-Delivery changes
// state: the order is confirmed while payment stays pending until handover.
// Every other method is a no-op with a user-facing notice.
func (s *OrderService) ProcessPayment(userID uuid.UUID, orderNumber string, req *ProcessPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.Where("order_number = ? AND user_id = ?", orderNumber, userID).
		Preload("Items").First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Only a freshly placed order can take a payment; confirmed, terminal or
	// in-flight orders must not be rewritten back to confirmed.
	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidTransition
	}

	if req.PaymentMethod != models.PaymentMethodCOD {
		return &order, ErrPaymentMethodUnsupported
	}

	order.Status = models.OrderStatusConfirmed
	order.PaymentStatus = models.PaymentStatusPending
	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if s.notificationService != nil {
		go s.notificationService.SendOrderConfirmationEmail(&order)
		go s.notificationService.SendOrderStatusSMS(order.DeliveryPhone, order.OrderNumber, string(order.Status))
	}

	return &order, nil
}

func (s *OrderService) GetUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("user_id = ?", userID).Preload("Items").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) GetUserOrder(userID uuid.UUID, orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("order_number = ? AND user_id = ?", orderNumber, userID).
		Preload("Items").First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// GetDistributorOrders lists orders containing at least one of the
// distributor's products. Orders are not partitioned by distributor, so an
// order carrying other distributors' items is visible too.
func (s *OrderService) GetDistributorOrders(distributorID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.distributor_id = ?", distributorID).
		Distinct().Preload("Items").
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch distributor orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus applies a distributor-side status change after checking
// the transition table. The caller must have at least one item in the order.
func (s *OrderService) UpdateOrderStatus(distributorID, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.distributor_id = ?", orderID, distributorID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	var order models.Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !CanTransition(order.Status, req.Status) {
		return nil, ErrInvalidTransition
	}

	order.Status = req.Status
	if err := s.db.Save(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if s.notificationService != nil {
		go s.notificationService.SendOrderStatusSMS(order.DeliveryPhone, order.OrderNumber, string(order.Status))
	}

	return &order, nil
}

// buildOrder assembles the order snapshot from loaded cart items: one item
// per entry copying name, discounted unit price and quantity, and a total
// equal to the sum of item totals. Nothing here touches the database.
func buildOrder(userID uuid.UUID, items []models.CartItem, delivery *DeliveryDetails) (*models.Order, error) {
	orderNumber, err := newOrderNumber()
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          userID,
		OrderNumber:     orderNumber,
		DeliveryName:    delivery.Name,
		DeliveryPhone:   delivery.Phone,
		DeliveryEmail:   delivery.Email,
		DeliveryAddress: delivery.Address,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}

	// Coordinates are captured verbatim, never geocoded or validated
	if delivery.Latitude != "" && delivery.Longitude != "" {
		order.DeliveryLocation = models.JSONB{
			"latitude":  delivery.Latitude,
			"longitude": delivery.Longitude,
		}
	}

	total := CartTotal(items)
	for i := range items {
		productID := items[i].ProductID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    &productID,
			ProductName:  items[i].Product.DisplayName(),
			ProductPrice: items[i].Product.DiscountedPrice(),
			Quantity:     items[i].Quantity,
		})
	}
	order.TotalAmount = total

	return order, nil
}

// newOrderNumber derives a human-readable identifier from the current time
// plus a random suffix against same-second collisions.
func newOrderNumber() (string, error) {
	suffix, err := utils.GenerateRandomDigits(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return "XM" + time.Now().Format("20060102150405") + suffix, nil
}

// decrementStock is a single conditional update: it only succeeds when
// remaining stock covers the quantity, closing the oversell window between
// the cart-time check and checkout.
func decrementStock(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to update stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
