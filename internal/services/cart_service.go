// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/buyx/backend/internal/models"
	"github.com/buyx/backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartView is the cart page context: items with their products and the
// derived total. The total is never stored.
type CartView struct {
	Items []models.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem upserts the (user, product) entry. Stock is checked here but not
// reserved; checkout performs the authoritative decrement.
func (s *CartService) AddItem(userID uuid.UUID, req *AddToCartRequest) (*models.CartItem, error) {
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

	if product.Stock < req.Quantity {
		return nil, ErrInsufficientStock
	}

	var item models.CartItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += req.Quantity
		if err := s.db.Save(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("database error: %w", err)
	}

	item.Product = product
	return &item, nil
}

// UpdateItem sets the quantity; zero or below deletes the entry.
func (s *CartService) UpdateItem(userID, itemID uuid.UUID, req *UpdateCartItemRequest) error {
	var item models.CartItem
	if err := s.db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if req.Quantity <= 0 {
		if err := s.db.Delete(&item).Error; err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}
		return nil
	}

	item.Quantity = req.Quantity
	if err := s.db.Save(&item).Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

func (s *CartService) RemoveItem(userID, itemID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *CartService) GetCart(userID uuid.UUID) (*CartView, error) {
	items, err := s.Items(userID)
	if err != nil {
		return nil, err
	}

	return &CartView{
		Items: items,
		Total: CartTotal(items),
	}, nil
}

func (s *CartService) Items(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).Preload("Product").
		Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart items: %w", err)
	}
	return items, nil
}

// CartTotal sums discounted unit price times quantity over loaded items.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalPrice())
	}
	return total
}
