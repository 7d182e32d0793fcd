// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem maps one (user, product) pair to a desired quantity. The pair is
// unique: repeated adds increment the quantity instead of inserting a row.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TotalPrice requires Product to be loaded.
func (ci *CartItem) TotalPrice() decimal.Decimal {
	return ci.Product.DiscountedPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
