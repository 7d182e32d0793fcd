// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable-after-creation snapshot of a checkout. Delivery
// details are captured verbatim at checkout time and never re-derived from
// the user profile; TotalAmount is frozen at creation and never recomputed.
type Order struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	OrderNumber string    `json:"order_number" gorm:"uniqueIndex;size:50;not null"`

	// Delivery snapshot
	DeliveryName     string `json:"delivery_name" gorm:"size:100;not null"`
	DeliveryPhone    string `json:"delivery_phone" gorm:"size:10;not null"`
	DeliveryEmail    string `json:"delivery_email" gorm:"size:255;not null"`
	DeliveryAddress  string `json:"delivery_address" gorm:"type:text;not null"`
	DeliveryLocation JSONB  `json:"delivery_location,omitempty" gorm:"type:jsonb"`

	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus    PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	PaymentID        string          `json:"payment_id,omitempty" gorm:"size:100"`
	PaymentReference string          `json:"payment_reference,omitempty" gorm:"size:100"`

	// Relationships
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem denormalizes product name and unit price at purchase time so
// later catalog edits or deletions never corrupt historical orders. ProductID
// is a weak reference and may dangle after a product delete; the denormalized
// fields stay authoritative.
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID    *uuid.UUID      `json:"product_id,omitempty" gorm:"type:uuid"`
	ProductName  string          `json:"product_name" gorm:"size:160;not null"`
	ProductPrice decimal.Decimal `json:"product_price" gorm:"type:decimal(10,2);not null"`
	Quantity     int             `json:"quantity" gorm:"not null;default:1"`
}

func (oi *OrderItem) TotalPrice() decimal.Decimal {
	return oi.ProductPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// IsTerminal reports whether no further status transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}
