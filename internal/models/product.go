// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	DistributorID  uuid.UUID        `json:"distributor_id" gorm:"type:uuid;not null;index"`
	Brand          string           `json:"brand" gorm:"size:50;not null;index"`
	ModelName      string           `json:"model_name" gorm:"size:100;not null"`
	Slug           string           `json:"slug" gorm:"uniqueIndex;size:160;not null"`
	Images         pq.StringArray   `json:"images" gorm:"type:text[]"`
	Price          decimal.Decimal  `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice  *decimal.Decimal `json:"original_price,omitempty" gorm:"type:decimal(10,2)"`
	Discount       int              `json:"discount" gorm:"default:0"`
	Features       string           `json:"features" gorm:"type:text"`
	Specifications JSONB            `json:"specifications" gorm:"type:jsonb"`
	Stock          int              `json:"stock" gorm:"default:0"`
	IsAvailable    bool             `json:"is_available" gorm:"default:true"`

	// Relationships
	Distributor User     `json:"distributor,omitempty" gorm:"foreignKey:DistributorID"`
	Reviews     []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

// DiscountedPrice is the unit price after applying the discount percentage.
// This is the price the cart and every order snapshot are built from.
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.Discount > 0 {
		off := p.Price.Mul(decimal.NewFromInt(int64(p.Discount))).Div(decimal.NewFromInt(100))
		return p.Price.Sub(off)
	}
	return p.Price
}

func (p *Product) DisplayName() string {
	return p.Brand + " " + p.ModelName
}
