package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bundle is a curated set of products sold as one line item at its own price.
// Bundles have no variant dimension.
type Bundle struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Slug            string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"discounted_price"`
	Products        []Product       `gorm:"many2many:bundle_products;" json:"products,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (b *Bundle) UnitPrice() decimal.Decimal {
	return effectivePrice(b.Price, b.DiscountedPrice)
}
