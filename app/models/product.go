package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Slug            string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     string           `gorm:"type:text" json:"description,omitempty"`
	Sku             string           `gorm:"size:100;uniqueIndex" json:"sku"`
	Brand           string           `gorm:"size:255" json:"brand,omitempty"`
	Price           decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	DiscountedPrice decimal.Decimal  `gorm:"type:decimal(16,2);default:0.00" json:"discounted_price"`
	Stock           int              `gorm:"not null" json:"stock"`
	Organic         bool             `gorm:"default:false" json:"organic"`
	GlutenFree      bool             `gorm:"default:false" json:"gluten_free"`
	Variants        []ProductVariant `json:"variants,omitempty"`
	Categories      []Category       `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	ProductImages   []ProductImage   `json:"images,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is one SKU-level configuration of a product (a pack size,
// for instance). A selected variant's price overrides the parent product's.
type ProductVariant struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID       string          `gorm:"size:36;index" json:"product_id"`
	Sku             string          `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Name            string          `gorm:"size:255;not null" json:"name"`
	Price           decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"discounted_price"`
	Stock           int             `gorm:"not null" json:"stock"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;index" json:"product_id"`
	Path      string    `gorm:"size:255;not null" json:"path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductCategory struct {
	ProductID  string `gorm:"size:36;primaryKey"`
	CategoryID string `gorm:"size:36;primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Product) VariantBySku(sku string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].Sku == sku {
			return &p.Variants[i]
		}
	}
	return nil
}

// UnitPrice resolves the price a cart line snapshots for this product: the
// matching variant's discounted/list price when a variant SKU is selected,
// the product's own discounted/list price otherwise. An unknown variant SKU
// falls back to the parent product's price.
func (p *Product) UnitPrice(variantSku string) decimal.Decimal {
	if variantSku != "" {
		if v := p.VariantBySku(variantSku); v != nil {
			return effectivePrice(v.Price, v.DiscountedPrice)
		}
	}
	return effectivePrice(p.Price, p.DiscountedPrice)
}

func effectivePrice(listPrice, discountedPrice decimal.Decimal) decimal.Decimal {
	if discountedPrice.IsPositive() {
		return discountedPrice
	}
	return listPrice
}
