package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID         string          `gorm:"primaryKey;type:varchar(36);not null;uniqueIndex" json:"id"`
	OrderID    string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ItemType   string          `gorm:"type:varchar(20);not null" json:"item_type"`
	ProductID  string          `gorm:"type:varchar(36);index" json:"product_id,omitempty"`
	BundleID   string          `gorm:"type:varchar(36);index" json:"bundle_id,omitempty"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	VariantSku string          `gorm:"type:varchar(100)" json:"variant_sku,omitempty"`
	Qty        int             `gorm:"not null" json:"qty"`
	Price      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Total      decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
