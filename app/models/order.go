package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = 1
	OrderStatusProcessing = 2
	OrderStatusShipped    = 3
	OrderStatusCompleted  = 4
	OrderStatusCancelled  = 5
)

// Order is the immutable snapshot taken from a guest cart at checkout.
// Its totals are copied from the cart's derived fields, not recomputed.
type Order struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderCode string    `gorm:"type:varchar(255);unique;not null" json:"order_code"`
	OrderDate time.Time `gorm:"not null" json:"order_date"`

	OrderItems     []OrderItem     `json:"order_items"`
	Customer       OrderCustomer   `json:"customer"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(16,2);" json:"total_price"`
	ShippingCharge decimal.Decimal `gorm:"type:decimal(16,2);" json:"shipping_charge"`
	FinalPrice     decimal.Decimal `gorm:"type:decimal(16,2);" json:"final_price"`

	Status int `gorm:"default:1" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
