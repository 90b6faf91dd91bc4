package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderCustomer is the contact and shipping address a guest supplies at
// checkout. Guests have no stored address book, so the address lives on the
// order itself.
type OrderCustomer struct {
	ID string `gorm:"type:char(36);primaryKey" json:"id"`

	OrderID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"order_id"`

	FirstName string `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(255);null" json:"last_name,omitempty"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string `gorm:"type:varchar(20);not null" json:"phone"`
	Address1  string `gorm:"type:varchar(255);not null" json:"address1"`
	Address2  string `gorm:"type:varchar(255);null" json:"address2,omitempty"`
	City      string `gorm:"type:varchar(255);not null" json:"city"`
	PostCode  string `gorm:"type:varchar(10);not null" json:"post_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (oc *OrderCustomer) BeforeCreate(tx *gorm.DB) (err error) {
	if oc.ID == "" {
		oc.ID = uuid.New().String()
	}
	return
}
