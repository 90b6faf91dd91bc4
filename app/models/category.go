package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug      string         `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	ParentID  *string        `gorm:"size:36;index" json:"parent_id,omitempty"`
	Parent    *Category      `gorm:"foreignKey:ParentID" json:"-"`
	Products  []Product      `gorm:"many2many:product_categories;" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
