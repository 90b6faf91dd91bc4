package migrations

import (
	"github.com/greenpantry/storefront/app/models"
	"github.com/greenpantry/storefront/app/storage"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Category{},
		&models.Bundle{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCustomer{},
		&storage.KVRecord{},
	)
}
