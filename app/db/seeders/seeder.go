package seeders

import (
	"log"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/greenpantry/storefront/app/db/fakers"
	"github.com/greenpantry/storefront/app/models"
	"gorm.io/gorm"
)

var categoryNames = []string{
	"Flours & Baking",
	"Breakfast",
	"Pasta & Grains",
	"Snacks",
	"Pantry Staples",
}

func DBSeed(db *gorm.DB) error {
	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category := models.Category{
			ID:   uuid.New().String(),
			Name: name,
			Slug: slug.Make(name),
		}
		if err := db.FirstOrCreate(&category, models.Category{Name: name}).Error; err != nil {
			return err
		}
		categories = append(categories, category)
	}

	products := make([]models.Product, 0, 20)
	for i := 0; i < 20; i++ {
		product := fakers.ProductFaker(categories)
		if err := db.Create(product).Error; err != nil {
			return err
		}
		products = append(products, *product)
	}

	for i := 0; i < 5; i++ {
		bundle := fakers.BundleFaker(products)
		if err := db.Create(bundle).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d categories, %d products, 5 bundles", len(categories), len(products))
	return nil
}
