package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/greenpantry/storefront/app/models"
	"github.com/shopspring/decimal"
)

var productNames = []string{
	"Organic Rolled Oats",
	"Gluten-Free Flour Blend",
	"Almond Butter",
	"Quinoa",
	"Buckwheat Pancake Mix",
	"Chia Seeds",
	"Coconut Sugar",
	"Brown Rice Pasta",
	"Raw Cacao Powder",
	"Millet Bread Mix",
}

var variantSizes = []struct {
	name       string
	multiplier float64
}{
	{"250g", 1.0},
	{"500g", 1.8},
	{"1kg", 3.2},
}

func ProductFaker(categories []models.Category) *models.Product {
	name := productNames[rand.Intn(len(productNames))]
	productID := uuid.New().String()
	slugText := slug.Make(name + "-" + uuid.NewString()[:6])

	basePrice := float64(rand.Intn(400)+50) + 0.99

	product := &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slugText,
		Description: faker.Sentence(),
		Sku:         slug.Make(name) + "-" + uuid.NewString()[:6],
		Brand:       faker.LastName(),
		Price:       decimal.NewFromFloat(basePrice),
		Stock:       rand.Intn(200) + 10,
		Organic:     rand.Intn(2) == 0,
		GlutenFree:  true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	// roughly a third of products carry a discount
	if rand.Intn(3) == 0 {
		product.DiscountedPrice = product.Price.Mul(decimal.NewFromFloat(0.85)).Round(2)
	}

	for _, size := range variantSizes {
		variant := models.ProductVariant{
			ID:        uuid.New().String(),
			ProductID: productID,
			Sku:       product.Sku + "-" + slug.Make(size.name),
			Name:      size.name,
			Price:     product.Price.Mul(decimal.NewFromFloat(size.multiplier)).Round(2),
			Stock:     rand.Intn(100) + 5,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		product.Variants = append(product.Variants, variant)
	}

	if len(categories) > 0 {
		product.Categories = []models.Category{categories[rand.Intn(len(categories))]}
	}

	return product
}

func BundleFaker(products []models.Product) *models.Bundle {
	name := fmt.Sprintf("%s Pantry Box", faker.FirstName())

	picked := make([]models.Product, 0, 3)
	total := decimal.Zero
	for i := 0; i < 3 && i < len(products); i++ {
		p := products[rand.Intn(len(products))]
		picked = append(picked, p)
		total = total.Add(p.Price)
	}

	return &models.Bundle{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
		Price:       total.Round(2),
		// bundles undercut the sum of their parts
		DiscountedPrice: total.Mul(decimal.NewFromFloat(0.9)).Round(2),
		Products:        picked,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}
