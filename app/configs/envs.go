package configs

import (
	"log"
	"os"

	"github.com/greenpantry/storefront/app/utils/calc"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string
	AppAuthKey string
	AppEncKey  string
	CSRFKey    string
	CartDir    string

	ShippingFreeThreshold string
	ShippingFlatCharge    string

	APP_ENV string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	return ENV{
		DBHost:                os.Getenv("DB_HOST"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBPort:                os.Getenv("DB_PORT"),
		Port:                  os.Getenv("APP_PORT"),
		AppAuthKey:            os.Getenv("APP_AUTH_KEY"),
		AppEncKey:             os.Getenv("APP_ENC_KEY"),
		CSRFKey:               os.Getenv("CSRF_KEY"),
		CartDir:               os.Getenv("CART_DIR"),
		ShippingFreeThreshold: os.Getenv("SHIPPING_FREE_THRESHOLD"),
		ShippingFlatCharge:    os.Getenv("SHIPPING_FLAT_CHARGE"),
		APP_ENV:               os.Getenv("APP_ENV"),
	}
}

// ShippingPolicy builds the cart's shipping policy from the environment,
// keeping the defaults for anything unset or unparsable.
func (e ENV) ShippingPolicy() calc.ShippingPolicy {
	policy := calc.DefaultShippingPolicy()

	if e.ShippingFreeThreshold != "" {
		if d, err := decimal.NewFromString(e.ShippingFreeThreshold); err == nil {
			policy.FreeThreshold = d
		} else {
			log.Printf("Warning: invalid SHIPPING_FREE_THRESHOLD %q, using default", e.ShippingFreeThreshold)
		}
	}
	if e.ShippingFlatCharge != "" {
		if d, err := decimal.NewFromString(e.ShippingFlatCharge); err == nil {
			policy.FlatCharge = d
		} else {
			log.Printf("Warning: invalid SHIPPING_FLAT_CHARGE %q, using default", e.ShippingFlatCharge)
		}
	}

	return policy
}

var LoadENV = LoadEnv()
