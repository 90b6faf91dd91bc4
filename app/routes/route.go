package routes

import (
	"log"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/greenpantry/storefront/app/configs"
	"github.com/greenpantry/storefront/app/handlers"
	"github.com/greenpantry/storefront/app/middlewares"
	"github.com/greenpantry/storefront/app/repositories"
	"github.com/greenpantry/storefront/app/services"
	"github.com/greenpantry/storefront/app/storage"
	"github.com/greenpantry/storefront/app/utils/renderer"
	"github.com/greenpantry/storefront/app/utils/sessions"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV) http.Handler {
	render := renderer.New()

	keys, err := configs.LoadSessionKeysFromEnv(env)
	if err != nil {
		log.Printf("Warning: %v. Using ephemeral session keys.", err)
		keys = configs.EphemeralSessionKeys()
	}
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)

	kv := storage.NewGormStore(db)
	carts := services.NewGuestCartProvider(kv, env.ShippingPolicy())

	productRepo := repositories.NewProductRepository(db)
	bundleRepo := repositories.NewBundleRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	catalogHandler := handlers.NewCatalogHandler(productRepo, bundleRepo, categoryRepo, render)
	cartHandler := handlers.NewCartHandler(productRepo, bundleRepo, carts, sessionStore, render)
	checkoutHandler := handlers.NewCheckoutHandler(services.NewCheckoutService(orderRepo), carts, sessionStore, render)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLoggerMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.CartCountMiddleware(carts, sessionStore))

	api.HandleFunc("/products", catalogHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products/{slug}", catalogHandler.GetProduct).Methods("GET")
	api.HandleFunc("/bundles", catalogHandler.ListBundles).Methods("GET")
	api.HandleFunc("/bundles/{slug}", catalogHandler.GetBundle).Methods("GET")
	api.HandleFunc("/categories", catalogHandler.ListCategories).Methods("GET")
	api.HandleFunc("/categories/{slug}/products", catalogHandler.ListProductsByCategory).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart/count", cartHandler.GetCartCount).Methods("GET")
	api.HandleFunc("/cart/items", cartHandler.AddProduct).Methods("POST")
	api.HandleFunc("/cart/bundles", cartHandler.AddBundle).Methods("POST")
	api.HandleFunc("/cart/items/{id}", cartHandler.UpdateItem).Methods("PUT")
	api.HandleFunc("/cart/items/{id}", cartHandler.RemoveItem).Methods("DELETE")

	api.HandleFunc("/checkout/guest", checkoutHandler.PlaceGuestOrder).Methods("POST")

	if env.CSRFKey != "" {
		protect := csrf.Protect(
			[]byte(env.CSRFKey),
			csrf.Path("/"),
			csrf.Secure(env.APP_ENV == "production"),
		)
		return protect(router)
	}

	log.Println("Warning: CSRF_KEY not set, CSRF protection disabled")
	return router
}
