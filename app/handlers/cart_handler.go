package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/greenpantry/storefront/app/middlewares"
	"github.com/greenpantry/storefront/app/repositories"
	"github.com/greenpantry/storefront/app/services"
	"github.com/greenpantry/storefront/app/utils/sessions"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type CartHandler struct {
	productRepo repositories.ProductRepositoryImpl
	bundleRepo  repositories.BundleRepository
	carts       *services.GuestCartProvider
	sessions    sessions.GuestSessionStore
	render      *render.Render
}

func NewCartHandler(
	productRepo repositories.ProductRepositoryImpl,
	bundleRepo repositories.BundleRepository,
	carts *services.GuestCartProvider,
	sessionStore sessions.GuestSessionStore,
	render *render.Render,
) *CartHandler {
	return &CartHandler{
		productRepo: productRepo,
		bundleRepo:  bundleRepo,
		carts:       carts,
		sessions:    sessionStore,
		render:      render,
	}
}

type addProductRequest struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	VariantSku string `json:"variant_sku"`
}

type addBundleRequest struct {
	BundleID string `json:"bundle_id"`
	Quantity int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.cartService(w, r)
	if !ok {
		return
	}
	_ = h.render.JSON(w, http.StatusOK, svc.Load(r.Context()))
}

func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	if count, ok := middlewares.CartCountFromContext(r.Context()); ok {
		_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": count})
		return
	}

	svc, ok := h.cartService(w, r)
	if !ok {
		return
	}
	count := svc.ItemCount(r.Context())
	_ = h.render.JSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID == "" || req.Quantity < 1 {
		h.renderError(w, http.StatusBadRequest, "product_id and a positive quantity are required")
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderError(w, http.StatusNotFound, "product not found")
			return
		}
		log.Printf("CartHandler.AddProduct: failed to load product %s: %v", req.ProductID, err)
		h.renderError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	svc, ok := h.cartService(w, r)
	if !ok {
		return
	}
	cart := svc.AddProduct(r.Context(), product, req.Quantity, req.VariantSku)
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddBundle(w http.ResponseWriter, r *http.Request) {
	var req addBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BundleID == "" || req.Quantity < 1 {
		h.renderError(w, http.StatusBadRequest, "bundle_id and a positive quantity are required")
		return
	}

	bundle, err := h.bundleRepo.GetByID(r.Context(), req.BundleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderError(w, http.StatusNotFound, "bundle not found")
			return
		}
		log.Printf("CartHandler.AddBundle: failed to load bundle %s: %v", req.BundleID, err)
		h.renderError(w, http.StatusInternalServerError, "failed to load bundle")
		return
	}

	svc, ok := h.cartService(w, r)
	if !ok {
		return
	}
	cart := svc.AddBundle(r.Context(), bundle, req.Quantity)
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc, ok := h.cartService(w, r)
	if !ok {
		return
	}
	cart := svc.UpdateQuantity(r.Context(), itemID, req.Quantity)
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]

	svc, ok := h.cartService(w, r)
	if !ok {
		return
	}
	cart := svc.Remove(r.Context(), itemID)
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) cartService(w http.ResponseWriter, r *http.Request) (*services.GuestCartService, bool) {
	guestID, err := h.sessions.EnsureGuestID(w, r)
	if err != nil {
		log.Printf("CartHandler: failed to establish guest session: %v", err)
		h.renderError(w, http.StatusInternalServerError, "failed to establish session")
		return nil, false
	}
	return h.carts.ForGuest(guestID), true
}

func (h *CartHandler) renderError(w http.ResponseWriter, status int, message string) {
	_ = h.render.JSON(w, status, map[string]string{"error": message})
}
