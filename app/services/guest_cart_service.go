package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/greenpantry/storefront/app/models"
	"github.com/greenpantry/storefront/app/storage"
	"github.com/greenpantry/storefront/app/utils/calc"
)

// GuestCartStorageKey is the key a guest cart is persisted under. The HTTP
// shell suffixes it with the guest's session ID so guests do not share a key.
const GuestCartStorageKey = "guest_cart"

// GuestCartService is the sole reader and writer of one guest cart. Every
// mutating operation loads the snapshot, applies the change, rederives the
// totals and persists before returning, so the returned cart is always
// internally consistent. Persistence failures are logged and swallowed:
// losing a guest cart is not fatal to the shopper's journey, and no
// operation here returns an error for it.
type GuestCartService struct {
	store  storage.KVStore
	key    string
	policy calc.ShippingPolicy
}

func NewGuestCartService(store storage.KVStore, key string, policy calc.ShippingPolicy) *GuestCartService {
	if key == "" {
		key = GuestCartStorageKey
	}
	return &GuestCartService{store: store, key: key, policy: policy}
}

// Load reads the persisted cart. A missing record, a read failure or an
// unparsable snapshot all yield the empty cart; corruption is never
// surfaced to the caller.
func (s *GuestCartService) Load(ctx context.Context) *models.GuestCart {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		log.Printf("GuestCartService.Load: failed to read cart %s: %v", s.key, err)
		return models.EmptyGuestCart()
	}
	if !ok {
		return models.EmptyGuestCart()
	}

	var cart models.GuestCart
	if err := json.Unmarshal(raw, &cart); err != nil {
		log.Printf("GuestCartService.Load: discarding unreadable cart %s: %v", s.key, err)
		return models.EmptyGuestCart()
	}
	if cart.Items == nil {
		cart.Items = []models.GuestCartItem{}
	}
	return &cart
}

// AddProduct merges the quantity into the existing line for the same
// (product, variant) selection, or appends a new line with a unit-price
// snapshot resolved per the variant rules. The caller supplies the resolved
// product; no catalog lookup happens here.
func (s *GuestCartService) AddProduct(ctx context.Context, product *models.Product, qty int, variantSku string) *models.GuestCart {
	cart := s.Load(ctx)
	if product == nil || qty < 1 {
		log.Printf("GuestCartService.AddProduct: ignoring invalid add (qty=%d)", qty)
		return cart
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.MatchesProduct(product.ID, variantSku) {
			item.SetQuantity(item.Quantity + qty)
			s.finish(ctx, cart)
			return cart
		}
	}

	price := product.UnitPrice(variantSku)
	item := models.GuestCartItem{
		ID:         uuid.New().String(),
		Type:       models.CartItemTypeProduct,
		Product:    product,
		VariantSku: variantSku,
		Price:      price,
		AddedAt:    time.Now(),
	}
	item.SetQuantity(qty)
	cart.Items = append(cart.Items, item)

	s.finish(ctx, cart)
	return cart
}

// AddBundle is AddProduct keyed by bundle identity only.
func (s *GuestCartService) AddBundle(ctx context.Context, bundle *models.Bundle, qty int) *models.GuestCart {
	cart := s.Load(ctx)
	if bundle == nil || qty < 1 {
		log.Printf("GuestCartService.AddBundle: ignoring invalid add (qty=%d)", qty)
		return cart
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.MatchesBundle(bundle.ID) {
			item.SetQuantity(item.Quantity + qty)
			s.finish(ctx, cart)
			return cart
		}
	}

	price := bundle.UnitPrice()
	item := models.GuestCartItem{
		ID:      uuid.New().String(),
		Type:    models.CartItemTypeBundle,
		Bundle:  bundle,
		Price:   price,
		AddedAt: time.Now(),
	}
	item.SetQuantity(qty)
	cart.Items = append(cart.Items, item)

	s.finish(ctx, cart)
	return cart
}

// UpdateQuantity sets the quantity of the line with the given ID. A quantity
// of zero or less removes the line. An unknown ID is a no-op, not an error.
func (s *GuestCartService) UpdateQuantity(ctx context.Context, itemID string, qty int) *models.GuestCart {
	cart := s.Load(ctx)

	if qty <= 0 {
		kept := cart.Items[:0]
		for i := range cart.Items {
			if cart.Items[i].ID != itemID {
				kept = append(kept, cart.Items[i])
			}
		}
		if len(kept) == len(cart.Items) {
			return cart
		}
		cart.Items = kept
		s.finish(ctx, cart)
		return cart
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ID == itemID {
			item.SetQuantity(qty)
			s.finish(ctx, cart)
			return cart
		}
	}

	log.Printf("GuestCartService.UpdateQuantity: no cart line %s", itemID)
	return cart
}

// Remove deletes the line with the given ID.
func (s *GuestCartService) Remove(ctx context.Context, itemID string) *models.GuestCart {
	return s.UpdateQuantity(ctx, itemID, 0)
}

// Clear deletes the persisted record entirely rather than emptying it.
func (s *GuestCartService) Clear(ctx context.Context) {
	if err := s.store.Delete(ctx, s.key); err != nil {
		log.Printf("GuestCartService.Clear: failed to delete cart %s: %v", s.key, err)
	}
}

// ItemCount is the sum of quantities over the currently persisted cart.
func (s *GuestCartService) ItemCount(ctx context.Context) int {
	return s.Load(ctx).ItemCount()
}

func (s *GuestCartService) finish(ctx context.Context, cart *models.GuestCart) {
	cart.Recompute(s.policy)

	raw, err := json.Marshal(cart)
	if err != nil {
		log.Printf("GuestCartService: failed to encode cart %s: %v", s.key, err)
		return
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		log.Printf("GuestCartService: failed to persist cart %s: %v", s.key, err)
	}
}

// GuestCartProvider hands out a GuestCartService bound to one guest's
// storage key. The HTTP shell holds one provider and derives a service per
// request from the session's guest ID.
type GuestCartProvider struct {
	store  storage.KVStore
	policy calc.ShippingPolicy
}

func NewGuestCartProvider(store storage.KVStore, policy calc.ShippingPolicy) *GuestCartProvider {
	return &GuestCartProvider{store: store, policy: policy}
}

func (p *GuestCartProvider) ForGuest(guestID string) *GuestCartService {
	key := ""
	if guestID != "" {
		key = GuestCartStorageKey + ":" + guestID
	}
	return NewGuestCartService(p.store, key, p.policy)
}
