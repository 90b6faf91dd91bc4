package models

import (
	"time"

	"github.com/greenpantry/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
)

// GuestCart is the cart of an unauthenticated visitor. It is persisted as a
// single JSON snapshot in a key-value store; TotalPrice, ShippingCharge and
// FinalPrice are derived from Items and must never be stored out of sync
// with them. Recompute is the only place they are written.
type GuestCart struct {
	Items          []GuestCartItem `json:"items"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	FinalPrice     decimal.Decimal `json:"final_price"`
}

type GuestCartItemType string

const (
	CartItemTypeProduct GuestCartItemType = "product"
	CartItemTypeBundle  GuestCartItemType = "bundle"
)

// GuestCartItem is a tagged union over product and bundle lines,
// discriminated by Type. Product lines carry Product and an optional
// VariantSku; bundle lines carry Bundle. Price is the unit price snapshot
// taken when the line was created and is never re-derived from the catalog.
type GuestCartItem struct {
	ID         string            `json:"id"`
	Type       GuestCartItemType `json:"type"`
	Product    *Product          `json:"product,omitempty"`
	Bundle     *Bundle           `json:"bundle,omitempty"`
	VariantSku string            `json:"variant_sku,omitempty"`
	Quantity   int               `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	Total      decimal.Decimal   `json:"total"`
	AddedAt    time.Time         `json:"addedAt"`
}

func EmptyGuestCart() *GuestCart {
	return &GuestCart{
		Items:          []GuestCartItem{},
		TotalPrice:     decimal.Zero,
		ShippingCharge: decimal.Zero,
		FinalPrice:     decimal.Zero,
	}
}

// MatchesProduct reports whether this line is the product line for the given
// product and variant selection. The variant SKU participates in identity:
// the same product with a different variant is a distinct line, and an empty
// SKU ("no variant") only matches another empty SKU.
func (it *GuestCartItem) MatchesProduct(productID, variantSku string) bool {
	return it.Type == CartItemTypeProduct &&
		it.Product != nil &&
		it.Product.ID == productID &&
		it.VariantSku == variantSku
}

func (it *GuestCartItem) MatchesBundle(bundleID string) bool {
	return it.Type == CartItemTypeBundle &&
		it.Bundle != nil &&
		it.Bundle.ID == bundleID
}

// DisplayName names the underlying catalog object regardless of line type.
func (it *GuestCartItem) DisplayName() string {
	switch it.Type {
	case CartItemTypeProduct:
		if it.Product == nil {
			return ""
		}
		if it.VariantSku != "" {
			if v := it.Product.VariantBySku(it.VariantSku); v != nil {
				return it.Product.Name + " (" + v.Name + ")"
			}
		}
		return it.Product.Name
	case CartItemTypeBundle:
		if it.Bundle == nil {
			return ""
		}
		return it.Bundle.Name
	default:
		return ""
	}
}

func (it *GuestCartItem) SetQuantity(qty int) {
	it.Quantity = qty
	it.Total = it.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// Recompute rederives the cart-level totals from Items. An empty cart keeps
// every derived field at zero, including the shipping charge.
func (c *GuestCart) Recompute(policy calc.ShippingPolicy) {
	if len(c.Items) == 0 {
		c.TotalPrice = decimal.Zero
		c.ShippingCharge = decimal.Zero
		c.FinalPrice = decimal.Zero
		return
	}

	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Total)
	}

	c.TotalPrice = total
	c.ShippingCharge = policy.ChargeFor(total)
	c.FinalPrice = total.Add(c.ShippingCharge)
}

// ItemCount is the sum of all line quantities, not the number of lines.
func (c *GuestCart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}
