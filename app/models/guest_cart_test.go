package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/greenpantry/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRecomputeEmptyCartZeroesEverything(t *testing.T) {
	cart := &GuestCart{
		Items:          []GuestCartItem{},
		TotalPrice:     decimal.NewFromInt(999),
		ShippingCharge: decimal.NewFromInt(50),
		FinalPrice:     decimal.NewFromInt(1049),
	}

	cart.Recompute(calc.DefaultShippingPolicy())

	require.True(t, cart.TotalPrice.IsZero())
	require.True(t, cart.ShippingCharge.IsZero())
	require.True(t, cart.FinalPrice.IsZero())
}

func TestRecomputeAtExactThreshold(t *testing.T) {
	cart := &GuestCart{
		Items: []GuestCartItem{
			{ID: "a", Type: CartItemTypeProduct, Quantity: 1, Price: decimal.NewFromInt(500), Total: decimal.NewFromInt(500)},
		},
	}

	cart.Recompute(calc.DefaultShippingPolicy())

	require.True(t, cart.TotalPrice.Equal(decimal.NewFromInt(500)))
	require.True(t, cart.ShippingCharge.IsZero(), "exactly at the threshold ships free")
	require.True(t, cart.FinalPrice.Equal(decimal.NewFromInt(500)))
}

func TestRecomputeJustBelowThreshold(t *testing.T) {
	cart := &GuestCart{
		Items: []GuestCartItem{
			{ID: "a", Type: CartItemTypeProduct, Quantity: 1, Price: decimal.RequireFromString("499.99"), Total: decimal.RequireFromString("499.99")},
		},
	}

	cart.Recompute(calc.DefaultShippingPolicy())

	require.True(t, cart.ShippingCharge.Equal(decimal.NewFromInt(50)))
	require.True(t, cart.FinalPrice.Equal(decimal.RequireFromString("549.99")))
}

func TestGuestCartItemJSONRoundTrip(t *testing.T) {
	addedAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	cart := &GuestCart{
		Items: []GuestCartItem{
			{
				ID:   "line-1",
				Type: CartItemTypeProduct,
				Product: &Product{
					ID:    "p1",
					Name:  "Organic Rolled Oats",
					Price: decimal.NewFromInt(120),
				},
				VariantSku: "oats-500g",
				Quantity:   2,
				Price:      decimal.NewFromInt(200),
				Total:      decimal.NewFromInt(400),
				AddedAt:    addedAt,
			},
			{
				ID:   "line-2",
				Type: CartItemTypeBundle,
				Bundle: &Bundle{
					ID:    "b1",
					Name:  "Breakfast Box",
					Price: decimal.NewFromInt(250),
				},
				Quantity: 1,
				Price:    decimal.NewFromInt(250),
				Total:    decimal.NewFromInt(250),
				AddedAt:  addedAt,
			},
		},
	}
	cart.Recompute(calc.DefaultShippingPolicy())

	raw, err := json.Marshal(cart)
	require.NoError(t, err)

	var decoded GuestCart
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Items, 2)
	require.Equal(t, CartItemTypeProduct, decoded.Items[0].Type)
	require.Equal(t, "p1", decoded.Items[0].Product.ID)
	require.Nil(t, decoded.Items[0].Bundle)
	require.Equal(t, "oats-500g", decoded.Items[0].VariantSku)
	require.Equal(t, CartItemTypeBundle, decoded.Items[1].Type)
	require.Equal(t, "b1", decoded.Items[1].Bundle.ID)
	require.Nil(t, decoded.Items[1].Product)
	require.True(t, decoded.TotalPrice.Equal(cart.TotalPrice))
	require.True(t, decoded.FinalPrice.Equal(cart.FinalPrice))
}

func TestGuestCartItemJSONFieldNames(t *testing.T) {
	item := GuestCartItem{
		ID:         "line-1",
		Type:       CartItemTypeProduct,
		Product:    &Product{ID: "p1"},
		VariantSku: "sku-1",
		Quantity:   1,
		Price:      decimal.NewFromInt(10),
		Total:      decimal.NewFromInt(10),
		AddedAt:    time.Now(),
	}

	raw, err := json.Marshal(item)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{"id", "type", "product", "variant_sku", "quantity", "price", "total", "addedAt"} {
		require.Contains(t, fields, key)
	}
	require.NotContains(t, fields, "bundle", "empty union arms stay out of the snapshot")
}

func TestMatchesProductVariantIdentity(t *testing.T) {
	item := &GuestCartItem{
		Type:       CartItemTypeProduct,
		Product:    &Product{ID: "p1"},
		VariantSku: "p1-500g",
	}

	require.True(t, item.MatchesProduct("p1", "p1-500g"))
	require.False(t, item.MatchesProduct("p1", ""))
	require.False(t, item.MatchesProduct("p1", "p1-1kg"))
	require.False(t, item.MatchesProduct("p2", "p1-500g"))

	noVariant := &GuestCartItem{Type: CartItemTypeProduct, Product: &Product{ID: "p1"}}
	require.True(t, noVariant.MatchesProduct("p1", ""))
	require.False(t, noVariant.MatchesProduct("p1", "p1-500g"))
}

func TestMatchesAcrossTypes(t *testing.T) {
	bundleLine := &GuestCartItem{Type: CartItemTypeBundle, Bundle: &Bundle{ID: "x1"}}

	require.True(t, bundleLine.MatchesBundle("x1"))
	require.False(t, bundleLine.MatchesProduct("x1", ""))
}

func TestUnitPriceResolution(t *testing.T) {
	product := &Product{
		ID:              "p1",
		Price:           decimal.NewFromInt(100),
		DiscountedPrice: decimal.NewFromInt(80),
		Variants: []ProductVariant{
			{Sku: "p1-500g", Price: decimal.NewFromInt(180)},
			{Sku: "p1-1kg", Price: decimal.NewFromInt(320), DiscountedPrice: decimal.NewFromInt(290)},
		},
	}

	require.True(t, product.UnitPrice("").Equal(decimal.NewFromInt(80)))
	require.True(t, product.UnitPrice("p1-500g").Equal(decimal.NewFromInt(180)))
	require.True(t, product.UnitPrice("p1-1kg").Equal(decimal.NewFromInt(290)))
	// unknown variant falls back to the parent price
	require.True(t, product.UnitPrice("p1-5kg").Equal(decimal.NewFromInt(80)))

	bundle := &Bundle{ID: "b1", Price: decimal.NewFromInt(250)}
	require.True(t, bundle.UnitPrice().Equal(decimal.NewFromInt(250)))
	bundle.DiscountedPrice = decimal.NewFromInt(225)
	require.True(t, bundle.UnitPrice().Equal(decimal.NewFromInt(225)))
}

func TestDisplayName(t *testing.T) {
	product := &Product{
		ID:   "p1",
		Name: "Organic Rolled Oats",
		Variants: []ProductVariant{
			{Sku: "p1-500g", Name: "500g"},
		},
	}

	plain := &GuestCartItem{Type: CartItemTypeProduct, Product: product}
	require.Equal(t, "Organic Rolled Oats", plain.DisplayName())

	withVariant := &GuestCartItem{Type: CartItemTypeProduct, Product: product, VariantSku: "p1-500g"}
	require.Equal(t, "Organic Rolled Oats (500g)", withVariant.DisplayName())

	bundleLine := &GuestCartItem{Type: CartItemTypeBundle, Bundle: &Bundle{Name: "Breakfast Box"}}
	require.Equal(t, "Breakfast Box", bundleLine.DisplayName())
}
