package calc

import "github.com/shopspring/decimal"

const (
	FreeShippingThreshold = 500
	FlatShippingCharge    = 50
)

// ShippingPolicy decides the shipping charge for a cart total. The surrounding
// system may inject per-region values; the defaults apply otherwise.
type ShippingPolicy struct {
	FreeThreshold decimal.Decimal
	FlatCharge    decimal.Decimal
}

func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{
		FreeThreshold: decimal.NewFromInt(FreeShippingThreshold),
		FlatCharge:    decimal.NewFromInt(FlatShippingCharge),
	}
}

func (p ShippingPolicy) ChargeFor(totalPrice decimal.Decimal) decimal.Decimal {
	if totalPrice.GreaterThanOrEqual(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.FlatCharge
}
