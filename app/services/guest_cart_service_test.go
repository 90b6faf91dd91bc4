package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/greenpantry/storefront/app/models"
	"github.com/greenpantry/storefront/app/storage"
	"github.com/greenpantry/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T) (*GuestCartService, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewGuestCartService(store, "", calc.DefaultShippingPolicy()), store
}

func testProduct(id string, price float64) *models.Product {
	return &models.Product{
		ID:    id,
		Name:  "Product " + id,
		Slug:  "product-" + id,
		Price: decimal.NewFromFloat(price),
	}
}

func testBundle(id string, price float64) *models.Bundle {
	return &models.Bundle{
		ID:    id,
		Name:  "Bundle " + id,
		Slug:  "bundle-" + id,
		Price: decimal.NewFromFloat(price),
	}
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func requireConsistentTotals(t *testing.T, cart *models.GuestCart) {
	t.Helper()

	sum := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		require.Positive(t, item.Quantity)
		require.True(t, item.Total.Equal(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			"line total %s, price %s x qty %d", item.Total, item.Price, item.Quantity)
		sum = sum.Add(item.Total)
	}
	require.True(t, cart.TotalPrice.Equal(sum), "cart total %s, line sum %s", cart.TotalPrice, sum)
	require.True(t, cart.FinalPrice.Equal(cart.TotalPrice.Add(cart.ShippingCharge)))
}

func TestLoadWithoutStoredCart(t *testing.T) {
	svc, _ := newTestCartService(t)

	cart := svc.Load(context.Background())

	require.Empty(t, cart.Items)
	requireAmount(t, "0", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireAmount(t, "0", cart.FinalPrice)
}

func TestLoadCorruptDataYieldsEmptyCart(t *testing.T) {
	svc, store := newTestCartService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, GuestCartStorageKey, []byte("{not json")))

	cart := svc.Load(ctx)
	require.Empty(t, cart.Items)
	requireAmount(t, "0", cart.FinalPrice)
}

func TestAddProductBelowFreeShippingThreshold(t *testing.T) {
	svc, _ := newTestCartService(t)

	cart := svc.AddProduct(context.Background(), testProduct("p1", 300), 1, "")

	require.Len(t, cart.Items, 1)
	require.Equal(t, models.CartItemTypeProduct, cart.Items[0].Type)
	require.NotEmpty(t, cart.Items[0].ID)
	require.False(t, cart.Items[0].AddedAt.IsZero())
	requireAmount(t, "300", cart.TotalPrice)
	requireAmount(t, "50", cart.ShippingCharge)
	requireAmount(t, "350", cart.FinalPrice)
	requireConsistentTotals(t, cart)
}

func TestAddSameProductMergesLine(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	svc.AddProduct(ctx, testProduct("p1", 300), 1, "")
	cart := svc.AddProduct(ctx, testProduct("p1", 300), 1, "")

	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	requireAmount(t, "600", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireAmount(t, "600", cart.FinalPrice)
	requireConsistentTotals(t, cart)
}

func TestAddDifferentVariantCreatesDistinctLine(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	product := testProduct("p1", 100)
	product.Variants = []models.ProductVariant{
		{ID: "v1", ProductID: "p1", Sku: "p1-500g", Name: "500g", Price: decimal.NewFromInt(180)},
	}

	svc.AddProduct(ctx, product, 1, "")
	cart := svc.AddProduct(ctx, product, 1, "p1-500g")

	require.Len(t, cart.Items, 2)
	requireAmount(t, "100", cart.Items[0].Price)
	requireAmount(t, "180", cart.Items[1].Price)
	requireConsistentTotals(t, cart)

	// the same variant merges back into its own line
	cart = svc.AddProduct(ctx, product, 2, "p1-500g")
	require.Len(t, cart.Items, 2)
	require.Equal(t, 3, cart.Items[1].Quantity)
	requireConsistentTotals(t, cart)
}

func TestVariantDiscountedPriceWins(t *testing.T) {
	svc, _ := newTestCartService(t)

	product := testProduct("p1", 100)
	product.DiscountedPrice = decimal.NewFromInt(90)
	product.Variants = []models.ProductVariant{
		{ID: "v1", ProductID: "p1", Sku: "p1-1kg", Name: "1kg", Price: decimal.NewFromInt(320), DiscountedPrice: decimal.NewFromInt(280)},
	}

	cart := svc.AddProduct(context.Background(), product, 1, "p1-1kg")
	requireAmount(t, "280", cart.Items[0].Price)

	cart = svc.AddProduct(context.Background(), product, 1, "")
	requireAmount(t, "90", cart.Items[1].Price)
}

func TestProductAndBundleNeverMerge(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	// same underlying ID on purpose
	svc.AddProduct(ctx, testProduct("x1", 100), 1, "")
	cart := svc.AddBundle(ctx, testBundle("x1", 250), 1)

	require.Len(t, cart.Items, 2)
	require.Equal(t, models.CartItemTypeProduct, cart.Items[0].Type)
	require.Equal(t, models.CartItemTypeBundle, cart.Items[1].Type)
}

func TestAddBundleMergesByBundleID(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	svc.AddBundle(ctx, testBundle("b1", 250), 1)
	cart := svc.AddBundle(ctx, testBundle("b1", 250), 2)

	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)
	requireConsistentTotals(t, cart)
}

func TestUpdateQuantitySetsLineTotal(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	cart := svc.AddProduct(ctx, testProduct("p1", 120), 1, "")
	itemID := cart.Items[0].ID

	cart = svc.UpdateQuantity(ctx, itemID, 5)

	require.Equal(t, 5, cart.Items[0].Quantity)
	requireAmount(t, "600", cart.Items[0].Total)
	requireAmount(t, "600", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireConsistentTotals(t, cart)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	svc.AddProduct(ctx, testProduct("p1", 300), 2, "")
	cart := svc.AddBundle(ctx, testBundle("b1", 250), 1)
	require.Len(t, cart.Items, 2)
	productLineID := cart.Items[0].ID

	cart = svc.UpdateQuantity(ctx, productLineID, 0)

	require.Len(t, cart.Items, 1)
	require.Equal(t, models.CartItemTypeBundle, cart.Items[0].Type)
	requireAmount(t, "250", cart.TotalPrice)
	requireAmount(t, "50", cart.ShippingCharge)
	requireAmount(t, "300", cart.FinalPrice)
}

func TestUpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	before := svc.AddProduct(ctx, testProduct("p1", 300), 1, "")
	after := svc.UpdateQuantity(ctx, "no-such-line", 5)

	beforeJSON, err := json.Marshal(before)
	require.NoError(t, err)
	afterJSON, err := json.Marshal(after)
	require.NoError(t, err)
	require.JSONEq(t, string(beforeJSON), string(afterJSON))
}

func TestRemoveEquivalentToZeroQuantity(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	cart := svc.AddProduct(ctx, testProduct("p1", 300), 1, "")
	cart = svc.Remove(ctx, cart.Items[0].ID)

	require.Empty(t, cart.Items)
	requireAmount(t, "0", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireAmount(t, "0", cart.FinalPrice)
}

func TestPersistenceRoundTrip(t *testing.T) {
	svc, store := newTestCartService(t)
	ctx := context.Background()

	returned := svc.AddProduct(ctx, testProduct("p1", 300), 2, "")

	reloaded := NewGuestCartService(store, "", calc.DefaultShippingPolicy()).Load(ctx)

	returnedJSON, err := json.Marshal(returned)
	require.NoError(t, err)
	reloadedJSON, err := json.Marshal(reloaded)
	require.NoError(t, err)
	require.JSONEq(t, string(returnedJSON), string(reloadedJSON))
}

func TestClearDeletesPersistedRecord(t *testing.T) {
	svc, store := newTestCartService(t)
	ctx := context.Background()

	svc.AddProduct(ctx, testProduct("p1", 300), 1, "")
	svc.Clear(ctx)

	_, ok, err := store.Get(ctx, GuestCartStorageKey)
	require.NoError(t, err)
	require.False(t, ok, "cart record should be gone, not emptied")

	cart := svc.Load(ctx)
	require.Empty(t, cart.Items)
	requireAmount(t, "0", cart.FinalPrice)
}

func TestItemCountSumsQuantities(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	require.Equal(t, 0, svc.ItemCount(ctx))

	svc.AddProduct(ctx, testProduct("p1", 100), 2, "")
	svc.AddBundle(ctx, testBundle("b1", 250), 3)

	require.Equal(t, 5, svc.ItemCount(ctx))
}

func TestInvalidQuantityAddIsIgnored(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	cart := svc.AddProduct(ctx, testProduct("p1", 100), 0, "")
	require.Empty(t, cart.Items)

	cart = svc.AddProduct(ctx, testProduct("p1", 100), -3, "")
	require.Empty(t, cart.Items)
}

func TestEndToEndScenario(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	cart := svc.AddProduct(ctx, testProduct("p1", 300), 1, "")
	require.Len(t, cart.Items, 1)
	requireAmount(t, "300", cart.TotalPrice)
	requireAmount(t, "50", cart.ShippingCharge)
	requireAmount(t, "350", cart.FinalPrice)

	cart = svc.AddProduct(ctx, testProduct("p1", 300), 1, "")
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	requireAmount(t, "600", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireAmount(t, "600", cart.FinalPrice)
	productLineID := cart.Items[0].ID

	cart = svc.AddBundle(ctx, testBundle("b1", 250), 1)
	require.Len(t, cart.Items, 2)
	requireAmount(t, "850", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireAmount(t, "850", cart.FinalPrice)

	cart = svc.UpdateQuantity(ctx, productLineID, 0)
	require.Len(t, cart.Items, 1)
	requireAmount(t, "250", cart.TotalPrice)
	requireAmount(t, "50", cart.ShippingCharge)
	requireAmount(t, "300", cart.FinalPrice)

	svc.Clear(ctx)
	cart = svc.Load(ctx)
	require.Empty(t, cart.Items)
	requireAmount(t, "0", cart.TotalPrice)
	requireAmount(t, "0", cart.ShippingCharge)
	requireAmount(t, "0", cart.FinalPrice)
}

type failingStore struct {
	inner   storage.KVStore
	failGet bool
	failSet bool
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errors.New("storage unavailable")
	}
	return f.inner.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	return f.inner.Set(ctx, key, value)
}

func (f *failingStore) Delete(ctx context.Context, key string) error {
	return f.inner.Delete(ctx, key)
}

func TestReadFailureYieldsEmptyCart(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore(), failGet: true}
	svc := NewGuestCartService(store, "", calc.DefaultShippingPolicy())

	cart := svc.Load(context.Background())
	require.Empty(t, cart.Items)
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	inner := storage.NewMemoryStore()
	store := &failingStore{inner: inner, failSet: true}
	svc := NewGuestCartService(store, "", calc.DefaultShippingPolicy())
	ctx := context.Background()

	cart := svc.AddProduct(ctx, testProduct("p1", 300), 1, "")

	// the in-memory result is fully applied even though persistence failed
	require.Len(t, cart.Items, 1)
	requireAmount(t, "350", cart.FinalPrice)

	// the prior persisted state (nothing) is untouched
	_, ok, err := inner.Get(ctx, GuestCartStorageKey)
	require.NoError(t, err)
	require.False(t, ok)
}
