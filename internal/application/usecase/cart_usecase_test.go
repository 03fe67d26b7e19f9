package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcart/internal/adapters/out/localstate"
	"quickcart/internal/domain/product"
	"quickcart/internal/domain/record"
)

func testProduct(id int, name string, price float64, stock int) product.Product {
	return product.Product{
		ID:     id,
		Name:   name,
		Price:  decimal.NewFromFloat(price),
		Stock:  stock,
		Images: []string{"img-" + strconv.Itoa(id) + ".jpg"},
	}
}

// catalogStub serves products from a fixed map; Err fails every lookup.
type catalogStub struct {
	products map[int]product.Product
	Err      error
}

func (c *catalogStub) GetByID(_ context.Context, id int) (product.Product, error) {
	if c.Err != nil {
		return product.Product{}, c.Err
	}
	p, ok := c.products[id]
	if !ok {
		return product.Product{}, record.E(record.KindNotFound, "catalog get", "no record")
	}
	return p, nil
}

func newCartFixture(t *testing.T) (*CartUsecase, *catalogStub) {
	t.Helper()
	catalog := &catalogStub{products: map[int]product.Product{
		1: testProduct(1, "Walnut Desk", 9.99, 5),
		2: testProduct(2, "Brass Lamp", 25.00, 2),
	}}
	slot := localstate.NewSlot(filepath.Join(t.TempDir(), "cart.json"))
	return NewCartUsecase(catalog, slot), catalog
}

func TestCartAddMergesQuantity(t *testing.T) {
	u, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, catalog.products[1], 1)
	require.NoError(t, err)
	views, err := u.AddItem(ctx, catalog.products[1], 1)
	require.NoError(t, err)

	require.Len(t, views, 1)
	assert.Equal(t, 2, views[0].Quantity)
	assert.Equal(t, 2, u.ItemCount())
	assert.Equal(t, "19.98", u.Total(ctx).StringFixed(2))
}

func TestCartAddValidation(t *testing.T) {
	u, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, testProduct(1, "Desk", 1, 1), 0)
	assert.True(t, record.IsKind(err, record.KindInvalidInput))

	_, err = u.AddItem(ctx, testProduct(0, "Desk", 1, 1), 1)
	assert.True(t, record.IsKind(err, record.KindInvalidInput))

	_, err = u.AddItem(ctx, product.Product{ID: 3, Name: ""}, 1)
	assert.True(t, record.IsKind(err, record.KindInvalidInput))

	negative := testProduct(3, "Bad", 1, 1)
	negative.Price = decimal.NewFromInt(-1)
	_, err = u.AddItem(ctx, negative, 1)
	assert.True(t, record.IsKind(err, record.KindInvalidInput))

	assert.Equal(t, 0, u.ItemCount())
}

func TestCartUpdateQuantityZeroRemoves(t *testing.T) {
	u, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, catalog.products[1], 2)
	require.NoError(t, err)

	views := u.UpdateQuantity(ctx, "1", 0)
	assert.Empty(t, views)
	assert.Equal(t, 0, u.ItemCount())

	// unknown id is a no-op
	assert.Empty(t, u.UpdateQuantity(ctx, "999", 4))
}

func TestCartGetAllRefreshesFromCatalog(t *testing.T) {
	u, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, catalog.products[2], 1)
	require.NoError(t, err)

	// price changes upstream after the add
	updated := catalog.products[2]
	updated.Price = decimal.NewFromFloat(30.00)
	catalog.products[2] = updated

	views := u.GetAll(ctx)
	require.Len(t, views, 1)
	assert.Equal(t, "30.00", views[0].Price.StringFixed(2))
	assert.Equal(t, 2, views[0].Stock)
	assert.Equal(t, "30.00", u.Total(ctx).StringFixed(2))
}

func TestCartGetAllTakesZeroCatalogPriceAtFaceValue(t *testing.T) {
	u, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, catalog.products[2], 1)
	require.NoError(t, err)

	// a free promo price is a real price, not a missing one
	updated := catalog.products[2]
	updated.Price = decimal.Zero
	catalog.products[2] = updated

	views := u.GetAll(ctx)
	require.Len(t, views, 1)
	assert.True(t, views[0].Price.IsZero())
	assert.True(t, u.Total(ctx).IsZero())
}

func TestCartGetAllFallsBackWhenCatalogUnreachable(t *testing.T) {
	u, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, catalog.products[2], 2)
	require.NoError(t, err)

	catalog.Err = errors.New("backend down")

	views := u.GetAll(ctx)
	require.Len(t, views, 1)
	assert.Equal(t, "Brass Lamp", views[0].Name)
	assert.Equal(t, "25.00", views[0].Price.StringFixed(2)) // cached at add time
	assert.Equal(t, "50.00", u.Total(ctx).StringFixed(2))
}

func TestCartPersistsAcrossConstruction(t *testing.T) {
	catalog := &catalogStub{products: map[int]product.Product{1: testProduct(1, "Desk", 9.99, 5)}}
	slot := localstate.NewSlot(filepath.Join(t.TempDir(), "cart.json"))
	ctx := context.Background()

	first := NewCartUsecase(catalog, slot)
	_, err := first.AddItem(ctx, catalog.products[1], 3)
	require.NoError(t, err)

	second := NewCartUsecase(catalog, slot)
	assert.Equal(t, 3, second.ItemCount())
}

func TestCartStartsEmptyOnCorruptState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cart.json")
	require.NoError(t, localstate.NewSlot(path).Save("not a cart"))

	u := NewCartUsecase(nil, localstate.NewSlot(path))
	assert.Equal(t, 0, u.ItemCount())
}

func TestCartClearAndSnapshot(t *testing.T) {
	u, catalog := newCartFixture(t)
	ctx := context.Background()

	_, err := u.AddItem(ctx, catalog.products[1], 2)
	require.NoError(t, err)
	_, err = u.AddItem(ctx, catalog.products[2], 1)
	require.NoError(t, err)

	items := u.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	u.Clear()
	u.Clear() // idempotent
	assert.Empty(t, u.Snapshot())
	assert.True(t, u.Total(ctx).IsZero())
}

func TestCartNilReceiverIsInert(t *testing.T) {
	var u *CartUsecase
	assert.Equal(t, 0, u.ItemCount())
	assert.True(t, u.Total(context.Background()).IsZero())
	assert.Empty(t, u.GetAll(context.Background()))
	assert.Empty(t, u.Snapshot())
	u.Clear()
}
