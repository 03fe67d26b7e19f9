package usecase

import (
	"context"
	"log"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	cartdom "quickcart/internal/domain/cart"
	"quickcart/internal/domain/order"
	"quickcart/internal/domain/product"
	"quickcart/internal/domain/record"
)

// CatalogReader is the catalog dependency of the cart and wishlist read paths.
type CatalogReader interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
}

// StateSlot is the durable local storage for the cart line sequence.
type StateSlot interface {
	Load(v any) (found bool, err error)
	Save(v any) error
}

// CartLineView is one denormalized cart line for display: mutation state is
// locally authoritative, price/name/image/stock come from the catalog when it
// is reachable and fall back to the cached line values when not.
type CartLineView struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Stock     int             `json:"stock"`
}

// CartUsecase owns the device-scoped cart: an in-memory line sequence mirrored
// to one local slot on every mutation. Construct exactly one per process and
// inject it; there is no module-level instance.
type CartUsecase struct {
	mu      sync.Mutex
	catalog CatalogReader
	slot    StateSlot
	cart    cartdom.Cart
}

// NewCartUsecase loads the persisted state. An empty, unreadable or
// incompatible slot starts an empty cart; never fatal.
func NewCartUsecase(catalog CatalogReader, slot StateSlot) *CartUsecase {
	u := &CartUsecase{catalog: catalog, slot: slot}

	if slot != nil {
		var c cartdom.Cart
		found, err := slot.Load(&c)
		switch {
		case err != nil:
			log.Printf("[cart_usecase] discarding unreadable cart state: %v", err)
		case found:
			c.Normalize()
			u.cart = c
		}
	}
	return u
}

// AddItem merges quantity of p into the cart and returns the refreshed view.
// The cached price/name/image of an existing line are kept as-is.
func (u *CartUsecase) AddItem(ctx context.Context, p product.Product, quantity int) ([]CartLineView, error) {
	if u == nil {
		return nil, record.E(record.KindNotInitialized, "cart add", "cart usecase is nil")
	}
	if quantity <= 0 {
		return nil, record.E(record.KindInvalidInput, "cart add", "quantity must be positive")
	}
	if p.ID <= 0 {
		return nil, record.E(record.KindInvalidInput, "cart add", "product id is required")
	}
	if p.Name == "" {
		return nil, record.E(record.KindInvalidInput, "cart add", "product name is required")
	}
	if p.Price.IsNegative() {
		return nil, record.E(record.KindInvalidInput, "cart add", "product price must not be negative")
	}

	u.mu.Lock()
	err := u.cart.Add(cartdom.Line{
		ProductID: strconv.Itoa(p.ID),
		Quantity:  quantity,
		Price:     p.Price,
		Name:      p.Name,
		Image:     p.FirstImage(),
	})
	if err == nil {
		u.persistLocked()
	}
	u.mu.Unlock()

	if err != nil {
		return nil, record.Wrap(record.KindInvalidInput, "cart add", err)
	}
	return u.GetAll(ctx), nil
}

// UpdateQuantity sets the quantity for productID; <= 0 deletes the line,
// unknown ids are a no-op.
func (u *CartUsecase) UpdateQuantity(ctx context.Context, productID string, quantity int) []CartLineView {
	if u == nil {
		return []CartLineView{}
	}
	u.mu.Lock()
	u.cart.SetQuantity(productID, quantity)
	u.persistLocked()
	u.mu.Unlock()
	return u.GetAll(ctx)
}

// RemoveItem deletes the line for productID if present.
func (u *CartUsecase) RemoveItem(ctx context.Context, productID string) []CartLineView {
	return u.UpdateQuantity(ctx, productID, 0)
}

// GetAll reconciles every stored line against the catalog. A per-line catalog
// failure falls back to the cached values instead of failing the read, so the
// result always has one view per stored line.
func (u *CartUsecase) GetAll(ctx context.Context) []CartLineView {
	if u == nil {
		return []CartLineView{}
	}

	u.mu.Lock()
	lines := u.cart.Snapshot()
	u.mu.Unlock()

	out := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		out = append(out, u.refresh(ctx, l))
	}
	return out
}

// ItemCount is the sum of quantities. Never fails; 0 when unusable.
func (u *CartUsecase) ItemCount() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cart.Count()
}

// Total is the sum of price x quantity over the reconciled view: the refreshed
// price when the catalog is reachable, the cached price otherwise. 0 when the
// usecase is unusable, never a partial value.
func (u *CartUsecase) Total(ctx context.Context) decimal.Decimal {
	if u == nil {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, v := range u.GetAll(ctx) {
		total = total.Add(v.Price.Mul(decimal.NewFromInt(int64(v.Quantity))))
	}
	return total
}

// Clear empties the cart and persists the empty state.
func (u *CartUsecase) Clear() {
	if u == nil {
		return
	}
	u.mu.Lock()
	u.cart.Clear()
	u.persistLocked()
	u.mu.Unlock()
}

// Snapshot returns the current lines as order line items (checkout input).
func (u *CartUsecase) Snapshot() []order.LineItem {
	if u == nil {
		return []order.LineItem{}
	}
	u.mu.Lock()
	defer u.mu.Unlock()

	items := make([]order.LineItem, 0, len(u.cart.Lines))
	for _, l := range u.cart.Lines {
		items = append(items, order.LineItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			Name:      l.Name,
		})
	}
	return items
}

// refresh joins one line with the catalog; cached values win on any failure.
func (u *CartUsecase) refresh(ctx context.Context, l cartdom.Line) CartLineView {
	view := CartLineView{
		ProductID: l.ProductID,
		Quantity:  l.Quantity,
		Price:     l.Price,
		Name:      l.Name,
		Image:     l.Image,
	}

	if u.catalog == nil {
		return view
	}
	id, err := strconv.Atoi(l.ProductID)
	if err != nil || id <= 0 {
		return view
	}

	p, err := u.catalog.GetByID(ctx, id)
	if err != nil {
		log.Printf("[cart_usecase] refresh product %s failed, using cached line: %v", l.ProductID, err)
		return view
	}

	// The catalog price wins whenever the lookup succeeds, including a genuine
	// zero price; only a failed lookup keeps the cached value.
	view.Price = p.Price
	view.Stock = p.Stock
	if p.Name != "" {
		view.Name = p.Name
	}
	if img := p.FirstImage(); img != "" {
		view.Image = img
	}
	return view
}

// persistLocked mirrors the in-memory state to the slot. A storage failure is
// logged only: the in-memory state stays authoritative for this session.
func (u *CartUsecase) persistLocked() {
	if u.slot == nil {
		return
	}
	if err := u.slot.Save(&u.cart); err != nil {
		log.Printf("[cart_usecase] persist failed: %v", err)
	}
}
