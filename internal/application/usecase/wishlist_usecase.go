package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"quickcart/internal/application/notify"
	"quickcart/internal/domain/record"
	"quickcart/internal/domain/wishlist"
)

var (
	// ErrAlreadyInWishlist: Add found an existing entry during its pre-check.
	ErrAlreadyInWishlist = errors.New("wishlist_usecase: already in wishlist")
	// ErrNotInWishlist: Remove found no entry for the product.
	ErrNotInWishlist = errors.New("wishlist_usecase: not in wishlist")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// WishlistUsecase coordinates the remotely persisted wishlist. Every operation
// is a remote round trip; there is no local cache. Scope is per account: the
// caller passes the authenticated account id explicitly.
//
// Add is NOT race-free across overlapping calls: two concurrent adds for the
// same product can both pass the existence pre-check and insert duplicates.
// Remove deletes all matches to compensate.
type WishlistUsecase struct {
	store    record.Store
	catalog  CatalogReader
	notifier notify.Notifier
	clock    Clock
}

func NewWishlistUsecase(store record.Store, catalog CatalogReader, notifier notify.Notifier) *WishlistUsecase {
	return &WishlistUsecase{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		clock:    systemClock{},
	}
}

// NewWishlistUsecaseWithClock is useful for tests.
func NewWishlistUsecaseWithClock(store record.Store, catalog CatalogReader, notifier notify.Notifier, clock Clock) *WishlistUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &WishlistUsecase{store: store, catalog: catalog, notifier: notifier, clock: clock}
}

// IsInWishlist reports membership with a limit-1 existence query. Fail-closed:
// any error degrades to false for display purposes.
func (u *WishlistUsecase) IsInWishlist(ctx context.Context, accountID string, productID int) bool {
	if u == nil || u.store == nil || productID <= 0 {
		return false
	}
	recs, err := u.store.FetchRecords(ctx, wishlist.Table, record.Query{
		Fields: []string{record.FieldID},
		Where:  membershipWhere(accountID, productID),
		Paging: &record.Paging{Limit: 1},
	})
	if err != nil {
		log.Printf("[wishlist_usecase] membership check failed: %v", err)
		return false
	}
	return len(recs) > 0
}

// Add inserts a wishlist entry unless one already exists. The pre-check and
// the insert are separate round trips (known race window, see type comment).
func (u *WishlistUsecase) Add(ctx context.Context, accountID string, productID int) (wishlist.Entry, error) {
	if u == nil || u.store == nil {
		return wishlist.Entry{}, record.E(record.KindNotInitialized, "wishlist add", "record store is nil")
	}
	aid := strings.TrimSpace(accountID)
	if aid == "" || productID <= 0 {
		return wishlist.Entry{}, record.E(record.KindInvalidInput, "wishlist add", "account id and product id are required")
	}

	if u.IsInWishlist(ctx, aid, productID) {
		return wishlist.Entry{}, ErrAlreadyInWishlist
	}

	now := u.clock.Now()
	results, err := u.store.CreateRecords(ctx, wishlist.Table, []record.Record{{
		record.FieldName:        fmt.Sprintf("Wishlist Item %d", now.UnixMilli()),
		wishlist.FieldProductID: productID,
		wishlist.FieldAddedAt:   now.UTC().Format(time.RFC3339),
		wishlist.FieldOwner:     aid,
	}})
	if err == nil {
		err = record.AggregateWrites("wishlist add", results)
	}
	if err != nil {
		notify.Error(u.notifier, "Failed to add to wishlist")
		return wishlist.Entry{}, err
	}

	notify.Success(u.notifier, "Added to wishlist!")
	return wishlist.DecodeEntry(results[0].Record), nil
}

// Remove deletes every entry matching the product (defensive against
// duplicates from the add race) in one batch and returns the count removed.
func (u *WishlistUsecase) Remove(ctx context.Context, accountID string, productID int) (int, error) {
	if u == nil || u.store == nil {
		return 0, record.E(record.KindNotInitialized, "wishlist remove", "record store is nil")
	}
	aid := strings.TrimSpace(accountID)
	if aid == "" || productID <= 0 {
		return 0, record.E(record.KindInvalidInput, "wishlist remove", "account id and product id are required")
	}

	recs, err := u.store.FetchRecords(ctx, wishlist.Table, record.Query{
		Fields: []string{record.FieldID},
		Where:  membershipWhere(aid, productID),
	})
	if err != nil {
		notify.Error(u.notifier, "Failed to remove from wishlist")
		return 0, err
	}
	if len(recs) == 0 {
		return 0, ErrNotInWishlist
	}

	removed, err := u.deleteAll(ctx, "wishlist remove", recs)
	if err != nil {
		notify.Error(u.notifier, "Failed to remove from wishlist")
		return removed, err
	}
	notify.Success(u.notifier, "Removed from wishlist!")
	return removed, nil
}

// Toggle flips membership. Composition of IsInWishlist + Add/Remove; not
// atomic across overlapping calls.
func (u *WishlistUsecase) Toggle(ctx context.Context, accountID string, productID int) (added bool, err error) {
	if u.IsInWishlist(ctx, accountID, productID) {
		_, err = u.Remove(ctx, accountID, productID)
		return false, err
	}
	_, err = u.Add(ctx, accountID, productID)
	return err == nil, err
}

// Clear batch-deletes every entry of the account. An already-empty wishlist is
// success with zero deletions.
func (u *WishlistUsecase) Clear(ctx context.Context, accountID string) (int, error) {
	if u == nil || u.store == nil {
		return 0, record.E(record.KindNotInitialized, "wishlist clear", "record store is nil")
	}
	aid := strings.TrimSpace(accountID)
	if aid == "" {
		return 0, record.E(record.KindInvalidInput, "wishlist clear", "account id is required")
	}

	recs, err := u.store.FetchRecords(ctx, wishlist.Table, record.Query{
		Fields: []string{record.FieldID},
		Where: []record.Condition{
			{Field: wishlist.FieldOwner, Op: record.OpEqualTo, Values: []any{aid}},
		},
	})
	if err != nil {
		notify.Error(u.notifier, "Failed to clear wishlist")
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}

	removed, err := u.deleteAll(ctx, "wishlist clear", recs)
	if err != nil {
		notify.Error(u.notifier, "Failed to clear wishlist")
		return removed, err
	}
	notify.Success(u.notifier, "Wishlist cleared!")
	return removed, nil
}

// GetAll returns the account's entries, newest first. Degrades to empty.
func (u *WishlistUsecase) GetAll(ctx context.Context, accountID string) []wishlist.Entry {
	if u == nil || u.store == nil {
		return []wishlist.Entry{}
	}
	recs, err := u.store.FetchRecords(ctx, wishlist.Table, record.Query{
		Fields: []string{record.FieldID, wishlist.FieldProductID, wishlist.FieldAddedAt},
		Where: []record.Condition{
			{Field: wishlist.FieldOwner, Op: record.OpEqualTo, Values: []any{strings.TrimSpace(accountID)}},
		},
		OrderBy: []record.Order{{Field: wishlist.FieldAddedAt, Desc: true}},
	})
	if err != nil {
		log.Printf("[wishlist_usecase] list failed: %v", err)
		return []wishlist.Entry{}
	}
	out := make([]wishlist.Entry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, wishlist.DecodeEntry(rec))
	}
	return out
}

// GetWithProducts joins every entry with the catalog, concurrently. A failed
// lookup yields a nil product for that entry, never a failed batch; the result
// has exactly one item per entry.
func (u *WishlistUsecase) GetWithProducts(ctx context.Context, accountID string) []wishlist.ViewItem {
	entries := u.GetAll(ctx, accountID)

	items := make([]wishlist.ViewItem, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		items[i] = wishlist.ViewItem{Entry: e}
		if u.catalog == nil {
			continue
		}
		wg.Add(1)
		go func(i int, productID int) {
			defer wg.Done()
			p, err := u.catalog.GetByID(ctx, productID)
			if err != nil {
				log.Printf("[wishlist_usecase] join product %d failed: %v", productID, err)
				return
			}
			items[i].Product = &p
		}(i, e.ProductID)
	}
	wg.Wait()
	return items
}

func (u *WishlistUsecase) deleteAll(ctx context.Context, op string, recs []record.Record) (int, error) {
	ids := make([]int, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID())
	}
	results, err := u.store.DeleteRecords(ctx, wishlist.Table, ids)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, res := range results {
		if res.Err == nil {
			removed++
		}
	}
	return removed, record.AggregateWrites(op, results)
}

func membershipWhere(accountID string, productID int) []record.Condition {
	return []record.Condition{
		{Field: wishlist.FieldOwner, Op: record.OpEqualTo, Values: []any{strings.TrimSpace(accountID)}},
		{Field: wishlist.FieldProductID, Op: record.OpEqualTo, Values: []any{productID}},
	}
}
