package wishlist

import (
	"time"

	"quickcart/internal/domain/product"
	"quickcart/internal/domain/record"
)

// Table and application fields of the wishlist. Entries are owned by the
// remote store; identity is assigned server-side. Scope is per account via
// FieldOwner.
const Table = "wishlist_items_c"

const (
	FieldProductID = "product_id_c"
	FieldAddedAt   = "added_at_c"
	FieldOwner     = "owner_c"
)

// Entry is one persisted wishlist row.
type Entry struct {
	ID        int       `json:"Id"`
	ProductID int       `json:"productId"`
	AddedAt   time.Time `json:"addedAt"`
}

// ViewItem joins an entry with its catalog product. Product is nil when the
// catalog lookup failed; the entry is still returned (partial degradation).
type ViewItem struct {
	Entry   Entry            `json:"entry"`
	Product *product.Product `json:"product"`
}

// DecodeEntry reads one raw row. The product reference may arrive either as a
// plain integer or as a lookup object carrying its own Id.
func DecodeEntry(rec record.Record) Entry {
	productID := rec.Int(FieldProductID)
	if lookup, ok := rec[FieldProductID].(map[string]any); ok {
		productID = record.Record(lookup).ID()
	}
	return Entry{
		ID:        rec.ID(),
		ProductID: productID,
		AddedAt:   rec.Time(FieldAddedAt),
	}
}
