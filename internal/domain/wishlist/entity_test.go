package wishlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEntry(t *testing.T) {
	e := DecodeEntry(map[string]any{
		"Id":           float64(3),
		"product_id_c": float64(12),
		"added_at_c":   "2024-06-01T10:30:00Z",
	})

	assert.Equal(t, 3, e.ID)
	assert.Equal(t, 12, e.ProductID)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), e.AddedAt)
}

func TestDecodeEntryLookupReference(t *testing.T) {
	// some transports expand the product reference into a lookup object
	e := DecodeEntry(map[string]any{
		"Id":           1,
		"product_id_c": map[string]any{"Id": float64(12), "Name": "Lamp"},
	})

	assert.Equal(t, 12, e.ProductID)
	assert.True(t, e.AddedAt.IsZero())
}
