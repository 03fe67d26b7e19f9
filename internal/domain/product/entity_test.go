package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	p, err := Decode(map[string]any{
		"Id":         float64(12),
		"name_c":     "Walnut Desk",
		"category_c": "Furniture",
		"price_c":    449.0,
		"rating_c":   4.8,
		"reviews_c":  float64(120),
		"stock_c":    float64(3),
		"images_c":   "desk-front.jpg, desk-side.jpg ,",
		"in_stock_c": true,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, p.ID)
	assert.Equal(t, "Walnut Desk", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(449)))
	assert.Equal(t, []string{"desk-front.jpg", "desk-side.jpg"}, p.Images)
	assert.Equal(t, "desk-front.jpg", p.FirstImage())
	assert.True(t, p.Available())
}

func TestDecodeDefaultsMissingFields(t *testing.T) {
	p, err := Decode(map[string]any{"Id": 5})
	require.NoError(t, err)

	assert.Equal(t, "", p.Name)
	assert.True(t, p.Price.IsZero())
	assert.Empty(t, p.Images)
	assert.Equal(t, "", p.FirstImage())
	assert.False(t, p.InStock)
	assert.False(t, p.Available())
}

func TestDecodeRejectsMissingIdentity(t *testing.T) {
	_, err := Decode(map[string]any{"name_c": "Ghost"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Decode(map[string]any{"Id": 0})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}
