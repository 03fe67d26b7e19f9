package product

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"quickcart/internal/domain/record"
)

// Table and application fields of the product catalog. The catalog is owned by
// the backend and read-only from here; it can change between reads.
const Table = "products_c"

const (
	FieldName          = "name_c"
	FieldCategory      = "category_c"
	FieldDescription   = "description_c"
	FieldPrice         = "price_c"
	FieldOriginalPrice = "original_price_c"
	FieldRating        = "rating_c"
	FieldReviews       = "reviews_c"
	FieldStock         = "stock_c"
	FieldImages        = "images_c"
	FieldBrand         = "brand_c"
	FieldInStock       = "in_stock_c"
	FieldMaterial      = "material_c"
	FieldColors        = "colors_c"
	FieldWarranty      = "warranty_c"
	FieldWeight        = "weight_c"
	FieldDimensions    = "dimensions_c"
	FieldOrigin        = "origin_c"
)

var ErrInvalidRecord = errors.New("product: invalid record")

// Product is the normalized catalog view model. Every field is populated by
// Decode; downstream code never branches on "missing field".
type Product struct {
	ID            int             `json:"Id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Stock         int             `json:"stock"`
	Images        []string        `json:"images"`
	Brand         string          `json:"brand"`
	InStock       bool            `json:"inStock"`
	Material      string          `json:"material"`
	Colors        string          `json:"colors"`
	Warranty      string          `json:"warranty"`
	Weight        string          `json:"weight"`
	Dimensions    string          `json:"dimensions"`
	Origin        string          `json:"origin"`
}

// Fields is the full read projection for catalog queries.
func Fields() []string {
	return []string{
		record.FieldID,
		FieldName, FieldCategory, FieldDescription,
		FieldPrice, FieldOriginalPrice,
		FieldRating, FieldReviews, FieldStock,
		FieldImages, FieldBrand, FieldInStock,
		FieldMaterial, FieldColors, FieldWarranty,
		FieldWeight, FieldDimensions, FieldOrigin,
	}
}

// Decode normalizes one raw row into a fully-populated Product. Absent numeric
// fields become 0, absent strings "", absent lists empty, absent booleans
// false. Fails only when the row carries no usable identity.
func Decode(rec record.Record) (Product, error) {
	id := rec.ID()
	if id <= 0 {
		return Product{}, ErrInvalidRecord
	}
	return Product{
		ID:            id,
		Name:          rec.String(FieldName),
		Category:      rec.String(FieldCategory),
		Description:   rec.String(FieldDescription),
		Price:         rec.Decimal(FieldPrice),
		OriginalPrice: rec.Decimal(FieldOriginalPrice),
		Rating:        rec.Float(FieldRating),
		Reviews:       rec.Int(FieldReviews),
		Stock:         rec.Int(FieldStock),
		Images:        splitImages(rec.String(FieldImages)),
		Brand:         rec.String(FieldBrand),
		InStock:       rec.Bool(FieldInStock),
		Material:      rec.String(FieldMaterial),
		Colors:        rec.String(FieldColors),
		Warranty:      rec.String(FieldWarranty),
		Weight:        rec.String(FieldWeight),
		Dimensions:    rec.String(FieldDimensions),
		Origin:        rec.String(FieldOrigin),
	}, nil
}

// FirstImage returns the leading image reference, "" when none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Available reports whether the product can currently be sold.
func (p Product) Available() bool {
	return p.Stock > 0
}

// splitImages parses the comma-joined image list stored by the backend.
func splitImages(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
