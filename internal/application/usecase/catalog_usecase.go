package usecase

import (
	"context"
	"log"

	"quickcart/internal/domain/product"
	"quickcart/internal/domain/record"
)

// featured thresholds mirror the storefront's home page contract.
const (
	featuredMinRating   = 4.7
	featuredLimit       = 6
	relatedLimitDefault = 4
)

// ImageResolver maps a stored image reference to a display URL. Optional;
// unresolved references pass through unchanged.
type ImageResolver interface {
	Resolve(ref string) string
}

// CatalogUsecase is the read-only projection of the product table. List reads
// never fail: a backend error degrades to an empty result after logging, so
// the UI keeps rendering (silent-empty policy). Only GetByID raises.
type CatalogUsecase struct {
	store  record.Store
	images ImageResolver
}

func NewCatalogUsecase(store record.Store) *CatalogUsecase {
	return &CatalogUsecase{store: store}
}

// NewCatalogUsecaseWithImages also wires an image URL resolver.
func NewCatalogUsecaseWithImages(store record.Store, images ImageResolver) *CatalogUsecase {
	return &CatalogUsecase{store: store, images: images}
}

// GetByID returns one normalized product.
// Kinds: KindNotFound when the backend has no row, KindNotInitialized /
// KindAuthRequired / KindRemoteFailure when the call itself fails.
func (u *CatalogUsecase) GetByID(ctx context.Context, id int) (product.Product, error) {
	if u == nil || u.store == nil {
		return product.Product{}, record.E(record.KindNotInitialized, "catalog get", "record store is nil")
	}
	if id <= 0 {
		return product.Product{}, record.E(record.KindInvalidInput, "catalog get", "product id must be positive")
	}

	rec, err := u.store.GetRecordByID(ctx, product.Table, id, product.Fields())
	if err != nil {
		return product.Product{}, err
	}
	p, err := product.Decode(rec)
	if err != nil {
		return product.Product{}, record.Wrap(record.KindRemoteFailure, "catalog get", err)
	}
	return u.resolveImages(p), nil
}

// GetAll returns the whole catalog, newest first.
func (u *CatalogUsecase) GetAll(ctx context.Context) []product.Product {
	return u.list(ctx, "catalog list", record.Query{
		Fields:  product.Fields(),
		OrderBy: []record.Order{{Field: record.FieldID, Desc: true}},
	})
}

// GetByCategory returns products of one category, best rated first.
func (u *CatalogUsecase) GetByCategory(ctx context.Context, category string) []product.Product {
	return u.list(ctx, "catalog by category", record.Query{
		Fields: product.Fields(),
		Where: []record.Condition{
			{Field: product.FieldCategory, Op: record.OpEqualTo, Values: []any{category}},
		},
		OrderBy: []record.Order{{Field: product.FieldRating, Desc: true}},
	})
}

// Search matches query case-insensitively against name, category or
// description (logical OR).
func (u *CatalogUsecase) Search(ctx context.Context, query string) []product.Product {
	return u.list(ctx, "catalog search", record.Query{
		Fields: product.Fields(),
		WhereGroups: []record.ConditionGroup{{
			Operator: "OR",
			Conditions: []record.Condition{
				{Field: product.FieldName, Op: record.OpContains, Values: []any{query}},
				{Field: product.FieldCategory, Op: record.OpContains, Values: []any{query}},
				{Field: product.FieldDescription, Op: record.OpContains, Values: []any{query}},
			},
		}},
	})
}

// GetFeatured returns the top-reviewed products above the rating threshold.
func (u *CatalogUsecase) GetFeatured(ctx context.Context) []product.Product {
	return u.list(ctx, "catalog featured", record.Query{
		Fields: product.Fields(),
		Where: []record.Condition{
			{Field: product.FieldRating, Op: record.OpGreaterThanOrEqualTo, Values: []any{featuredMinRating}},
		},
		OrderBy: []record.Order{{Field: product.FieldReviews, Desc: true}},
		Paging:  &record.Paging{Limit: featuredLimit},
	})
}

// GetRelated returns up to limit products sharing the category, excluding the
// product itself. limit <= 0 uses the default.
func (u *CatalogUsecase) GetRelated(ctx context.Context, productID int, category string, limit int) []product.Product {
	if limit <= 0 {
		limit = relatedLimitDefault
	}
	return u.list(ctx, "catalog related", record.Query{
		Fields: product.Fields(),
		Where: []record.Condition{
			{Field: product.FieldCategory, Op: record.OpEqualTo, Values: []any{category}},
			{Field: record.FieldID, Op: record.OpNotEqualTo, Values: []any{productID}},
		},
		OrderBy: []record.Order{{Field: product.FieldRating, Desc: true}},
		Paging:  &record.Paging{Limit: limit},
	})
}

// GetCategories returns the distinct non-empty category names.
func (u *CatalogUsecase) GetCategories(ctx context.Context) []string {
	if u == nil || u.store == nil {
		return []string{}
	}
	recs, err := u.store.FetchRecords(ctx, product.Table, record.Query{
		Fields:  []string{product.FieldCategory},
		GroupBy: []string{product.FieldCategory},
	})
	if err != nil {
		log.Printf("[catalog_usecase] categories failed: %v", err)
		return []string{}
	}
	out := []string{}
	for _, rec := range recs {
		if c := rec.String(product.FieldCategory); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (u *CatalogUsecase) list(ctx context.Context, op string, q record.Query) []product.Product {
	if u == nil || u.store == nil {
		return []product.Product{}
	}
	recs, err := u.store.FetchRecords(ctx, product.Table, q)
	if err != nil {
		log.Printf("[catalog_usecase] %s failed: %v", op, err)
		return []product.Product{}
	}

	out := make([]product.Product, 0, len(recs))
	for _, rec := range recs {
		p, err := product.Decode(rec)
		if err != nil {
			log.Printf("[catalog_usecase] %s: skipping malformed row: %v", op, err)
			continue
		}
		out = append(out, u.resolveImages(p))
	}
	return out
}

func (u *CatalogUsecase) resolveImages(p product.Product) product.Product {
	if u == nil || u.images == nil || len(p.Images) == 0 {
		return p
	}
	resolved := make([]string, len(p.Images))
	for i, ref := range p.Images {
		resolved[i] = u.images.Resolve(ref)
	}
	p.Images = resolved
	return p
}
