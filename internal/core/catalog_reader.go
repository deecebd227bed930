package core

import (
	"context"

	"catering/internal/catalog"
)

// CatalogReader is the read-only view of the catalog that order flows need.
// catalog.Service satisfies it.
type CatalogReader interface {
	Catalog(ctx context.Context) ([]catalog.Menu, error)
	DishNames(ctx context.Context, ids []string) (map[string]string, error)
}

var _ CatalogReader = (*catalog.Service)(nil)
