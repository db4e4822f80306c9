package catalogsync

import (
	"context"
	"sync/atomic"

	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/infrastructure/shopapi"
	"go.uber.org/zap"
)

// CatalogFetcher retrieves the product list from the shop API
type CatalogFetcher interface {
	FetchCatalog(ctx context.Context) (*shopapi.CatalogResponse, error)
}

// FallbackProvider supplies the bundled static dataset
type FallbackProvider func() ([]catalog.Product, error)

// Loader refreshes the catalog model from the shop API. Each Refresh
// takes a monotonically increasing generation; a fetch that resolves
// after a newer Refresh has started is discarded instead of overwriting
// fresher state.
type Loader struct {
	fetcher    CatalogFetcher
	catalog    *catalog.Catalog
	fallback   FallbackProvider
	logger     *zap.Logger
	generation atomic.Uint64
}

// NewLoader creates a new catalog loader
func NewLoader(fetcher CatalogFetcher, cat *catalog.Catalog, fallback FallbackProvider, logger *zap.Logger) *Loader {
	return &Loader{
		fetcher:  fetcher,
		catalog:  cat,
		fallback: fallback,
		logger:   logger,
	}
}

// Refresh fetches the catalog and applies it to the model. A fetch
// failure falls back to the bundled dataset and is not fatal. Stale
// results (a newer Refresh started while this one was in flight) are
// dropped without touching the model.
func (l *Loader) Refresh(ctx context.Context) error {
	generation := l.generation.Add(1)

	items, err := l.fetch(ctx)
	if err != nil {
		return err
	}

	if l.generation.Load() != generation {
		l.logger.Debug("discarding stale catalog response",
			zap.Uint64("generation", generation),
			zap.Uint64("current", l.generation.Load()),
		)
		return nil
	}

	return l.catalog.SetItems(ctx, items)
}

// fetch retrieves the product list, falling back to the static dataset
// when the shop API is unreachable
func (l *Loader) fetch(ctx context.Context) ([]catalog.Product, error) {
	resp, err := l.fetcher.FetchCatalog(ctx)
	if err == nil {
		return resp.Items, nil
	}

	l.logger.Warn("catalog fetch failed, falling back to bundled dataset",
		zap.Error(err),
	)
	return l.fallback()
}
