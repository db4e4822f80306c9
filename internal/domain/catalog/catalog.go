package catalog

import (
	"context"
	"fmt"

	"github.com/shop/storefront/internal/domain/shared"
)

// Catalog holds the current product list for the session. It is created
// empty, replaced in full by SetItems whenever a fetch resolves, and
// read-only between replacements.
type Catalog struct {
	items     []Product
	publisher shared.EventPublisher
}

// NewCatalog creates an empty catalog that announces replacements
// through the given publisher
func NewCatalog(publisher shared.EventPublisher) *Catalog {
	return &Catalog{
		items:     make([]Product, 0),
		publisher: publisher,
	}
}

// SetItems replaces the full catalog. It rejects the whole replacement
// when two entries share an id, and publishes CatalogChanged on success.
func (c *Catalog) SetItems(ctx context.Context, items []Product) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("duplicate product id %q in catalog", item.ID))
		}
		seen[item.ID] = struct{}{}
	}

	c.items = append([]Product(nil), items...)

	return c.publisher.Publish(ctx, NewCatalogChangedEvent())
}

// Items returns a snapshot of the current catalog. Mutating the returned
// slice does not affect internal state.
func (c *Catalog) Items() []Product {
	return append([]Product(nil), c.items...)
}

// ByID returns the product with the given id, if present
func (c *Catalog) ByID(id string) (Product, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Product{}, false
}

// Len returns the number of products in the current snapshot
func (c *Catalog) Len() int {
	return len(c.items)
}
