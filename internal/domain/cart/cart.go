package cart

import (
	"context"

	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cart holds the products selected for purchase. Ids are unique within
// the cart and insertion order is preserved for display.
type Cart struct {
	items     []catalog.Product
	publisher shared.EventPublisher
}

// NewCart creates an empty cart that announces mutations through the
// given publisher
func NewCart(publisher shared.EventPublisher) *Cart {
	return &Cart{
		items:     make([]catalog.Product, 0),
		publisher: publisher,
	}
}

// Add appends a product to the cart and publishes CartChanged.
// Adding a product that is already present is a no-op: no mutation,
// no event.
func (c *Cart) Add(ctx context.Context, product catalog.Product) error {
	if c.Has(product.ID) {
		return nil
	}
	c.items = append(c.items, product)

	return c.publisher.Publish(ctx, NewCartChangedEvent())
}

// Remove deletes the product with the given id and publishes CartChanged.
// Removing an absent id is a no-op: no mutation, no event.
func (c *Cart) Remove(ctx context.Context, id string) error {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.publisher.Publish(ctx, NewCartChangedEvent())
		}
	}
	return nil
}

// Has reports whether a product with the given id is in the cart
func (c *Cart) Has(id string) bool {
	for _, item := range c.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Count returns the number of products in the cart
func (c *Cart) Count() int {
	return len(c.items)
}

// Total returns the sum of the item prices, counting a missing price
// as zero
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.PriceOrZero())
	}
	return total
}

// Items returns a snapshot of the cart contents in insertion order
func (c *Cart) Items() []catalog.Product {
	return append([]catalog.Product(nil), c.items...)
}

// ItemIDs returns the ids of the cart contents in insertion order
func (c *Cart) ItemIDs() []string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.ID
	}
	return ids
}

// Clear empties the cart. CartChanged is published even when the cart
// is already empty, so dependent views can resynchronize unconditionally.
func (c *Cart) Clear(ctx context.Context) error {
	c.items = c.items[:0]

	return c.publisher.Publish(ctx, NewCartChangedEvent())
}
