package catalog

import (
	"github.com/shop/storefront/internal/domain/shared"
)

// Event type constants
const (
	EventTypeCatalogChanged = "CatalogChanged"
)

// CatalogChangedEvent is published when the product list is replaced.
// It carries no payload: subscribers re-pull the snapshot via Items.
type CatalogChangedEvent struct {
	shared.BaseDomainEvent
}

// NewCatalogChangedEvent creates a new CatalogChangedEvent
func NewCatalogChangedEvent() *CatalogChangedEvent {
	return &CatalogChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogChanged),
	}
}
