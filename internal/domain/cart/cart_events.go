package cart

import (
	"github.com/shop/storefront/internal/domain/shared"
)

// Event type constants
const (
	EventTypeCartChanged = "CartChanged"
)

// CartChangedEvent is published after every effective cart mutation.
// It carries no payload: subscribers re-pull via Items, Count and Total.
type CartChangedEvent struct {
	shared.BaseDomainEvent
}

// NewCartChangedEvent creates a new CartChangedEvent
func NewCartChangedEvent() *CartChangedEvent {
	return &CartChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartChanged),
	}
}
