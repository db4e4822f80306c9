package customer

import (
	"github.com/shop/storefront/internal/domain/shared"
)

// Event type constants
const (
	EventTypeCustomerChanged = "CustomerChanged"
)

// CustomerChangedEvent is published after every field write or reset.
// It carries the full snapshot so diagnostic subscribers do not need a
// reference to the draft.
type CustomerChangedEvent struct {
	shared.BaseDomainEvent
	Customer Data `json:"customer"`
}

// NewCustomerChangedEvent creates a new CustomerChangedEvent
func NewCustomerChangedEvent(snapshot Data) *CustomerChangedEvent {
	return &CustomerChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerChanged),
		Customer:        snapshot,
	}
}
