package view

import (
	"github.com/shop/storefront/internal/domain/customer"
	"github.com/shop/storefront/internal/domain/shared"
)

// Event type constants for user interactions relayed by views
const (
	EventTypeCardSelected          = "CardSelected"
	EventTypeBuyClicked            = "BuyClicked"
	EventTypeRemoveFromCartClicked = "RemoveFromCartClicked"
	EventTypeBasketOpenClicked     = "BasketOpenClicked"
	EventTypeCheckoutClicked       = "CheckoutClicked"
	EventTypeFormChanged           = "FormChanged"
	EventTypeOrderNextStepClicked  = "OrderNextStepClicked"
	EventTypeOrderPayClicked       = "OrderPayClicked"
	EventTypeModalDismissed        = "ModalDismissed"
)

// CardSelectedEvent is emitted when a gallery card is clicked
type CardSelectedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
}

// NewCardSelectedEvent creates a new CardSelectedEvent
func NewCardSelectedEvent(productID string) *CardSelectedEvent {
	return &CardSelectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCardSelected),
		ProductID:       productID,
	}
}

// BuyClickedEvent is emitted when the buy/remove toggle of the preview
// modal is clicked
type BuyClickedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
}

// NewBuyClickedEvent creates a new BuyClickedEvent
func NewBuyClickedEvent(productID string) *BuyClickedEvent {
	return &BuyClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBuyClicked),
		ProductID:       productID,
	}
}

// RemoveFromCartClickedEvent is emitted by a basket row's delete control
type RemoveFromCartClickedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
}

// NewRemoveFromCartClickedEvent creates a new RemoveFromCartClickedEvent
func NewRemoveFromCartClickedEvent(productID string) *RemoveFromCartClickedEvent {
	return &RemoveFromCartClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRemoveFromCartClicked),
		ProductID:       productID,
	}
}

// BasketOpenClickedEvent is emitted by the header basket button
type BasketOpenClickedEvent struct {
	shared.BaseDomainEvent
}

// NewBasketOpenClickedEvent creates a new BasketOpenClickedEvent
func NewBasketOpenClickedEvent() *BasketOpenClickedEvent {
	return &BasketOpenClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBasketOpenClicked),
	}
}

// CheckoutClickedEvent is emitted by the basket's checkout button
type CheckoutClickedEvent struct {
	shared.BaseDomainEvent
}

// NewCheckoutClickedEvent creates a new CheckoutClickedEvent
func NewCheckoutClickedEvent() *CheckoutClickedEvent {
	return &CheckoutClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutClicked),
	}
}

// FormChangedEvent is emitted on every input in a checkout form.
// Only the fields that belong to the emitting form are set; the rest
// stay nil.
type FormChangedEvent struct {
	shared.BaseDomainEvent
	Payment *customer.PaymentMethod `json:"payment,omitempty"`
	Address *string                 `json:"address,omitempty"`
	Email   *string                 `json:"email,omitempty"`
	Phone   *string                 `json:"phone,omitempty"`
}

// NewFormChangedEvent creates an empty FormChangedEvent; callers fill
// in the fields their form owns
func NewFormChangedEvent() *FormChangedEvent {
	return &FormChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFormChanged),
	}
}

// WithPayment sets the payment field and returns the event
func (e *FormChangedEvent) WithPayment(method customer.PaymentMethod) *FormChangedEvent {
	e.Payment = &method
	return e
}

// WithAddress sets the address field and returns the event
func (e *FormChangedEvent) WithAddress(address string) *FormChangedEvent {
	e.Address = &address
	return e
}

// WithEmail sets the email field and returns the event
func (e *FormChangedEvent) WithEmail(email string) *FormChangedEvent {
	e.Email = &email
	return e
}

// WithPhone sets the phone field and returns the event
func (e *FormChangedEvent) WithPhone(phone string) *FormChangedEvent {
	e.Phone = &phone
	return e
}

// OrderNextStepClickedEvent is emitted by the address form's next button
type OrderNextStepClickedEvent struct {
	shared.BaseDomainEvent
}

// NewOrderNextStepClickedEvent creates a new OrderNextStepClickedEvent
func NewOrderNextStepClickedEvent() *OrderNextStepClickedEvent {
	return &OrderNextStepClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderNextStepClicked),
	}
}

// OrderPayClickedEvent is emitted by the contact form's pay button
type OrderPayClickedEvent struct {
	shared.BaseDomainEvent
}

// NewOrderPayClickedEvent creates a new OrderPayClickedEvent
func NewOrderPayClickedEvent() *OrderPayClickedEvent {
	return &OrderPayClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPayClicked),
	}
}

// ModalDismissedEvent is emitted when the modal host is closed by the
// user (close button, overlay click, or the success screen's close)
type ModalDismissedEvent struct {
	shared.BaseDomainEvent
}

// NewModalDismissedEvent creates a new ModalDismissedEvent
func NewModalDismissedEvent() *ModalDismissedEvent {
	return &ModalDismissedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeModalDismissed),
	}
}
