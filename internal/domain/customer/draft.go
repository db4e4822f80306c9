package customer

import (
	"context"
	"strings"

	"github.com/shop/storefront/internal/domain/shared"
)

// PaymentMethod represents how the customer intends to pay
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Data is a snapshot of the accumulated customer fields. A nil field
// has never been touched; a non-nil field holds the last written value,
// possibly blank.
type Data struct {
	Payment PaymentMethod `json:"payment,omitempty"`
	Address *string       `json:"address,omitempty"`
	Email   *string       `json:"email,omitempty"`
	Phone   *string       `json:"phone,omitempty"`
}

// clone returns a deep copy of the snapshot
func (d Data) clone() Data {
	return Data{
		Payment: d.Payment,
		Address: cloneString(d.Address),
		Email:   cloneString(d.Email),
		Phone:   cloneString(d.Phone),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// ValidationErrors holds one message slot per checkout field.
// An empty string means the field is valid.
type ValidationErrors struct {
	Payment string `json:"payment,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// AddressStepOK reports whether the address+payment step may advance
func (v ValidationErrors) AddressStepOK() bool {
	return v.Payment == "" && v.Address == ""
}

// OK reports whether the whole draft is ready for submission
func (v ValidationErrors) OK() bool {
	return v.Payment == "" && v.Address == "" && v.Email == "" && v.Phone == ""
}

// First returns the first non-empty message in field order, or ""
func (v ValidationErrors) First() string {
	for _, msg := range []string{v.Payment, v.Address, v.Email, v.Phone} {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// Validation messages
const (
	MsgPaymentNotChosen = "payment method is not chosen"
	MsgAddressMissing   = "delivery address is not specified"
	MsgFieldRequired    = "field must be filled in"
)

// Draft accumulates the not-yet-submitted customer fields across the
// checkout steps. Nothing is validated eagerly: Validate is a pure
// query run on demand.
type Draft struct {
	data      Data
	publisher shared.EventPublisher
}

// NewDraft creates an empty draft that announces field writes through
// the given publisher
func NewDraft(publisher shared.EventPublisher) *Draft {
	return &Draft{
		publisher: publisher,
	}
}

// SetPayment overwrites the payment method and publishes CustomerChanged
func (d *Draft) SetPayment(ctx context.Context, method PaymentMethod) error {
	d.data.Payment = method
	return d.publishChanged(ctx)
}

// SetAddress overwrites the delivery address and publishes CustomerChanged
func (d *Draft) SetAddress(ctx context.Context, address string) error {
	d.data.Address = &address
	return d.publishChanged(ctx)
}

// SetEmail overwrites the email and publishes CustomerChanged
func (d *Draft) SetEmail(ctx context.Context, email string) error {
	d.data.Email = &email
	return d.publishChanged(ctx)
}

// SetPhone overwrites the phone number and publishes CustomerChanged
func (d *Draft) SetPhone(ctx context.Context, phone string) error {
	d.data.Phone = &phone
	return d.publishChanged(ctx)
}

// Customer returns a defensive copy of the accumulated fields
func (d *Draft) Customer() Data {
	return d.data.clone()
}

// Clear resets every field to untouched and publishes CustomerChanged
func (d *Draft) Clear(ctx context.Context) error {
	d.data = Data{}
	return d.publishChanged(ctx)
}

// Validate checks the current state without mutating it. Payment and
// address are required outright; email and phone are only reported when
// they have been touched and are blank after trimming.
func (d *Draft) Validate() ValidationErrors {
	var errs ValidationErrors

	if !d.data.Payment.IsValid() {
		errs.Payment = MsgPaymentNotChosen
	}
	if d.data.Address == nil || strings.TrimSpace(*d.data.Address) == "" {
		errs.Address = MsgAddressMissing
	}
	if d.data.Email != nil && strings.TrimSpace(*d.data.Email) == "" {
		errs.Email = MsgFieldRequired
	}
	if d.data.Phone != nil && strings.TrimSpace(*d.data.Phone) == "" {
		errs.Phone = MsgFieldRequired
	}

	return errs
}

// Complete reports whether every field required for submission has been
// supplied. Unlike Validate, untouched email/phone fields count as
// missing here: a draft is only complete once both contact fields hold
// non-blank values.
func (d *Draft) Complete() bool {
	if !d.Validate().OK() {
		return false
	}
	return d.data.Email != nil && strings.TrimSpace(*d.data.Email) != "" &&
		d.data.Phone != nil && strings.TrimSpace(*d.data.Phone) != ""
}

func (d *Draft) publishChanged(ctx context.Context) error {
	return d.publisher.Publish(ctx, NewCustomerChangedEvent(d.data.clone()))
}
