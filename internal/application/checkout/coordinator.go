package checkout

import (
	"context"
	"strings"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/customer"
	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shop/storefront/internal/infrastructure/shopapi"
	"github.com/shop/storefront/internal/interfaces/view"
	"go.uber.org/zap"
)

// OrderSubmitter posts a finished order to the shop service
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order shopapi.OrderRequest) (*shopapi.OrderResponse, error)
}

// Coordinator owns the checkout state machine and all cross-model
// orchestration. It is the only component that mutates the models:
// views relay interactions into the bus, the coordinator reacts, the
// models announce changes, and the coordinator re-renders the affected
// views by full replacement.
type Coordinator struct {
	catalog   *catalog.Catalog
	cart      *cart.Cart
	draft     *customer.Draft
	submitter OrderSubmitter
	views     view.Views
	logger    *zap.Logger
	state     State
}

// NewCoordinator creates a coordinator in the Browsing state. The
// caller subscribes it to the bus; EventTypes lists everything it
// consumes.
func NewCoordinator(
	cat *catalog.Catalog,
	crt *cart.Cart,
	draft *customer.Draft,
	submitter OrderSubmitter,
	views view.Views,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		catalog:   cat,
		cart:      crt,
		draft:     draft,
		submitter: submitter,
		views:     views,
		logger:    logger,
		state:     StateBrowsing,
	}
}

// State returns the current checkout state
func (c *Coordinator) State() State {
	return c.state
}

// EventTypes returns the event types the coordinator consumes
func (c *Coordinator) EventTypes() []string {
	return []string{
		catalog.EventTypeCatalogChanged,
		cart.EventTypeCartChanged,
		view.EventTypeCardSelected,
		view.EventTypeBuyClicked,
		view.EventTypeRemoveFromCartClicked,
		view.EventTypeBasketOpenClicked,
		view.EventTypeCheckoutClicked,
		view.EventTypeFormChanged,
		view.EventTypeOrderNextStepClicked,
		view.EventTypeOrderPayClicked,
		view.EventTypeModalDismissed,
		customer.EventTypeCustomerChanged,
	}
}

// Handle dispatches one event to the matching reaction
func (c *Coordinator) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *catalog.CatalogChangedEvent:
		c.renderGallery()
	case *cart.CartChangedEvent:
		c.renderHeader()
		if c.state == StateBasketOpen {
			c.renderBasket()
		}
	case *customer.CustomerChangedEvent:
		c.refreshActiveForm()
	case *view.CardSelectedEvent:
		c.onCardSelected(e.ProductID)
	case *view.BuyClickedEvent:
		return c.onBuyClicked(ctx, e.ProductID)
	case *view.RemoveFromCartClickedEvent:
		return c.onRemoveFromCartClicked(ctx, e.ProductID)
	case *view.BasketOpenClickedEvent:
		c.onBasketOpenClicked()
	case *view.CheckoutClickedEvent:
		c.onCheckoutClicked()
	case *view.FormChangedEvent:
		return c.onFormChanged(ctx, e)
	case *view.OrderNextStepClickedEvent:
		c.onOrderNextStepClicked()
	case *view.OrderPayClickedEvent:
		return c.onOrderPayClicked(ctx)
	case *view.ModalDismissedEvent:
		return c.onModalDismissed(ctx)
	default:
		c.logger.Debug("ignoring unhandled event",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

// onCardSelected opens the preview for a product, reflecting whether it
// is already in the cart
func (c *Coordinator) onCardSelected(productID string) {
	if !c.transition(StatePreviewOpen) {
		return
	}

	product, ok := c.catalog.ByID(productID)
	if !ok {
		c.logger.Warn("selected product not in catalog",
			zap.String("product_id", productID),
		)
		c.state = StateBrowsing
		return
	}

	content := c.views.Preview.Render(view.PreviewState{
		Product: product,
		InCart:  c.cart.Has(product.ID),
		ForSale: product.ForSale(),
	})
	c.views.Modal.Open(content)
}

// onBuyClicked toggles cart membership for the previewed product and
// closes the preview. Products without a price cannot be added.
func (c *Coordinator) onBuyClicked(ctx context.Context, productID string) error {
	if c.state != StatePreviewOpen {
		return nil
	}

	product, ok := c.catalog.ByID(productID)
	if ok {
		switch {
		case c.cart.Has(product.ID):
			if err := c.cart.Remove(ctx, product.ID); err != nil {
				return err
			}
		case product.ForSale():
			if err := c.cart.Add(ctx, product); err != nil {
				return err
			}
		}
	}

	c.views.Modal.Close()
	c.transition(StateBrowsing)
	return nil
}

// onRemoveFromCartClicked removes a basket row; the CartChanged
// reaction re-renders the basket in place
func (c *Coordinator) onRemoveFromCartClicked(ctx context.Context, productID string) error {
	if c.state != StateBasketOpen {
		return nil
	}
	return c.cart.Remove(ctx, productID)
}

// onBasketOpenClicked renders the current cart contents and total
func (c *Coordinator) onBasketOpenClicked() {
	if !c.transition(StateBasketOpen) {
		return
	}
	c.renderBasket()
}

// onCheckoutClicked opens the address+payment form
func (c *Coordinator) onCheckoutClicked() {
	if c.state != StateBasketOpen || !c.transition(StateAddressStep) {
		return
	}
	c.views.Modal.Open(c.views.OrderForm.Render())
	c.refreshActiveForm()
}

// onFormChanged writes the changed fields through to the draft.
// Fields are scoped to the active step: a change event carrying fields
// the mounted form does not own is ignored.
func (c *Coordinator) onFormChanged(ctx context.Context, e *view.FormChangedEvent) error {
	switch c.state {
	case StateAddressStep:
		if e.Payment != nil {
			if err := c.draft.SetPayment(ctx, *e.Payment); err != nil {
				return err
			}
		}
		if e.Address != nil {
			if err := c.draft.SetAddress(ctx, *e.Address); err != nil {
				return err
			}
		}
	case StateContactStep:
		if e.Email != nil {
			if err := c.draft.SetEmail(ctx, *e.Email); err != nil {
				return err
			}
		}
		if e.Phone != nil {
			if err := c.draft.SetPhone(ctx, *e.Phone); err != nil {
				return err
			}
		}
	}
	return nil
}

// onOrderNextStepClicked advances to the email+phone form, only when
// address and payment are valid
func (c *Coordinator) onOrderNextStepClicked() {
	if c.state != StateAddressStep || !c.draft.Validate().AddressStepOK() {
		return
	}
	if !c.transition(StateContactStep) {
		return
	}
	c.views.Modal.Open(c.views.ContactForm.Render())
	c.refreshActiveForm()
}

// onOrderPayClicked submits the order, only when the draft is complete
func (c *Coordinator) onOrderPayClicked(ctx context.Context) error {
	if c.state != StateContactStep || !c.draft.Complete() {
		return nil
	}
	if !c.transition(StateSubmitting) {
		return nil
	}

	data := c.draft.Customer()
	order := shopapi.OrderRequest{
		Items:   c.cart.ItemIDs(),
		Payment: data.Payment.String(),
		Email:   trimmed(data.Email),
		Phone:   trimmed(data.Phone),
		Address: trimmed(data.Address),
		Total:   c.cart.Total(),
	}

	resp, err := c.submitter.SubmitOrder(ctx, order)
	if err != nil {
		// Retryable: surface the message and return to the contact step
		// with cart and draft untouched
		c.logger.Warn("order submission failed", zap.Error(err))
		c.transition(StateContactStep)
		c.views.ContactForm.SetErrorText(err.Error())
		return nil
	}

	c.views.Modal.Open(c.views.Success.Render(resp.Total))
	c.transition(StateSuccessShown)
	if err := c.cart.Clear(ctx); err != nil {
		return err
	}
	return c.draft.Clear(ctx)
}

// onModalDismissed returns the session to browsing. Dismissing a
// checkout form is a cancellation and discards the draft; dismissal is
// ignored while a submission is in flight.
func (c *Coordinator) onModalDismissed(ctx context.Context) error {
	if c.state == StateBrowsing || c.state == StateSubmitting {
		return nil
	}

	cancelled := c.state == StateAddressStep || c.state == StateContactStep
	c.transition(StateBrowsing)
	c.views.Modal.Close()

	if cancelled {
		return c.draft.Clear(ctx)
	}
	return nil
}

// renderGallery fully replaces the gallery's card list
func (c *Coordinator) renderGallery() {
	items := c.catalog.Items()
	cards := make([]view.CardState, len(items))
	for i, item := range items {
		cards[i] = view.CardState{
			Product:       item,
			CategoryClass: catalog.DisplayClass(item.Category),
		}
	}
	c.views.Gallery.Render(cards)
}

// renderHeader updates the basket badge
func (c *Coordinator) renderHeader() {
	c.views.Header.SetCount(c.cart.Count())
}

// renderBasket fully replaces the basket's row list
func (c *Coordinator) renderBasket() {
	items := c.cart.Items()
	rows := make([]view.BasketRow, len(items))
	for i, item := range items {
		rows[i] = view.BasketRow{Index: i + 1, Product: item}
	}
	content := c.views.Basket.Render(view.BasketState{
		Rows:            rows,
		Total:           c.cart.Total(),
		CheckoutEnabled: len(items) > 0,
	})
	c.views.Modal.Open(content)
}

// refreshActiveForm re-validates the draft and drives the mounted
// form's submit control and error slot. Untouched contact fields block
// submission but are not reported as errors.
func (c *Coordinator) refreshActiveForm() {
	errs := c.draft.Validate()
	switch c.state {
	case StateAddressStep:
		c.views.OrderForm.SetSubmitEnabled(errs.AddressStepOK())
		c.views.OrderForm.SetErrorText(firstOf(errs.Payment, errs.Address))
	case StateContactStep:
		c.views.ContactForm.SetSubmitEnabled(c.draft.Complete())
		c.views.ContactForm.SetErrorText(errs.First())
	}
}

// transition moves the state machine to target, refusing and logging
// transitions the flow does not allow
func (c *Coordinator) transition(target State) bool {
	if !c.state.CanTransitionTo(target) {
		c.logger.Debug("checkout transition refused",
			zap.String("from", c.state.String()),
			zap.String("to", target.String()),
		)
		return false
	}
	c.state = target
	return true
}

// firstOf returns the first non-empty message
func firstOf(messages ...string) string {
	for _, msg := range messages {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// trimmed dereferences an optional field, trimming surrounding space
func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// Ensure Coordinator implements EventHandler
var _ shared.EventHandler = (*Coordinator)(nil)
