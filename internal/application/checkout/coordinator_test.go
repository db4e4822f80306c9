package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shop/storefront/internal/domain/cart"
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/customer"
	"github.com/shop/storefront/internal/infrastructure/event"
	"github.com/shop/storefront/internal/infrastructure/shopapi"
	"github.com/shop/storefront/internal/interfaces/view"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Recording view fakes: each records what the coordinator asked it to show

type fakeModal struct {
	opened []view.Content
	closed int
}

func (m *fakeModal) Open(content view.Content) { m.opened = append(m.opened, content) }
func (m *fakeModal) Close()                    { m.closed++ }

type fakeGallery struct {
	renders [][]view.CardState
}

func (g *fakeGallery) Render(cards []view.CardState) { g.renders = append(g.renders, cards) }

type fakeHeader struct {
	counts []int
}

func (h *fakeHeader) SetCount(count int) { h.counts = append(h.counts, count) }

type fakePreview struct {
	states []view.PreviewState
}

func (p *fakePreview) Render(state view.PreviewState) view.Content {
	p.states = append(p.states, state)
	return state
}

type fakeBasket struct {
	states []view.BasketState
}

func (b *fakeBasket) Render(state view.BasketState) view.Content {
	b.states = append(b.states, state)
	return state
}

type fakeForm struct {
	name    string
	mounted int
	enabled []bool
	errors  []string
}

func (f *fakeForm) Render() view.Content {
	f.mounted++
	return f.name
}
func (f *fakeForm) SetSubmitEnabled(enabled bool) { f.enabled = append(f.enabled, enabled) }
func (f *fakeForm) SetErrorText(text string)      { f.errors = append(f.errors, text) }

func (f *fakeForm) lastEnabled(t *testing.T) bool {
	t.Helper()
	require.NotEmpty(t, f.enabled)
	return f.enabled[len(f.enabled)-1]
}

func (f *fakeForm) lastError(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.errors)
	return f.errors[len(f.errors)-1]
}

type fakeSuccess struct {
	totals []decimal.Decimal
}

func (s *fakeSuccess) Render(total decimal.Decimal) view.Content {
	s.totals = append(s.totals, total)
	return total
}

// stubSubmitter records submissions and returns a canned response
type stubSubmitter struct {
	requests []shopapi.OrderRequest
	response *shopapi.OrderResponse
	err      error
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, order shopapi.OrderRequest) (*shopapi.OrderResponse, error) {
	s.requests = append(s.requests, order)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

// harness wires a real bus and real models to the coordinator with
// recording fakes on the view side
type harness struct {
	bus       *event.InMemoryEventBus
	catalog   *catalog.Catalog
	cart      *cart.Cart
	draft     *customer.Draft
	submitter *stubSubmitter
	modal     *fakeModal
	gallery   *fakeGallery
	header    *fakeHeader
	preview   *fakePreview
	basket    *fakeBasket
	orderForm *fakeForm
	contact   *fakeForm
	success   *fakeSuccess
	coord     *Coordinator
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		bus:       event.NewInMemoryEventBus(zap.NewNop()),
		submitter: &stubSubmitter{response: &shopapi.OrderResponse{ID: "order-1", Total: decimal.NewFromInt(100)}},
		modal:     &fakeModal{},
		gallery:   &fakeGallery{},
		header:    &fakeHeader{},
		preview:   &fakePreview{},
		basket:    &fakeBasket{},
		orderForm: &fakeForm{name: "order"},
		contact:   &fakeForm{name: "contacts"},
		success:   &fakeSuccess{},
	}
	h.catalog = catalog.NewCatalog(h.bus)
	h.cart = cart.NewCart(h.bus)
	h.draft = customer.NewDraft(h.bus)

	h.coord = NewCoordinator(h.catalog, h.cart, h.draft, h.submitter, view.Views{
		Modal:       h.modal,
		Gallery:     h.gallery,
		Header:      h.header,
		Preview:     h.preview,
		Basket:      h.basket,
		OrderForm:   h.orderForm,
		ContactForm: h.contact,
		Success:     h.success,
	}, zap.NewNop())
	h.bus.Subscribe(h.coord)

	require.NoError(t, h.catalog.SetItems(context.Background(), []catalog.Product{
		{ID: "a", Title: "Priced", Category: "soft-skill", Price: price(100)},
		{ID: "b", Title: "Priceless", Category: "other", Price: nil},
	}))

	return h
}

// toAddressStep drives the session into the address+payment form with
// product "a" in the cart
func (h *harness) toAddressStep(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))
	require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))
	require.NoError(t, h.bus.Publish(ctx, view.NewBasketOpenClickedEvent()))
	require.NoError(t, h.bus.Publish(ctx, view.NewCheckoutClickedEvent()))
	require.Equal(t, StateAddressStep, h.coord.State())
}

// toContactStep drives the session into the email+phone form with a
// valid address step behind it
func (h *harness) toContactStep(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	h.toAddressStep(t)
	require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().
		WithPayment(customer.PaymentMethodCard).
		WithAddress("1 Main St")))
	require.NoError(t, h.bus.Publish(ctx, view.NewOrderNextStepClickedEvent()))
	require.Equal(t, StateContactStep, h.coord.State())
}

func TestCoordinator_InitialState(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, StateBrowsing, h.coord.State())
}

func TestCoordinator_CatalogChanged_RendersGallery(t *testing.T) {
	h := newHarness(t)

	// Seeding the catalog in the harness already triggered one render
	require.Len(t, h.gallery.renders, 1)
	cards := h.gallery.renders[0]
	require.Len(t, cards, 2)
	assert.Equal(t, "a", cards[0].Product.ID)
	assert.Equal(t, "card__category_soft", cards[0].CategoryClass)
	assert.Equal(t, "card__category_other", cards[1].CategoryClass)
}

func TestCoordinator_CardSelected(t *testing.T) {
	t.Run("opens preview reflecting cart membership", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.bus.Publish(context.Background(), view.NewCardSelectedEvent("a")))

		assert.Equal(t, StatePreviewOpen, h.coord.State())
		require.Len(t, h.preview.states, 1)
		assert.Equal(t, "a", h.preview.states[0].Product.ID)
		assert.False(t, h.preview.states[0].InCart)
		assert.True(t, h.preview.states[0].ForSale)
		assert.Len(t, h.modal.opened, 1)
	})

	t.Run("marks priceless products as not for sale", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.bus.Publish(context.Background(), view.NewCardSelectedEvent("b")))

		require.Len(t, h.preview.states, 1)
		assert.False(t, h.preview.states[0].ForSale)
	})

	t.Run("unknown product falls back to browsing", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.bus.Publish(context.Background(), view.NewCardSelectedEvent("missing")))

		assert.Equal(t, StateBrowsing, h.coord.State())
		assert.Empty(t, h.preview.states)
	})
}

func TestCoordinator_BuyClicked(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a priced product and closes the preview", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))

		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))

		assert.True(t, h.cart.Has("a"))
		assert.Equal(t, []int{1}, h.header.counts)
		assert.Equal(t, 1, h.modal.closed)
		assert.Equal(t, StateBrowsing, h.coord.State())
	})

	t.Run("removes a product that is already in the cart", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))
		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))

		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))

		assert.False(t, h.cart.Has("a"))
		assert.Equal(t, []int{1, 0}, h.header.counts)
	})

	t.Run("ignores products without a price", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("b")))

		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("b")))

		assert.False(t, h.cart.Has("b"))
		assert.Empty(t, h.header.counts)
		assert.Equal(t, StateBrowsing, h.coord.State())
	})

	t.Run("ignored outside the preview", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))

		assert.False(t, h.cart.Has("a"))
	})
}

func TestCoordinator_BasketOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("renders cart contents and total", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))
		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))

		require.NoError(t, h.bus.Publish(ctx, view.NewBasketOpenClickedEvent()))

		assert.Equal(t, StateBasketOpen, h.coord.State())
		require.Len(t, h.basket.states, 1)
		state := h.basket.states[0]
		require.Len(t, state.Rows, 1)
		assert.Equal(t, 1, state.Rows[0].Index)
		assert.Equal(t, "a", state.Rows[0].Product.ID)
		assert.True(t, state.Total.Equal(decimal.NewFromInt(100)))
		assert.True(t, state.CheckoutEnabled)
	})

	t.Run("empty basket disables checkout", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewBasketOpenClickedEvent()))

		require.Len(t, h.basket.states, 1)
		assert.False(t, h.basket.states[0].CheckoutEnabled)
		assert.True(t, h.basket.states[0].Total.IsZero())
	})

	t.Run("remove re-renders the basket in place", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))
		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))
		require.NoError(t, h.bus.Publish(ctx, view.NewBasketOpenClickedEvent()))

		require.NoError(t, h.bus.Publish(ctx, view.NewRemoveFromCartClickedEvent("a")))

		assert.Equal(t, StateBasketOpen, h.coord.State())
		require.Len(t, h.basket.states, 2)
		assert.Empty(t, h.basket.states[1].Rows)
		assert.False(t, h.basket.states[1].CheckoutEnabled)
	})

	t.Run("remove is ignored outside the basket", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))
		require.NoError(t, h.bus.Publish(ctx, view.NewBuyClickedEvent("a")))

		require.NoError(t, h.bus.Publish(ctx, view.NewRemoveFromCartClickedEvent("a")))

		assert.True(t, h.cart.Has("a"))
	})
}

func TestCoordinator_AddressStep(t *testing.T) {
	ctx := context.Background()

	t.Run("checkout opens the address form with submit disabled", func(t *testing.T) {
		h := newHarness(t)
		h.toAddressStep(t)

		assert.Equal(t, 1, h.orderForm.mounted)
		assert.False(t, h.orderForm.lastEnabled(t))
		assert.Equal(t, customer.MsgPaymentNotChosen, h.orderForm.lastError(t))
	})

	t.Run("address without payment keeps next disabled", func(t *testing.T) {
		h := newHarness(t)
		h.toAddressStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithAddress("1 Main St")))

		assert.False(t, h.orderForm.lastEnabled(t))
		assert.Equal(t, customer.MsgPaymentNotChosen, h.orderForm.lastError(t))
	})

	t.Run("selecting a payment method enables next", func(t *testing.T) {
		h := newHarness(t)
		h.toAddressStep(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithAddress("1 Main St")))

		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithPayment(customer.PaymentMethodCard)))

		assert.True(t, h.orderForm.lastEnabled(t))
		assert.Empty(t, h.orderForm.lastError(t))
	})

	t.Run("contact fields are ignored while the address form is mounted", func(t *testing.T) {
		h := newHarness(t)
		h.toAddressStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithEmail("a@b.c")))

		assert.Nil(t, h.draft.Customer().Email)
	})

	t.Run("next is refused while the step is invalid", func(t *testing.T) {
		h := newHarness(t)
		h.toAddressStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewOrderNextStepClickedEvent()))

		assert.Equal(t, StateAddressStep, h.coord.State())
		assert.Equal(t, 0, h.contact.mounted)
	})
}

func TestCoordinator_ContactStep(t *testing.T) {
	ctx := context.Background()

	t.Run("next opens the contact form with submit disabled", func(t *testing.T) {
		h := newHarness(t)
		h.toContactStep(t)

		assert.Equal(t, 1, h.contact.mounted)
		// Untouched contact fields block submission but surface no error
		assert.False(t, h.contact.lastEnabled(t))
		assert.Empty(t, h.contact.lastError(t))
	})

	t.Run("touched but blank email surfaces the required message", func(t *testing.T) {
		h := newHarness(t)
		h.toContactStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithEmail("")))

		assert.False(t, h.contact.lastEnabled(t))
		assert.Equal(t, customer.MsgFieldRequired, h.contact.lastError(t))
	})

	t.Run("filled contact fields enable submit", func(t *testing.T) {
		h := newHarness(t)
		h.toContactStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().
			WithEmail("a@b.c").
			WithPhone("+100200300")))

		assert.True(t, h.contact.lastEnabled(t))
		assert.Empty(t, h.contact.lastError(t))
	})

	t.Run("address fields are ignored while the contact form is mounted", func(t *testing.T) {
		h := newHarness(t)
		h.toContactStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithAddress("overwritten")))

		assert.Equal(t, "1 Main St", *h.draft.Customer().Address)
	})
}

func TestCoordinator_Submission(t *testing.T) {
	ctx := context.Background()

	fill := func(t *testing.T, h *harness) {
		t.Helper()
		h.toContactStep(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().
			WithEmail("a@b.c").
			WithPhone("+100200300")))
	}

	t.Run("success shows the server total and clears session state", func(t *testing.T) {
		h := newHarness(t)
		h.submitter.response = &shopapi.OrderResponse{ID: "order-1", Total: decimal.NewFromInt(42)}
		fill(t, h)

		require.NoError(t, h.bus.Publish(ctx, view.NewOrderPayClickedEvent()))

		require.Len(t, h.submitter.requests, 1)
		request := h.submitter.requests[0]
		assert.Equal(t, []string{"a"}, request.Items)
		assert.Equal(t, "card", request.Payment)
		assert.Equal(t, "a@b.c", request.Email)
		assert.Equal(t, "+100200300", request.Phone)
		assert.Equal(t, "1 Main St", request.Address)
		assert.True(t, request.Total.Equal(decimal.NewFromInt(100)))

		// Confirmation shows what the server charged, not the local total
		require.Len(t, h.success.totals, 1)
		assert.True(t, h.success.totals[0].Equal(decimal.NewFromInt(42)))

		assert.Equal(t, StateSuccessShown, h.coord.State())
		assert.Equal(t, 0, h.cart.Count())
		assert.Nil(t, h.draft.Customer().Email)
		assert.False(t, h.draft.Customer().Payment.IsValid())
	})

	t.Run("failure is retryable with session state untouched", func(t *testing.T) {
		h := newHarness(t)
		h.submitter.err = errors.New("order service unavailable")
		fill(t, h)

		require.NoError(t, h.bus.Publish(ctx, view.NewOrderPayClickedEvent()))

		assert.Equal(t, StateContactStep, h.coord.State())
		assert.Equal(t, "order service unavailable", h.contact.lastError(t))
		assert.Equal(t, 1, h.cart.Count())
		assert.Equal(t, "a@b.c", *h.draft.Customer().Email)
		assert.Empty(t, h.success.totals)

		// Network recovers, resubmission goes through
		h.submitter.err = nil
		require.NoError(t, h.bus.Publish(ctx, view.NewOrderPayClickedEvent()))

		assert.Equal(t, StateSuccessShown, h.coord.State())
		assert.Len(t, h.submitter.requests, 2)
	})

	t.Run("pay is refused while the draft is incomplete", func(t *testing.T) {
		h := newHarness(t)
		h.toContactStep(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewOrderPayClickedEvent()))

		assert.Empty(t, h.submitter.requests)
		assert.Equal(t, StateContactStep, h.coord.State())
	})
}

func TestCoordinator_ModalDismissed(t *testing.T) {
	ctx := context.Background()

	t.Run("closing the confirmation returns to browsing", func(t *testing.T) {
		h := newHarness(t)
		h.toContactStep(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().
			WithEmail("a@b.c").
			WithPhone("+100200300")))
		require.NoError(t, h.bus.Publish(ctx, view.NewOrderPayClickedEvent()))
		require.Equal(t, StateSuccessShown, h.coord.State())

		require.NoError(t, h.bus.Publish(ctx, view.NewModalDismissedEvent()))

		assert.Equal(t, StateBrowsing, h.coord.State())
	})

	t.Run("dismissing a checkout form cancels the draft", func(t *testing.T) {
		h := newHarness(t)
		h.toAddressStep(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewFormChangedEvent().WithAddress("1 Main St")))

		require.NoError(t, h.bus.Publish(ctx, view.NewModalDismissedEvent()))

		assert.Equal(t, StateBrowsing, h.coord.State())
		assert.Nil(t, h.draft.Customer().Address)
	})

	t.Run("dismissing the preview keeps the draft", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.bus.Publish(ctx, view.NewCardSelectedEvent("a")))

		require.NoError(t, h.bus.Publish(ctx, view.NewModalDismissedEvent()))

		assert.Equal(t, StateBrowsing, h.coord.State())
	})

	t.Run("ignored while browsing", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.bus.Publish(ctx, view.NewModalDismissedEvent()))

		assert.Equal(t, StateBrowsing, h.coord.State())
		assert.Equal(t, 0, h.modal.closed)
	})
}
