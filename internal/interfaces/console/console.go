// Package console provides minimal stdout-backed view adapters. They
// exist so the binary can exercise the full reactive loop without a
// browser: each adapter logs what a real rendering surface would show
// and relays simulated interactions into the event bus.
package console

import (
	"context"

	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shop/storefront/internal/interfaces/view"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Views builds a complete console-backed view bundle
func Views(bus shared.EventPublisher, logger *zap.Logger) view.Views {
	return view.Views{
		Modal:       &Modal{logger: logger},
		Gallery:     &Gallery{bus: bus, logger: logger},
		Header:      &Header{logger: logger},
		Preview:     &Preview{logger: logger},
		Basket:      &Basket{logger: logger},
		OrderForm:   &Form{name: "order", logger: logger},
		ContactForm: &Form{name: "contacts", logger: logger},
		Success:     &Success{logger: logger},
	}
}

// Modal logs open/close of the single modal surface
type Modal struct {
	logger *zap.Logger
}

func (m *Modal) Open(content view.Content) {
	m.logger.Info("modal opened", zap.Any("content", content))
}

func (m *Modal) Close() {
	m.logger.Info("modal closed")
}

// Gallery logs the rendered card list and can relay card clicks
type Gallery struct {
	bus    shared.EventPublisher
	logger *zap.Logger
	cards  []view.CardState
}

func (g *Gallery) Render(cards []view.CardState) {
	g.cards = cards
	for _, card := range cards {
		g.logger.Info("gallery card",
			zap.String("id", card.Product.ID),
			zap.String("title", card.Product.Title),
			zap.String("category_class", card.CategoryClass),
			zap.String("price", card.Product.PriceOrZero().String()),
		)
	}
}

// Select simulates a click on the card at the given position
func (g *Gallery) Select(ctx context.Context, index int) error {
	if index < 0 || index >= len(g.cards) {
		return shared.ErrNotFound
	}
	return g.bus.Publish(ctx, view.NewCardSelectedEvent(g.cards[index].Product.ID))
}

// Header logs the basket badge count
type Header struct {
	logger *zap.Logger
}

func (h *Header) SetCount(count int) {
	h.logger.Info("basket badge", zap.Int("count", count))
}

// Preview logs the product preview content
type Preview struct {
	logger *zap.Logger
}

func (p *Preview) Render(state view.PreviewState) view.Content {
	p.logger.Info("preview",
		zap.String("id", state.Product.ID),
		zap.String("title", state.Product.Title),
		zap.Bool("in_cart", state.InCart),
		zap.Bool("for_sale", state.ForSale),
	)
	return state
}

// Basket logs the basket rows and total
type Basket struct {
	logger *zap.Logger
}

func (b *Basket) Render(state view.BasketState) view.Content {
	for _, row := range state.Rows {
		b.logger.Info("basket row",
			zap.Int("index", row.Index),
			zap.String("title", row.Product.Title),
			zap.String("price", row.Product.PriceOrZero().String()),
		)
	}
	b.logger.Info("basket total",
		zap.String("total", state.Total.String()),
		zap.Bool("checkout_enabled", state.CheckoutEnabled),
	)
	return state
}

// Form logs submit control and error slot changes for a checkout step
type Form struct {
	name   string
	logger *zap.Logger
}

func (f *Form) Render() view.Content {
	f.logger.Info("form mounted", zap.String("form", f.name))
	return f.name
}

func (f *Form) SetSubmitEnabled(enabled bool) {
	f.logger.Info("form submit control",
		zap.String("form", f.name),
		zap.Bool("enabled", enabled),
	)
}

func (f *Form) SetErrorText(text string) {
	f.logger.Info("form error slot",
		zap.String("form", f.name),
		zap.String("text", text),
	)
}

// Success logs the order confirmation
type Success struct {
	logger *zap.Logger
}

func (s *Success) Render(total decimal.Decimal) view.Content {
	s.logger.Info("order confirmed", zap.String("total", total.String()))
	return total
}
