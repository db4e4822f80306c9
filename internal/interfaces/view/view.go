// Package view defines the contract between the reactive core and the
// rendering surface. Views are passive adapters: they expose imperative
// set-state methods the checkout coordinator calls after model changes,
// and they relay user interactions into the event bus as the typed
// events declared in events.go. Their internal rendering is opaque to
// the core, which lets the coordinator be tested against recording
// fakes.
package view

import (
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Content is an opaque handle to rendered view content, passed to the
// modal host. The core never inspects it.
type Content any

// ModalHost is the single modal surface of the storefront
type ModalHost interface {
	Open(content Content)
	Close()
}

// CardState is the render state of one gallery card
type CardState struct {
	Product       catalog.Product
	CategoryClass string
}

// Gallery renders the product list
type Gallery interface {
	Render(cards []CardState)
}

// Header exposes the basket badge in the page header
type Header interface {
	SetCount(count int)
}

// PreviewState is the render state of the product preview modal
type PreviewState struct {
	Product catalog.Product
	InCart  bool
	ForSale bool
}

// Preview renders a single product card inside the modal
type Preview interface {
	Render(state PreviewState) Content
}

// BasketRow is one line of the basket list
type BasketRow struct {
	Index   int
	Product catalog.Product
}

// BasketState is the render state of the basket modal
type BasketState struct {
	Rows            []BasketRow
	Total           decimal.Decimal
	CheckoutEnabled bool
}

// Basket renders the cart contents and total
type Basket interface {
	Render(state BasketState) Content
}

// Form is a checkout step form. Render mounts a fresh instance of the
// form; the coordinator then drives the submit control and the error
// slot as the draft changes.
type Form interface {
	Render() Content
	SetSubmitEnabled(enabled bool)
	SetErrorText(text string)
}

// Success renders the order confirmation with the server-confirmed total
type Success interface {
	Render(total decimal.Decimal) Content
}

// Views bundles every adapter the coordinator drives
type Views struct {
	Modal       ModalHost
	Gallery     Gallery
	Header      Header
	Preview     Preview
	Basket      Basket
	OrderForm   Form // address + payment step
	ContactForm Form // email + phone step
	Success     Success
}
