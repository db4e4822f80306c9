package catalog

import (
	"github.com/shopspring/decimal"
)

// Product represents a single catalog entry. It is an immutable value:
// the catalog replaces products wholesale and never edits one in place.
type Product struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"` // path relative to the CDN base URL
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"` // nil means not for sale
}

// ForSale reports whether the product has a price and can be bought
func (p Product) ForSale() bool {
	return p.Price != nil
}

// PriceOrZero returns the product price, treating a missing price as zero
func (p Product) PriceOrZero() decimal.Decimal {
	if p.Price == nil {
		return decimal.Zero
	}
	return *p.Price
}

// categoryClasses maps free-form category labels to display class names
// used by the gallery to style category badges
var categoryClasses = map[string]string{
	"soft-skill": "card__category_soft",
	"hard-skill": "card__category_hard",
	"button":     "card__category_button",
	"additional": "card__category_additional",
	"other":      "card__category_other",
}

// DisplayClass returns the display class for a category label,
// falling back to the "other" class for unknown labels
func DisplayClass(category string) string {
	if class, ok := categoryClasses[category]; ok {
		return class
	}
	return categoryClasses["other"]
}
