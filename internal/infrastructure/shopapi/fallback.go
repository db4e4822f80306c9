package shopapi

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shop/storefront/internal/domain/catalog"
)

//go:embed fallback.json
var fallbackData []byte

// FallbackCatalog returns the bundled static dataset used when the
// catalog fetch fails at startup
func FallbackCatalog() ([]catalog.Product, error) {
	var response CatalogResponse
	if err := json.Unmarshal(fallbackData, &response); err != nil {
		return nil, fmt.Errorf("decode fallback dataset: %w", err)
	}
	return response.Items, nil
}
