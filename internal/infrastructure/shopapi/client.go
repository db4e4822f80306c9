package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shop/storefront/internal/domain/catalog"
	"github.com/shop/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from the shop API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Config holds the shop API client settings
type Config struct {
	BaseURL string        // order service base URL
	CDNURL  string        // base URL product image paths are resolved against
	Timeout time.Duration // per-request timeout
}

// CatalogResponse is the payload of the catalog endpoint
type CatalogResponse struct {
	Total int               `json:"total"`
	Items []catalog.Product `json:"items"`
}

// OrderRequest is the submission payload of the order endpoint
type OrderRequest struct {
	Items   []string        `json:"items" validate:"required,min=1"`
	Payment string          `json:"payment" validate:"required,oneof=card cash"`
	Email   string          `json:"email" validate:"required"`
	Phone   string          `json:"phone" validate:"required"`
	Address string          `json:"address" validate:"required"`
	Total   decimal.Decimal `json:"total"`
}

// OrderResponse is the confirmation returned by the order endpoint
type OrderResponse struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}

// errorResponse is the error envelope the shop API returns on failure
type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the shop order service over HTTP
type Client struct {
	config     Config
	httpClient *http.Client
	validate   *validator.Validate
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewClient creates a new shop API client with the given configuration
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "shop API base URL cannot be empty")
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		validate: validator.New(),
		tracer:   otel.Tracer("shopapi"),
		logger:   logger,
	}, nil
}

// FetchCatalog retrieves the full product list. Image paths are resolved
// against the configured CDN base URL.
func (c *Client) FetchCatalog(ctx context.Context) (*CatalogResponse, error) {
	ctx, span := c.tracer.Start(ctx, "shopapi.FetchCatalog")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/product/"), nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrNetworkFailure, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", shared.ErrNetworkFailure, c.readError(resp))
	}

	var result CatalogResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	for i := range result.Items {
		result.Items[i].Image = c.resolveImage(result.Items[i].Image)
	}

	span.SetAttributes(attribute.Int("catalog.items", len(result.Items)))
	c.logger.Debug("catalog fetched",
		zap.Int("total", result.Total),
		zap.Int("items", len(result.Items)),
	)

	return &result, nil
}

// SubmitOrder posts an order for the session. The request is validated
// locally before anything goes over the wire.
func (c *Client) SubmitOrder(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	ctx, span := c.tracer.Start(ctx, "shopapi.SubmitOrder")
	defer span.End()

	if err := c.validate.Struct(order); err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrValidationFailed, err.Error())
	}

	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/order/"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrNetworkFailure, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: %s", shared.ErrNetworkFailure, c.readError(resp))
	}

	var result OrderResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	span.SetAttributes(attribute.String("order.id", result.ID))
	c.logger.Info("order submitted",
		zap.String("order_id", result.ID),
		zap.String("total", result.Total.String()),
	)

	return &result, nil
}

// endpoint joins the base URL with an API path
func (c *Client) endpoint(path string) string {
	return strings.TrimSuffix(c.config.BaseURL, "/") + path
}

// resolveImage prefixes a relative image path with the CDN base URL
func (c *Client) resolveImage(image string) string {
	if c.config.CDNURL == "" || image == "" || strings.HasPrefix(image, "http") {
		return image
	}
	return strings.TrimSuffix(c.config.CDNURL, "/") + "/" + strings.TrimPrefix(image, "/")
}

// readError extracts the error message from a failed response, falling
// back to the HTTP status when the body carries no usable envelope
func (c *Client) readError(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err == nil && len(body) > 0 {
		var envelope errorResponse
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Error != "" {
			return envelope.Error
		}
	}
	return resp.Status
}
