package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"mart/internal/apperrors"
	"mart/internal/models"
)

// ProductCatalog is the order workflow's view of the product service.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	DecrementStock(ctx context.Context, id uint, quantity int) error
	RestoreStock(ctx context.Context, id uint, quantity int) error
}

// HTTPProductCatalog calls the product service over HTTP.
type HTTPProductCatalog struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProductCatalog creates a catalog client against baseURL.
func NewHTTPProductCatalog(baseURL string) *HTTPProductCatalog {
	return &HTTPProductCatalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

// GetProduct fetches a product by id.
func (c *HTTPProductCatalog) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build product request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &apperrors.UpstreamError{Service: "product-service", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var product models.Product
		if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
			return nil, &apperrors.UpstreamError{Service: "product-service", Err: err}
		}
		return &product, nil
	case http.StatusNotFound:
		return nil, apperrors.NewNotFound("product", id)
	default:
		return nil, &apperrors.UpstreamError{
			Service: "product-service",
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
}

// DecrementStock asks the product service to subtract quantity from the
// product's stock. The service performs the check-and-set atomically.
func (c *HTTPProductCatalog) DecrementStock(ctx context.Context, id uint, quantity int) error {
	url := fmt.Sprintf("%s/api/products/%d/stock?quantity=%d", c.baseURL, id, quantity)
	return c.stockCall(ctx, http.MethodPut, url, id)
}

// RestoreStock asks the product service to add quantity back to the
// product's stock. Used to compensate a failed order creation.
func (c *HTTPProductCatalog) RestoreStock(ctx context.Context, id uint, quantity int) error {
	url := fmt.Sprintf("%s/api/products/%d/stock/restore?quantity=%d", c.baseURL, id, quantity)
	return c.stockCall(ctx, http.MethodPost, url, id)
}

func (c *HTTPProductCatalog) stockCall(ctx context.Context, method, url string, id uint) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build stock request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &apperrors.UpstreamError{Service: "product-service", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return apperrors.NewNotFound("product", id)
	case http.StatusBadRequest:
		var body apperrors.Response
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil &&
			body.Code == apperrors.CodeInsufficientStock {
			stockErr := &apperrors.InsufficientStockError{Product: body.Product}
			if body.Available != nil {
				stockErr.Available = *body.Available
			}
			if body.Requested != nil {
				stockErr.Requested = *body.Requested
			}
			return stockErr
		}
		return &apperrors.UpstreamError{
			Service: "product-service",
			Err:     fmt.Errorf("stock update rejected: %s", body.Message),
		}
	default:
		return &apperrors.UpstreamError{
			Service: "product-service",
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
}
