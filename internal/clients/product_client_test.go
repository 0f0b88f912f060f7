package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mart/internal/apperrors"
	"mart/internal/clients"
	"mart/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductCatalog_GetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products/3", r.URL.Path)
		json.NewEncoder(w).Encode(models.Product{
			ID: 3, Name: "Laptop", Price: decimal.RequireFromString("1200.00"), Stock: 10,
		})
	}))
	defer server.Close()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	product, err := catalog.GetProduct(context.Background(), 3)
	assert.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	assert.True(t, decimal.RequireFromString("1200.00").Equal(product.Price))
	assert.Equal(t, 10, product.Stock)
}

func TestProductCatalog_DecrementStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/products/3/stock", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("quantity"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	assert.NoError(t, catalog.DecrementStock(context.Background(), 3, 2))
}

func TestProductCatalog_DecrementStock_Insufficient(t *testing.T) {
	available, requested := 1, 2
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(apperrors.Response{
			Code:      apperrors.CodeInsufficientStock,
			Message:   "insufficient stock",
			Product:   "Laptop",
			Available: &available,
			Requested: &requested,
		})
	}))
	defer server.Close()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	err := catalog.DecrementStock(context.Background(), 3, 2)

	var stockErr *apperrors.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Laptop", stockErr.Product)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 2, stockErr.Requested)
}

func TestProductCatalog_DecrementStock_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	err := catalog.DecrementStock(context.Background(), 999, 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProductCatalog_DecrementStock_OtherBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(apperrors.Response{
			Code:    apperrors.CodeValidationFailed,
			Message: "quantity must be a positive integer",
		})
	}))
	defer server.Close()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	err := catalog.DecrementStock(context.Background(), 3, 0)

	var upstreamErr *apperrors.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}

func TestProductCatalog_RestoreStock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/3/stock/restore", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("quantity"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	assert.NoError(t, catalog.RestoreStock(context.Background(), 3, 2))
}

func TestProductCatalog_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog := clients.NewHTTPProductCatalog(server.URL)
	_, err := catalog.GetProduct(ctx, 1)
	var upstreamErr *apperrors.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}
