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

	"github.com/stretchr/testify/assert"
)

func TestUserDirectory_GetUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/7", r.URL.Path)
		json.NewEncoder(w).Encode(models.User{ID: 7, Name: "Alice", Email: "alice@example.com"})
	}))
	defer server.Close()

	directory := clients.NewHTTPUserDirectory(server.URL)
	user, err := directory.GetUser(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestUserDirectory_GetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(apperrors.Response{Code: apperrors.CodeNotFound, Message: "user 42 not found"})
	}))
	defer server.Close()

	directory := clients.NewHTTPUserDirectory(server.URL)
	user, err := directory.GetUser(context.Background(), 42)
	assert.Nil(t, user)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserDirectory_GetUser_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	directory := clients.NewHTTPUserDirectory(server.URL)
	_, err := directory.GetUser(context.Background(), 1)
	var upstreamErr *apperrors.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "user-service", upstreamErr.Service)
}

func TestUserDirectory_GetUser_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	directory := clients.NewHTTPUserDirectory(server.URL)
	_, err := directory.GetUser(context.Background(), 1)
	var upstreamErr *apperrors.UpstreamError
	assert.ErrorAs(t, err, &upstreamErr)
}
