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

// UserDirectory is the order workflow's view of the user service.
type UserDirectory interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// HTTPUserDirectory calls the user service over HTTP. The base URL is the
// service's fixed logical name, resolved by the deployment environment.
type HTTPUserDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPUserDirectory creates a directory client against baseURL.
func NewHTTPUserDirectory(baseURL string) *HTTPUserDirectory {
	return &HTTPUserDirectory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

// GetUser fetches a user by id.
func (d *HTTPUserDirectory) GetUser(ctx context.Context, id uint) (*models.User, error) {
	url := fmt.Sprintf("%s/api/users/%d", d.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build user request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &apperrors.UpstreamError{Service: "user-service", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var user models.User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, &apperrors.UpstreamError{Service: "user-service", Err: err}
		}
		return &user, nil
	case http.StatusNotFound:
		return nil, apperrors.NewNotFound("user", id)
	default:
		return nil, &apperrors.UpstreamError{
			Service: "user-service",
			Err:     fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
}
