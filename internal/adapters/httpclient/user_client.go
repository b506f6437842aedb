package httpclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/core/ports/clients"
)

type userPayload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// UserClient talks to the user directory over HTTP.
type UserClient struct {
	baseClient
}

var _ clients.UserClient = (*UserClient)(nil)

// NewUserClient creates a client for the user service at baseURL.
func NewUserClient(baseURL string, httpClient *http.Client) *UserClient {
	return &UserClient{baseClient{service: "users", baseURL: baseURL, http: httpClient}}
}

// GetUser returns nil, nil on 404.
func (c *UserClient) GetUser(ctx context.Context, userID string) (*domain.Borrower, error) {
	var payload userPayload
	status, err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID), &payload)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, nil
	case status >= 200 && status < 300:
		return &domain.Borrower{
			UserID:    payload.ID,
			Email:     payload.Email,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Role:      payload.Role,
		}, nil
	}
	return nil, c.unexpectedStatus(status)
}
