package httpclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/bookhub_loan_service/internal/core/domain"
	"github.com/SscSPs/bookhub_loan_service/internal/core/ports/clients"
)

// bookPayload is the catalog service's book representation.
type bookPayload struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Category        string `json:"category"`
	AvailableCopies int    `json:"availableCopies"`
	TotalCopies     int    `json:"totalCopies"`
}

// CatalogClient talks to the catalog service over HTTP.
type CatalogClient struct {
	baseClient
}

var _ clients.CatalogClient = (*CatalogClient)(nil)

// NewCatalogClient creates a client for the catalog service at baseURL.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{baseClient{service: "catalog", baseURL: baseURL, http: httpClient}}
}

// GetBook returns nil, nil on 404.
func (c *CatalogClient) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var payload bookPayload
	status, err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(bookID), &payload)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, nil
	case status >= 200 && status < 300:
		return &domain.Book{
			BookID:          payload.ID,
			Title:           payload.Title,
			Author:          payload.Author,
			ISBN:            payload.ISBN,
			Category:        payload.Category,
			AvailableCopies: payload.AvailableCopies,
			TotalCopies:     payload.TotalCopies,
		}, nil
	}
	return nil, c.unexpectedStatus(status)
}

func (c *CatalogClient) DecrementAvailability(ctx context.Context, bookID string) (bool, error) {
	return c.adjustAvailability(ctx, bookID, "decrement-availability")
}

func (c *CatalogClient) IncrementAvailability(ctx context.Context, bookID string) (bool, error) {
	return c.adjustAvailability(ctx, bookID, "increment-availability")
}

// adjustAvailability maps 2xx to true and the catalog's refusals
// (400, 404, 409) to false.
func (c *CatalogClient) adjustAvailability(ctx context.Context, bookID, action string) (bool, error) {
	status, err := c.do(ctx, http.MethodPost, "/api/books/"+url.PathEscape(bookID)+"/"+action, nil)
	if err != nil {
		return false, err
	}
	switch status {
	case http.StatusOK, http.StatusNoContent, http.StatusAccepted:
		return true, nil
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict:
		return false, nil
	}
	return false, c.unexpectedStatus(status)
}
