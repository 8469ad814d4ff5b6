// Package reservation wraps the external slot-reservation API. The remote
// service is authoritative for slot availability; this client only moves
// requests and answers across the wire.
package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tutorly/models"
)

// Client is the boundary to the reservation backend.
type Client interface {
	// BookMonthly asks the backend to hold every occurrence of the patterns
	// in the request window. A response with Success false carries the
	// failed day/time combinations and is not a Go error.
	BookMonthly(ctx context.Context, req models.BookMonthlyRequest) (*models.BookMonthlyResponse, error)

	// Release frees a previously granted hold.
	Release(ctx context.Context, holdID string) error
}

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) BookMonthly(ctx context.Context, req models.BookMonthlyRequest) (*models.BookMonthlyResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/bookings/monthly", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build booking request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reservation request failed: %w", err)
	}
	defer resp.Body.Close()

	// Application-level rejections come back as 200/409 with a JSON body;
	// anything else is a transport-class failure.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		return nil, fmt.Errorf("reservation API returned status %d", resp.StatusCode)
	}

	var out models.BookMonthlyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding reservation response failed: %w", err)
	}
	return &out, nil
}

func (c *HTTPClient) Release(ctx context.Context, holdID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/v1/holds/"+holdID, nil)
	if err != nil {
		return fmt.Errorf("failed to build release request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return fmt.Errorf("release request failed: %w", err)
	}
	defer resp.Body.Close()

	// A hold that already lapsed server-side is gone either way.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("reservation API returned status %d on release", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
}
