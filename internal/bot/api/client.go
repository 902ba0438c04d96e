// Package api is the bot's HTTP client for the listing service.
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"tezgah/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	retryCount     = 2
)

// Client wraps a resty client configured with the API credential, a bounded
// timeout and transport-level retry.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", apiKey).
		SetRetryCount(retryCount).
		SetRetryWaitTime(300 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &Client{http: httpClient}
}

// CreateListing posts the draft request and returns the generated listing.
func (c *Client) CreateListing(ctx context.Context, req domain.ListingRequest) (*domain.ListingResult, error) {
	var result domain.ListingResult
	var apiErr struct {
		Error string `json:"error"`
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/listing")
	if err != nil {
		return nil, fmt.Errorf("listing api request: %w", err)
	}
	if resp.IsError() {
		message := apiErr.Error
		if message == "" {
			message = resp.Status()
		}
		return nil, fmt.Errorf("listing api %d: %s", resp.StatusCode(), message)
	}
	return &result, nil
}
