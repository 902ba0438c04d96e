// Package replicate drives the transform provider's create-then-poll
// prediction protocol for image captioning, upscaling and background
// removal.
package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tezgah/internal/domain"
	"tezgah/internal/infra"
	"tezgah/pkg/retry"
)

const (
	defaultBaseURL         = "https://api.replicate.com/v1"
	defaultRequestTimeout  = 20 * time.Second
	defaultPollInterval    = 1500 * time.Millisecond
	defaultMaxPollAttempts = 20
	maxPollDelay           = 30 * time.Second
)

// Prediction status values reported by the provider.
const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
	statusCanceled  = "canceled"
)

// Options configures the transform provider client. Version identifiers are
// per-operation capabilities; an absent version disables that operation.
type Options struct {
	Token           string
	BaseURL         string
	CaptionVersion  string
	UpscaleVersion  string
	BgRemoveVersion string
	HTTPClient      *http.Client
	RequestTimeout  time.Duration
	PollInterval    time.Duration
	MaxPollAttempts int
	Logger          *infra.Logger
}

// Client performs HTTP calls against the prediction API.
type Client struct {
	token           string
	baseURL         string
	captionVersion  string
	upscaleVersion  string
	bgRemoveVersion string
	httpClient      *http.Client
	pollInterval    time.Duration
	maxPollAttempts int
	logger          *infra.Logger
}

// prediction is the provider-side asynchronous unit of work. Output is
// provider-defined: a bare URL string or a list of URL strings.
type prediction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output any    `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pollInterval := opts.PollInterval
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	maxPollAttempts := opts.MaxPollAttempts
	if maxPollAttempts <= 0 {
		maxPollAttempts = defaultMaxPollAttempts
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		token:           strings.TrimSpace(opts.Token),
		baseURL:         baseURL,
		captionVersion:  strings.TrimSpace(opts.CaptionVersion),
		upscaleVersion:  strings.TrimSpace(opts.UpscaleVersion),
		bgRemoveVersion: strings.TrimSpace(opts.BgRemoveVersion),
		httpClient:      httpClient,
		pollInterval:    pollInterval,
		maxPollAttempts: maxPollAttempts,
		logger:          logger,
	}
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.token != ""
}

// CaptionImage captions a single image. The caption capability is expected
// to be configured whenever the provider is reachable at all, so a missing
// version is a deployment defect rather than a degrade.
func (c *Client) CaptionImage(ctx context.Context, imageURL string) (string, error) {
	if c.captionVersion == "" {
		return "", domain.NewAppError("missing replicate caption version", http.StatusInternalServerError)
	}

	output, err := c.run(ctx, c.captionVersion, map[string]any{"image": imageURL})
	if err != nil {
		return "", err
	}

	if s, ok := output.(string); ok {
		return s, nil
	}
	if list, ok := output.([]any); ok && len(list) > 0 {
		if s, ok := list[0].(string); ok {
			return s, nil
		}
	}
	return "", domain.NewAppError("replicate caption output not usable", http.StatusBadGateway)
}

// ProcessImage runs a transform operation against a single image and returns
// the output URLs. An unconfigured operation is a silent no-op.
func (c *Client) ProcessImage(ctx context.Context, imageURL string, op domain.ImageOp) ([]string, error) {
	var version string
	switch op {
	case domain.OpUpscale:
		version = c.upscaleVersion
	case domain.OpBgRemove:
		version = c.bgRemoveVersion
	}
	if version == "" {
		return nil, nil
	}

	output, err := c.run(ctx, version, map[string]any{"image": imageURL})
	if err != nil {
		return nil, err
	}
	return extractOutputURLs(output), nil
}

// run submits one prediction and polls it until a terminal status or the
// attempt ceiling. The prediction is a remote resource; the local side only
// observes it.
func (c *Client) run(ctx context.Context, version string, input map[string]any) (any, error) {
	if !c.HasCredentials() {
		return nil, domain.NewAppError("missing replicate api token", http.StatusInternalServerError)
	}

	created, err := c.createPrediction(ctx, version, input)
	if err != nil {
		return nil, err
	}

	for i := 0; i < c.maxPollAttempts; i++ {
		polled, err := c.getPrediction(ctx, created.ID)
		if err != nil {
			return nil, err
		}

		switch polled.Status {
		case statusSucceeded:
			return polled.Output, nil
		case statusFailed, statusCanceled:
			message := polled.Error
			if message == "" {
				message = "replicate prediction failed"
			}
			return nil, domain.NewAppError(message, http.StatusBadGateway)
		}

		c.logger.Debug().
			Str("prediction_id", created.ID).
			Str("status", polled.Status).
			Int("attempt", i+1).
			Msg("replicate prediction still running")

		if err := sleepContext(ctx, pollDelay(c.pollInterval, i)); err != nil {
			return nil, err
		}
	}

	return nil, domain.NewAppError("replicate polling timeout", http.StatusGatewayTimeout)
}

func (c *Client) createPrediction(ctx context.Context, version string, input map[string]any) (*prediction, error) {
	body, err := json.Marshal(map[string]any{"version": version, "input": input})
	if err != nil {
		return nil, domain.NewAppError("replicate request failed", http.StatusBadGateway)
	}

	resp, err := retry.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		return c.request(ctx, http.MethodPost, "/predictions", body)
	}, retry.Options{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, domain.NewAppError("replicate prediction creation failed", http.StatusBadGateway)
	}

	var created prediction
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, domain.NewAppError("replicate prediction creation failed", http.StatusBadGateway)
	}
	return &created, nil
}

func (c *Client) getPrediction(ctx context.Context, id string) (*prediction, error) {
	resp, err := retry.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		return c.request(ctx, http.MethodGet, "/predictions/"+id, nil)
	}, retry.Options{})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, domain.NewAppError("replicate polling failed", http.StatusBadGateway)
	}

	var polled prediction
	if err := json.NewDecoder(resp.Body).Decode(&polled); err != nil {
		return nil, domain.NewAppError("replicate polling failed", http.StatusBadGateway)
	}
	return &polled, nil
}

// request performs one HTTP exchange. Only transport-level failures become
// errors here; status handling stays with the caller so that non-2xx
// responses fail fast instead of burning retry budget.
func (c *Client) request(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, domain.NewAppError("replicate request failed", http.StatusBadGateway)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewAppError("replicate request failed", http.StatusBadGateway)
	}
	return resp, nil
}

// extractOutputURLs coerces a successful prediction's output to URL strings.
// Unusable shapes yield an empty list rather than failing the request.
func extractOutputURLs(output any) []string {
	switch v := output.(type) {
	case string:
		if strings.HasPrefix(v, "http") {
			return []string{v}
		}
	case []any:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.HasPrefix(s, "http") {
				urls = append(urls, s)
			}
		}
		return urls
	}
	return nil
}

func pollDelay(base time.Duration, attempt int) time.Duration {
	delay := base << uint(attempt)
	if delay <= 0 || delay > maxPollDelay {
		return maxPollDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
