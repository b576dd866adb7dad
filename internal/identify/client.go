package identify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/notewise/internal/notes"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

// Client calls a live identification service over HTTP.
// It performs a single attempt per call; retry belongs to the caller.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a live client posting to endpoint.
func NewClient(endpoint string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		logger:   logger.With("system", "identify", "mode", ModeLive),
	}
}

// IdentifyNote posts the image and validates the response.
func (c *Client) IdentifyNote(ctx context.Context, image string) (*Result, error) {
	body, err := json.Marshal(notes.Request{Image: image})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrServiceUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrServiceUnavailable, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	logger := c.logger.With("request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("identification request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("identification service returned error status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("read identification response failed", "error", err)
		return nil, fmt.Errorf("%w: read response: %w", ErrServiceUnavailable, err)
	}

	result, err := Validate(data)
	if err != nil {
		logger.Error("invalid identification response", "error", err)
		return nil, err
	}

	logger.Info(
		"note identified",
		"denomination", deref(result.Denomination),
		"currency", deref(result.CurrencyCode),
		"confidence", result.Confidence,
		"blurry", result.IsBlurry,
	)

	return result, nil
}
