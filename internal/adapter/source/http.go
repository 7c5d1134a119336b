package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxBodyBytes bounds a downloaded table.
const maxBodyBytes = 32 << 20

// HTTP downloads a table with a GET request.
type HTTP struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTP creates an HTTP source with the given request timeout.
func NewHTTP(url string, timeout time.Duration, logger *slog.Logger) *HTTP {
	return &HTTP{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads the table body. Non-200 responses are errors.
func (h *HTTP) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	start := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", h.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("get %s: status %d: %s", h.url, resp.StatusCode, body)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxBodyBytes {
		return "", fmt.Errorf("get %s: body exceeds %d bytes", h.url, maxBodyBytes)
	}

	h.logger.Debug("source downloaded", "url", h.url, "bytes", len(data), "duration", time.Since(start))
	return string(data), nil
}
