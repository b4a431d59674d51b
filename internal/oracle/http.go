package oracle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/me/kborch/pkg/model"
)

// maxResponseBytes caps how much of an oracle response is read.
const maxResponseBytes = 1 << 20

// HTTPSource fetches the oracle verdict from a health endpoint with GET.
type HTTPSource struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPSource creates an HTTP-backed Source.
func NewHTTPSource(url string, timeout time.Duration, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With("component", "oracle", "mode", "http"),
	}
}

// Fetch performs one GET and normalizes the body. Connection failures and
// non-2xx statuses surface as ErrUnavailable.
func (s *HTTPSource) Fetch(ctx context.Context) (model.HealthRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return model.HealthRecord{}, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}

	s.logger.Debug("fetching oracle health", "url", s.url)

	resp, err := s.client.Do(req)
	if err != nil {
		return model.HealthRecord{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return model.HealthRecord{}, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, s.url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.HealthRecord{}, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	return Normalize(body)
}
