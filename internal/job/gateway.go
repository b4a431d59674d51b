package job

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// GatewayJob forwards execution to the external job executor's /jobs
// endpoint. The response is opaque and passed through uninterpreted.
type GatewayJob struct {
	id      string
	baseURL string
	source  string
	client  *http.Client
	logger  *slog.Logger
}

// NewGatewayJob creates a remote-dispatch job registered under id.
// baseURL is the gateway root; source tags dispatch payloads with their origin.
func NewGatewayJob(id, baseURL, source string, logger *slog.Logger) *GatewayJob {
	return &GatewayJob{
		id:      id,
		baseURL: baseURL,
		source:  source,
		client:  &http.Client{},
		logger:  logger.With("component", "job", "id", id),
	}
}

// ID returns the job identifier.
func (j *GatewayJob) ID() string {
	return j.id
}

// Execute POSTs the dispatch payload to the gateway and returns the decoded
// response body.
func (j *GatewayJob) Execute(ctx context.Context) (any, error) {
	payload := map[string]any{
		"job_id": j.id,
		"payload": map[string]any{
			"source": j.source,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal dispatch payload: %w", err)
	}

	url := j.baseURL + "/jobs"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	j.logger.Debug("dispatching to gateway", "url", url)

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dispatch to gateway: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	return result, nil
}
