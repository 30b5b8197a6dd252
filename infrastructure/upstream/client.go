// Package upstream talks to the dashboard backend that computes the
// contact graph from communication metadata. The visualization core
// never fetches data itself; this client is the boundary.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"netviz/domain/graph"
	pkgerrors "netviz/pkg/errors"
)

// Client fetches graph payloads from the upstream network endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an upstream client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchGraph retrieves the current graph payload. Failures surface as
// UNAVAILABLE errors; retry is a user action, never automatic.
func (c *Client) FetchGraph(ctx context.Context, accessToken string) (*graph.Payload, error) {
	url := c.baseURL + "/network/graph"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.NewInternalError("building upstream request").WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewUnavailableError("graph source unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewUnavailableError(
			fmt.Sprintf("graph source returned status %d", resp.StatusCode),
		)
	}

	var payload graph.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.NewUnavailableError("malformed graph payload").WithCause(err)
	}

	c.logger.Debug("graph payload fetched",
		zap.String("status", payload.Status),
		zap.Int("nodes", len(payload.Nodes)),
		zap.Int("edges", len(payload.Edges)),
		zap.Duration("duration", time.Since(start)),
	)

	return &payload, nil
}
