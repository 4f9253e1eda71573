package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Client reads the Intune application inventory from Graph.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Graph client. A nil httpClient uses one with the configured timeout.
func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Client{cfg: cfg, httpClient: httpClient, logger: logger}
}

// ListMobileApps fetches every page of the mobileApps collection, following
// @odata.nextLink until it is absent. Records keep the API order.
// Any failed page aborts the whole fetch.
func (c *Client) ListMobileApps(ctx context.Context, token string) ([]MobileApp, error) {
	var apps []MobileApp

	next := c.cfg.MobileAppsURL()
	for page := 1; next != ""; page++ {
		result, err := c.fetchPage(ctx, token, next)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch inventory page %d: %w", page, err)
		}

		apps = append(apps, result.Value...)
		c.logger.Debug("Fetched inventory page",
			zap.Int("page", page),
			zap.Int("records", len(result.Value)),
			zap.Bool("has_next", result.NextLink != ""),
		)
		next = result.NextLink
	}

	return apps, nil
}

func (c *Client) fetchPage(ctx context.Context, token, pageURL string) (*MobileAppPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readHTTPError(resp)
	}

	var page MobileAppPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode page: %w", err)
	}
	return &page, nil
}
