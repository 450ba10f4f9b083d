package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/court-vision/internal/config"
	"github.com/yourusername/court-vision/internal/models"
)

// Slate is one day's bundle of fully-resolved game inputs
type Slate struct {
	Date  string                  `json:"date"`
	Games []*models.AnalysisInput `json:"games"`
}

// Client fetches slates from the feed service
type Client struct {
	http    *RateLimitedHTTPClient
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewClient creates a feed client from configuration
func NewClient(cfg config.FeedConfig, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.MaxRetries > 0 {
		httpCfg.MaxRetries = cfg.MaxRetries
	}
	if cfg.RateLimit > 0 {
		httpCfg.RateLimit = cfg.RateLimit
	}
	return &Client{
		http:    NewRateLimitedHTTPClient(httpCfg, logger),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

// FetchSlate retrieves the resolved slate for a date (YYYY-MM-DD)
func (c *Client) FetchSlate(ctx context.Context, date string) (*Slate, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("feed base URL is not configured")
	}

	url := fmt.Sprintf("%s/slates/%s", c.baseURL, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slate %s: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d for slate %s", resp.StatusCode, date)
	}

	var slate Slate
	if err := json.NewDecoder(resp.Body).Decode(&slate); err != nil {
		return nil, fmt.Errorf("failed to decode slate %s: %w", date, err)
	}

	c.logger.WithFields(logrus.Fields{
		"date":  slate.Date,
		"games": len(slate.Games),
	}).Info("Slate fetched")
	return &slate, nil
}

// Close releases the underlying HTTP client
func (c *Client) Close() error {
	return c.http.Close()
}

// LoadSlateFile reads a slate bundle from a local JSON file. Backtests and
// offline analysis use this path instead of the feed service.
func LoadSlateFile(path string) (*Slate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slate file: %w", err)
	}

	var slate Slate
	if err := json.Unmarshal(data, &slate); err != nil {
		return nil, fmt.Errorf("failed to parse slate file %s: %w", path, err)
	}
	return &slate, nil
}
