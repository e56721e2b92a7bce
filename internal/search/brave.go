package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoCredential is returned when no search API key is configured. Callers
// treat it as "no results available", never as a request failure.
var ErrNoCredential = errors.New("missing search API key")

type BraveConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// BraveClient talks to the Brave web search API.
type BraveClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewBraveClient(cfg BraveConfig) *BraveClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.search.brave.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BraveClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *BraveClient) Configured() bool {
	return c.apiKey != ""
}

func (c *BraveClient) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredential
	}
	if count <= 0 {
		count = 5
	}
	endpoint := c.baseURL + "/res/v1/web/search?q=" + url.QueryEscape(query) + "&count=" + strconv.Itoa(count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed struct {
		Web struct {
			Results []Result `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Web.Results, nil
}
