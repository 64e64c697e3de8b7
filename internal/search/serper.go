package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://google.serper.dev/search"

// SerperClient queries the Serper web-search API
type SerperClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	numResults int
}

// SerperResult is one organic search hit
type SerperResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num"`
}

type serperResponse struct {
	Organic []SerperResult `json:"organic"`
}

// NewSerperClient creates a Serper client
func NewSerperClient(apiKey, endpoint string, numResults int) *SerperClient {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if numResults <= 0 {
		numResults = 8
	}
	return &SerperClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		endpoint:   endpoint,
		apiKey:     apiKey,
		numResults: numResults,
	}
}

// Search runs one query and returns the organic results
func (c *SerperClient) Search(ctx context.Context, query string) ([]SerperResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("serper: API key is required")
	}

	payload, err := json.Marshal(serperRequest{Query: query, Num: c.numResults})
	if err != nil {
		return nil, fmt.Errorf("serper: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("serper: create request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("serper: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("serper: parse response: %w", err)
	}
	return parsed.Organic, nil
}
