// Raw requests against the Spotify Web API, sent through the same client as [SpotifyService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RawClient sends arbitrary requests to the API, for inspecting endpoints from the CLI.
type RawClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRawClient creates a new raw client for the API at baseURL.
func NewRawClient(baseURL string, client *http.Client) *RawClient {
	if client == nil {
		client = http.DefaultClient
	}

	return &RawClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *RawClient) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodGet, path, nil)
}

// Put performs a PUT request with the given JSON data and returns the raw response.
func (a *RawClient) Put(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPut, path, data)
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *RawClient) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPost, path, data)
}

// Do performs a request with an optional JSON body. Paths are relative to the API base URL.
func (a *RawClient) Do(ctx context.Context, method, path string, data []byte) (*APIResponse, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
