// Package gateway is an HTTP client for the menu API, implementing the
// same persistence surface as the storage adapters so callers cannot
// tell a remote service from a local database.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/dinner"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
)

type Client struct {
	baseURL string
	http    *http.Client
}

var _ menus.Gateway = (*Client)(nil)

// NewClient targets a menu service at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type saveRequest struct {
	ID   string          `json:"id"`
	Data core.MenuBundle `json:"data"`
}

type saveResponse struct {
	ID string `json:"id"`
}

type getResponse struct {
	ID   string          `json:"id"`
	Data core.MenuBundle `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Load implements menus.BundleLoader. A 404 maps to menus.ErrNotFound.
func (c *Client) Load(ctx context.Context, id string) (core.MenuBundle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/menu/"+id, nil)
	if err != nil {
		return core.MenuBundle{}, fmt.Errorf("build load request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return core.MenuBundle{}, fmt.Errorf("load menu %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return core.MenuBundle{}, menus.ErrNotFound
	default:
		return core.MenuBundle{}, fmt.Errorf("load menu %s: %s", id, remoteError(resp))
	}

	var body getResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return core.MenuBundle{}, fmt.Errorf("decode menu %s: %w", id, err)
	}
	return body.Data.Normalize(), nil
}

// Save implements menus.BundleSaver. The service mints an id when the
// given one is empty.
func (c *Client) Save(ctx context.Context, id string, b core.MenuBundle) (string, error) {
	payload, err := json.Marshal(saveRequest{ID: id, Data: b})
	if err != nil {
		return "", fmt.Errorf("encode menu: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/menu", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("save menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("save menu: %s", remoteError(resp))
	}

	var body saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode save response: %w", err)
	}
	if body.ID == "" {
		return "", fmt.Errorf("save menu: service returned no id")
	}
	return body.ID, nil
}

type suggestRequest struct {
	Lunch string `json:"lunch"`
}

type suggestResponse struct {
	Suggestions []dinner.Suggestion `json:"suggestions"`
}

// SuggestDinners implements dinner.Suggester against the service's
// suggestion endpoint.
func (c *Client) SuggestDinners(ctx context.Context, lunch string) ([]dinner.Suggestion, error) {
	payload, err := json.Marshal(suggestRequest{Lunch: lunch})
	if err != nil {
		return nil, fmt.Errorf("encode suggestion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/dinner-suggestions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dinner.ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", dinner.ErrService, remoteError(resp))
	}

	var body suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", dinner.ErrService, err)
	}
	return body.Suggestions, nil
}

// remoteError extracts the service's error message, falling back to the
// HTTP status.
func remoteError(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Sprintf("%s (status %d)", body.Error, resp.StatusCode)
	}
	return resp.Status
}
