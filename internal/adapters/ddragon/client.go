// Package ddragon fetches static game assets from the Data Dragon CDN.
package ddragon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://ddragon.leagueoflegends.com/cdn"
	defaultTimeout = 15 * time.Second
)

// Client downloads champion and item icons for a fixed asset version.
type Client struct {
	baseURL    string
	version    string
	httpClient *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the CDN root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithVersion selects the asset set, e.g. "14.10.1".
func WithVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.version = version
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Data Dragon client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		version: "latest",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ChampionIcon fetches the square icon PNG for a champion by name.
func (c *Client) ChampionIcon(ctx context.Context, name string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s/img/champion/%s.png", c.baseURL, c.version, name))
}

// ItemIcon fetches the icon PNG for an item by numeric id.
func (c *Client) ItemIcon(ctx context.Context, id int) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("%s/%s/img/item/%s.png", c.baseURL, c.version, strconv.Itoa(id)))
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %w: %s", url, ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}
