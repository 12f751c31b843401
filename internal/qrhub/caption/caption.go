// Package caption forwards images to a hosted captioning model.
package caption

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultURL     = "https://api-inference.huggingface.co/models/Salesforce/blip-image-captioning-large"
	DefaultTimeout = 30 * time.Second
)

var (
	// ErrNotConfigured means no API key was provided at startup.
	ErrNotConfigured = errors.New("caption: not configured")
	ErrUpstream      = errors.New("caption: upstream failure")
)

type Config struct {
	URL        string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	url     string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func New(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{url: cfg.URL, apiKey: cfg.APIKey, timeout: cfg.Timeout, http: cfg.HTTPClient}
}

func (c *Client) Configured() bool { return c != nil && c.apiKey != "" }

// Caption returns the model's description of image.
func (c *Client) Caption(ctx context.Context, image []byte, contentType string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read: %w", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	return parseCaption(body)
}

// The inference API answers with a list, though some models send a bare
// object.
func parseCaption(body []byte) (string, error) {
	type generated struct {
		Text string `json:"generated_text"`
	}

	var list []generated
	if err := json.Unmarshal(body, &list); err == nil {
		for _, g := range list {
			if s := strings.TrimSpace(g.Text); s != "" {
				return s, nil
			}
		}
		return "", fmt.Errorf("%w: empty caption", ErrUpstream)
	}

	var one generated
	if err := json.Unmarshal(body, &one); err != nil {
		return "", fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}
	if s := strings.TrimSpace(one.Text); s != "" {
		return s, nil
	}
	return "", fmt.Errorf("%w: empty caption", ErrUpstream)
}
