package qrsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to a qrhub server. Token, when set, is sent as a bearer
// session on every request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithSession returns a copy of c that authenticates with token.
func (c *Client) WithSession(token string) *Client {
	cp := *c
	cp.Token = token
	return &cp
}
