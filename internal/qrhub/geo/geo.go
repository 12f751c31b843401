// Package geo resolves scanner IPs to an approximate location.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/domain"
)

const (
	DefaultEndpoint      = "http://ip-api.com/json/"
	DefaultTimeout       = 1500 * time.Millisecond
	DefaultRatePerMinute = 45
)

var (
	// ErrNotRoutable is returned for private, loopback and similar
	// addresses, which are never sent upstream.
	ErrNotRoutable = errors.New("geo: address not routable")
	ErrLookup      = errors.New("geo: lookup failed")
)

// Locator maps an IP to a location. Callers treat every error as "no
// location" and carry on.
type Locator interface {
	Locate(ctx context.Context, ip string) (*domain.Location, error)
}

// Disabled never resolves anything.
type Disabled struct{}

func (Disabled) Locate(context.Context, string) (*domain.Location, error) { return nil, nil }

type Config struct {
	Endpoint      string
	Timeout       time.Duration
	RatePerMinute int
	HTTPClient    *http.Client
}

// IPAPI queries an ip-api.com compatible endpoint.
type IPAPI struct {
	endpoint string
	timeout  time.Duration
	limiter  *rate.Limiter
	client   *http.Client
}

func NewIPAPI(cfg Config) *IPAPI {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = DefaultRatePerMinute
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if !strings.HasSuffix(cfg.Endpoint, "/") {
		cfg.Endpoint += "/"
	}

	return &IPAPI{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60), cfg.RatePerMinute),
		client:   cfg.HTTPClient,
	}
}

type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

func (c *IPAPI) Locate(ctx context.Context, ip string) (*domain.Location, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(ip))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotRoutable, ip)
	}
	if !Routable(addr) {
		return nil, ErrNotRoutable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// Wait fails fast when the next slot lies beyond the deadline.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limited: %w", ErrLookup, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+url.PathEscape(addr.Unmap().String()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrLookup, resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrLookup, err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrLookup, body.Message)
	}

	return &domain.Location{
		City:    body.City,
		Region:  body.RegionName,
		Country: body.Country,
		Lat:     body.Lat,
		Lon:     body.Lon,
	}, nil
}

// Routable reports whether addr is worth looking up.
func Routable(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast():
		return false
	}
	return true
}
