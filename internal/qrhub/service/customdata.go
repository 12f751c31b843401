package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/slogx"
)

const (
	DefaultCustomDataHost     = ".documents.azure.com"
	DefaultCustomDataMaxItems = 1000
)

var resourceIDRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,254}$`)

// CustomDataService proxies a full scan of a caller named Cosmos container.
// Everything in the request is untrusted and is checked before any network
// call is made.
type CustomDataService struct {
	Dialer       store.Dialer
	AllowedHosts []string
	MaxItems     int
}

type CustomDataRequest struct {
	Endpoint    string
	Key         string
	DatabaseID  string
	ContainerID string
}

// Target validates req. Missing fields are ErrInvalidInput, anything else
// that fails is ErrInvalidTarget.
func (s *CustomDataService) Target(req CustomDataRequest) (store.Target, error) {
	t := store.Target{
		Endpoint:    strings.TrimSpace(req.Endpoint),
		Key:         strings.TrimSpace(req.Key),
		DatabaseID:  strings.TrimSpace(req.DatabaseID),
		ContainerID: strings.TrimSpace(req.ContainerID),
	}
	if t.Endpoint == "" || t.Key == "" || t.DatabaseID == "" || t.ContainerID == "" {
		return store.Target{}, ErrInvalidInput
	}

	u, err := url.Parse(t.Endpoint)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return store.Target{}, fmt.Errorf("%w: endpoint must be an https URL", ErrInvalidTarget)
	}
	if u.User != nil || (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return store.Target{}, fmt.Errorf("%w: endpoint must be a bare account URL", ErrInvalidTarget)
	}
	if !s.hostAllowed(u.Hostname()) {
		return store.Target{}, fmt.Errorf("%w: host %q is not allowed", ErrInvalidTarget, u.Hostname())
	}

	if key, err := base64.StdEncoding.DecodeString(t.Key); err != nil || len(key) == 0 {
		return store.Target{}, fmt.Errorf("%w: key is not valid base64", ErrInvalidTarget)
	}
	if !resourceIDRe.MatchString(t.DatabaseID) || !resourceIDRe.MatchString(t.ContainerID) {
		return store.Target{}, fmt.Errorf("%w: invalid database or container id", ErrInvalidTarget)
	}
	return t, nil
}

func (s *CustomDataService) hostAllowed(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	allowed := s.AllowedHosts
	if len(allowed) == 0 {
		allowed = []string{DefaultCustomDataHost}
	}
	for _, suffix := range allowed {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix == "" {
			continue
		}
		if !strings.HasPrefix(suffix, ".") {
			if host == suffix {
				return true
			}
			suffix = "." + suffix
		}
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}

// Fetch validates req and returns up to MaxItems documents from it.
func (s *CustomDataService) Fetch(ctx context.Context, req CustomDataRequest) ([]json.RawMessage, error) {
	t, err := s.Target(req)
	if err != nil {
		return nil, err
	}

	limit := s.MaxItems
	if limit <= 0 {
		limit = DefaultCustomDataMaxItems
	}

	docs, err := s.Dialer.ScanAll(ctx, t, limit)
	if err != nil {
		// The key never reaches the log.
		slogx.FromContext(ctx).Error("custom data fetch failed",
			slog.String("endpoint", t.Endpoint),
			slog.String("database_id", t.DatabaseID),
			slog.String("container_id", t.ContainerID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if docs == nil {
		docs = []json.RawMessage{}
	}
	return docs, nil
}
