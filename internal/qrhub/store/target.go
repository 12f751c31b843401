package store

import (
	"context"
	"encoding/json"
)

// Target names a caller supplied document container. It is built fresh for
// each request and must be validated before it reaches a Dialer.
type Target struct {
	Endpoint    string
	Key         string
	DatabaseID  string
	ContainerID string
}

// Dialer runs a read-only full scan against a Target, returning at most
// limit documents. Implementations must not cache clients across calls.
type Dialer interface {
	ScanAll(ctx context.Context, t Target, limit int) ([]json.RawMessage, error)
}
