package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrNotFound           = errors.New("store: not found")
	ErrAlreadyExists      = errors.New("store: already exists")
	ErrPreconditionFailed = errors.New("store: etag precondition failed")
	ErrInvalidQuery       = errors.New("store: invalid query")
)

// Item is a raw document as held by a Container. ETag is assigned by the
// driver on every write.
type Item struct {
	ID           string
	PartitionKey string
	Body         json.RawMessage
	ETag         string
}

type Op int

const (
	OpEq Op = iota
	OpDefined
	OpEqFold
)

// Condition filters on a top level document field.
type Condition struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Condition { return Condition{Field: field, Op: OpEq, Value: value} }
func Defined(field string) Condition       { return Condition{Field: field, Op: OpDefined} }

// EqFold matches a string field ignoring ASCII case.
func EqFold(field, value string) Condition {
	return Condition{Field: field, Op: OpEqFold, Value: value}
}

// Query ANDs its conditions. An empty PartitionKey runs across partitions.
type Query struct {
	Conditions   []Condition
	PartitionKey string
}

var fieldRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate rejects field names that are not plain identifiers. Drivers
// splice field names into query text, so this runs before every query.
func (q Query) Validate() error {
	for _, c := range q.Conditions {
		if !fieldRe.MatchString(c.Field) {
			return fmt.Errorf("%w: field %q", ErrInvalidQuery, c.Field)
		}
		switch c.Op {
		case OpEq, OpDefined, OpEqFold:
		default:
			return fmt.Errorf("%w: operator %d", ErrInvalidQuery, c.Op)
		}
	}
	return nil
}

// Container is the document API every driver implements: query by
// equality, point read, create, conditional replace, upsert and delete, all
// addressed by partition key and id.
type Container interface {
	Query(ctx context.Context, q Query) ([]Item, error)
	Read(ctx context.Context, partitionKey, id string) (Item, error)

	// Create fails with ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, item Item) (Item, error)

	// Replace fails with ErrNotFound when the document is gone and with
	// ErrPreconditionFailed when ifMatch is set and differs from the stored
	// etag. An empty ifMatch replaces unconditionally.
	Replace(ctx context.Context, item Item, ifMatch string) (Item, error)

	Upsert(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, partitionKey, id string) error
	Ping(ctx context.Context) error
}

// Store is the root data access interface. It exposes typed repositories
// over the accounts and projects containers.
type Store interface {
	Accounts() Accounts
	Projects() Projects

	// Ping verifies both containers are reachable.
	Ping(ctx context.Context) error
	Close() error
}

type documentStore struct {
	accounts Container
	projects Container
	close    func() error
}

// New builds a Store over two containers. closeFn releases whatever the
// driver holds and may be nil.
func New(accounts, projects Container, closeFn func() error) Store {
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &documentStore{accounts: accounts, projects: projects, close: closeFn}
}

func (s *documentStore) Accounts() Accounts { return &accountsRepo{c: s.accounts} }
func (s *documentStore) Projects() Projects { return &projectsRepo{c: s.projects} }
func (s *documentStore) Close() error       { return s.close() }

func (s *documentStore) Ping(ctx context.Context) error {
	if err := s.accounts.Ping(ctx); err != nil {
		return fmt.Errorf("accounts: %w", err)
	}
	if err := s.projects.Ping(ctx); err != nil {
		return fmt.Errorf("projects: %w", err)
	}
	return nil
}

func encode(id string, v any) (Item, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Item{}, fmt.Errorf("store: encode %s: %w", id, err)
	}
	return Item{ID: id, PartitionKey: id, Body: body}, nil
}

func decode[T any](it Item, dst *T) error {
	if err := json.Unmarshal(it.Body, dst); err != nil {
		return fmt.Errorf("store: decode %s: %w", it.ID, err)
	}
	return nil
}
