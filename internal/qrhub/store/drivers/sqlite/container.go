package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/pkg/idx"
)

// Container implements store.Container over the documents table. Fields
// are matched with json_extract, so Eq compares against JSON scalars.
type Container struct {
	db   *sql.DB
	name string
	now  func() time.Time
}

var _ store.Container = (*Container)(nil)

var errMissingID = errors.New("sqlite: item id and partition key are required")

func (c *Container) Query(ctx context.Context, q store.Query) ([]store.Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, partition_key, body, etag FROM documents WHERE container = ?`)
	args := []any{c.name}

	if q.PartitionKey != "" {
		sb.WriteString(` AND partition_key = ?`)
		args = append(args, q.PartitionKey)
	}

	// Field names passed Validate, so splicing them keeps the expression
	// indexes usable.
	for _, cond := range q.Conditions {
		path := `'$.` + cond.Field + `'`
		switch cond.Op {
		case store.OpEq:
			sb.WriteString(` AND json_extract(body, ` + path + `) = ?`)
			args = append(args, scalar(cond.Value))
		case store.OpDefined:
			sb.WriteString(` AND json_type(body, ` + path + `) IS NOT NULL`)
		case store.OpEqFold:
			sb.WriteString(` AND lower(json_extract(body, ` + path + `)) = lower(?)`)
			args = append(args, scalar(cond.Value))
		}
	}
	sb.WriteString(` ORDER BY rowid`)

	rows, err := c.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query %s: %w", c.name, err)
	}
	defer rows.Close()

	var out []store.Item
	for rows.Next() {
		var (
			it   store.Item
			body string
		)
		if err := rows.Scan(&it.ID, &it.PartitionKey, &body, &it.ETag); err != nil {
			return nil, err
		}
		it.Body = []byte(body)
		out = append(out, it)
	}
	return out, rows.Err()
}

func (c *Container) Read(ctx context.Context, partitionKey, id string) (store.Item, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, partition_key, body, etag FROM documents
		 WHERE container = ? AND partition_key = ? AND id = ?`,
		c.name, partitionKey, id,
	)

	var (
		it   store.Item
		body string
	)
	if err := row.Scan(&it.ID, &it.PartitionKey, &body, &it.ETag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Item{}, store.ErrNotFound
		}
		return store.Item{}, err
	}
	it.Body = []byte(body)
	return it, nil
}

func (c *Container) Create(ctx context.Context, it store.Item) (store.Item, error) {
	if it.ID == "" || it.PartitionKey == "" {
		return store.Item{}, errMissingID
	}

	it.ETag = newETag()
	now := c.now().UTC()
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO documents (container, partition_key, id, body, etag, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (container, partition_key, id) DO NOTHING`,
		c.name, it.PartitionKey, it.ID, string(it.Body), it.ETag, now, now,
	)
	if err != nil {
		return store.Item{}, fmt.Errorf("sqlite: create %s/%s: %w", c.name, it.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.Item{}, store.ErrAlreadyExists
	}
	return it, nil
}

func (c *Container) Replace(ctx context.Context, it store.Item, ifMatch string) (store.Item, error) {
	if it.ID == "" || it.PartitionKey == "" {
		return store.Item{}, errMissingID
	}

	next := newETag()
	query := `UPDATE documents SET body = ?, etag = ?, updated_at = ?
		WHERE container = ? AND partition_key = ? AND id = ?`
	args := []any{string(it.Body), next, c.now().UTC(), c.name, it.PartitionKey, it.ID}
	if ifMatch != "" {
		query += ` AND etag = ?`
		args = append(args, ifMatch)
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.Item{}, fmt.Errorf("sqlite: replace %s/%s: %w", c.name, it.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if ifMatch == "" {
			return store.Item{}, store.ErrNotFound
		}
		if _, err := c.Read(ctx, it.PartitionKey, it.ID); err != nil {
			return store.Item{}, err
		}
		return store.Item{}, store.ErrPreconditionFailed
	}

	it.ETag = next
	return it, nil
}

func (c *Container) Upsert(ctx context.Context, it store.Item) (store.Item, error) {
	if it.ID == "" || it.PartitionKey == "" {
		return store.Item{}, errMissingID
	}

	it.ETag = newETag()
	now := c.now().UTC()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO documents (container, partition_key, id, body, etag, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (container, partition_key, id) DO UPDATE SET
		     body = excluded.body,
		     etag = excluded.etag,
		     updated_at = excluded.updated_at`,
		c.name, it.PartitionKey, it.ID, string(it.Body), it.ETag, now, now,
	)
	if err != nil {
		return store.Item{}, fmt.Errorf("sqlite: upsert %s/%s: %w", c.name, it.ID, err)
	}
	return it, nil
}

func (c *Container) Delete(ctx context.Context, partitionKey, id string) error {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM documents WHERE container = ? AND partition_key = ? AND id = ?`,
		c.name, partitionKey, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: delete %s/%s: %w", c.name, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c *Container) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func newETag() string { return `"` + idx.New().String() + `"` }

// scalar maps Go values onto what json_extract returns for the same JSON.
func scalar(v any) any {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return v
	}
}
