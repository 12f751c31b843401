package sqlite_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func doc(t *testing.T, id string, fields map[string]any) store.Item {
	t.Helper()
	fields["id"] = id
	body, err := json.Marshal(fields)
	require.NoError(t, err)
	return store.Item{ID: id, PartitionKey: id, Body: body}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
}

func TestCreateAndRead(t *testing.T) {
	ctx := context.Background()
	c := newTestStore(t).Container("accounts")

	created, err := c.Create(ctx, doc(t, "a@x.com", map[string]any{"email": "a@x.com"}))
	require.NoError(t, err)
	require.NotEmpty(t, created.ETag)

	_, err = c.Create(ctx, doc(t, "a@x.com", map[string]any{"email": "a@x.com"}))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := c.Read(ctx, "a@x.com", "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ETag, got.ETag)
	require.JSONEq(t, `{"id":"a@x.com","email":"a@x.com"}`, string(got.Body))

	_, err = c.Read(ctx, "b@x.com", "b@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestContainersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Container("accounts").Create(ctx, doc(t, "same", map[string]any{}))
	require.NoError(t, err)
	_, err = s.Container("projects").Create(ctx, doc(t, "same", map[string]any{}))
	require.NoError(t, err)

	_, err = s.Container("other").Read(ctx, "same", "same")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestReplaceHonoursETag(t *testing.T) {
	ctx := context.Background()
	c := newTestStore(t).Container("projects")

	v1, err := c.Create(ctx, doc(t, "p1", map[string]any{"scanCount": 1}))
	require.NoError(t, err)

	v2, err := c.Replace(ctx, doc(t, "p1", map[string]any{"scanCount": 2}), v1.ETag)
	require.NoError(t, err)
	require.NotEqual(t, v1.ETag, v2.ETag)

	// A writer still holding v1 loses.
	_, err = c.Replace(ctx, doc(t, "p1", map[string]any{"scanCount": 99}), v1.ETag)
	require.ErrorIs(t, err, store.ErrPreconditionFailed)

	got, err := c.Read(ctx, "p1", "p1")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"p1","scanCount":2}`, string(got.Body))

	_, err = c.Replace(ctx, doc(t, "missing", map[string]any{}), v1.ETag)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = c.Replace(ctx, doc(t, "missing", map[string]any{}), "")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = c.Replace(ctx, doc(t, "p1", map[string]any{"scanCount": 3}), "")
	require.NoError(t, err, "unconditional replace")
}

func TestUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestStore(t).Container("projects")

	first, err := c.Upsert(ctx, doc(t, "p1", map[string]any{"name": "a"}))
	require.NoError(t, err)
	second, err := c.Upsert(ctx, doc(t, "p1", map[string]any{"name": "b"}))
	require.NoError(t, err)
	require.NotEqual(t, first.ETag, second.ETag)

	got, err := c.Read(ctx, "p1", "p1")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"p1","name":"b"}`, string(got.Body))

	require.NoError(t, c.Delete(ctx, "p1", "p1"))
	require.ErrorIs(t, c.Delete(ctx, "p1", "p1"), store.ErrNotFound)
}

func TestQueryConditions(t *testing.T) {
	ctx := context.Background()
	c := newTestStore(t).Container("accounts")

	for _, it := range []store.Item{
		doc(t, "a", map[string]any{"email": "a@x.com", "verified": true}),
		doc(t, "b", map[string]any{"email": "b@x.com", "verified": false, "resetExpires": 123}),
		doc(t, "c", map[string]any{"email": "c@x.com", "verified": true, "resetExpires": 456}),
	} {
		_, err := c.Create(ctx, it)
		require.NoError(t, err)
	}

	ids := func(items []store.Item) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	got, err := c.Query(ctx, store.Query{Conditions: []store.Condition{store.Eq("email", "b@x.com")}})
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, ids(got))

	got, err = c.Query(ctx, store.Query{Conditions: []store.Condition{store.Eq("verified", true)}})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "c"}, ids(got))

	got, err = c.Query(ctx, store.Query{Conditions: []store.Condition{
		store.Defined("resetExpires"),
		store.Eq("verified", true),
	}})
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, ids(got))

	got, err = c.Query(ctx, store.Query{PartitionKey: "a"})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, ids(got))

	_, err = c.Query(ctx, store.Query{Conditions: []store.Condition{store.Eq("email') OR 1=1 --", "x")}})
	require.ErrorIs(t, err, store.ErrInvalidQuery)
}
