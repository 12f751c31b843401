package cosmos

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	text, params := buildQuery(store.Query{})
	require.Equal(t, "SELECT * FROM c", text)
	require.Empty(t, params)

	text, params = buildQuery(store.Query{Conditions: []store.Condition{
		store.Eq("email", "a@x.com"),
		store.Defined("resetExpires"),
		store.Eq("verified", true),
	}})
	require.Equal(t, "SELECT * FROM c WHERE c.email = @p0 AND IS_DEFINED(c.resetExpires) AND c.verified = @p1", text)
	require.Equal(t, []azcosmos.QueryParameter{
		{Name: "@p0", Value: "a@x.com"},
		{Name: "@p1", Value: true},
	}, params)

	text, params = buildQuery(store.Query{Conditions: []store.Condition{store.EqFold("email", "ada@example.com")}})
	require.Equal(t, "SELECT * FROM c WHERE LOWER(c.email) = LOWER(@p0)", text)
	require.Equal(t, []azcosmos.QueryParameter{{Name: "@p0", Value: "ada@example.com"}}, params)
}

func TestMapError(t *testing.T) {
	require.NoError(t, mapError(nil))

	for status, want := range map[int]error{
		http.StatusNotFound:           store.ErrNotFound,
		http.StatusConflict:           store.ErrAlreadyExists,
		http.StatusPreconditionFailed: store.ErrPreconditionFailed,
	} {
		err := mapError(&azcore.ResponseError{StatusCode: status})
		require.ErrorIs(t, err, want, "status %d", status)
	}

	other := errors.New("boom")
	require.ErrorIs(t, mapError(other), other)
}

func TestItemFromBody(t *testing.T) {
	c := &Container{partitionKeyField: "id"}

	it, err := c.itemFromBody([]byte(`{"id":"a@x.com","email":"a@x.com","_etag":"\"0000\"","_ts":1}`))
	require.NoError(t, err)
	require.Equal(t, "a@x.com", it.ID)
	require.Equal(t, "a@x.com", it.PartitionKey)
	require.Equal(t, `"0000"`, it.ETag)

	_, err = c.itemFromBody([]byte(`[]`))
	require.Error(t, err)
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}
