package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
)

// Container implements store.Container on a Cosmos SQL API container.
type Container struct {
	cc                *azcosmos.ContainerClient
	partitionKeyField string
}

var _ store.Container = (*Container)(nil)

func (c *Container) Query(ctx context.Context, q store.Query) ([]store.Item, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	text, params := buildQuery(q)
	pk := azcosmos.NewPartitionKey()
	if q.PartitionKey != "" {
		pk = azcosmos.NewPartitionKeyString(q.PartitionKey)
	}

	pager := c.cc.NewQueryItemsPager(text, pk, &azcosmos.QueryOptions{QueryParameters: params})

	var out []store.Item
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		for _, raw := range page.Items {
			it, err := c.itemFromBody(raw)
			if err != nil {
				return nil, err
			}
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Container) Read(ctx context.Context, partitionKey, id string) (store.Item, error) {
	resp, err := c.cc.ReadItem(ctx, azcosmos.NewPartitionKeyString(partitionKey), id, nil)
	if err != nil {
		return store.Item{}, mapError(err)
	}
	return store.Item{ID: id, PartitionKey: partitionKey, Body: resp.Value, ETag: string(resp.ETag)}, nil
}

func (c *Container) Create(ctx context.Context, it store.Item) (store.Item, error) {
	resp, err := c.cc.CreateItem(ctx, azcosmos.NewPartitionKeyString(it.PartitionKey), it.Body, nil)
	if err != nil {
		return store.Item{}, mapError(err)
	}
	it.ETag = string(resp.ETag)
	return it, nil
}

func (c *Container) Replace(ctx context.Context, it store.Item, ifMatch string) (store.Item, error) {
	var opts *azcosmos.ItemOptions
	if ifMatch != "" {
		etag := azcore.ETag(ifMatch)
		opts = &azcosmos.ItemOptions{IfMatchEtag: &etag}
	}

	resp, err := c.cc.ReplaceItem(ctx, azcosmos.NewPartitionKeyString(it.PartitionKey), it.ID, it.Body, opts)
	if err != nil {
		return store.Item{}, mapError(err)
	}
	it.ETag = string(resp.ETag)
	return it, nil
}

func (c *Container) Upsert(ctx context.Context, it store.Item) (store.Item, error) {
	resp, err := c.cc.UpsertItem(ctx, azcosmos.NewPartitionKeyString(it.PartitionKey), it.Body, nil)
	if err != nil {
		return store.Item{}, mapError(err)
	}
	it.ETag = string(resp.ETag)
	return it, nil
}

func (c *Container) Delete(ctx context.Context, partitionKey, id string) error {
	_, err := c.cc.DeleteItem(ctx, azcosmos.NewPartitionKeyString(partitionKey), id, nil)
	return mapError(err)
}

func (c *Container) Ping(ctx context.Context) error {
	return pingContainer(ctx, c.cc)
}

// buildQuery renders q as Cosmos SQL. Field names have been validated as
// identifiers; values always travel as parameters.
func buildQuery(q store.Query) (string, []azcosmos.QueryParameter) {
	var (
		clauses []string
		params  []azcosmos.QueryParameter
	)
	for _, cond := range q.Conditions {
		switch cond.Op {
		case store.OpEq:
			name := "@p" + strconv.Itoa(len(params))
			clauses = append(clauses, "c."+cond.Field+" = "+name)
			params = append(params, azcosmos.QueryParameter{Name: name, Value: cond.Value})
		case store.OpDefined:
			clauses = append(clauses, "IS_DEFINED(c."+cond.Field+")")
		case store.OpEqFold:
			name := "@p" + strconv.Itoa(len(params))
			clauses = append(clauses, "LOWER(c."+cond.Field+") = LOWER("+name+")")
			params = append(params, azcosmos.QueryParameter{Name: name, Value: cond.Value})
		}
	}

	text := "SELECT * FROM c"
	if len(clauses) > 0 {
		text += " WHERE " + strings.Join(clauses, " AND ")
	}
	return text, params
}

// itemFromBody recovers id, partition key and etag from a query result,
// where Cosmos reports them only inside the document.
func (c *Container) itemFromBody(raw []byte) (store.Item, error) {
	var meta map[string]json.RawMessage
	if err := json.Unmarshal(raw, &meta); err != nil {
		return store.Item{}, fmt.Errorf("cosmos: decode query result: %w", err)
	}

	str := func(key string) string {
		var s string
		_ = json.Unmarshal(meta[key], &s)
		return s
	}

	return store.Item{
		ID:           str("id"),
		PartitionKey: str(c.partitionKeyField),
		Body:         raw,
		ETag:         str("_etag"),
	}, nil
}
