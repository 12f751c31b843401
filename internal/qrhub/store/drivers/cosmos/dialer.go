package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
)

// Dialer builds a brand new client for every ScanAll call. Caller supplied
// credentials never outlive the request that carried them.
type Dialer struct {
	HTTPClient *http.Client
}

var _ store.Dialer = Dialer{}

func (d Dialer) ScanAll(ctx context.Context, t store.Target, limit int) ([]json.RawMessage, error) {
	az, err := newAzClient(t.Endpoint, t.Key, d.HTTPClient)
	if err != nil {
		return nil, err
	}
	cc, err := az.NewContainer(t.DatabaseID, t.ContainerID)
	if err != nil {
		return nil, fmt.Errorf("cosmos: container: %w", err)
	}

	var opts azcosmos.QueryOptions
	if limit > 0 && limit < 1000 {
		opts.PageSizeHint = int32(limit) // #nosec G115
	}
	pager := cc.NewQueryItemsPager("SELECT * FROM c", azcosmos.NewPartitionKey(), &opts)

	var out []json.RawMessage
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		for _, raw := range page.Items {
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
			out = append(out, json.RawMessage(raw))
		}
	}
	return out, nil
}
