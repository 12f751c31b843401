package cosmos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/store"
)

type Config struct {
	Endpoint string
	Key      string

	// HTTPClient carries the instrumented transport. Optional.
	HTTPClient *http.Client
}

// Client is one account level connection, shared by every container handle
// built from it.
type Client struct {
	az *azcosmos.Client
}

func NewClient(cfg Config) (*Client, error) {
	az, err := newAzClient(cfg.Endpoint, cfg.Key, cfg.HTTPClient)
	if err != nil {
		return nil, err
	}
	return &Client{az: az}, nil
}

func newAzClient(endpoint, key string, hc *http.Client) (*azcosmos.Client, error) {
	if endpoint == "" || key == "" {
		return nil, errors.New("cosmos: endpoint and key are required")
	}

	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		return nil, fmt.Errorf("cosmos: credential: %w", err)
	}

	var opts azcosmos.ClientOptions
	if hc != nil {
		opts.ClientOptions = policy.ClientOptions{Transport: hc}
	}

	az, err := azcosmos.NewClientWithKey(endpoint, cred, &opts)
	if err != nil {
		return nil, fmt.Errorf("cosmos: client: %w", err)
	}
	return az, nil
}

// Container returns a handle on databaseID/containerID. Both containers
// used by qrhub are partitioned on /id.
func (c *Client) Container(databaseID, containerID string) (*Container, error) {
	cc, err := c.az.NewContainer(databaseID, containerID)
	if err != nil {
		return nil, fmt.Errorf("cosmos: container %s/%s: %w", databaseID, containerID, err)
	}
	return &Container{cc: cc, partitionKeyField: "id"}, nil
}

// mapError folds Cosmos status codes onto the store sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var re *azcore.ResponseError
	if errors.As(err, &re) {
		switch re.StatusCode {
		case http.StatusNotFound:
			return store.ErrNotFound
		case http.StatusConflict:
			return store.ErrAlreadyExists
		case http.StatusPreconditionFailed:
			return store.ErrPreconditionFailed
		}
	}
	return fmt.Errorf("cosmos: %w", err)
}

func pingContainer(ctx context.Context, cc *azcosmos.ContainerClient) error {
	_, err := cc.Read(ctx, nil)
	return mapError(err)
}
