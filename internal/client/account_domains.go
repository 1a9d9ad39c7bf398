package client

import (
	"context"
	"fmt"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// AccountDomainsClient implements canvas.AccountDomainsClient.
type AccountDomainsClient struct {
	client *Client
}

// NewAccountDomainsClient creates a new account domains client.
func NewAccountDomainsClient(client *Client) *AccountDomainsClient {
	return &AccountDomainsClient{client: client}
}

// Search implements canvas.AccountDomainsClient.Search. The endpoint
// needs no authentication on real deployments and caps results at 5.
func (c *AccountDomainsClient) Search(ctx context.Context, name, domain string) ([]canvas.AccountDomain, error) {
	params := canvas.NewParams()
	if name != "" {
		params = params.Add("name", name)
	}

	if domain != "" {
		params = params.Add("domain", domain)
	}

	spec := canvas.Get("/api/v1/accounts/search").WithQuery(params)

	domains, err := canvas.Call[[]canvas.AccountDomain](ctx, c.client, spec)
	if err != nil {
		return nil, fmt.Errorf("searching account domains: %w", err)
	}

	return *domains, nil
}
