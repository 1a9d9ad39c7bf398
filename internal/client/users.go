package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// UsersClient implements canvas.UsersClient.
type UsersClient struct {
	client *Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(client *Client) *UsersClient {
	return &UsersClient{client: client}
}

// Get implements canvas.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID int64) (*canvas.User, error) {
	return c.get(ctx, strconv.FormatInt(userID, 10))
}

// GetSelf implements canvas.UsersClient.GetSelf.
func (c *UsersClient) GetSelf(ctx context.Context) (*canvas.User, error) {
	return c.get(ctx, "self")
}

func (c *UsersClient) get(ctx context.Context, id string) (*canvas.User, error) {
	user, err := canvas.Call[canvas.User](ctx, c.client, canvas.Get("/api/v1/users/"+id))
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

// ListForAccount implements canvas.UsersClient.ListForAccount.
func (c *UsersClient) ListForAccount(accountID int64, params canvas.Params) *canvas.PageIterator[canvas.User] {
	path := "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/users"

	spec := canvas.Get(path).WithQuery(c.client.listParams(params))

	return canvas.Paginate[canvas.User](c.client, spec)
}
