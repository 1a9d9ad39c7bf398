package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// AccountNotificationsClient implements canvas.AccountNotificationsClient.
type AccountNotificationsClient struct {
	client *Client
}

// NewAccountNotificationsClient creates a new account notifications client.
func NewAccountNotificationsClient(client *Client) *AccountNotificationsClient {
	return &AccountNotificationsClient{client: client}
}

func notificationsPath(accountID int64) string {
	return "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/account_notifications"
}

// List implements canvas.AccountNotificationsClient.List.
func (c *AccountNotificationsClient) List(accountID int64, includePast bool) *canvas.PageIterator[canvas.AccountNotification] {
	params := canvas.NewParams()
	if includePast {
		params = params.AddBool("include_past", true)
	}

	spec := canvas.Get(notificationsPath(accountID)).WithQuery(c.client.listParams(params))

	return canvas.Paginate[canvas.AccountNotification](c.client, spec)
}

// Get implements canvas.AccountNotificationsClient.Get.
func (c *AccountNotificationsClient) Get(ctx context.Context, accountID, notificationID int64) (*canvas.AccountNotification, error) {
	path := notificationsPath(accountID) + "/" + strconv.FormatInt(notificationID, 10)

	notification, err := canvas.Call[canvas.AccountNotification](ctx, c.client, canvas.Get(path))
	if err != nil {
		return nil, fmt.Errorf("getting account notification: %w", err)
	}

	return notification, nil
}

// Close implements canvas.AccountNotificationsClient.Close.
func (c *AccountNotificationsClient) Close(ctx context.Context, accountID, notificationID int64) (*canvas.AccountNotification, error) {
	path := notificationsPath(accountID) + "/" + strconv.FormatInt(notificationID, 10)

	notification, err := canvas.Call[canvas.AccountNotification](ctx, c.client, canvas.Delete(path))
	if err != nil {
		return nil, fmt.Errorf("closing account notification: %w", err)
	}

	return notification, nil
}

// Create implements canvas.AccountNotificationsClient.Create.
func (c *AccountNotificationsClient) Create(ctx context.Context, accountID int64, notification *canvas.AccountNotification) (*canvas.AccountNotification, error) {
	body := &canvas.AccountNotificationRequest{AccountNotification: *notification}

	created, err := canvas.Call[canvas.AccountNotification](ctx, c.client, canvas.Post(notificationsPath(accountID), body))
	if err != nil {
		return nil, fmt.Errorf("creating account notification: %w", err)
	}

	return created, nil
}

// Update implements canvas.AccountNotificationsClient.Update.
func (c *AccountNotificationsClient) Update(ctx context.Context, accountID, notificationID int64, notification *canvas.AccountNotification) (*canvas.AccountNotification, error) {
	path := notificationsPath(accountID) + "/" + strconv.FormatInt(notificationID, 10)

	body := &canvas.AccountNotificationRequest{AccountNotification: *notification}

	updated, err := canvas.Call[canvas.AccountNotification](ctx, c.client, canvas.Put(path, body))
	if err != nil {
		return nil, fmt.Errorf("updating account notification: %w", err)
	}

	return updated, nil
}
