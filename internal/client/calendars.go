package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// CalendarsClient implements canvas.CalendarsClient.
type CalendarsClient struct {
	client *Client
}

// NewCalendarsClient creates a new account calendars client.
func NewCalendarsClient(client *Client) *CalendarsClient {
	return &CalendarsClient{client: client}
}

// calendarsPageDecoder unwraps the account_calendars envelope the list
// endpoints use instead of a bare array.
func calendarsPageDecoder(body []byte) ([]canvas.AccountCalendar, error) {
	var page canvas.AccountCalendarsPage

	err := json.Unmarshal(body, &page)
	if err != nil {
		return nil, err
	}

	return page.AccountCalendars, nil
}

// List implements canvas.CalendarsClient.List.
func (c *CalendarsClient) List(params canvas.Params) *canvas.PageIterator[canvas.AccountCalendar] {
	spec := canvas.Get("/api/v1/account_calendars").WithQuery(c.client.listParams(params))

	return canvas.PaginateWith(c.client, spec, calendarsPageDecoder)
}

// Search implements canvas.CalendarsClient.Search.
func (c *CalendarsClient) Search(term string) *canvas.PageIterator[canvas.AccountCalendar] {
	params := canvas.NewParams().Add("search_term", term)

	return c.List(params)
}

// Get implements canvas.CalendarsClient.Get.
func (c *CalendarsClient) Get(ctx context.Context, accountID int64) (*canvas.AccountCalendar, error) {
	path := "/api/v1/account_calendars/" + strconv.FormatInt(accountID, 10)

	calendar, err := canvas.Call[canvas.AccountCalendar](ctx, c.client, canvas.Get(path))
	if err != nil {
		return nil, fmt.Errorf("getting account calendar: %w", err)
	}

	return calendar, nil
}

// SetVisibility implements canvas.CalendarsClient.SetVisibility.
func (c *CalendarsClient) SetVisibility(ctx context.Context, accountID int64, visibility canvas.Visibility) (*canvas.AccountCalendar, error) {
	path := "/api/v1/account_calendars/" + strconv.FormatInt(accountID, 10)

	body := map[string]bool{"visible": visibility.Bool()}

	calendar, err := canvas.Call[canvas.AccountCalendar](ctx, c.client, canvas.Put(path, body))
	if err != nil {
		return nil, fmt.Errorf("updating account calendar visibility: %w", err)
	}

	return calendar, nil
}

// BulkSetVisibility implements canvas.CalendarsClient.BulkSetVisibility.
func (c *CalendarsClient) BulkSetVisibility(ctx context.Context, accountID int64, calendars []canvas.AccountVisibility) (*canvas.BulkUpdateResult, error) {
	path := "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/account_calendars"

	result, err := canvas.Call[canvas.BulkUpdateResult](ctx, c.client, canvas.Put(path, calendars))
	if err != nil {
		return nil, fmt.Errorf("bulk updating account calendars: %w", err)
	}

	return result, nil
}

// ListForAccount implements canvas.CalendarsClient.ListForAccount.
func (c *CalendarsClient) ListForAccount(accountID int64, filter canvas.Visibility, term string) *canvas.PageIterator[canvas.AccountCalendar] {
	path := "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/account_calendars"

	params := canvas.NewParams()
	if filter != "" {
		params = params.Add("filter", string(filter))
	}

	if term != "" {
		params = params.Add("search_term", term)
	}

	spec := canvas.Get(path).WithQuery(c.client.listParams(params))

	return canvas.PaginateWith(c.client, spec, calendarsPageDecoder)
}

// VisibleCount implements canvas.CalendarsClient.VisibleCount.
func (c *CalendarsClient) VisibleCount(ctx context.Context, accountID int64) (int64, error) {
	path := "/api/v1/accounts/" + strconv.FormatInt(accountID, 10) + "/visible_calendars_count"

	count, err := canvas.Call[canvas.VisibleCalendarsCount](ctx, c.client, canvas.Get(path))
	if err != nil {
		return 0, fmt.Errorf("counting visible calendars: %w", err)
	}

	return count.Count, nil
}
