// Package client implements the canvas.Client interface on top of the
// transport layer. The engine itself is the canvas.Caller that resource
// clients and page iterators execute through; resource clients only
// translate typed operations into request specs.
package client

import (
	"context"
	"net/url"
	"strings"

	canvashttp "github.com/canvaskit-io/canvas/internal/http"
	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// Client implements the canvas.Client interface.
type Client struct {
	httpClient      *canvashttp.Client
	defaultPageSize int

	// Resource clients
	calendars            canvas.CalendarsClient
	accountDomains       canvas.AccountDomainsClient
	accountNotifications canvas.AccountNotificationsClient
	accountReports       canvas.AccountReportsClient
	courses              canvas.CoursesClient
	users                canvas.UsersClient
}

// New creates a new Canvas API client from a validated config.
func New(config *canvas.Config) (*Client, error) {
	if config.AccessToken == "" {
		return nil, &canvas.ConfigError{Field: "AccessToken", Reason: "must not be empty"}
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, &canvas.ConfigError{Field: "BaseURL", Reason: "must be an absolute URL"}
	}

	var opts []canvashttp.Option

	if config.UserAgent != "" {
		opts = append(opts, canvashttp.WithUserAgent(config.UserAgent))
	}

	if config.Timeout > 0 {
		opts = append(opts, canvashttp.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		opts = append(opts, canvashttp.WithRetryMax(config.RetryMax))
	}

	if config.RequestsPerSecond > 0 {
		opts = append(opts, canvashttp.WithPacing(config.RequestsPerSecond))
	}

	if config.Debug {
		opts = append(opts, canvashttp.WithDebug(true))
	}

	if config.Logger != nil {
		opts = append(opts, canvashttp.WithLogger(*config.Logger))
	}

	client := &Client{
		httpClient:      canvashttp.NewClient(strings.TrimRight(config.BaseURL, "/"), config.AccessToken, opts...),
		defaultPageSize: config.DefaultPageSize,
	}

	client.calendars = NewCalendarsClient(client)
	client.accountDomains = NewAccountDomainsClient(client)
	client.accountNotifications = NewAccountNotificationsClient(client)
	client.accountReports = NewAccountReportsClient(client)
	client.courses = NewCoursesClient(client)
	client.users = NewUsersClient(client)

	return client, nil
}

// Do executes a request spec through the shared transport.
func (c *Client) Do(ctx context.Context, spec *canvas.RequestSpec) (*canvas.Response, error) {
	return c.httpClient.Do(ctx, spec)
}

// DoURL fetches an absolute URL verbatim, as pagination cursors require.
func (c *Client) DoURL(ctx context.Context, method, rawURL string) (*canvas.Response, error) {
	return c.httpClient.DoURL(ctx, method, rawURL)
}

// listParams applies the configured default page size when the caller
// set no explicit per_page. Only the first request of a page walk gets
// the hint; cursors already carry the server's chosen size.
func (c *Client) listParams(params canvas.Params) canvas.Params {
	if c.defaultPageSize > 0 && !params.Has("per_page") {
		return params.WithPerPage(c.defaultPageSize)
	}

	return params
}

// Calendars returns the account calendars client.
func (c *Client) Calendars() canvas.CalendarsClient {
	return c.calendars
}

// AccountDomains returns the account domains client.
func (c *Client) AccountDomains() canvas.AccountDomainsClient {
	return c.accountDomains
}

// AccountNotifications returns the account notifications client.
func (c *Client) AccountNotifications() canvas.AccountNotificationsClient {
	return c.accountNotifications
}

// AccountReports returns the account reports client.
func (c *Client) AccountReports() canvas.AccountReportsClient {
	return c.accountReports
}

// Courses returns the courses client.
func (c *Client) Courses() canvas.CoursesClient {
	return c.courses
}

// Users returns the users client.
func (c *Client) Users() canvas.UsersClient {
	return c.users
}
