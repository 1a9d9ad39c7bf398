package canvas

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Client is the long-lived handle for the Canvas API. It owns the HTTP
// connection pool and the shared rate budget; concurrent requests issued
// from one Client share both. Configuration is fixed at construction;
// build a new Client to change it.
type Client interface {
	Caller

	Calendars() CalendarsClient
	AccountDomains() AccountDomainsClient
	AccountNotifications() AccountNotificationsClient
	AccountReports() AccountReportsClient
	Courses() CoursesClient
	Users() UsersClient
}

// CalendarsClient covers the account calendars API.
type CalendarsClient interface {
	// List returns a lazy iterator over the account calendars visible to
	// the current user.
	List(params Params) *PageIterator[AccountCalendar]

	// Search lists visible account calendars matching a search term of
	// at least 2 characters.
	Search(term string) *PageIterator[AccountCalendar]

	// Get fetches a single account calendar.
	Get(ctx context.Context, accountID int64) (*AccountCalendar, error)

	// SetVisibility marks one account calendar hidden or visible.
	// Requires the manage_account_calendar_visibility permission.
	SetVisibility(ctx context.Context, accountID int64, visibility Visibility) (*AccountCalendar, error)

	// BulkSetVisibility updates visibility on many calendars at once and
	// returns the server's summary of the update.
	BulkSetVisibility(ctx context.Context, accountID int64, calendars []AccountVisibility) (*BulkUpdateResult, error)

	// ListForAccount lists calendars of an account and its first level of
	// sub-accounts, filtered by visibility. A non-empty term restricts
	// the result to matching accounts.
	ListForAccount(accountID int64, filter Visibility, term string) *PageIterator[AccountCalendar]

	// VisibleCount returns the number of visible account calendars.
	VisibleCount(ctx context.Context, accountID int64) (int64, error)
}

// AccountDomainsClient covers the account domain lookup API.
type AccountDomainsClient interface {
	// Search returns up to 5 account domains matching the given name
	// and/or domain fragments. Empty fragments are omitted from the query.
	Search(ctx context.Context, name, domain string) ([]AccountDomain, error)
}

// AccountNotificationsClient covers the global account notifications API.
type AccountNotificationsClient interface {
	// List returns the current user's global notifications for the
	// account. Closed notifications are only included when includePast
	// is true.
	List(accountID int64, includePast bool) *PageIterator[AccountNotification]

	// Get fetches one notification; closed notifications are not returned.
	Get(ctx context.Context, accountID, notificationID int64) (*AccountNotification, error)

	// Close dismisses a notification for the current user and returns it
	// as it was before closing.
	Close(ctx context.Context, accountID, notificationID int64) (*AccountNotification, error)

	// Create publishes a new global notification. RoleIDs on the payload
	// are ignored by the server.
	Create(ctx context.Context, accountID int64, notification *AccountNotification) (*AccountNotification, error)

	// Update replaces an existing global notification.
	Update(ctx context.Context, accountID, notificationID int64, notification *AccountNotification) (*AccountNotification, error)
}

// AccountReportsClient covers the account reports API.
type AccountReportsClient interface {
	// ListAvailable returns the report types that can be run on the
	// account, with their accepted parameters.
	ListAvailable(ctx context.Context, accountID int64) ([]Report, error)

	// Start generates a report instance. reportType must match one of
	// the available report names.
	Start(ctx context.Context, accountID int64, reportType string, params ReportParameters) (*Report, error)

	// History lists the runs of one report type, newest first.
	History(accountID int64, reportType string) *PageIterator[Report]

	// Status returns the state of a generated report instance.
	Status(ctx context.Context, accountID int64, reportType string, reportID int64) (*Report, error)

	// Delete removes a generated report instance.
	Delete(ctx context.Context, accountID int64, reportType string, reportID int64) (*Report, error)
}

// CoursesClient covers the subset of the courses API the client exposes.
type CoursesClient interface {
	// Get fetches one course by ID.
	Get(ctx context.Context, courseID int64, params Params) (*Course, error)

	// List returns the current user's active courses.
	List(params Params) *PageIterator[Course]

	// ListUsers returns the users enrolled in a course.
	ListUsers(courseID int64, params Params) *PageIterator[User]
}

// UsersClient covers the subset of the users API the client exposes.
type UsersClient interface {
	// Get fetches one user; use "self" semantics via GetSelf.
	Get(ctx context.Context, userID int64) (*User, error)

	// GetSelf fetches the user the access token belongs to.
	GetSelf(ctx context.Context) (*User, error)

	// ListForAccount returns the users in an account, optionally
	// filtered by a search term.
	ListForAccount(accountID int64, params Params) *PageIterator[User]
}

// Config holds the immutable configuration a Client is built from.
// Validation happens at construction: AccessToken must be non-empty and
// BaseURL must be an absolute URL.
type Config struct {
	// BaseURL is the root of the API, e.g. "https://canvas.instructure.com".
	BaseURL string

	// AccessToken is the bearer token for every request. It is injected
	// into the Authorization header and never logged.
	AccessToken string

	// Timeout bounds each request, pagination cursors included (a page
	// walk is a composition of independently timed requests). Zero means
	// the 30s default.
	Timeout time.Duration

	// DefaultPageSize, when positive, is applied as the per_page hint on
	// the first request of paginated calls that set no explicit size.
	// The server may clamp it; cursor URLs are followed verbatim.
	DefaultPageSize int

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RequestsPerSecond enables client-side pacing when positive.
	RequestsPerSecond float64

	// RetryMax overrides the throttling retry cap (default 3).
	RetryMax int

	// Debug enables request/response logging through Logger.
	Debug bool

	// Logger receives structured logs from the engine and the rate
	// limiter. Disabled when nil.
	Logger *zerolog.Logger
}
