// Package constants centralizes timeouts, retry limits, and wire-level
// header names shared across the client packages.
package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default per-request timeout.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token checks.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits and backoff bounds.
const (
	// RateLimitRetryMax is the number of automatic retries after a 429
	// before the rate-limited error is surfaced to the caller.
	RateLimitRetryMax = 3

	// ServerErrorRetryMax is the number of automatic retries after a 5xx
	// response on idempotent requests.
	ServerErrorRetryMax = 2

	// ServerErrorBackoff is the fixed wait between 5xx retries.
	ServerErrorBackoff = 1 * time.Second

	// CooldownInitial is the starting cooldown applied after a throttling
	// response that carries no Retry-After header.
	CooldownInitial = 1 * time.Second

	// CooldownMax caps the exponential cooldown growth.
	CooldownMax = 60 * time.Second
)

// Rate budget tuning.
const (
	// PreflightCost is the conservative number of cost units reserved
	// locally per request between server refreshes of the budget.
	PreflightCost = 1.0

	// LowBudgetWater is the remaining-cost level below which requests are
	// paced down to let the server-side bucket refill.
	LowBudgetWater = 50.0
)

// Headers consumed from the wire.
const (
	// HeaderLink carries relation-tagged pagination URLs.
	HeaderLink = "Link"

	// HeaderRateLimitRemaining reports the remaining request cost budget.
	HeaderRateLimitRemaining = "X-Rate-Limit-Remaining"

	// HeaderRequestCost reports the cost charged for the request.
	HeaderRequestCost = "X-Request-Cost"

	// HeaderRetryAfter reports the server-requested cooldown in seconds.
	HeaderRetryAfter = "Retry-After"
)

// Headers produced on the wire.
const (
	// AcceptContentType is the JSON content type the API speaks.
	AcceptContentType = "application/json"

	// DefaultUserAgent identifies this client when no override is set.
	DefaultUserAgent = "canvaskit-go/1.0"
)

// Pagination defaults.
const (
	// DefaultPerPage is applied to the first request of a paginated walk
	// when the caller sets a default page size on the client but not on
	// the call itself.
	DefaultPerPage = 10
)
