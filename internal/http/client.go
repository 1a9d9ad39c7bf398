// Package http is the transport layer: it executes fully-formed requests
// against the configured base URL, applying auth and default headers, and
// running the bounded retry policy for throttling and transient server
// errors. Everything above it works with canvas.RequestSpec and
// canvas.Response values.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/canvaskit-io/canvas/internal/constants"
	"github.com/canvaskit-io/canvas/internal/ratelimit"
	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// Prometheus metrics for request execution.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_requests_total",
		Help: "Total API requests by method and status",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "canvas_request_duration_seconds",
		Help:    "API request duration in seconds by method",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "canvas_request_retries_total",
		Help: "Total request retry attempts by reason",
	}, []string{"reason"})
)

// Client executes requests against one API host. It is safe for
// concurrent use; all requests share the connection pool and the rate
// budget.
type Client struct {
	baseURL      string
	token        string
	userAgent    string
	timeout      time.Duration
	rateRetryMax int
	debug        bool
	logger       zerolog.Logger
	budget       *ratelimit.Budget
	pacing       float64
	httpClient   *retryablehttp.Client
}

// Option configures the client.
type Option func(*Client)

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryMax overrides the throttling retry cap.
func WithRetryMax(max int) Option {
	return func(c *Client) {
		if max > 0 {
			c.rateRetryMax = max
		}
	}
}

// WithPacing enables client-side request pacing.
func WithPacing(requestsPerSecond float64) Option {
	return func(c *Client) {
		c.pacing = requestsPerSecond
	}
}

// NewClient creates a transport client for the given base URL. The token
// is injected as a bearer Authorization header on every request and is
// never logged.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:      baseURL,
		token:        token,
		userAgent:    constants.DefaultUserAgent,
		timeout:      constants.DefaultHTTPTimeout,
		rateRetryMax: constants.RateLimitRetryMax,
		logger:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	client.budget = ratelimit.NewBudget(client.logger, client.pacing)

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.HTTPClient = &http.Client{Timeout: client.timeout}
	retryClient.RetryMax = client.rateRetryMax
	retryClient.CheckRetry = client.checkRetry
	retryClient.Backoff = client.backoff
	retryClient.RequestLogHook = client.beforeAttempt
	retryClient.ResponseLogHook = client.afterAttempt
	// Keep the final response of an exhausted retry loop so its status
	// can be classified instead of collapsing into an opaque error.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client.httpClient = retryClient

	return client
}

// Budget exposes the shared rate budget, mainly for tests.
func (c *Client) Budget() *ratelimit.Budget {
	return c.budget
}

// Do executes one request spec against the configured base URL.
func (c *Client) Do(ctx context.Context, spec *canvas.RequestSpec) (*canvas.Response, error) {
	requestURL := c.baseURL + spec.Path
	if query := spec.Query.Encode(); query != "" {
		requestURL += "?" + query
	}

	return c.execute(ctx, spec.Method, requestURL, spec.Body, spec.Headers)
}

// DoURL executes a request against an absolute URL verbatim. Pagination
// cursors already encode all query state and are followed this way.
func (c *Client) DoURL(ctx context.Context, method, rawURL string) (*canvas.Response, error) {
	return c.execute(ctx, method, rawURL, nil, nil)
}

// retryState tracks per-request retry counters so throttling and server
// errors can carry different caps through one retryablehttp loop.
type retryState struct {
	idempotent    bool
	rateRetries   int
	serverRetries int
}

type retryStateKey struct{}

func (c *Client) execute(ctx context.Context, method, rawURL string, body interface{}, headers map[string]string) (*canvas.Response, error) {
	var payload []byte

	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	// Gate on the shared budget before the first attempt; retries gate
	// again in beforeAttempt.
	err := c.budget.Wait(ctx)
	if err != nil {
		return nil, err
	}

	state := &retryState{
		idempotent: method == http.MethodGet || method == http.MethodHead,
	}
	ctx = context.WithValue(ctx, retryStateKey{}, state)

	var rawBody interface{}
	if payload != nil {
		rawBody = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", constants.AcceptContentType)
	req.Header.Set("User-Agent", c.userAgent)

	if payload != nil {
		req.Header.Set("Content-Type", constants.AcceptContentType)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)

	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(method, "transport_error").Inc()

		return nil, classifyTransportError(ctx, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(method, "transport_error").Inc()

		return nil, fmt.Errorf("reading response body: %w", classifyTransportError(ctx, err))
	}

	requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()

	response := &canvas.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       bodyBytes,
		Links:      canvas.ParseLinkHeader(resp.Header.Get(constants.HeaderLink)),
	}

	if apiErr := canvas.ClassifyResponse(resp.StatusCode, bodyBytes); apiErr != nil {
		return response, apiErr
	}

	return response, nil
}

// beforeAttempt gates retry attempts on the shared budget and emits
// debug logs. The first attempt was already gated in execute.
func (c *Client) beforeAttempt(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt > 0 {
		// A cancelled context makes Wait return immediately and the
		// attempt itself fail; nothing to do with the error here.
		_ = c.budget.Wait(req.Context())
	}

	if c.debug {
		c.logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Int("attempt", attempt+1).
			Msg("http request")
	}
}

// afterAttempt feeds every response's headers into the rate budget and
// records cooldowns on throttling. Runs once per attempt, so budget
// updates are never lost to the retry loop.
func (c *Client) afterAttempt(_ retryablehttp.Logger, resp *http.Response) {
	c.budget.UpdateFromHeaders(resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests {
		c.budget.Throttled(resp.Header)
	}

	if c.debug {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("url", resp.Request.URL.String()).
			Msg("http response")
	}
}

// checkRetry implements the retry policy: 429 is retried for any method
// up to the throttling cap; 5xx and network failures are retried only
// for idempotent requests, with a smaller cap. Everything else
// propagates immediately.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	state, _ := ctx.Value(retryStateKey{}).(*retryState)
	if state == nil {
		return false, nil
	}

	if err != nil {
		if !state.idempotent {
			return false, nil
		}

		state.serverRetries++
		retriesTotal.WithLabelValues("network").Inc()

		return state.serverRetries <= constants.ServerErrorRetryMax, nil
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		state.rateRetries++
		retriesTotal.WithLabelValues("rate_limited").Inc()

		return state.rateRetries <= c.rateRetryMax, nil
	case resp.StatusCode >= 500 && state.idempotent:
		state.serverRetries++
		retriesTotal.WithLabelValues("server_error").Inc()

		return state.serverRetries <= constants.ServerErrorRetryMax, nil
	default:
		return false, nil
	}
}

// backoff waits out the budget cooldown for throttling responses and
// applies a short fixed backoff for transient server errors.
func (c *Client) backoff(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
	if resp != nil {
		if resp.StatusCode == http.StatusTooManyRequests {
			if cooldown := c.budget.CooldownRemaining(); cooldown > 0 {
				return cooldown
			}

			return constants.CooldownInitial
		}

		if resp.StatusCode >= 500 {
			return constants.ServerErrorBackoff
		}
	}

	return retryablehttp.DefaultBackoff(min, max, attemptNum, resp)
}

// classifyTransportError wraps a transport failure with the matching
// sentinel so callers can branch with errors.Is.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", canvas.ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", canvas.ErrTimeout, err)
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	return fmt.Errorf("%w: %v", canvas.ErrNetwork, err)
}
