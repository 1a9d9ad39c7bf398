// Package ratelimit tracks the API's cost-based rate-limit budget from
// response headers and gates outgoing requests. Canvas reports the
// remaining bucket in X-Rate-Limit-Remaining and the charge for each
// request in X-Request-Cost; when the bucket empties the server throttles
// and the client must cool down.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/canvaskit-io/canvas/internal/constants"
)

// Prometheus metrics for rate budget tracking.
var (
	budgetRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "canvas_rate_limit_remaining",
		Help: "Remaining request cost budget reported by the last response",
	})

	requestCost = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "canvas_request_cost_units",
		Help:    "Cost units charged per request as reported by the API",
		Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50},
	})

	throttlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canvas_rate_limit_throttles_total",
		Help: "Total throttling responses that triggered a cooldown",
	})

	gateWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "canvas_rate_limit_gate_waits_total",
		Help: "Total requests delayed by the budget gate",
	})
)

// Budget is the mutable rate-limit state shared by all requests of one
// client. Remaining cost is refreshed only from server-reported values
// and decreases locally as a conservative guess between refreshes; the
// cooldown deadline backs off exponentially when the server supplies no
// Retry-After.
type Budget struct {
	mu            sync.Mutex // held only for state flips, never across I/O
	remaining     float64
	known         bool
	cooldownUntil time.Time
	nextCooldown  time.Duration

	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewBudget creates a budget gate. requestsPerSecond enables client-side
// pacing when positive; zero disables it.
func NewBudget(logger zerolog.Logger, requestsPerSecond float64) *Budget {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Budget{
		nextCooldown: constants.CooldownInitial,
		limiter:      rate.NewLimiter(limit, 1),
		logger:       logger,
	}
}

// Wait blocks until the budget allows another request: any cooldown has
// elapsed, the remaining cost is positive, and the pacing limiter admits
// the call. It reserves a conservative cost locally so concurrent
// requests do not all assume the same headroom. Cancelling ctx aborts
// the wait without touching the shared state.
func (b *Budget) Wait(ctx context.Context) error {
	probed := false

	for {
		b.mu.Lock()

		wait := time.Until(b.cooldownUntil)
		if wait <= 0 && b.known && b.remaining <= 0 && !probed {
			// Bucket exhausted and no fresh server data; pause once,
			// then let a single probe refresh the headers.
			wait = b.nextCooldown
			probed = true
		}

		if wait <= 0 {
			if b.known {
				b.remaining -= constants.PreflightCost
				if b.remaining < 0 {
					b.remaining = 0
				}
			}

			b.mu.Unlock()

			break
		}

		b.mu.Unlock()
		gateWaitsTotal.Inc()

		b.logger.Debug().
			Dur("wait", wait).
			Msg("rate budget gate: waiting before request")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return err // ctx cancelled or deadline exceeded
	}

	return nil
}

// UpdateFromHeaders refreshes the budget from a response. Server values
// are authoritative and last-write-wins; responses without the headers
// leave the state untouched. A successful refresh also resets the
// exponential cooldown.
func (b *Budget) UpdateFromHeaders(headers http.Header) {
	remainStr := headers.Get(constants.HeaderRateLimitRemaining)
	if remainStr == "" {
		return
	}

	remaining, err := strconv.ParseFloat(remainStr, 64)
	if err != nil {
		b.logger.Warn().
			Str("value", remainStr).
			Msg("unparseable rate limit remaining header")

		return
	}

	if costStr := headers.Get(constants.HeaderRequestCost); costStr != "" {
		if cost, err := strconv.ParseFloat(costStr, 64); err == nil {
			requestCost.Observe(cost)
		}
	}

	b.mu.Lock()
	b.remaining = remaining
	b.known = true
	b.nextCooldown = constants.CooldownInitial
	b.mu.Unlock()

	budgetRemaining.Set(remaining)

	if remaining < constants.LowBudgetWater {
		b.logger.Warn().
			Float64("remaining", remaining).
			Msg("rate budget running low")
	}
}

// Throttled records a throttling response. The cooldown deadline comes
// from the Retry-After header when present, otherwise from the
// exponential backoff (1s doubling, capped at 60s). It returns the
// cooldown applied so the retry loop can wait it out.
func (b *Budget) Throttled(headers http.Header) time.Duration {
	throttlesTotal.Inc()

	cooldown := retryAfter(headers)

	b.mu.Lock()

	if cooldown <= 0 {
		cooldown = b.nextCooldown

		b.nextCooldown *= 2
		if b.nextCooldown > constants.CooldownMax {
			b.nextCooldown = constants.CooldownMax
		}
	}

	until := time.Now().Add(cooldown)
	if until.After(b.cooldownUntil) {
		b.cooldownUntil = until
	}

	b.mu.Unlock()

	b.logger.Warn().
		Dur("cooldown", cooldown).
		Msg("throttled by API, cooling down")

	return cooldown
}

// CooldownRemaining returns how long the current cooldown still holds,
// or zero when requests may proceed.
func (b *Budget) CooldownRemaining() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	remaining := time.Until(b.cooldownUntil)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Remaining reports the last server-refreshed budget and whether one was
// seen yet.
func (b *Budget) Remaining() (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.remaining, b.known
}

func retryAfter(headers http.Header) time.Duration {
	value := headers.Get(constants.HeaderRetryAfter)
	if value == "" {
		return 0
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds <= 0 {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}
