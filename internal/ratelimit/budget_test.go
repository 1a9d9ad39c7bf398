package ratelimit

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBudget() *Budget {
	return NewBudget(zerolog.Nop(), 0)
}

func headers(pairs ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}

	return h
}

func TestBudget_UpdateFromHeaders(t *testing.T) {
	t.Parallel()
	t.Run("server value is authoritative", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()

		_, known := budget.Remaining()
		assert.False(t, known, "fresh budget has seen no server value")

		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "700"))

		remaining, known := budget.Remaining()
		assert.True(t, known)
		assert.InDelta(t, 700.0, remaining, 0.001)
	})

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "10"))
		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "650.5"))

		remaining, _ := budget.Remaining()
		assert.InDelta(t, 650.5, remaining, 0.001)
	})

	t.Run("missing header leaves state untouched", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "100"))
		budget.UpdateFromHeaders(headers("Content-Type", "application/json"))

		remaining, known := budget.Remaining()
		assert.True(t, known)
		assert.InDelta(t, 100.0, remaining, 0.001)
	})

	t.Run("unparseable header is ignored", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "not-a-number"))

		_, known := budget.Remaining()
		assert.False(t, known)
	})
}

func TestBudget_Wait(t *testing.T) {
	t.Parallel()
	t.Run("positive budget passes immediately", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "700"))

		start := time.Now()
		require.NoError(t, budget.Wait(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("unknown budget passes optimistically", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()

		start := time.Now()
		require.NoError(t, budget.Wait(context.Background()))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("reserves preflight cost locally", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "5"))

		require.NoError(t, budget.Wait(context.Background()))

		remaining, _ := budget.Remaining()
		assert.InDelta(t, 4.0, remaining, 0.001)
	})

	t.Run("cancellation aborts without corrupting state", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.Throttled(headers("Retry-After", "30"))

		before, knownBefore := budget.Remaining()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := budget.Wait(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		after, knownAfter := budget.Remaining()
		assert.Equal(t, before, after)
		assert.Equal(t, knownBefore, knownAfter)
		assert.Positive(t, budget.CooldownRemaining(), "cooldown deadline survives the abort")
	})

	t.Run("waits out an active cooldown", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.Throttled(headers("Retry-After", "0.2"))

		start := time.Now()
		require.NoError(t, budget.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
	})
}

func TestBudget_Throttled(t *testing.T) {
	t.Parallel()
	t.Run("retry-after wins over backoff", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()

		cooldown := budget.Throttled(headers("Retry-After", "7"))
		assert.Equal(t, 7*time.Second, cooldown)
	})

	t.Run("backoff doubles up to the cap", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()

		assert.Equal(t, 1*time.Second, budget.Throttled(http.Header{}))
		assert.Equal(t, 2*time.Second, budget.Throttled(http.Header{}))
		assert.Equal(t, 4*time.Second, budget.Throttled(http.Header{}))

		for range 10 {
			budget.Throttled(http.Header{})
		}

		assert.Equal(t, 60*time.Second, budget.Throttled(http.Header{}))
	})

	t.Run("successful refresh resets the backoff", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.Throttled(http.Header{})
		budget.Throttled(http.Header{})

		budget.UpdateFromHeaders(headers("X-Rate-Limit-Remaining", "700"))

		// Enough budget arrived, so the next throttle starts over at 1s.
		assert.Equal(t, 1*time.Second, budget.Throttled(http.Header{}))
	})

	t.Run("cooldown deadline only extends", func(t *testing.T) {
		t.Parallel()

		budget := newTestBudget()
		budget.Throttled(headers("Retry-After", "30"))

		long := budget.CooldownRemaining()

		budget.Throttled(headers("Retry-After", "1"))

		assert.GreaterOrEqual(t, budget.CooldownRemaining(), long-time.Second)
	})
}

func TestBudget_Pacing(t *testing.T) {
	t.Parallel()

	// 10 requests per second: the third call cannot complete in under
	// roughly 200ms.
	budget := NewBudget(zerolog.Nop(), 10)

	start := time.Now()
	for range 3 {
		require.NoError(t, budget.Wait(context.Background()))
	}

	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}
