package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canvashttp "github.com/canvaskit-io/canvas/internal/http"
	"github.com/canvaskit-io/canvas/pkg/canvas"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/accounts/1", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]interface{}{"id": 1, "name": "Root Account"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		resp, err := client.Do(context.Background(), canvas.Get("/api/v1/accounts/1"))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]interface{}

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "Root Account", result["name"])
	})

	t.Run("query parameters keep declaration order", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "include%5B%5D=term&include%5B%5D=total_students&per_page=50", request.URL.RawQuery)
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		params := canvas.NewParams().
			Add("include[]", "term").
			Add("include[]", "total_students").
			WithPerPage(50)

		resp, err := client.Do(context.Background(), canvas.Get("/api/v1/courses").WithQuery(params))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request body is JSON encoded", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "PUT", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "visible", body["visibility"])

			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		spec := canvas.Put("/api/v1/accounts/1/account_calendars", map[string]string{"visibility": "visible"})

		_, err := client.Do(context.Background(), spec)
		require.NoError(t, err)
	})

	t.Run("link header is parsed into cursors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Link",
				`<https://canvas.test/api/v1/courses?page=2&per_page=10>; rel="next", `+
					`<https://canvas.test/api/v1/courses?page=1&per_page=10>; rel="current"`)
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		resp, err := client.Do(context.Background(), canvas.Get("/api/v1/courses"))
		require.NoError(t, err)
		assert.True(t, resp.Links.HasNext())
		assert.Equal(t, "https://canvas.test/api/v1/courses?page=2&per_page=10", resp.Links.Next)
	})

	t.Run("error status is classified", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"errors":[{"message":"The specified resource does not exist."}]}`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		resp, err := client.Do(context.Background(), canvas.Get("/api/v1/courses/999999"))
		require.Error(t, err)
		assert.True(t, canvas.IsNotFound(err))
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load(), "client errors must not be retried")

		var apiErr *canvas.APIError

		require.ErrorAs(t, err, &apiErr)
		assert.Contains(t, apiErr.Message, "does not exist")
	})

	t.Run("rate budget tracks server headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("X-Rate-Limit-Remaining", "423.5")
			writer.Header().Set("X-Request-Cost", "1.25")
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		_, err := client.Do(context.Background(), canvas.Get("/api/v1/courses"))
		require.NoError(t, err)

		remaining, known := client.Budget().Remaining()
		assert.True(t, known)
		assert.InDelta(t, 423.5, remaining, 0.001)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Retries(t *testing.T) {
	t.Parallel()
	t.Run("throttled request retries after Retry-After", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) == 1 {
				writer.Header().Set("Retry-After", "1")
				writer.WriteHeader(http.StatusTooManyRequests)
				_, _ = writer.Write([]byte(`{"message":"Rate Limit Exceeded"}`))

				return
			}

			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		start := time.Now()

		resp, err := client.Do(context.Background(), canvas.Get("/api/v1/courses"))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
		assert.GreaterOrEqual(t, time.Since(start), time.Second, "Retry-After must be honored")
	})

	t.Run("persistent throttling gives up with rate limited error", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.Header().Set("Retry-After", "1")
			writer.WriteHeader(http.StatusTooManyRequests)
			_, _ = writer.Write([]byte(`{"message":"Rate Limit Exceeded"}`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token", canvashttp.WithRetryMax(1))

		_, err := client.Do(context.Background(), canvas.Post("/api/v1/accounts/1/account_notifications", nil))
		require.Error(t, err)
		assert.True(t, canvas.IsRateLimited(err))
		assert.Equal(t, int32(2), attempts.Load(), "one retry then give up")
	})

	t.Run("server error retries idempotent requests", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if attempts.Add(1) <= 2 {
				writer.WriteHeader(http.StatusBadGateway)

				return
			}

			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		resp, err := client.Do(context.Background(), canvas.Get("/api/v1/courses"))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())
	})

	t.Run("server error does not retry mutations", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte(`{"message":"internal error"}`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		_, err := client.Do(context.Background(), canvas.Post("/api/v1/accounts/1/account_notifications", nil))
		require.Error(t, err)
		assert.True(t, canvas.IsServerError(err))
		assert.Equal(t, int32(1), attempts.Load())
	})
}

func TestClient_Timeouts(t *testing.T) {
	t.Parallel()
	t.Run("slow server trips the request timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token", canvashttp.WithTimeout(50*time.Millisecond))

		_, err := client.Do(context.Background(), canvas.Post("/api/v1/courses", nil))
		require.Error(t, err)
		assert.True(t, errors.Is(err, canvas.ErrTimeout))
	})

	t.Run("cancellation propagates", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		ctx, cancel := context.WithCancel(context.Background())

		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		_, err := client.Do(ctx, canvas.Get("/api/v1/courses"))
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestClient_DoURL(t *testing.T) {
	t.Parallel()
	t.Run("absolute URL is fetched verbatim", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/courses", request.URL.Path)
			assert.Equal(t, "page=bookmark%3Aopaque&per_page=10", request.URL.RawQuery)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, "test-token")

		resp, err := client.DoURL(context.Background(), "GET", server.URL+"/api/v1/courses?page=bookmark%3Aopaque&per_page=10")
		require.NoError(t, err)
		assert.Equal(t, 200, respStatus(resp))
	})
}

func respStatus(resp *canvas.Response) int {
	if resp == nil {
		return 0
	}

	return resp.StatusCode
}
