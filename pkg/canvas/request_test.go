package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

func TestRequestSpecConstructors(t *testing.T) {
	t.Parallel()

	get := canvas.Get("/api/v1/courses")
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "/api/v1/courses", get.Path)
	assert.Nil(t, get.Body)

	body := map[string]bool{"visible": true}

	post := canvas.Post("/api/v1/accounts/1/account_notifications", body)
	assert.Equal(t, "POST", post.Method)
	assert.Equal(t, body, post.Body)

	put := canvas.Put("/api/v1/account_calendars/1", body)
	assert.Equal(t, "PUT", put.Method)

	del := canvas.Delete("/api/v1/accounts/1/account_notifications/2")
	assert.Equal(t, "DELETE", del.Method)
	assert.Nil(t, del.Body)
}

func TestRequestSpec_WithQuery(t *testing.T) {
	t.Parallel()

	params := canvas.NewParams().Add("search_term", "math")
	spec := canvas.Get("/api/v1/account_calendars").WithQuery(params)

	assert.Equal(t, "search_term=math", spec.Query.Encode())
}

func TestRequestSpec_WithHeader(t *testing.T) {
	t.Parallel()

	spec := canvas.Get("/api/v1/courses").
		WithHeader("X-Custom", "one").
		WithHeader("X-Other", "two")

	assert.Equal(t, "one", spec.Headers["X-Custom"])
	assert.Equal(t, "two", spec.Headers["X-Other"])
}
