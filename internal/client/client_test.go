package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config canvas.Config
		field  string
	}{
		{
			name:   "empty token",
			config: canvas.Config{BaseURL: "https://canvas.test"},
			field:  "AccessToken",
		},
		{
			name:   "empty base URL",
			config: canvas.Config{AccessToken: "token"},
			field:  "BaseURL",
		},
		{
			name:   "relative base URL",
			config: canvas.Config{BaseURL: "canvas.test/api", AccessToken: "token"},
			field:  "BaseURL",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(&testCase.config)
			require.Error(t, err)

			var configErr *canvas.ConfigError

			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, testCase.field, configErr.Field)
		})
	}
}

func TestNew_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/self", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(canvas.User{ID: 1, Name: "Token Owner"})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{BaseURL: server.URL + "/", AccessToken: "token"})
	require.NoError(t, err)

	user, err := client.Users().GetSelf(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestClient_DefaultPageSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]canvas.Course{{ID: 1, Name: "Algebra"}})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{
		BaseURL:         server.URL,
		AccessToken:     "token",
		DefaultPageSize: 50,
	})
	require.NoError(t, err)

	_, err = client.Courses().List(canvas.NewParams()).All(context.Background())
	require.NoError(t, err)
}

func TestClient_DefaultPageSize_ExplicitWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]canvas.Course{})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{
		BaseURL:         server.URL,
		AccessToken:     "token",
		DefaultPageSize: 50,
	})
	require.NoError(t, err)

	_, err = client.Courses().List(canvas.NewParams().WithPerPage(5)).All(context.Background())
	require.NoError(t, err)
}

// The full request cycle: typed operation, query encoding, auth header,
// JSON decode into the typed result.
func TestClient_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses/1", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "name": "Algebra"}`))
	}))
	defer server.Close()

	client, err := New(&canvas.Config{BaseURL: server.URL, AccessToken: "token"})
	require.NoError(t, err)

	course, err := client.Courses().Get(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, &canvas.Course{ID: 1, Name: "Algebra"}, course)

	// The same call again decodes to an equal value.
	again, err := client.Courses().Get(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, course, again)
}
