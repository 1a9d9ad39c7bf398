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

func TestUsersClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/5", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(canvas.User{ID: 5, Name: "Ada Lovelace", SortableName: "Lovelace, Ada"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	user, err := client.Users().Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "Lovelace, Ada", user.SortableName)
}

func TestUsersClient_GetSelf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/self", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(canvas.User{ID: 7, Name: "Token Owner", LoginID: "owner@stateu.edu"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	user, err := client.Users().GetSelf(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "owner@stateu.edu", user.LoginID)
}

func TestUsersClient_ListForAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts/1/users", r.URL.Path)
		assert.Equal(t, "ada", r.URL.Query().Get("search_term"))

		users := []canvas.User{{ID: 5, Name: "Ada Lovelace"}}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(users)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	params := canvas.NewParams().Add("search_term", "ada")

	users, err := client.Users().ListForAccount(1, params).All(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada Lovelace", users[0].Name)
}
