package client

import (
	"testing"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// newTestClient creates a client against a test server with a throwaway
// token.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&canvas.Config{
		BaseURL:     baseURL,
		AccessToken: "test-token",
	})
	if err != nil {
		t.Fatalf("creating test client: %v", err)
	}

	return client
}
