// Package canvasclient provides the main entry point for creating Canvas API clients
package canvasclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/canvaskit-io/canvas/internal/client"
	"github.com/canvaskit-io/canvas/pkg/canvas"
)

// New creates a new Canvas API client from a config. The base URL is
// normalized to an https URL without a trailing slash.
func New(config *canvas.Config) (canvas.Client, error) {
	if config == nil {
		return nil, &canvas.ConfigError{Field: "Config", Reason: "must not be nil"}
	}

	normalized := *config
	normalized.BaseURL = normalizeBaseURL(config.BaseURL)

	apiClient, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a new client from a base URL and access token.
func NewWithToken(baseURL, token string) (canvas.Client, error) {
	return New(&canvas.Config{
		BaseURL:     baseURL,
		AccessToken: token,
	})
}

func normalizeBaseURL(baseURL string) string {
	normalized := strings.TrimSuffix(baseURL, "/")
	if normalized != "" && !strings.HasPrefix(normalized, "http://") && !strings.HasPrefix(normalized, "https://") {
		normalized = "https://" + normalized
	}

	return normalized
}

// Builder assembles a client configuration fluently. Zero values keep
// the defaults; Build validates the result.
type Builder struct {
	config canvas.Config
}

// NewBuilder starts a builder for the given access token.
func NewBuilder(token string) *Builder {
	return &Builder{config: canvas.Config{AccessToken: token}}
}

// BaseURL sets the API root, e.g. "https://canvas.instructure.com".
func (b *Builder) BaseURL(baseURL string) *Builder {
	b.config.BaseURL = baseURL

	return b
}

// Timeout sets the per-request timeout.
func (b *Builder) Timeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout

	return b
}

// DefaultPageSize sets the per_page hint applied to paginated calls
// that set no explicit size.
func (b *Builder) DefaultPageSize(size int) *Builder {
	b.config.DefaultPageSize = size

	return b
}

// UserAgent overrides the default User-Agent header.
func (b *Builder) UserAgent(userAgent string) *Builder {
	b.config.UserAgent = userAgent

	return b
}

// RequestsPerSecond enables client-side pacing.
func (b *Builder) RequestsPerSecond(rps float64) *Builder {
	b.config.RequestsPerSecond = rps

	return b
}

// Debug enables request/response logging.
func (b *Builder) Debug(debug bool) *Builder {
	b.config.Debug = debug

	return b
}

// Build validates the configuration and creates the client.
func (b *Builder) Build() (canvas.Client, error) {
	return New(&b.config)
}
