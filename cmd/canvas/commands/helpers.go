package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/canvaskit-io/canvas/pkg/canvas"
	"github.com/canvaskit-io/canvas/pkg/canvasclient"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	defaultJSONIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired = errors.New("Canvas base URL is required (use --api, CANVAS_API, or the config file)")
	ErrTokenRequired       = errors.New("access token is required (use --token, CANVAS_TOKEN, or 'canvas config set-token')")
	ErrAccountIDRequired   = errors.New("account ID is required")
	ErrSearchTermTooShort  = errors.New("search term must be at least 2 characters")
)

// CreateClient builds a canvas.Client from the resolved configuration.
func CreateClient() (canvas.Client, error) {
	baseURL := viper.GetString("api")
	if baseURL == "" {
		return nil, ErrAPIEndpointRequired
	}

	token := viper.GetString("token")
	if token == "" {
		return nil, ErrTokenRequired
	}

	builder := canvasclient.NewBuilder(token).BaseURL(baseURL)

	if pageSize := viper.GetInt("page-size"); pageSize > 0 {
		builder = builder.DefaultPageSize(pageSize)
	}

	if viper.GetBool("verbose") {
		builder = builder.Debug(true)
	}

	client, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderStructured writes value as JSON or YAML when the output flag asks
// for it, and reports whether it did. Table rendering stays with the
// caller.
func renderStructured(value interface{}) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(value)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(defaultJSONIndent)

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

func boolToYesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
