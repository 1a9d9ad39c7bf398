package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// fileConfig is the subset of settings persisted to the config file.
type fileConfig struct {
	API      string `yaml:"api,omitempty"`
	Token    string `yaml:"token,omitempty"`
	PageSize int    `yaml:"page-size,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and update the configuration stored in ~/.canvas/config.yml",
	}

	cmd.AddCommand(newConfigSetTokenCommand())
	cmd.AddCommand(newConfigSetAPICommand())
	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".canvas", "config.yml"), nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	config := &fileConfig{}

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

func saveFileConfig(path string, config *fileConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// The file holds the access token, keep it private.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func newConfigSetTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-token",
		Short: "Store the access token",
		Long:  "Prompt for a Canvas access token and store it in the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print("Access token: ")

			tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("reading token: %w", err)
			}

			fmt.Println()

			token := strings.TrimSpace(string(tokenBytes))
			if token == "" {
				return ErrTokenRequired
			}

			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := loadFileConfig(path)
			if err != nil {
				return err
			}

			config.Token = token

			if err := saveFileConfig(path, config); err != nil {
				return err
			}

			fmt.Printf("Token saved to %s\n", path)

			return nil
		},
	}
}

func newConfigSetAPICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-api BASE_URL",
		Short: "Store the Canvas base URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}

			config, err := loadFileConfig(path)
			if err != nil {
				return err
			}

			config.API = args[0]

			if err := saveFileConfig(path, config); err != nil {
				return err
			}

			fmt.Printf("Base URL saved to %s\n", path)

			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := viper.GetString("token")
			if token != "" {
				token = "***"
			}

			fmt.Printf("api:       %s\n", viper.GetString("api"))
			fmt.Printf("token:     %s\n", token)
			fmt.Printf("output:    %s\n", viper.GetString("output"))
			fmt.Printf("page-size: %d\n", viper.GetInt("page-size"))

			return nil
		},
	}
}
