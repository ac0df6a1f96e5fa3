// Package commands implements the amo CLI commands.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fieldline-io/amocrm-client/pkg/amoclient"
	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"
)

// Common static errors used throughout the commands package.
var (
	ErrBaseURLNotConfigured = errors.New("account base URL is not configured, use 'amo auth login' or --base-url")
	ErrTokenNotConfigured   = errors.New("no credentials configured, use 'amo auth login' or --token")
)

// createClient builds a typed client from the effective configuration.
func createClient() (amocrm.Client[*amocrm.Lead, *amocrm.Contact], error) {
	baseURL := viper.GetString("base_url")
	if baseURL == "" {
		return nil, ErrBaseURLNotConfigured
	}

	config := &amocrm.Config{
		BaseURL:      baseURL,
		AccessToken:  viper.GetString("token"),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		RedirectURI:  viper.GetString("redirect_uri"),
		RefreshToken: viper.GetString("refresh_token"),
		Debug:        viper.GetBool("verbose"),
	}

	if config.AccessToken == "" && config.RefreshToken == "" {
		return nil, ErrTokenNotConfigured
	}

	client, err := amoclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderStructured prints data as JSON or YAML and reports whether it
// handled the configured output format.
func renderStructured(data any) (bool, error) {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding to JSON: %w", err)
		}

		return true, nil
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		if err := encoder.Encode(data); err != nil {
			return true, fmt.Errorf("encoding to YAML: %w", err)
		}

		return true, nil
	default:
		return false, nil
	}
}

// formatInt64Ptr renders an optional identifier for table output.
func formatInt64Ptr(value *int64) string {
	if value == nil {
		return NotAvailable
	}

	return strconv.FormatInt(*value, 10)
}

// formatStringPtr renders an optional string for table output.
func formatStringPtr(value *string) string {
	if value == nil {
		return NotAvailable
	}

	return *value
}

// formatTimestampPtr renders an optional timestamp for table output.
func formatTimestampPtr(value *amocrm.Timestamp) string {
	if value == nil {
		return NotAvailable
	}

	return value.Format("2006-01-02 15:04:05")
}

// parseID parses a positional numeric identifier argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", arg, err)
	}

	return id, nil
}
