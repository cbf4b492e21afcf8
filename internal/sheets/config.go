// Package sheets publishes exported slices to Google Sheets.
package sheets

import (
	"errors"
	"time"
)

// DefaultSpreadsheetName is used when a new spreadsheet has to be created.
const DefaultSpreadsheetName = "Category Quality Gap Analysis"

// AuthMethod is how the writer obtains Google credentials.
type AuthMethod int

// Authentication methods.
const (
	AuthNone AuthMethod = iota
	AuthRefreshToken
	AuthServiceAccount
)

func (a AuthMethod) String() string {
	switch a {
	case AuthRefreshToken:
		return "refresh token"
	case AuthServiceAccount:
		return "service account"
	default:
		return "none"
	}
}

// Config holds the Google Sheets writer settings. Exactly one of the
// refresh-token credentials or a service account key must be set.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		TimeZone:         "UTC",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// Auth reports which credentials are complete. A config carrying both kinds
// reports AuthNone; Validate explains why.
func (c *Config) Auth() AuthMethod {
	token := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	account := c.ServiceAccountPath != ""
	switch {
	case token && !account:
		return AuthRefreshToken
	case account && !token:
		return AuthServiceAccount
	default:
		return AuthNone
	}
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var errs []error

	token := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	switch {
	case token && c.ServiceAccountPath != "":
		errs = append(errs, errors.New("multiple authentication methods configured; use either a refresh token or a service account"))
	case c.Auth() == AuthNone:
		errs = append(errs, errors.New("no authentication method configured"))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, errors.New("batch size must be positive"))
	}
	if c.RetryAttempts < 0 {
		errs = append(errs, errors.New("retry attempts cannot be negative"))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, errors.New("retry delay cannot be negative"))
	}

	return errors.Join(errs...)
}
