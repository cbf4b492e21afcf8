package config

import (
	"fmt"
	"os"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration from v and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or STRATEGY_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if s := v.GetString("sheets.service_account_path"); s != "" {
		config.ServiceAccountPath = ExpandPath(s)
	}
	if s := v.GetString("sheets.client_id"); s != "" {
		config.ClientID = s
	}
	if s := v.GetString("sheets.client_secret"); s != "" {
		config.ClientSecret = s
	}
	if s := v.GetString("sheets.refresh_token"); s != "" {
		config.RefreshToken = s
	}
	if s := v.GetString("sheets.spreadsheet_id"); s != "" {
		config.SpreadsheetID = s
	}
	if s := v.GetString("sheets.spreadsheet_name"); s != "" {
		config.SpreadsheetName = s
	}
	if s := v.GetString("sheets.timezone"); s != "" {
		config.TimeZone = s
	}

	// Fall back to direct environment variables
	if config.ServiceAccountPath == "" {
		if s := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); s != "" {
			config.ServiceAccountPath = ExpandPath(s)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if config.SpreadsheetName == sheets.DefaultSpreadsheetName {
		if s := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"); s != "" {
			config.SpreadsheetName = s
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: sheets: %w", common.ErrInvalidConfig, err)
	}

	return &config, nil
}

// SheetsConfigured reports whether any Sheets credentials are present, so
// callers can leave publishing disabled instead of failing.
func SheetsConfigured(v *viper.Viper) bool {
	for _, key := range []string{"sheets.service_account_path", "sheets.client_id", "sheets.refresh_token"} {
		if v.GetString(key) != "" {
			return true
		}
	}
	for _, env := range []string{"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_REFRESH_TOKEN"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
