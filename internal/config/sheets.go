package config

import (
	"os"

	"github.com/Veraticus/fintrack/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or FINTRACK_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	settings := []struct {
		target *string
		key    string
		env    string
		path   bool
	}{
		{target: &config.ServiceAccountPath, key: "sheets.service_account_path", env: "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", path: true},
		{target: &config.ClientID, key: "sheets.client_id", env: "GOOGLE_SHEETS_CLIENT_ID"},
		{target: &config.ClientSecret, key: "sheets.client_secret", env: "GOOGLE_SHEETS_CLIENT_SECRET"},
		{target: &config.RefreshToken, key: "sheets.refresh_token", env: "GOOGLE_SHEETS_REFRESH_TOKEN"},
		{target: &config.SpreadsheetID, key: "sheets.spreadsheet_id", env: "GOOGLE_SHEETS_SPREADSHEET_ID"},
		{target: &config.SpreadsheetName, key: "sheets.spreadsheet_name", env: "GOOGLE_SHEETS_SPREADSHEET_NAME"},
		{target: &config.TimeZone, key: "sheets.timezone", env: "GOOGLE_SHEETS_TIMEZONE"},
	}

	for _, s := range settings {
		v := viper.GetString(s.key)
		if v == "" {
			v = os.Getenv(s.env)
		}
		if v == "" {
			continue
		}
		if s.path {
			v = ExpandPath(v)
		}
		*s.target = v
	}

	if viper.IsSet("sheets.enable_formatting") {
		config.EnableFormatting = viper.GetBool("sheets.enable_formatting")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
