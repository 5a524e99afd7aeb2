package config

import (
	"github.com/spf13/viper"
)

// Ledger holds the settings needed to open the ledger database.
type Ledger struct {
	Path               string
	ValidateCategories bool
}

// LoadLedgerConfig reads database settings from viper
// (config file or FINTRACK_DATABASE_* environment variables).
func LoadLedgerConfig() Ledger {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}

	return Ledger{
		Path:               ExpandPath(path),
		ValidateCategories: viper.GetBool("database.validate_categories"),
	}
}
