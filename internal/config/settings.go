package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings holds process-level defaults read from the environment
type Settings struct {
	TaxTablesPath string
	Product       string
	State         string
	FilingStatus  string
	ListenAddr    string
	Debug         bool
}

// DefaultSettings returns settings with sensible defaults
func DefaultSettings() Settings {
	return Settings{
		Product:      "powerball",
		FilingStatus: "single",
		ListenAddr:   ":8080",
	}
}

// LoadSettings reads the given .env files (missing files are ignored) and
// then applies JACKPOT_* environment variables over the defaults. Variables
// already set in the process environment win over .env values.
func LoadSettings(envFiles ...string) Settings {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	s := DefaultSettings()
	if v := os.Getenv("JACKPOT_TAX_TABLES"); v != "" {
		s.TaxTablesPath = v
	}
	if v := os.Getenv("JACKPOT_PRODUCT"); v != "" {
		s.Product = v
	}
	if v := os.Getenv("JACKPOT_STATE"); v != "" {
		s.State = v
	}
	if v := os.Getenv("JACKPOT_FILING_STATUS"); v != "" {
		s.FilingStatus = v
	}
	if v := os.Getenv("JACKPOT_LISTEN_ADDR"); v != "" {
		s.ListenAddr = v
	}
	if v := os.Getenv("JACKPOT_DEBUG"); v == "true" || v == "1" {
		s.Debug = true
	}
	return s
}
