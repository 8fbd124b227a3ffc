package config

import (
	"log"
	"os"
	"strconv"
)

// Config carries the runtime settings the API needs. Values come from the
// environment (loaded from .env by main), with sensible dev fallbacks.
type Config struct {
	// DSN is the MySQL connection string. When empty the server runs on
	// the in-memory store instead (dev/test mode).
	DSN string
	// CommissionRatePct is the platform's cut on completed secure-mode
	// orders, as a percentage.
	CommissionRatePct float64
	// AdminUserID is the platform operator account receiving admin
	// notifications and owning the admin views.
	AdminUserID int64
	// Port the HTTP server listens on.
	Port string
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		DSN:               os.Getenv("DB_DSN"),
		CommissionRatePct: 5.0,
		AdminUserID:       1,
		Port:              "8080",
	}

	if v := os.Getenv("COMMISSION_RATE_PCT"); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("WARNING: invalid COMMISSION_RATE_PCT %q, keeping default %.1f", v, cfg.CommissionRatePct)
		} else {
			cfg.CommissionRatePct = rate
		}
	}

	if v := os.Getenv("ADMIN_USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("WARNING: invalid ADMIN_USER_ID %q, keeping default %d", v, cfg.AdminUserID)
		} else {
			cfg.AdminUserID = id
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	return cfg
}

// CommissionRate satisfies the ledger's rate provider.
func (c Config) CommissionRate() float64 {
	return c.CommissionRatePct
}
