package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Monitoring MonitoringConfig
	Scheduler  SchedulerConfig
	Webhook    WebhookConfig
	Sheets     SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// MonitoringConfig carries the engine tunables. Each one is an empirical
// constant with a documented default; none is derived at runtime.
type MonitoringConfig struct {
	StaleAfterIntervals      float64
	OfflineAfterIntervals    float64
	CriticalIssueCount       int
	ExpiryWarningDays        int
	MortalityWarningPercent  float64
	MortalityCriticalPercent float64
	EnvironmentWindowDays    int
}

// SchedulerConfig holds cron settings for the periodic jobs.
type SchedulerConfig struct {
	AlertCron   string
	SummaryCron string
	Timezone    string
	// FarmIDs lists the farms the scheduled scan covers.
	FarmIDs []string
}

// WebhookConfig configures the outbound alert-digest notifier. An empty
// URL disables delivery; scans still run and log.
type WebhookConfig struct {
	URL       string
	AuthToken string
}

// SheetsConfig configures the legacy spreadsheet importer. Both fields
// empty disables the import endpoint.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmwatch"),
		},
		Monitoring: MonitoringConfig{
			StaleAfterIntervals:      getenvFloat("SENSOR_STALE_MULTIPLIER", 2),
			OfflineAfterIntervals:    getenvFloat("SENSOR_OFFLINE_MULTIPLIER", 4),
			CriticalIssueCount:       getenvInt("WATER_CRITICAL_ISSUE_COUNT", 2),
			ExpiryWarningDays:        getenvInt("EXPIRY_WARNING_DAYS", 30),
			MortalityWarningPercent:  getenvFloat("MORTALITY_WARNING_PERCENT", 5),
			MortalityCriticalPercent: getenvFloat("MORTALITY_CRITICAL_PERCENT", 10),
			EnvironmentWindowDays:    getenvInt("ENVIRONMENT_WINDOW_DAYS", 7),
		},
		Scheduler: SchedulerConfig{
			AlertCron:   getenvWithDefault("ALERT_CRON_SCHEDULE", "0 6 * * *"),
			SummaryCron: getenvWithDefault("SUMMARY_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:    getenvWithDefault("TIMEZONE", "Africa/Conakry"),
			FarmIDs:     splitList(os.Getenv("MONITORED_FARM_IDS")),
		},
		Webhook: WebhookConfig{
			URL:       os.Getenv("ALERT_WEBHOOK_URL"),
			AuthToken: os.Getenv("ALERT_WEBHOOK_TOKEN"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_IMPORT_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// the tunables are usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	m := c.Monitoring
	if m.StaleAfterIntervals <= 0 || m.OfflineAfterIntervals <= m.StaleAfterIntervals {
		return errors.New("sensor status multipliers must satisfy 0 < stale < offline")
	}
	if m.ExpiryWarningDays < 0 {
		return errors.New("EXPIRY_WARNING_DAYS must not be negative")
	}
	if m.MortalityCriticalPercent < m.MortalityWarningPercent {
		return errors.New("MORTALITY_CRITICAL_PERCENT must be at or above the warning percent")
	}
	if m.EnvironmentWindowDays <= 0 {
		return errors.New("ENVIRONMENT_WINDOW_DAYS must be positive")
	}

	if c.Scheduler.AlertCron == "" || c.Scheduler.SummaryCron == "" {
		return errors.New("cron schedules must be provided")
	}
	if c.Scheduler.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	// Sheets import needs both fields or neither.
	s := c.Sheets
	if (s.CredentialsPath == "") != (s.SpreadsheetID == "") {
		return errors.New("sheets import requires both GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_IMPORT_ID")
	}

	return nil
}

// SheetsEnabled reports whether the spreadsheet importer is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
