// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMatchTime            = "14:00"
	DefaultMeetingOffsetMinutes = 30
	DefaultTimezone             = "Europe/Paris"
	DefaultLeaderboardPageSize  = 10
	DefaultReminderCron         = "0 9 * * 1"
	DefaultReminderDaysAhead    = 7
	DefaultReminderRegion       = "eu-west-3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type MatchesConfig struct {
	DefaultTime          string `yaml:"default_time"`
	MeetingOffsetMinutes int    `yaml:"meeting_offset_minutes"`
	Timezone             string `yaml:"timezone"`
}

type LeaderboardConfig struct {
	PageSize int `yaml:"page_size"`
}

// LoginConfig sets the password login throttling limits. Zero values take the defaults.
type LoginConfig struct {
	MaxFailures    int `yaml:"max_failures"`
	LockoutMinutes int `yaml:"lockout_minutes"`
	MaxIPPerHour   int `yaml:"max_ip_per_hour"`
}

type RemindersConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Cron      string `yaml:"cron"`
	DaysAhead int    `yaml:"days_ahead"`
	Sender    string `yaml:"sender"`
	Region    string `yaml:"region"`
	// Loaded from environment
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
		TrustProxy  bool   `yaml:"trust_proxy"`
		SecretKey   string `yaml:"-"` // Loaded from environment
	} `yaml:"app"`

	Database    DatabaseConfig    `yaml:"database"`
	Matches     MatchesConfig     `yaml:"matches"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Login       LoginConfig       `yaml:"login"`
	Reminders   RemindersConfig   `yaml:"reminders"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.App.SecretKey = os.Getenv("APP_SECRET_KEY")
	cfg.Reminders.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.Reminders.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Matches.DefaultTime) == "" {
		c.Matches.DefaultTime = DefaultMatchTime
	}
	if c.Matches.MeetingOffsetMinutes == 0 {
		c.Matches.MeetingOffsetMinutes = DefaultMeetingOffsetMinutes
	}
	if strings.TrimSpace(c.Matches.Timezone) == "" {
		c.Matches.Timezone = DefaultTimezone
	}
	if c.Leaderboard.PageSize == 0 {
		c.Leaderboard.PageSize = DefaultLeaderboardPageSize
	}
	if strings.TrimSpace(c.Reminders.Cron) == "" {
		c.Reminders.Cron = DefaultReminderCron
	}
	if c.Reminders.DaysAhead == 0 {
		c.Reminders.DaysAhead = DefaultReminderDaysAhead
	}
	if strings.TrimSpace(c.Reminders.Region) == "" {
		c.Reminders.Region = DefaultReminderRegion
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, err := time.Parse("15:04", c.Matches.DefaultTime); err != nil {
		return fmt.Errorf("matches default_time must be in HH:MM format")
	}
	if c.Matches.MeetingOffsetMinutes < 0 || c.Matches.MeetingOffsetMinutes > 24*60 {
		return fmt.Errorf("matches meeting_offset_minutes must be between 0 and 1440")
	}
	if _, err := time.LoadLocation(c.Matches.Timezone); err != nil {
		return fmt.Errorf("matches timezone %q is invalid: %w", c.Matches.Timezone, err)
	}
	if c.Leaderboard.PageSize < 1 {
		return fmt.Errorf("leaderboard page_size must be positive")
	}
	if c.Login.MaxFailures < 0 || c.Login.LockoutMinutes < 0 || c.Login.MaxIPPerHour < 0 {
		return fmt.Errorf("login limits must not be negative")
	}

	if c.Reminders.Enabled {
		if _, err := cron.ParseStandard(c.Reminders.Cron); err != nil {
			return fmt.Errorf("reminders cron %q is invalid: %w", c.Reminders.Cron, err)
		}
		if c.Reminders.DaysAhead < 1 {
			return fmt.Errorf("reminders days_ahead must be positive")
		}
		if strings.TrimSpace(c.Reminders.Sender) == "" {
			return fmt.Errorf("reminders sender is required when reminders are enabled")
		}
	}

	return nil
}

// Location returns the configured match timezone, or local time if it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Matches.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) MeetingOffset() time.Duration {
	return time.Duration(c.Matches.MeetingOffsetMinutes) * time.Minute
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
