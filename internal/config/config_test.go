package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
app:
  name: clubtable
  environment: development
  port: 8080
database:
  driver: sqlite
  filename: build/db/clubtable.db
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Matches.DefaultTime != "14:00" {
		t.Fatalf("default time = %q, want 14:00", cfg.Matches.DefaultTime)
	}
	if cfg.MeetingOffset() != 30*time.Minute {
		t.Fatalf("meeting offset = %v, want 30m", cfg.MeetingOffset())
	}
	if cfg.Leaderboard.PageSize != 10 {
		t.Fatalf("page size = %d, want 10", cfg.Leaderboard.PageSize)
	}
	if cfg.Reminders.Cron != DefaultReminderCron {
		t.Fatalf("reminder cron = %q, want %q", cfg.Reminders.Cron, DefaultReminderCron)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.App.Name = "" },
			wantErr: "app name is required",
		},
		{
			name:    "unsupported driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "unsupported database driver",
		},
		{
			name:    "bad default time",
			mutate:  func(c *Config) { c.Matches.DefaultTime = "2pm" },
			wantErr: "default_time",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Matches.Timezone = "Mars/Olympus" },
			wantErr: "timezone",
		},
		{
			name:    "negative login limit",
			mutate:  func(c *Config) { c.Login.LockoutMinutes = -5 },
			wantErr: "login limits",
		},
		{
			name: "bad reminder cron",
			mutate: func(c *Config) {
				c.Reminders.Enabled = true
				c.Reminders.Sender = "club@example.com"
				c.Reminders.Cron = "every monday"
			},
			wantErr: "reminders cron",
		},
		{
			name: "reminders need a sender",
			mutate: func(c *Config) {
				c.Reminders.Enabled = true
			},
			wantErr: "sender",
		},
		{
			name: "disabled reminders skip cron check",
			mutate: func(c *Config) {
				c.Reminders.Cron = "nonsense"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(validYAML))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadReadsSecretsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(validYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "test-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.SecretKey != "test-secret" {
		t.Fatalf("secret key = %q, want test-secret", cfg.App.SecretKey)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment")
	}
}
