package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
security:
  jwt:
    secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Parking.SpotCount != 20 {
		t.Errorf("Parking.SpotCount = %d, want 20", cfg.Parking.SpotCount)
	}
	if cfg.Rooms.MaxBookingMinutes != 480 {
		t.Errorf("Rooms.MaxBookingMinutes = %d, want 480", cfg.Rooms.MaxBookingMinutes)
	}
	if cfg.Automation.TickInterval != time.Minute {
		t.Errorf("Automation.TickInterval = %v, want 1m", cfg.Automation.TickInterval)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
parking:
  spot_count: 5
rooms:
  max_booking_minutes: 120
security:
  jwt:
    secret: "`+testSecret+`"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Parking.SpotCount != 5 {
		t.Errorf("Parking.SpotCount = %d, want 5", cfg.Parking.SpotCount)
	}
	if cfg.Rooms.MaxBookingMinutes != 120 {
		t.Errorf("Rooms.MaxBookingMinutes = %d, want 120", cfg.Rooms.MaxBookingMinutes)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
database:
  path: "/from/file.db"
security:
  jwt:
    secret: "`+testSecret+`"
`)

	t.Setenv("OFFICEGRID_DATABASE_PATH", "/from/env.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Database.Path != "/from/env.db" {
		t.Errorf("Database.Path = %q, want /from/env.db", cfg.Database.Path)
	}
}

func TestValidateRejectsMissingSecret(t *testing.T) {
	path := writeConfigFile(t, `site: {id: "office-001"}`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() succeeded without JWT secret")
	}
	if !strings.Contains(err.Error(), "jwt.secret") {
		t.Errorf("error %q does not mention jwt.secret", err)
	}
}

func TestValidateRejectsShortSecret(t *testing.T) {
	path := writeConfigFile(t, `
security:
  jwt:
    secret: "too-short"
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load() accepted a short JWT secret")
	}
}

func TestValidateRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero spot count", func(c *Config) { c.Parking.SpotCount = 0 }},
		{"zero max booking", func(c *Config) { c.Rooms.MaxBookingMinutes = 0 }},
		{"port out of range", func(c *Config) { c.API.Port = 70000 }},
		{"invalid qos", func(c *Config) { c.MQTT.QoS = 3 }},
		{"zero tick interval", func(c *Config) { c.Automation.TickInterval = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Security.JWT.Secret = testSecret
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted invalid config")
			}
		})
	}
}
