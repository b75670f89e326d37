// Package config loads runtime configuration from the environment, an
// optional .env file, and an optional league settings YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nvbf/league-manager/pkg/fixtures"
	timehelper "github.com/nvbf/league-manager/pkg/timeHelper"
)

const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	Port                string
	Env                 string
	LogLevel            string
	StoreBackend        string
	FirebaseProjectID   string
	FirebaseCredentials string
	StorageBucket       string
	CORSHosts           []string
	ResendKey           string
	MailFrom            string
	AppURL              string
	LeagueConfigPath    string
	BootstrapAdminUID   string
	Fixtures            fixtures.Settings
	// Warnings collects settings that were ignored while loading.
	Warnings []string
}

// LeagueFile is the shape of the league settings YAML.
type LeagueFile struct {
	Weeks         int      `yaml:"weeks"`
	Weekday       string   `yaml:"weekday"`
	TimeSlots     []string `yaml:"time_slots"`
	League        string   `yaml:"league"`
	MinutesPlayed int      `yaml:"minutes_played"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		StoreBackend:        strings.ToLower(getEnv("STORE_BACKEND", BackendFirestore)),
		FirebaseProjectID:   os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		StorageBucket:       os.Getenv("FIREBASE_STORAGE_BUCKET"),
		CORSHosts:           splitList(os.Getenv("CORS_HOSTS")),
		ResendKey:           os.Getenv("RESEND_KEY"),
		MailFrom:            getEnv("MAIL_FROM", "Team Management <onboarding@resend.dev>"),
		AppURL:              strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		LeagueConfigPath:    os.Getenv("LEAGUE_CONFIG"),
		BootstrapAdminUID:   os.Getenv("BOOTSTRAP_ADMIN_UID"),
		Fixtures:            fixtures.DefaultSettings(),
	}

	if cfg.StoreBackend != BackendFirestore && cfg.StoreBackend != BackendMemory {
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	// Firebase Auth verifies tokens for every backend.
	if cfg.FirebaseProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}

	if cfg.LeagueConfigPath != "" {
		file, err := loadLeagueFile(cfg.LeagueConfigPath)
		if err != nil {
			return nil, err
		}
		cfg.Warnings = applyLeagueFile(&cfg.Fixtures, file)
	}

	return cfg, nil
}

func loadLeagueFile(path string) (*LeagueFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read league config: %w", err)
	}

	var file LeagueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse league config: %w", err)
	}
	return &file, nil
}

// applyLeagueFile overrides the fixture settings with the values set in file.
// Invalid values keep the default and produce a warning.
func applyLeagueFile(s *fixtures.Settings, file *LeagueFile) []string {
	var warnings []string

	switch {
	case file.Weeks > 0:
		s.Weeks = file.Weeks
	case file.Weeks < 0:
		warnings = append(warnings, fmt.Sprintf("weeks %d ignored", file.Weeks))
	}

	if file.Weekday != "" {
		if d, ok := timehelper.ParseWeekday(file.Weekday); ok {
			s.Weekday = d
		} else {
			warnings = append(warnings, fmt.Sprintf("weekday %q ignored", file.Weekday))
		}
	}

	var slots []string
	for _, slot := range file.TimeSlots {
		if slot = strings.TrimSpace(slot); slot != "" {
			slots = append(slots, slot)
		}
	}
	if len(slots) > 0 {
		s.TimeSlots = slots
	}

	if file.League != "" {
		s.League = file.League
	}

	switch {
	case file.MinutesPlayed > 0:
		s.MinutesPlayed = file.MinutesPlayed
	case file.MinutesPlayed < 0:
		warnings = append(warnings, fmt.Sprintf("minutes_played %d ignored", file.MinutesPlayed))
	}

	return warnings
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
