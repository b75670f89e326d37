package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvbf/league-manager/pkg/fixtures"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-league")
	t.Setenv("PORT", "")
	t.Setenv("CORS_HOSTS", "http://a.test, http://b.test,,")
	t.Setenv("LEAGUE_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSHosts)
	assert.Equal(t, fixtures.DefaultSettings(), cfg.Fixtures)
}

func TestLoad_RequiresProject(t *testing.T) {
	t.Setenv("STORE_BACKEND", "firestore")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-league")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_LeagueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
weeks: 7
weekday: thursday
time_slots: ["18:00", " ", "20:00"]
league: Winter Cup
minutes_played: -5
`), 0o600))

	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-league")
	t.Setenv("LEAGUE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Fixtures.Weeks)
	assert.Equal(t, time.Thursday, cfg.Fixtures.Weekday)
	assert.Equal(t, []string{"18:00", "20:00"}, cfg.Fixtures.TimeSlots)
	assert.Equal(t, "Winter Cup", cfg.Fixtures.League)
	assert.Equal(t, 90, cfg.Fixtures.MinutesPlayed)
	assert.Len(t, cfg.Warnings, 1)
}

func TestLoad_LeagueFileMissing(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("FIREBASE_PROJECT_ID", "demo-league")
	t.Setenv("LEAGUE_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
