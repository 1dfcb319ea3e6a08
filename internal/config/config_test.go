package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/certification-service/internal/events"
	"github.com/SAP-F-2025/certification-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, scoring.DefaultPolicy(), cfg.Scoring)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, "certifications", cfg.Events.CertificationTopic)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SCORING_FAILURE_THRESHOLD", "60")
	t.Setenv("SCORING_MALUS_PER_WRONG_UNIT", "not-a-number")
	t.Setenv("SCORING_MIN_VALIDATED_UNITS", "3")
	t.Setenv("CATALOG_CACHE_TTL", "15m")
	t.Setenv("AUTH_ENABLED", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 60, cfg.Scoring.FailureThreshold)
	assert.Equal(t, scoring.DefaultMalusPerWrongUnit, cfg.Scoring.MalusPerWrongUnit)
	assert.Equal(t, 3, cfg.Scoring.MinValidatedUnits)
	assert.Equal(t, 15*time.Minute, cfg.Catalog.CacheTTL)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(".env", []byte("CATALOG_URL=http://catalog.internal\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CATALOG_URL") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.internal", cfg.Catalog.BaseURL)
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	disabled := &EventConfig{Enabled: false, Publisher: "kafka"}
	publisher, err := disabled.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, events.NoopEventPublisher{}, publisher)

	unknown := &EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
	publisher, err = unknown.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, publisher)

	brokers := (&EventConfig{KafkaBrokers: "kafka-1:9092, kafka-2:9092"}).GetKafkaBrokers()
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, brokers)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
