package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverConfig struct {
	HTTPPort int    `env:"TEST_CATALOG_HTTP_PORT" envDefault:"8000"`
	DBHost   string `env:"TEST_CATALOG_PG_HOST" envDefault:"localhost"`
	LogLevel string `env:"TEST_CATALOG_LOG_LEVEL" envDefault:"info"`
	Events   bool   `env:"TEST_CATALOG_EVENTS" envDefault:"true"`
}

func TestLoad_AppliesDefaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Events)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TEST_CATALOG_HTTP_PORT", "9000")
	t.Setenv("TEST_CATALOG_PG_HOST", "db.internal")
	t.Setenv("TEST_CATALOG_LOG_LEVEL", "debug")
	t.Setenv("TEST_CATALOG_EVENTS", "false")

	var cfg serverConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Events)
}

type brokerConfig struct {
	Brokers string `env:"TEST_CATALOG_KAFKA_BROKERS,required"`
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg brokerConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_RequiredPresent(t *testing.T) {
	t.Setenv("TEST_CATALOG_KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	var cfg brokerConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "kafka-1:9092,kafka-2:9092", cfg.Brokers)
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Setenv("TEST_CATALOG_HTTP_PORT", "eight thousand")

	var cfg serverConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
