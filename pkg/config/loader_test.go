package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heritagestay/notify/pkg/config"
)

type testConfig struct {
	Endpoint string        `env:"TEST_NOTIFY_ENDPOINT" envDefault:"https://example.com"`
	Token    string        `env:"TEST_NOTIFY_TOKEN,required"`
	Timeout  time.Duration `env:"TEST_NOTIFY_TIMEOUT" envDefault:"10s"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_NOTIFY_TOKEN", "secret")
	t.Setenv("TEST_NOTIFY_TIMEOUT", "3s")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "https://example.com", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoadMissingRequired(t *testing.T) {
	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	t.Parallel()

	err := config.Load[testConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}
