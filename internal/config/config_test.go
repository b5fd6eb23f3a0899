package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos/internal/loyalty"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "DB_NAME", "LOG_LEVEL", "LOG_PRETTY", "REQUEST_TIMEOUT", "LOYALTY_CONFIG"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.MongoURI)
	assert.Equal(t, "pos", cfg.DBName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "loyalty.yaml", cfg.LoyaltyConfig)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("REQUEST_TIMEOUT", "12")

	cfg := FromEnv()
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
}

func TestFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("LOG_PRETTY", "maybe")
	t.Setenv("REQUEST_TIMEOUT", "-3")

	cfg := FromEnv()
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func noEnv() []string { return nil }

func writeLoyaltyFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loyalty.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadLoyaltyMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := loadLoyalty(filepath.Join(t.TempDir(), "absent.yaml"), noEnv)
	require.NoError(t, err)
	assert.Equal(t, loyalty.DefaultConfig(), cfg)
}

func TestLoadLoyaltyFromFile(t *testing.T) {
	path := writeLoyaltyFile(t, `
rate:
  unitsOfCurrency: 20
  pointsPerUnit: 2
tiers:
  - minimumSpend: 500
    multiplier: 2
  - minimumSpend: 200
    multiplier: 1.5
`)

	cfg, err := loadLoyalty(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cfg.Rate.UnitsOfCurrency)
	assert.Equal(t, 2, cfg.Rate.PointsPerUnit)
	require.Len(t, cfg.Tiers, 2)
	assert.Equal(t, loyalty.BonusTier{MinimumSpend: 200, Multiplier: 1.5}, cfg.Tiers[1])
}

func TestLoadLoyaltyEnvOverridesFile(t *testing.T) {
	path := writeLoyaltyFile(t, "rate:\n  unitsOfCurrency: 20\n  pointsPerUnit: 2\n")
	environ := func() []string {
		return []string{"LOYALTY_RATE_UNITS=5", "LOYALTY_UNKNOWN=1", "PATH=/bin"}
	}

	cfg, err := loadLoyalty(path, environ)
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Rate.UnitsOfCurrency)
	assert.Equal(t, 2, cfg.Rate.PointsPerUnit)
}

func TestLoadLoyaltyRejectsInvalidPolicy(t *testing.T) {
	tests := map[string]string{
		"zero units":      "rate:\n  unitsOfCurrency: 0\n  pointsPerUnit: 1\n",
		"negative points": "rate:\n  unitsOfCurrency: 10\n  pointsPerUnit: -1\n",
		"shrinking tier":  "tiers:\n  - minimumSpend: 100\n    multiplier: 0.5\n",
		"flat tier":       "tiers:\n  - minimumSpend: 100\n    multiplier: 1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadLoyalty(writeLoyaltyFile(t, body), noEnv)
			assert.Error(t, err)
		})
	}
}
