package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeFile(t, `
log_level = "debug"

[server]
port = "9090"
trust_proxy = true

[database]
url = "postgres://flow@localhost/flow"
migrate = true

[pricing]
cache_ttl = "90s"
default_template_id = "spring"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, DefaultRateLimit, cfg.Server.RateLimit)
		assert.True(t, cfg.Server.TrustProxy)
		assert.True(t, cfg.Database.Migrate)
		assert.Equal(t, 90*time.Second, cfg.Pricing.CacheTTL.Duration)
		assert.Equal(t, "spring", cfg.Pricing.DefaultTemplateID)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("missing default file yields defaults", func(t *testing.T) {
		t.Chdir(t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "[server]\nhost = \"x\"\n", "unknown keys"},
		{"bad duration", "[pricing]\ncache_ttl = \"soon\"\n", "parse duration"},
		{"non-positive rate limit", "[server]\nrate_limit = 0\n", "rate_limit must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
