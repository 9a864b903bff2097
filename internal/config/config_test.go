package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  address: ":9000"
  jwt_secret: "s3cret"
database:
  url: "postgres://localhost/marquee"
redis:
  enabled: true
  ttl_seconds: 30
mqtt:
  enabled: true
  broker: "tcp://broker:1883"
logging:
  level: "debug"
  format: "console"
scheduling:
  max_preview_days: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"address", cfg.Server.Address, ":9000"},
		{"jwt_secret", cfg.Server.JWTSecret, "s3cret"},
		{"token_ttl default", cfg.Server.TokenTTLHours, 72},
		{"database url", cfg.Database.URL, "postgres://localhost/marquee"},
		{"migrations default", cfg.Database.MigrationsPath, "./migrations"},
		{"retries default", cfg.Database.MaxRetries, 10},
		{"redis enabled", cfg.Redis.Enabled, true},
		{"redis address default", cfg.Redis.Address, "localhost:6379"},
		{"redis ttl", cfg.Redis.TTLSeconds, 30},
		{"mqtt broker", cfg.MQTT.Broker, "tcp://broker:1883"},
		{"mqtt prefix default", cfg.MQTT.TopicPrefix, "tenants"},
		{"log level", cfg.Logging.Level, "debug"},
		{"log format", cfg.Logging.Format, "console"},
		{"preview days", cfg.Scheduling.MaxPreviewDays, 30},
		{"metrics path default", cfg.Metrics.Path, "/metrics"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoadJSONWithEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "server": {"jwt_secret": "from-file"},
  "database": {"url": "postgres://file/marquee"}
}`)
	t.Setenv("MARQUEE_SERVER__JWT_SECRET", "from-env")
	t.Setenv("MARQUEE_DATABASE__MAX_RETRIES", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Server.JWTSecret)
	assert.Equal(t, "postgres://file/marquee", cfg.Database.URL)
	assert.Equal(t, 3, cfg.Database.MaxRetries)
}

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("MARQUEE_SERVER__JWT_SECRET", "env")
	t.Setenv("MARQUEE_DATABASE__URL", "postgres://env/marquee")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/marquee", cfg.Database.URL)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		msg  string
	}{
		{"missing secret", "c.yaml", "database:\n  url: x\n", "jwt_secret"},
		{"missing database", "c.yaml", "server:\n  jwt_secret: x\n", "url is required"},
		{"bad log format", "c.yaml", "server:\n  jwt_secret: x\ndatabase:\n  url: x\nlogging:\n  format: xml\n", "unknown format"},
		{"preview too long", "c.yaml", "server:\n  jwt_secret: x\ndatabase:\n  url: x\nscheduling:\n  max_preview_days: 400\n", "max_preview_days"},
		{"unsupported extension", "c.toml", "", "unsupported config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
