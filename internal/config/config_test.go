package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout())
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout())
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "APP_ENV=production\nHTTP_PORT=9090\nDB_NAME=from_file\nREDIS_ENABLED=true\nCORS_ALLOWED_ORIGINS=https://a.test, https://b.test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	t.Setenv("DB_NAME", "from_env")
	t.Setenv("DB_QUERY_TIMEOUT_SECONDS", "2")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, "from_env", cfg.DB.Name, "environment overrides the file")
	assert.Equal(t, 2*time.Second, cfg.DB.QueryTimeout())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "users", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=users port=5432 sslmode=disable", c.DSN())

	c.URL = "postgres://u:p@db:5432/users"
	assert.Equal(t, "postgres://u:p@db:5432/users", c.DSN())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "bad port",
			mutate: func(c *Config) { c.App.HTTPPort = "http" },
			errMsg: "HTTP_PORT",
		},
		{
			name:   "no database",
			mutate: func(c *Config) { c.DB.Host = "" },
			errMsg: "DATABASE_URL",
		},
		{
			name: "url alone is enough",
			mutate: func(c *Config) {
				c.DB.Host = ""
				c.DB.URL = "postgres://localhost/users"
			},
		},
		{
			name:   "idle above open",
			mutate: func(c *Config) { c.DB.MaxIdleConns = c.DB.MaxOpenConns + 1 },
			errMsg: "DB_MAX_IDLE_CONNS",
		},
		{
			name:   "zero query timeout",
			mutate: func(c *Config) { c.DB.QueryTimeoutSeconds = 0 },
			errMsg: "DB_QUERY_TIMEOUT_SECONDS",
		},
		{
			name: "redis ttl",
			mutate: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.CacheTTL = 0
			},
			errMsg: "REDIS_CACHE_TTL",
		},
		{
			name: "rate limit rps",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = true
				c.RateLimit.RequestsPerSecond = 0
			},
			errMsg: "RATE_LIMIT_RPS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
