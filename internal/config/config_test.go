package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxFileSize)
	assert.True(t, cfg.Upload.BOMInOutput)

	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, valid: true},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "negative read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = -time.Second }},
		{name: "no allowed origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }},
		{name: "bad log output", mutate: func(c *Config) { c.Logging.Output = "syslog" }},
		{
			name: "file output without path",
			mutate: func(c *Config) {
				c.Logging.Output = "file"
				c.Logging.FilePath = ""
			},
		},
		{name: "zero max files", mutate: func(c *Config) { c.Upload.MaxFiles = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
upload:
  max_files: 5
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	t.Setenv("SURVEYCLEAN_CONFIG", path)
	t.Setenv("SURVEYCLEAN_SERVER_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "env overrides file")
	assert.Equal(t, 5, cfg.Upload.MaxFiles, "file overrides defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 20, Default().Upload.MaxFiles, "defaults untouched")
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout, "unset fields keep defaults")
}

func TestLoad_InvalidEnvValueRejected(t *testing.T) {
	t.Setenv("SURVEYCLEAN_SERVER_PORT", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SURVEYCLEAN_CONFIG", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}
