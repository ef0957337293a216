package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pokedex.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestReadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Read(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.API.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.API.BatchDelay)
	assert.Equal(t, 24, cfg.Catalog.PageSize)
}

func TestReadFile(t *testing.T) {
	path := writeConfig(t, `
[discord]
token = "abc"

[database]
path = "/tmp/dex.db"

[api]
batch_size = 20
batch_delay = "250ms"
timeout = "3s"

[catalog]
page_size = 12
`)

	cfg, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Discord.Token)
	assert.Equal(t, "/tmp/dex.db", cfg.DB.Path)
	assert.Equal(t, 20, cfg.API.BatchSize)
	assert.Equal(t, 250*time.Millisecond, cfg.API.BatchDelay)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10000, cfg.API.ListLimit)
	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.NoError(t, cfg.RequireToken())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POKEDEX_DISCORD_TOKEN", "from-env")
	t.Setenv("POKEDEX_DB_PATH", "env.db")
	t.Setenv("POKEDEX_API_URL", "http://localhost:8080/api/v2")

	cfg, err := Read(writeConfig(t, "[discord]\ntoken = \"from-file\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, "env.db", cfg.DB.Path)
	assert.Equal(t, "http://localhost:8080/api/v2", cfg.API.BaseURL)
}

func TestReadRejectsInvalid(t *testing.T) {
	_, err := Read(writeConfig(t, "[catalog]\npage_size = 30\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Read(writeConfig(t, "[api]\nbatch_size = 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Read(writeConfig(t, "not toml at all ["))
	assert.Error(t, err)
}

func TestRequireToken(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.RequireToken(), ErrMissingToken)
}
