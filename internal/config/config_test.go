package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SOLVER_CONFIG", filepath.Join(t.TempDir(), "none", "config.toml"))
	_, err := Load()
	require.Error(t, err, "an explicit config path must exist")

	t.Setenv("SOLVER_CONFIG", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5175", c.Server.Port)
	require.Equal(t, "./data/solver.db", c.Database.Path)
	require.Equal(t, 14, c.Auth.JWTExpiresDays)
	require.Equal(t, "solver_token", c.Auth.CookieName)
	require.Equal(t, 0, c.Words.Length)
	require.Equal(t, "info", c.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
port = "9000"
client_origin = "https://example.test"

[words]
path = "/srv/words.txt"
length = 6

[auth]
jwt_expires_days = 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("SOLVER_CONFIG", path)
	t.Setenv("SOLVER_LOG_LEVEL", "debug")
	t.Setenv("SOLVER_DATABASE_PATH", "/tmp/x.db")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", c.Server.Port)
	require.Equal(t, "https://example.test", c.Server.ClientOrigin)
	require.Equal(t, "/srv/words.txt", c.Words.Path)
	require.Equal(t, 6, c.Words.Length)
	require.Equal(t, 3, c.Auth.JWTExpiresDays)
	require.Equal(t, "debug", c.Log.Level)
	require.Equal(t, "/tmp/x.db", c.Database.Path)
}
