package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears a variable for the duration of the test
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "DICE_SEED", "GAMES",
		"PLAYER1_NAME", "PLAYER2_NAME", "AUTO_END_TURN", "MAX_TURNS", "VERBOSE",
	} {
		unset(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, int64(0), cfg.DiceSeed)
	assert.Equal(t, 1, cfg.Games)
	assert.Equal(t, "White", cfg.Player1Name)
	assert.Equal(t, "Black", cfg.Player2Name)
	assert.True(t, cfg.AutoEndTurn)
	assert.Equal(t, 2000, cfg.MaxTurns)
	assert.False(t, cfg.Verbose)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("DICE_SEED", "42")
	t.Setenv("GAMES", "10")
	t.Setenv("AUTO_END_TURN", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "redis:6380", cfg.RedisAddr)
	assert.Equal(t, int64(42), cfg.DiceSeed)
	assert.Equal(t, 10, cfg.Games)
	assert.False(t, cfg.AutoEndTurn)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAYER1_NAME", "FromEnv")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PLAYER1_NAME=FromFile\nPLAYER2_NAME=Alice\nMAX_TURNS=50\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// The environment wins over the file
	assert.Equal(t, "FromEnv", cfg.Player1Name)
	assert.Equal(t, "Alice", cfg.Player2Name)
	assert.Equal(t, 50, cfg.MaxTurns)
}

func TestLoadParseError(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAMES", "lots")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	valid := Config{Games: 1, MaxTurns: 1, Player1Name: "a", Player2Name: "b"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no games", mutate: func(c *Config) { c.Games = 0 }},
		{name: "no turns", mutate: func(c *Config) { c.MaxTurns = 0 }},
		{name: "negative db", mutate: func(c *Config) { c.RedisDB = -1 }},
		{name: "same names", mutate: func(c *Config) { c.Player2Name = "a" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
