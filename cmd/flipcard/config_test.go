package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/render"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings(nil)
	require.NoError(t, err)

	assert.Equal(t, ModeTerminal, s.Mode)
	assert.Equal(t, ":8080", s.Addr)
	assert.Equal(t, engine.DefaultConfig(), s.GameConfig())
	assert.Nil(t, s.Rand())
}

func TestLoadSettingsEnvironmentAndFlags(t *testing.T) {
	t.Setenv("FLIPCARD_ROWS", "2")
	t.Setenv("FLIPCARD_COLS", "4")
	t.Setenv("FLIPCARD_PAIRS", "4")
	t.Setenv("FLIPCARD_SHOW_ALL", "1500ms")
	t.Setenv("FLIPCARD_MODE", "serve")
	t.Setenv("FLIPCARD_SEED", "11")

	s, err := loadSettings([]string{"-addr", "127.0.0.1:9000", "-seed", "42"})
	require.NoError(t, err)

	assert.Equal(t, ModeServe, s.Mode)
	assert.Equal(t, "127.0.0.1:9000", s.NetworkConfig().Address)
	assert.Equal(t, uint64(42), s.Seed, "flags override the environment")
	assert.NotNil(t, s.Rand())

	cfg := s.GameConfig()
	assert.Equal(t, 2, cfg.Rows)
	assert.Equal(t, 4, cfg.Cols)
	assert.Equal(t, 4, cfg.Pairs)
	assert.Equal(t, 1500*time.Millisecond, cfg.ShowAllDuration)
}

func TestLoadSettingsRejectsInvalid(t *testing.T) {
	_, err := loadSettings([]string{"-mode", "gui"})
	assert.ErrorIs(t, err, ErrInvalidMode)

	t.Setenv("FLIPCARD_PAIRS", "5")
	_, err = loadSettings(nil)
	assert.ErrorIs(t, err, engine.ErrPairsNotDivisible)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FLIPCARD_LOG_LEVEL=debug\n"), 0644))

	// Register for cleanup before godotenv sets it
	t.Setenv("FLIPCARD_LOG_LEVEL", "")
	os.Unsetenv("FLIPCARD_LOG_LEVEL")

	require.NoError(t, loadEnvFiles(filepath.Join(dir, "missing.env"), path))

	s, err := loadSettings(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadEnvFileRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FLIPCARD_MODE=\"serve\n"), 0644))

	err := loadEnvFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadSettingsRejectsUndrawableGrid(t *testing.T) {
	t.Setenv("FLIPCARD_ROWS", "2")
	t.Setenv("FLIPCARD_COLS", "60")
	t.Setenv("FLIPCARD_PAIRS", "60")

	_, err := loadSettings(nil)
	assert.ErrorIs(t, err, engine.ErrInvalidGrid)
}

func TestSettingsAtlas(t *testing.T) {
	s, err := loadSettings(nil)
	require.NoError(t, err)

	atlas, err := s.LoadAtlas()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, atlas.Faces(), s.Pairs)

	path := filepath.Join(t.TempDir(), "atlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("back: { glyph: \"#\" }\nfaces:\n  - { glyph: A }\n"), 0644))
	s.Atlas = path
	_, err = s.LoadAtlas()
	assert.ErrorIs(t, err, render.ErrMissingRegion)
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipcard.log")
	s := Settings{Mode: ModeTerminal, LogLevel: "info", LogFile: path}

	logger, closeLog, err := setupLogging(s)
	require.NoError(t, err)
	logger.Info().Msg("hello")
	logger.Debug().Msg("filtered")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.NotContains(t, string(data), "filtered")

	_, _, err = setupLogging(Settings{Mode: ModeServe, LogLevel: "loud"})
	assert.Error(t, err)
}
