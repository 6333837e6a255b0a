package langcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 100*time.Millisecond, cfg.Debounce())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("color: false\ncontext_lines: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Color)
	require.Equal(t, 5, cfg.ContextLines)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "nodelang", cfg.LSP.LanguageID)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\ncontext_lines: 42\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "loglevel must be one of: debug info warn error")
	require.Contains(t, err.Error(), "contextlines must be at most 10")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("watch_debounce: soon\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "watch_debounce")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	cfg.LogFormat = "json"
	cfg.WatchDebounce = "250ms"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
	require.Equal(t, 250*time.Millisecond, loaded.Debounce())
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.LSP.LanguageID = ""
	require.Error(t, Save(filepath.Join(t.TempDir(), FileName), cfg))
	require.Error(t, Save(filepath.Join(t.TempDir(), FileName), nil))
}
