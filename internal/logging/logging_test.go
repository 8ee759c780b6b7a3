package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathPrefersFlag(t *testing.T) {
	t.Setenv(EnvVar, "/tmp/env.log")
	require.Equal(t, "/tmp/flag.log", Path(" /tmp/flag.log "))
	require.Equal(t, "/tmp/env.log", Path(""))

	t.Setenv(EnvVar, "")
	require.Empty(t, Path(""))
}

func TestSetupWritesToFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "sbsdiff.log")
	closer, err := Setup(path, slog.LevelDebug)
	require.NoError(t, err)

	slog.Info("hello from test", "n", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello from test")
	require.Contains(t, string(data), "n=1")
}

func TestSetupWithoutPathDiscards(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	closer, err := Setup("", slog.LevelDebug)
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	slog.Error("dropped")
}
