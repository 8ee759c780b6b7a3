// Package logging configures the process-wide slog logger.
//
// The viewer owns the terminal, so log output only goes to a file. Without a
// file it is discarded.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// EnvVar names the log file when --log-file is not given.
const EnvVar = "SBSDIFF_LOG_FILE"

// Path returns flagPath, falling back to the environment.
func Path(flagPath string) string {
	if p := strings.TrimSpace(flagPath); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvVar))
}

// Setup installs the default slog logger. The returned closer must be called
// on exit.
func Setup(path string, level slog.Level) (io.Closer, error) {
	if path == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nopCloser{}, nil
	}

	f, err := tea.LogToFile(path, "sbsdiff")
	if err != nil {
		return nil, err
	}
	// SetDefault also routes the standard logger through the handler, so
	// anything bubbletea logs lands in the same file.
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	slog.Debug("logging started", "path", path)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
