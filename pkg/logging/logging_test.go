package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keepGlobalLevel(t *testing.T) {
	t.Helper()
	previous := zerolog.GlobalLevel()
	original := log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(previous)
		log.Logger = original
	})
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keepGlobalLevel(t)
			tempDir := t.TempDir()
			t.Setenv("XDG_STATE_HOME", tempDir)

			SetupLogger(tt.verbosity)

			assert.Equal(t, tt.wantLevel, LevelFor(tt.verbosity))

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			logPath := filepath.Join(tempDir, "dotsync", "dotsync.log")
			_, err := os.Stat(logPath)
			assert.NoError(t, err, "log file should be created at %s", logPath)
		})
	}
}

func TestSetup_ConsoleWriter(t *testing.T) {
	keepGlobalLevel(t)
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var console bytes.Buffer
	Setup(Options{Verbosity: 1, Console: &console})

	logger := GetLogger("reconcile")
	logger.Info().Str("destination", "/home/u/.vimrc").Msg("Linked")
	logger.Debug().Msg("hidden at info")

	out := console.String()
	assert.Contains(t, out, "Linked")
	assert.Contains(t, out, "/home/u/.vimrc")
	assert.NotContains(t, out, "hidden at info")
	// a buffer is never a terminal
	assert.NotContains(t, out, "\x1b[")

	content, err := os.ReadFile(LogFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(content), `"component":"reconcile"`)
}

func TestSetup_UnwritableLogFile(t *testing.T) {
	keepGlobalLevel(t)
	tempDir := t.TempDir()
	blocker := filepath.Join(tempDir, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))
	t.Setenv("XDG_STATE_HOME", blocker)

	var console bytes.Buffer
	Setup(Options{Console: &console})

	assert.Contains(t, console.String(), "Failed to create log file")
}

func TestGetLogFilePath(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "/custom/state")
		assert.Equal(t, filepath.Join("/custom/state", "dotsync", "dotsync.log"), getLogFilePath())
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		t.Setenv("XDG_STATE_HOME", "")
		got := getLogFilePath()
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
		assert.Equal(t, "dotsync.log", filepath.Base(got))
		assert.Equal(t, LogFilePath(), got)
	})
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	keepGlobalLevel(t)

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf)

	logger := GetLogger("reconcile")
	logger.Info().Msg("linked")

	assert.Contains(t, buf.String(), `"component":"reconcile"`)
	assert.Contains(t, buf.String(), "linked")
}

func TestLogCommand(t *testing.T) {
	var buf bytes.Buffer
	keepGlobalLevel(t)

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf)

	LogCommand("git", []string{"clone", "https://example.com/dots.git"})

	output := buf.String()
	assert.Contains(t, output, "git")
	assert.Contains(t, output, "clone")
	assert.Contains(t, output, "Executing command")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	keepGlobalLevel(t)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "sync")
	require.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), "duration")
}
