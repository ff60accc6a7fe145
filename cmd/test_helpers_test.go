package cmd

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/tonimelisma/copilot-search/internal/app"
	"github.com/tonimelisma/copilot-search/internal/config"
	"github.com/tonimelisma/copilot-search/internal/logger"
	"github.com/tonimelisma/copilot-search/pkg/copilot"
)

// MockSDK is a mock implementation of the SDK interface for testing.
type MockSDK struct {
	SearchWithCopilotFunc func(ctx context.Context, input copilot.SearchInput) (json.RawMessage, error)
}

func (m *MockSDK) SearchWithCopilot(ctx context.Context, input copilot.SearchInput) (json.RawMessage, error) {
	if m.SearchWithCopilotFunc != nil {
		return m.SearchWithCopilotFunc(ctx, input)
	}
	return json.RawMessage(`{}`), nil
}

func newTestApp(sdk app.SDK) *app.App {
	return &app.App{
		Config: config.Default(),
		Logger: logger.NoopLogger{},
		SDK:    sdk,
	}
}

// useTempConfig points the config package at a fresh file and clears the
// environment overrides for the duration of the test.
func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("COPILOT_SEARCH_CONFIG_PATH", path)
	for _, key := range []string{
		"COPILOT_SEARCH_ACCESS_TOKEN",
		"COPILOT_SEARCH_CLIENT_ID",
		"COPILOT_SEARCH_DEBUG",
		"COPILOT_SEARCH_LOG_JSON",
		"COPILOT_SEARCH_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return path
}

// captureOutput captures stdout and stderr, returning them as a string.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()

	originalLogOutput := log.Writer()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	oldStderr := os.Stderr
	r2, w2, _ := os.Pipe()
	os.Stderr = w2
	log.SetOutput(w2)

	outC := make(chan []byte)
	errC := make(chan []byte)
	go func() { b, _ := io.ReadAll(r); outC <- b }()
	go func() { b, _ := io.ReadAll(r2); errC <- b }()

	f()

	w.Close()
	w2.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	log.SetOutput(originalLogOutput)

	return string(<-outC) + string(<-errC)
}
