package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/copilot-search/pkg/copilot"
	"golang.org/x/oauth2"
)

// useTempConfig points the package at a fresh config path and clears the
// environment overrides for the duration of the test.
func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	t.Setenv("COPILOT_SEARCH_CONFIG_PATH", path)
	for _, key := range []string{
		"COPILOT_SEARCH_ACCESS_TOKEN",
		"COPILOT_SEARCH_CLIENT_ID",
		"COPILOT_SEARCH_DEBUG",
		"COPILOT_SEARCH_LOG_JSON",
		"COPILOT_SEARCH_HTTP_TIMEOUT",
	} {
		// envconfig treats a set-but-empty variable as a value to parse.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return path
}

func TestLoadOrCreateWithDefaults(t *testing.T) {
	path := useTempConfig(t)

	cfg, err := LoadOrCreate()
	require.NoError(t, err)

	assert.Equal(t, copilot.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Empty(t, cfg.Token.AccessToken)
	assert.Equal(t, path, cfg.FilePath())
	assert.NoFileExists(t, path, "LoadOrCreate must not write the file")
}

func TestLoadMissingFile(t *testing.T) {
	useTempConfig(t)

	_, err := Load()
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadBackwardCompatibility(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), PermSecureDir))

	oldConfig := map[string]interface{}{
		"token": map[string]interface{}{
			"access_token": "test-token",
		},
		"debug": false,
	}
	data, err := json.MarshalIndent(oldConfig, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, PermSecureFile))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Token.AccessToken)
	assert.False(t, cfg.Debug)
	assert.Equal(t, copilot.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, copilot.DefaultTimeout, cfg.HTTP.Timeout)
}

func TestLoadCorruptFile(t *testing.T) {
	path := useTempConfig(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), PermSecureDir))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), PermSecureFile))

	_, err := LoadOrCreate()
	assert.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := useTempConfig(t)

	cfg, err := LoadOrCreate()
	require.NoError(t, err)

	cfg.Debug = true
	cfg.ClientID = "client-123"
	cfg.PageSize = 50
	cfg.HTTP.Timeout = 45 * time.Second
	cfg.Token = oauth2.Token{AccessToken: "stored", RefreshToken: "refresh"}
	cfg.AccessToken = "from-env-never-saved"
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, PermSecureFile, info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "from-env-never-saved")

	loaded, err := Load()
	require.NoError(t, err)
	assert.True(t, loaded.Debug)
	assert.Equal(t, "client-123", loaded.ClientID)
	assert.Equal(t, 50, loaded.PageSize)
	assert.Equal(t, 45*time.Second, loaded.HTTP.Timeout)
	assert.Equal(t, "stored", loaded.Token.AccessToken)
	assert.Equal(t, "refresh", loaded.Token.RefreshToken)
	assert.Empty(t, loaded.AccessToken)
}

func TestEnvironmentOverrides(t *testing.T) {
	useTempConfig(t)
	t.Setenv("COPILOT_SEARCH_ACCESS_TOKEN", "env-token")
	t.Setenv("COPILOT_SEARCH_CLIENT_ID", "env-client")
	t.Setenv("COPILOT_SEARCH_DEBUG", "true")
	t.Setenv("COPILOT_SEARCH_LOG_JSON", "true")
	t.Setenv("COPILOT_SEARCH_HTTP_TIMEOUT", "5s")

	cfg, err := LoadOrCreate()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.AccessToken)
	assert.Equal(t, "env-client", cfg.ClientID)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
}

func TestInvalidEnvironmentValue(t *testing.T) {
	useTempConfig(t)
	t.Setenv("COPILOT_SEARCH_HTTP_TIMEOUT", "soon")

	_, err := LoadOrCreate()
	assert.Error(t, err)
}

func TestUpdateTokenConcurrent(t *testing.T) {
	useTempConfig(t)

	cfg, err := LoadOrCreate()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, cfg.UpdateToken(oauth2.Token{AccessToken: "rotated"}))
		}()
	}
	wg.Wait()

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "rotated", loaded.StoredToken().AccessToken)
}
