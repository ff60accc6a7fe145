// Package config loads and persists the CLI's settings: the stored OAuth
// token, the client ID used for token refresh, and the search and HTTP
// defaults. Environment variables prefixed with COPILOT_SEARCH_ override
// what is on disk.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/kelseyhightower/envconfig"
	"github.com/tonimelisma/copilot-search/pkg/copilot"
	"golang.org/x/oauth2"
)

const (
	configDir  = ".copilot-search"
	configFile = "config.json"
	envPrefix  = "COPILOT_SEARCH"
)

// File permissions for the config directory and file. The file holds tokens.
const (
	PermSecureDir  os.FileMode = 0700
	PermSecureFile os.FileMode = 0600
)

// Configuration holds all the application's persisted settings.
type Configuration struct {
	Token    oauth2.Token       `json:"token"`
	ClientID string             `json:"client_id,omitempty"`
	Debug    bool               `json:"debug"`
	LogJSON  bool               `json:"log_json,omitempty"`
	PageSize int                `json:"page_size,omitempty"`
	HTTP     copilot.HTTPConfig `json:"http"`

	// AccessToken comes from COPILOT_SEARCH_ACCESS_TOKEN and takes precedence
	// over Token. It is never written to disk.
	AccessToken string `json:"-"`

	path string
	mu   sync.RWMutex
}

// environment lists the supported environment overrides.
type environment struct {
	ConfigPath  string        `envconfig:"CONFIG_PATH"`
	AccessToken string        `envconfig:"ACCESS_TOKEN"`
	ClientID    string        `envconfig:"CLIENT_ID"`
	Debug       bool          `envconfig:"DEBUG"`
	LogJSON     bool          `envconfig:"LOG_JSON"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT"`
}

func readEnvironment() (environment, error) {
	var env environment
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return env, fmt.Errorf("reading %s_* environment: %w", envPrefix, err)
	}
	return env, nil
}

// Path returns the location of the configuration file.
func Path() (string, error) {
	env, err := readEnvironment()
	if err != nil {
		return "", err
	}
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, configDir, configFile), nil
}

// Default returns a configuration with every default applied.
func Default() *Configuration {
	cfg := &Configuration{}
	cfg.applyDefaults()
	return cfg
}

func (c *Configuration) applyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = copilot.DefaultPageSize
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP = copilot.DefaultHTTPConfig()
	}
}

func (c *Configuration) applyEnvironment(env environment) {
	if env.AccessToken != "" {
		c.AccessToken = env.AccessToken
	}
	if env.ClientID != "" {
		c.ClientID = env.ClientID
	}
	if env.Debug {
		c.Debug = true
	}
	if env.LogJSON {
		c.LogJSON = true
	}
	if env.HTTPTimeout > 0 {
		c.HTTP.Timeout = env.HTTPTimeout
	}
}

// Load reads the configuration file from disk. Missing fields get their
// defaults and environment overrides are applied on top. If the file does not
// exist the returned error matches fs.ErrNotExist.
func Load() (*Configuration, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	env, err := readEnvironment()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Configuration{path: path}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnvironment(env)

	return cfg, nil
}

// LoadOrCreate attempts to load a configuration file. If it doesn't exist,
// it returns a default configuration with environment overrides applied.
func LoadOrCreate() (*Configuration, error) {
	cfg, err := Load()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}
	env, err := readEnvironment()
	if err != nil {
		return nil, err
	}

	cfg = Default()
	cfg.path = path
	cfg.applyEnvironment(env)
	return cfg, nil
}

// Save persists the configuration to disk. The write goes to a temporary
// file that is renamed into place while holding <path>.lock.
func (c *Configuration) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		path, err := Path()
		if err != nil {
			return err
		}
		c.path = path
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, PermSecureDir); err != nil {
		return fmt.Errorf("creating config directory '%s': %w", dir, err)
	}

	fileLock := flock.New(c.path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("acquiring file lock for '%s': %w", c.path, err)
	}
	defer fileLock.Unlock()

	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config to JSON: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary config file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(PermSecureFile); err != nil {
		tmp.Close()
		return fmt.Errorf("setting config file permissions: %w", err)
	}
	if _, err := tmp.Write(jsonData); err != nil {
		tmp.Close()
		return fmt.Errorf("writing configuration file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing configuration file: %w", err)
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("replacing configuration file: %w", err)
	}
	return nil
}

// UpdateToken replaces the stored token and saves the configuration.
func (c *Configuration) UpdateToken(token oauth2.Token) error {
	c.mu.Lock()
	c.Token = token
	c.mu.Unlock()

	return c.Save()
}

// StoredToken returns a copy of the persisted token.
func (c *Configuration) StoredToken() oauth2.Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Token
}

// FilePath returns the path the configuration was loaded from or will be
// saved to.
func (c *Configuration) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}
