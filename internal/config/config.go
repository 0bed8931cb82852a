// ABOUTME: FitForge configuration management with backend selection.
// ABOUTME: Reads config.json, applies .env/environment overrides, and opens storage backends.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitforge/internal/cache"
	"github.com/harperreed/fitforge/internal/charm"
	"github.com/harperreed/fitforge/internal/recipe"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when no api_url is configured.
const DefaultAPIURL = "https://api.fitforge.app"

// Config stores fitforge configuration.
type Config struct {
	// APIURL is the base URL of the FitForge HTTP API.
	APIURL string `json:"api_url,omitempty"`

	// Backend selects local storage: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local storage.
	// Supports ~ expansion. Defaults to ~/.local/share/fitforge.
	DataDir string `json:"data_dir,omitempty"`

	// SessionBackend selects session storage: "badger" (default), "memory" or "redis".
	SessionBackend string `json:"session_backend,omitempty"`

	// CacheDir holds the on-disk badger session store. Defaults to ~/.cache/fitforge.
	CacheDir string `json:"cache_dir,omitempty"`

	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty"`

	// IngredientsFile replaces the built-in ingredient reference table (JSON or YAML).
	IngredientsFile string `json:"ingredients_file,omitempty"`
}

// GetAPIURL returns the API base URL without a trailing slash.
func (c *Config) GetAPIURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return strings.TrimRight(c.APIURL, "/")
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetSessionBackend returns the configured session backend, defaulting to "badger".
func (c *Config) GetSessionBackend() string {
	if c.SessionBackend == "" {
		return "badger"
	}
	return c.SessionBackend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCacheDir returns the session cache directory with ~ expanded,
// defaulting to the standard XDG cache directory.
func (c *Config) GetCacheDir() string {
	if c.CacheDir == "" {
		cacheHome := os.Getenv("XDG_CACHE_HOME")
		if cacheHome == "" {
			home, _ := os.UserHomeDir()
			cacheHome = filepath.Join(home, ".cache")
		}
		return filepath.Join(cacheHome, "fitforge")
	}
	return ExpandPath(c.CacheDir)
}

// GetLogLevel returns the log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case "sqlite":
		dbPath := filepath.Join(dataDir, storage.DBFileName)
		return storage.Open(dbPath)
	case "charm":
		return charm.InitClient()
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenSession creates the session Store based on the configured session backend.
func (c *Config) OpenSession() (cache.Store, error) {
	switch c.GetSessionBackend() {
	case "badger":
		return cache.OpenBadger(filepath.Join(c.GetCacheDir(), "session"))
	case "memory":
		return cache.OpenBadger("")
	case "redis":
		if c.RedisAddr == "" {
			return nil, fmt.Errorf("session_backend redis requires redis_addr")
		}
		return cache.NewRedisStore(c.RedisAddr, c.RedisPassword, 0, "fitforge:session:")
	default:
		return nil, fmt.Errorf("unknown session backend: %q", c.SessionBackend)
	}
}

// LoadIngredients returns the ingredient reference table: the configured file
// if set, otherwise the built-in table.
func (c *Config) LoadIngredients() (recipe.Table, error) {
	if c.IngredientsFile == "" {
		return recipe.DefaultTable(), nil
	}
	return recipe.LoadTableFile(ExpandPath(c.IngredientsFile))
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitforge", "config.json")
}

// Load reads config from disk, then applies environment overrides.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		"FITFORGE_API_URL":          &c.APIURL,
		"FITFORGE_BACKEND":          &c.Backend,
		"FITFORGE_DATA_DIR":         &c.DataDir,
		"FITFORGE_SESSION_BACKEND":  &c.SessionBackend,
		"FITFORGE_CACHE_DIR":        &c.CacheDir,
		"FITFORGE_REDIS_ADDR":       &c.RedisAddr,
		"FITFORGE_REDIS_PASSWORD":   &c.RedisPassword,
		"FITFORGE_LOG_LEVEL":        &c.LogLevel,
		"FITFORGE_INGREDIENTS_FILE": &c.IngredientsFile,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
