// ABOUTME: Tests for fitforge configuration management.
// ABOUTME: Covers load, save, defaults, env overrides, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// isolateConfig points XDG_CONFIG_HOME at a temp dir and clears FITFORGE_* overrides.
func isolateConfig(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	for _, key := range []string{
		"FITFORGE_API_URL", "FITFORGE_BACKEND", "FITFORGE_DATA_DIR",
		"FITFORGE_SESSION_BACKEND", "FITFORGE_CACHE_DIR", "FITFORGE_REDIS_ADDR",
		"FITFORGE_REDIS_PASSWORD", "FITFORGE_LOG_LEVEL", "FITFORGE_INGREDIENTS_FILE",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
	if got := cfg.GetSessionBackend(); got != "badger" {
		t.Errorf("GetSessionBackend() = %q, want %q", got, "badger")
	}
	if got := cfg.GetAPIURL(); got != DefaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want %q", got, DefaultAPIURL)
	}
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("GetLogLevel() = %q, want %q", got, "warn")
	}
	if cfg.GetDataDir() == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetAPIURLTrimsSlash(t *testing.T) {
	cfg := &Config{APIURL: "http://localhost:8080/api/"}
	if got := cfg.GetAPIURL(); got != "http://localhost:8080/api" {
		t.Errorf("GetAPIURL() = %q", got)
	}
}

func TestGetCacheDirXDG(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmpDir)

	cfg := &Config{}
	if got, want := cfg.GetCacheDir(), filepath.Join(tmpDir, "fitforge"); got != want {
		t.Errorf("GetCacheDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/fitforge", filepath.Join(home, "data/fitforge")},
		{"data/fitforge", "data/fitforge"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	isolateConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	isolateConfig(t)

	cfg := &Config{
		APIURL:  "http://localhost:9999",
		Backend: "charm",
		DataDir: "/tmp/fitforge-data",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Backend != "charm" {
		t.Errorf("Backend mismatch: got %q", loaded.Backend)
	}
	if loaded.APIURL != "http://localhost:9999" {
		t.Errorf("APIURL mismatch: got %q", loaded.APIURL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolateConfig(t)

	if err := (&Config{LogLevel: "info", APIURL: "http://file"}).Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	t.Setenv("FITFORGE_API_URL", "http://env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.APIURL != "http://env" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want value from file", cfg.LogLevel)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := isolateConfig(t)

	configDir := filepath.Join(tmpDir, "fitforge")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := isolateConfig(t)

	want := filepath.Join(tmpDir, "fitforge", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := &Config{DataDir: tmpDir}
	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "fitforge.db")); os.IsNotExist(err) {
		t.Error("Expected fitforge.db to be created")
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "invalid", DataDir: "/tmp"}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestOpenSessionMemory(t *testing.T) {
	cfg := &Config{SessionBackend: "memory"}
	store, err := cfg.OpenSession()
	if err != nil {
		t.Fatalf("OpenSession() failed: %v", err)
	}
	defer store.Close()
}

func TestOpenSessionRedisRequiresAddr(t *testing.T) {
	cfg := &Config{SessionBackend: "redis"}
	if _, err := cfg.OpenSession(); err == nil {
		t.Error("expected error without redis_addr")
	}
}

func TestLoadIngredientsDefault(t *testing.T) {
	table, err := (&Config{}).LoadIngredients()
	if err != nil {
		t.Fatalf("LoadIngredients() failed: %v", err)
	}
	if len(table.Entries()) == 0 {
		t.Error("expected built-in ingredient table")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
