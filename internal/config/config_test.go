package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				t.Setenv(tc.key, tc.envValue)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				t.Setenv(tc.key, tc.envValue)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestLoad_MissingKeyDoesNotPanic(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PORT", "")

	cfg := Load()
	if cfg.APIKeyConfigured() {
		t.Error("Expected key to be reported as not configured")
	}
	if cfg.GeminiModel != DefaultModel {
		t.Errorf("Expected model %q, got %q", DefaultModel, cfg.GeminiModel)
	}
	if cfg.Port != "3000" {
		t.Errorf("Expected port 3000, got %q", cfg.Port)
	}
}

func TestIsUsableAPIKey(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
	}{
		{"", false},
		{"dummy-key", false},
		{"your_api_key_here", false},
		{"AIzaSyExample", true},
	}

	for _, tc := range tests {
		if got := IsUsableAPIKey(tc.key); got != tc.expected {
			t.Errorf("IsUsableAPIKey(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestClientFromViper_Defaults(t *testing.T) {
	v := viper.New()
	SetClientDefaults(v, "/tmp/rehnuma")

	cfg, err := ClientFromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("Expected storage %q, got %q", StorageFile, cfg.Storage)
	}
	if cfg.SlotKey != DefaultSlotKey {
		t.Errorf("Expected slot key %q, got %q", DefaultSlotKey, cfg.SlotKey)
	}
	if cfg.StoragePath != filepath.Join("/tmp/rehnuma", "history") {
		t.Errorf("Unexpected storage path %q", cfg.StoragePath)
	}
}

func TestClientFromViper_RejectsUnknownStorage(t *testing.T) {
	v := viper.New()
	SetClientDefaults(v, t.TempDir())
	v.Set("storage", "floppy")

	if _, err := ClientFromViper(v); err == nil {
		t.Error("Expected error for unknown storage backend")
	}
}

func TestClientFromViper_PostgresNeedsURL(t *testing.T) {
	v := viper.New()
	SetClientDefaults(v, t.TempDir())
	v.Set("storage", StoragePostgres)

	if _, err := ClientFromViper(v); err == nil {
		t.Error("Expected error when database_url is empty")
	}
}

func TestReadClientConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "server_url = \"http://chat.example:8080\"\nstorage = \"sqlite\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	SetClientDefaults(v, dir)
	if err := ReadClientConfigFile(v, "", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := ClientFromViper(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerURL != "http://chat.example:8080" {
		t.Errorf("Expected server url from file, got %q", cfg.ServerURL)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("Expected sqlite storage, got %q", cfg.Storage)
	}
}

func TestReadClientConfigFile_MissingDefaultIsFine(t *testing.T) {
	v := viper.New()
	if err := ReadClientConfigFile(v, "", t.TempDir()); err != nil {
		t.Errorf("Expected no error for missing default config, got %v", err)
	}
}
