package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/apihub/internal/prefs"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env var: %v", err)
	}
}

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			} else {
				unset(t, tt.key)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 3 * time.Second, expected: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true", value: "true", def: false, expected: true},
		{name: "numeric false", value: "0", def: true, expected: false},
		{name: "garbage uses default", value: "maybe", def: true, expected: true},
		{name: "missing uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustTheme(t *testing.T) {
	t.Setenv("TEST_THEME", "")
	assert.Equal(t, prefs.ThemeLight, mustTheme("TEST_THEME", prefs.ThemeLight))

	t.Setenv("TEST_THEME", "DARK")
	assert.Equal(t, prefs.ThemeDark, mustTheme("TEST_THEME", prefs.ThemeLight))

	t.Setenv("TEST_THEME", "sepia")
	assert.Panics(t, func() { mustTheme("TEST_THEME", prefs.ThemeLight) })
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://hub.example.com"},
		splitAndTrim(` http://localhost:5173 , "https://hub.example.com",, `))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APIHUB_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("APIHUB_STORE_URL", "http://localhost:9090")
	for _, k := range []string{
		"APIHUB_LISTEN_PORT", "APIHUB_THEME", "APIHUB_REDIS_ADDR",
		"APIHUB_RELOAD_INTERVAL", "APIHUB_DRAFT_TTL", "APIHUB_CORS_ORIGINS",
		"APIHUB_DRAFT_GC_INTERVAL", "APIHUB_LOG_LEVEL",
	} {
		unset(t, k)
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenPort)
	assert.Equal(t, "http://localhost:9090", cfg.StoreURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, time.Duration(0), cfg.ReloadInterval)
	assert.Equal(t, prefs.ThemeLight, cfg.Theme)
	assert.Equal(t, 24*time.Hour, cfg.DraftTTL)
	assert.Empty(t, cfg.CORSOrigins)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadRequiresStoreURL(t *testing.T) {
	t.Setenv("APIHUB_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unset(t, "APIHUB_STORE_URL")

	assert.Panics(t, func() { Load() })
}

func TestLoadReadsDotEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte(
		"APIHUB_STORE_URL=http://store.local\nAPIHUB_THEME=dark\nAPIHUB_REDIS_ADDR=redis:6379\n"), 0o600))

	t.Setenv("APIHUB_ENV_FILE", file)
	unset(t, "APIHUB_STORE_URL")
	unset(t, "APIHUB_THEME")
	unset(t, "APIHUB_REDIS_ADDR")

	cfg := Load()

	assert.Equal(t, "http://store.local", cfg.StoreURL)
	assert.Equal(t, prefs.ThemeDark, cfg.Theme)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadClientAllowsMissingStore(t *testing.T) {
	t.Setenv("APIHUB_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unset(t, "APIHUB_STORE_URL")
	t.Setenv("APIHUB_FETCH_TIMEOUT", "2s")

	cfg := LoadClient()

	assert.Empty(t, cfg.StoreURL)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
}
