package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvTelemetry, "")
	t.Chdir(work)
	return home, work
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, cfg.Timeout())
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength())
	assert.Empty(t, cfg.Disabled())
	assert.Empty(t, cfg.Roots())
	assert.False(t, cfg.TelemetryEnabled())
	assert.True(t, cfg.TelemetryPersist())
	assert.Equal(t, ScopeGlobal, cfg.Scope())
}

func TestSetGet(t *testing.T) {
	cfg := &Config{}
	tests := []struct {
		key, value, want string
	}{
		{"author.name", "alice", "alice"},
		{"workspace.roots", " /a , /b ,", "/a,/b"},
		{"search.timeout", "45s", "45s"},
		{"search.max_line_length", "2048", "2048"},
		{"search.disable", "git,grep", "git,grep"},
		{"telemetry.enabled", "TRUE", "true"},
		{"telemetry.persist", "false", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, cfg.Set(tt.key, tt.value))
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, cfg.IsSet(tt.key))
		})
	}
	assert.Equal(t, []string{"/a", "/b"}, cfg.Roots())
	assert.Equal(t, 45*time.Second, cfg.Timeout())
}

func TestSet_Invalid(t *testing.T) {
	cfg := &Config{}
	tests := []struct {
		key, value string
		want       error
	}{
		{"nope", "x", ErrUnknownKey},
		{"search.timeout", "soon", ErrInvalidValue},
		{"search.timeout", "500ms", ErrInvalidValue},
		{"search.timeout", "2h", ErrInvalidValue},
		{"search.max_line_length", "0", ErrInvalidValue},
		{"search.max_line_length", "big", ErrInvalidValue},
		{"search.disable", "walk", ErrInvalidValue},
		{"telemetry.enabled", "yes", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, cfg.Set(tt.key, tt.value), tt.want)
		})
	}
	_, err := cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, cfg.IsSet("search.timeout"))
}

func TestAll(t *testing.T) {
	all := (&Config{}).All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, "30s", all["search.timeout"])
	assert.Equal(t, "true", all["telemetry.persist"])
	for _, k := range ValidKeys() {
		assert.True(t, IsValidKey(k))
	}
	assert.False(t, IsValidKey("limits.max_path"))
}

func TestTelemetryEnv(t *testing.T) {
	off := false
	cfg := &Config{Telemetry: Telemetry{Enabled: &off}}

	t.Setenv(EnvTelemetry, "1")
	assert.True(t, cfg.TelemetryEnabled())
	t.Setenv(EnvTelemetry, "0")
	assert.False(t, cfg.TelemetryEnabled())
}

func TestSaveLoad_Scopes(t *testing.T) {
	home, _ := isolate(t)

	global := &Config{}
	require.NoError(t, global.Set("author.name", "global-user"))
	require.NoError(t, global.SaveScope(ScopeGlobal))
	assert.FileExists(t, filepath.Join(home, ".seek", "config.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "global-user", cfg.Author.Name)

	local := &Config{}
	require.NoError(t, local.Set("search.disable", "git"))
	require.NoError(t, local.SaveScope(ScopeLocal))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, cfg.Scope())
	assert.Equal(t, []string{"git"}, cfg.Disabled())
	assert.Empty(t, cfg.Author.Name, "local config replaces global, it does not merge")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(".seek", 0755))

	require.NoError(t, os.WriteFile(LocalPath(), []byte("search: [unclosed"), 0644))
	_, err := Load()
	assert.ErrorContains(t, err, "malformed config file")

	require.NoError(t, os.WriteFile(LocalPath(), []byte("search:\n  timeout: 5h\n"), 0644))
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
