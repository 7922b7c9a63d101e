package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	cfg, err := New(nil).Defaults()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "> ", cfg.Prompt)
	assert.True(t, cfg.StartVisible)
	assert.True(t, cfg.ForwardLogs)
	assert.Equal(t, 200, cfg.History.Limit)
	assert.Equal(t, 5, cfg.Suggestions.DisplayLimit)
	assert.NotNil(t, cfg.Aliases)
	assert.Empty(t, cfg.Aliases)
	assert.Empty(t, cfg.Completions)
}

func TestLoader_LoadYAML(t *testing.T) {
	path := writeFile(t, "config.yml", `
log_level: debug
history:
  limit: 10
aliases:
  greet: echo hello {{ .Args | join " " }}
completions:
  - command: echo
    values: [alpha, beta]
  - parameter: target
    type: string
    priority: 9
    values: [prod]
`)

	cfg, err := New(nil).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.History.Limit)
	assert.Equal(t, 5, cfg.Suggestions.DisplayLimit, "unset keys keep their default")
	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, `echo hello {{ .Args | join " " }}`, cfg.Aliases["greet"])
	require.Len(t, cfg.Completions, 2)
	assert.Equal(t, "echo", cfg.Completions[0].Command)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Completions[0].Values)
	assert.Equal(t, 9, cfg.Completions[1].Priority)
}

func TestLoader_LoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
log_level = "warn"
start_visible = false

[aliases]
hi = "echo hi"

[[completions]]
command = "echo"
values = ["x"]
`)

	cfg, err := New(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.StartVisible)
	assert.Equal(t, "echo hi", cfg.Aliases["hi"])
	require.Len(t, cfg.Completions, 1)
}

func TestLoader_LoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"prompt": "dev> ", "suggestions": {"display_limit": 3}}`)

	cfg, err := New(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev> ", cfg.Prompt)
	assert.Equal(t, 3, cfg.Suggestions.DisplayLimit)
}

func TestLoader_Errors(t *testing.T) {
	_, err := New(nil).Load(writeFile(t, "config.ini", "x=1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format: .ini")

	_, err = New(nil).Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestLoader_LoadDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, path, err := New(nil).LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "info", cfg.LogLevel)

	dir := filepath.Join(home, AppName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigName), []byte("log_level: error\n"), 0644))

	cfg, path, err = New(nil).LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigName), path)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/devconsole/config.yml", path)
}

func TestParseType(t *testing.T) {
	for name, want := range map[string]registry.Kind{
		"string":   registry.KindString,
		"int":      registry.KindInteger,
		"float":    registry.KindFloat,
		"string[]": registry.KindStringList,
	} {
		got, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, want, got.Kind)
	}

	_, err := ParseType("bool")
	assert.EqualError(t, err, "unknown parameter type: bool")
}

func TestConfig_Providers(t *testing.T) {
	cfg := &Config{Completions: []CompletionProvider{
		{Command: "deploy", Values: []string{"staging", "prod"}},
		{Parameter: "target", Type: "string", Priority: 5, Values: []string{"a"}},
	}}

	providers, err := cfg.Providers()
	require.NoError(t, err)
	require.Len(t, providers, 2)

	assert.Equal(t, "deploy", providers[0].Command)
	assert.Equal(t, 4, providers[0].Score())
	assert.Equal(t, []string{"staging", "prod"}, providers[0].Candidates())

	require.NotNil(t, providers[1].Type)
	assert.Equal(t, registry.KindString, providers[1].Type.Kind)
	assert.Equal(t, 5, providers[1].Score())

	cfg.Completions[0].Values[0] = "changed"
	assert.Equal(t, []string{"staging", "prod"}, providers[0].Candidates())
}

func TestConfig_ProvidersBadType(t *testing.T) {
	cfg := &Config{Completions: []CompletionProvider{{Type: "map", Values: []string{"x"}}}}

	_, err := cfg.Providers()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "completions[0]")
}

func TestDescribe(t *testing.T) {
	cfg := &Config{LogLevel: "debug", Aliases: map[string]string{"b": "x", "a": "y"}, Completions: make([]CompletionProvider, 2)}

	info := Describe("", cfg)
	assert.True(t, info.Defaults)
	assert.Equal(t, "built-in defaults", info.Source())
	assert.Equal(t, []string{"a", "b"}, info.Aliases)
	assert.Equal(t, 2, info.Completions)

	info = Describe("/etc/devconsole.yml", cfg)
	assert.Equal(t, "/etc/devconsole.yml", info.Source())
}
