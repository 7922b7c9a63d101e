// Package config handles loading and parsing of devconsole configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/devconsole/internal/logger"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
)

//go:embed defaults.yml
var defaultsYAML []byte

const (
	// AppName names the configuration directory
	AppName = "devconsole"
	// ConfigName is the name of the default config file
	ConfigName = "config.yml"
)

// SupportedExtensions lists the accepted config file formats
var SupportedExtensions = []string{".yml", ".yaml", ".toml", ".json"}

// HistoryConfig bounds the submitted-line history
type HistoryConfig struct {
	Limit int `koanf:"limit" json:"limit,omitempty" jsonschema:"minimum=0,description=Maximum number of remembered lines (0 keeps everything)"`
}

// SuggestionsConfig controls the suggestion panel
type SuggestionsConfig struct {
	DisplayLimit int `koanf:"display_limit" json:"display_limit,omitempty" jsonschema:"minimum=1,description=Number of suggestions shown and cycled through"`
}

// CompletionProvider declares static completion values
type CompletionProvider struct {
	Command   string   `koanf:"command" json:"command,omitempty" jsonschema:"description=Only complete parameters of this command"`
	Parameter string   `koanf:"parameter" json:"parameter,omitempty" jsonschema:"description=Only complete parameters with this name"`
	Type      string   `koanf:"type" json:"type,omitempty" jsonschema:"enum=string,enum=int,enum=float,enum=string[],description=Only complete parameters of this type"`
	Priority  int      `koanf:"priority" json:"priority,omitempty" jsonschema:"description=Overrides the specificity score"`
	Values    []string `koanf:"values" json:"values" jsonschema:"minItems=1,description=Candidate values"`
}

// Config represents a devconsole configuration
type Config struct {
	LogLevel     string               `koanf:"log_level" json:"log_level,omitempty" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,description=Log level"`
	Prompt       string               `koanf:"prompt" json:"prompt,omitempty" jsonschema:"description=Interactive prompt"`
	StartVisible bool                 `koanf:"start_visible" json:"start_visible,omitempty" jsonschema:"description=Show suggestions when the console starts"`
	ForwardLogs  bool                 `koanf:"forward_logs" json:"forward_logs,omitempty" jsonschema:"description=Copy warnings and errors into the console transcript"`
	History      HistoryConfig        `koanf:"history" json:"history,omitempty"`
	Suggestions  SuggestionsConfig    `koanf:"suggestions" json:"suggestions,omitempty"`
	Aliases      map[string]string    `koanf:"aliases" json:"aliases,omitempty" jsonschema:"description=Commands expanding to a line template"`
	Completions  []CompletionProvider `koanf:"completions" json:"completions,omitempty" jsonschema:"description=Static completion providers"`
}

// Loader loads configuration files on top of the embedded defaults
type Loader struct {
	log *logger.Logger
}

// New creates a new config loader
func New(log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{log: log}
}

// Defaults returns the embedded default configuration
func (l *Loader) Defaults() (*Config, error) {
	return l.Load("")
}

// Load reads the defaults, then the file at path when path is not empty
func (l *Loader) Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		parser, err := ParserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		l.log.Debug().Str("path", path).Msg("Config file loaded")
	}

	cfg := &Config{Aliases: map[string]string{}}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath when it exists, the defaults otherwise.
// It returns the path actually loaded, empty for defaults only.
func (l *Loader) LoadDefault() (*Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		l.log.Debug().Err(err).Msg("No default config location")
		cfg, err := l.Defaults()
		return cfg, "", err
	}
	if _, err := os.Stat(path); err != nil {
		cfg, err := l.Defaults()
		return cfg, "", err
	}
	cfg, err := l.Load(path)
	return cfg, path, err
}

// ParserFor picks the koanf parser matching the file extension
func ParserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/devconsole/config.yml
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName, ConfigName), nil
}

// ParseType converts a config type name to a parameter type
func ParseType(name string) (registry.Type, error) {
	switch name {
	case "string":
		return registry.String, nil
	case "int":
		return registry.Integer, nil
	case "float":
		return registry.Float, nil
	case "string[]":
		return registry.StringList, nil
	default:
		return registry.Type{}, fmt.Errorf("unknown parameter type: %s", name)
	}
}

// Providers converts the static completion declarations to registry providers
func (c *Config) Providers() ([]registry.Provider, error) {
	providers := make([]registry.Provider, 0, len(c.Completions))
	for i, decl := range c.Completions {
		p := registry.Provider{
			Name:      fmt.Sprintf("config-completions-%d", i),
			Command:   decl.Command,
			Parameter: decl.Parameter,
			Priority:  decl.Priority,
		}
		if decl.Type != "" {
			t, err := ParseType(decl.Type)
			if err != nil {
				return nil, fmt.Errorf("completions[%d]: %w", i, err)
			}
			p.Type = &t
		}
		values := append([]string{}, decl.Values...)
		p.Candidates = func() []string { return values }
		providers = append(providers, p)
	}
	return providers, nil
}
