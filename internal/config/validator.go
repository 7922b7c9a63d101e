package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/devconsole/internal/console"
)

// ReservedNames are the built-in commands aliases cannot replace
var ReservedNames = []string{"help", "clear"}

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate validates a config file: schema first, then semantic checks
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := New(nil).Load(path)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	ValidateConfig(cfg, result)
	return result, nil
}

// ValidateConfig runs the semantic checks on a loaded configuration
func ValidateConfig(cfg *Config, result *ValidationResult) {
	for _, name := range slices.Sorted(maps.Keys(cfg.Aliases)) {
		text := cfg.Aliases[name]
		field := "aliases/" + name
		switch {
		case slices.Contains(ReservedNames, name):
			result.addError(field, fmt.Sprintf("'%s' is a built-in command", name))
		case strings.IndexFunc(name, unicode.IsSpace) >= 0:
			result.addError(field, "Alias name contains whitespace")
		}
		if _, err := console.ParseAlias(name, text); err != nil {
			result.addError(field, err.Error())
		}
	}

	for i, decl := range cfg.Completions {
		field := fmt.Sprintf("completions/%d", i)
		if len(decl.Values) == 0 {
			result.addError(field, "Completion provider has no values")
		}
		if decl.Type != "" {
			if _, err := ParseType(decl.Type); err != nil {
				result.addError(field, err.Error())
			}
		}
	}

	if cfg.History.Limit < 0 {
		result.addError("history/limit", "History limit cannot be negative")
	}
	if cfg.Suggestions.DisplayLimit < 1 {
		result.addError("suggestions/display_limit", "Display limit must be at least 1")
	}
}
