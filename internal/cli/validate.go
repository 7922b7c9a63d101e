package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devconsole/internal/config"
	"github.com/NikitaCOEUR/devconsole/internal/derrors"
)

// Validate validates a configuration file, the default one when configPath is empty
func Validate(w io.Writer, configPath string) error {
	if configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return derrors.NewNotFoundError("config", "no config file found at "+path)
		}
		configPath = path
	}

	_, _ = fmt.Fprintf(w, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		_, _ = fmt.Fprintln(w, "✅ Configuration is valid!")
		return nil
	}

	_, _ = fmt.Fprintln(w, "❌ Configuration has errors:")
	for i, e := range result.Errors {
		_, _ = fmt.Fprintf(w, "%d. [%s] %s\n", i+1, e.Field, e.Message)
	}
	_, _ = fmt.Fprintf(w, "\nFound %d error(s)\n", len(result.Errors))

	return derrors.NewValidationError(configPath, "validation failed", nil)
}
