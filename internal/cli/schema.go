package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/devconsole/internal/config"
)

// Schema prints the JSON Schema of the configuration file, or writes it to
// outputPath when set
func Schema(w io.Writer, outputPath string) error {
	schemaJSON, err := config.SchemaJSON()
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, err := fmt.Fprintf(w, "JSON Schema written to: %s\n", outputPath)
		return err
	}

	_, err = fmt.Fprintln(w, schemaJSON)
	return err
}
