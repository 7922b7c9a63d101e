package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NikitaCOEUR/devconsole/internal/config"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Info displays which configuration is in effect
func Info(w io.Writer, params SessionParams) error {
	if w == nil {
		w = os.Stdout
	}

	cfg, path, err := loadConfig(params.ConfigPath, params.logger())
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, renderInfo(config.Describe(path, cfg)))
	return err
}

func renderInfo(info *config.Info) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("devconsole configuration"))
	b.WriteString("\n")
	b.WriteString(field("Source", info.Source()))
	b.WriteString(field("Log level", info.LogLevel))
	b.WriteString(field("Completions", fmt.Sprintf("%d provider(s)", info.Completions)))

	if len(info.Aliases) == 0 {
		b.WriteString(field("Aliases", subtleStyle.Render("none")))
		return b.String()
	}
	b.WriteString(field("Aliases", strings.Join(info.Aliases, ", ")))
	return b.String()
}

func field(key, value string) string {
	return fmt.Sprintf("  %s %s\n", keyStyle.Render(key+":"), valueStyle.Render(value))
}
