package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

var (
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	signatureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// CommandsParams contains parameters for the Commands command
type CommandsParams struct {
	SessionParams
	YAML bool
}

// CommandInfo describes a registered command
type CommandInfo struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Example     string   `yaml:"example,omitempty"`
	Signature   string   `yaml:"signature"`
	Params      []string `yaml:"params,omitempty"`
	Returns     string   `yaml:"returns"`
}

func describeCommand(c *registry.Command) CommandInfo {
	info := CommandInfo{
		Name:        c.Name,
		Description: c.Description,
		Example:     c.Example,
		Signature:   c.Signature(),
		Returns:     c.Returns().String(),
	}
	for _, p := range c.Params {
		info.Params = append(info.Params, p.Display()+": "+p.Type.String())
	}
	return info
}

// Commands lists the registered commands in registration order
func Commands(params CommandsParams) error {
	w := params.Output
	if w == nil {
		w = os.Stdout
	}

	sp := params.SessionParams
	sp.Output = nil
	e, err := openSession(sp)
	if err != nil {
		return err
	}
	defer e.session.Shutdown()

	cmds := e.session.Registry().Commands()
	infos := make([]CommandInfo, 0, len(cmds))
	for _, c := range cmds {
		infos = append(infos, describeCommand(c))
	}

	if params.YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return fmt.Errorf("failed to encode commands: %w", err)
		}
		return enc.Close()
	}
	return renderCommands(w, infos)
}

func renderCommands(w io.Writer, infos []CommandInfo) error {
	var b strings.Builder
	for _, info := range infos {
		b.WriteString(nameStyle.Render(info.Name))
		if info.Description != "" {
			b.WriteString(" - " + info.Description)
		}
		b.WriteString("\n  ")
		b.WriteString(signatureStyle.Render(info.Signature))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
