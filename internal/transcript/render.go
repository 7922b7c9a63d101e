package transcript

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Console palette
var (
	ErrorColor   = lipgloss.Color("#FF4D66")
	WarningColor = lipgloss.Color("#E6B366")
	SuccessColor = lipgloss.Color("#4DFF66")
	InfoColor    = lipgloss.Color("#4D80FF")
	CommandColor = lipgloss.Color("#FFFFFF")
	OutputColor  = lipgloss.Color("#808080")
)

// Renderer writes transcript entries to a terminal
type Renderer struct {
	out    io.Writer
	term   *termenv.Output
	styles map[Severity]lipgloss.Style
	frame  lipgloss.Style
}

// NewRenderer creates a renderer whose color profile matches out
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)

	return &Renderer{
		out:  out,
		term: termenv.NewOutput(out),
		styles: map[Severity]lipgloss.Style{
			Output:  r.NewStyle().Foreground(OutputColor),
			Command: r.NewStyle().Foreground(CommandColor).Bold(true),
			Error:   r.NewStyle().Foreground(ErrorColor),
			Warning: r.NewStyle().Foreground(WarningColor),
			Success: r.NewStyle().Foreground(SuccessColor),
			Info:    r.NewStyle().Foreground(InfoColor),
		},
		frame: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(InfoColor).
			Padding(0, 1),
	}
}

// Render writes one entry followed by a newline
func (r *Renderer) Render(entry Entry) {
	if entry.Element != nil {
		_, _ = fmt.Fprintln(r.out, r.frame.Render(fmt.Sprint(entry.Element)))
		return
	}

	style, ok := r.styles[entry.Severity]
	if !ok {
		style = r.styles[Output]
	}
	if entry.Color != "" {
		style = style.Foreground(lipgloss.Color(entry.Color))
	}
	if entry.Size >= 2*DefaultSize {
		style = style.Bold(true)
	}
	_, _ = fmt.Fprintln(r.out, style.Render(entry.Text))
}

// Clear clears the terminal screen
func (r *Renderer) Clear() {
	r.term.ClearScreen()
}

// DefaultSize is the nominal font size of a transcript line
const DefaultSize = 14
