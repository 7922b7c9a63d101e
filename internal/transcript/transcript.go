// Package transcript collects the messages a console session prints.
//
// The console core never renders anything itself: it pushes entries into a Sink.
// Buffer is the in-process Sink used by sessions; it keeps the entries, marks
// command echoes and the first line of their output, tracks how many layout rows
// have been consumed, and optionally renders every entry to a writer.
package transcript

import (
	"fmt"
	"io"
	"strings"
)

// Severity selects how an entry is presented
type Severity int

const (
	Output Severity = iota
	Command
	Error
	Warning
	Success
	Info
)

func (s Severity) String() string {
	switch s {
	case Command:
		return "command"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Success:
		return "success"
	case Info:
		return "info"
	default:
		return "output"
	}
}

// Prefix marks applied to text entries
const (
	CommandMark     = "► "
	FirstOutputMark = "◄ "
	OutputIndent    = "   "
)

// Entry is one transcript element: a line of text or an embedded element
type Entry struct {
	Text     string
	Severity Severity
	// Size is an optional font size hint, 0 means default
	Size float64
	// Color overrides the severity color, e.g. "#FF0000"
	Color string
	// Element is set for embedded non-text output
	Element any
	// Rows is the layout height the entry occupies
	Rows int
}

// Sink receives transcript output
type Sink interface {
	Push(entry Entry)
	Embed(element any, rows int)
	Clear()
}

// Print pushes a text entry with the given severity
func Print(s Sink, severity Severity, text string) {
	s.Push(Entry{Text: text, Severity: severity})
}

// Printf pushes a formatted text entry with the given severity
func Printf(s Sink, severity Severity, format string, args ...any) {
	s.Push(Entry{Text: fmt.Sprintf(format, args...), Severity: severity})
}

// Buffer is an in-memory Sink
type Buffer struct {
	entries       []Entry
	startOfOutput bool
	rows          int
	limit         int
	renderer      *Renderer
}

// New creates a buffer. When out is non-nil every entry is also rendered to it.
func New(out io.Writer) *Buffer {
	b := &Buffer{}
	if out != nil {
		b.renderer = NewRenderer(out)
	}
	return b
}

// SetLimit bounds the number of retained entries, 0 keeps everything
func (b *Buffer) SetLimit(limit int) {
	b.limit = limit
	b.trim()
}

// Push appends a text entry, applying the command/output marks
func (b *Buffer) Push(entry Entry) {
	if entry.Element == nil {
		if entry.Severity == Command {
			entry.Text = CommandMark + entry.Text
			b.startOfOutput = true
		} else {
			if b.startOfOutput {
				entry.Text = FirstOutputMark + entry.Text
			} else {
				entry.Text = OutputIndent + entry.Text
			}
			b.startOfOutput = false
		}
	}

	if entry.Rows <= 0 {
		entry.Rows = strings.Count(entry.Text, "\n") + 1
	}

	b.append(entry)
}

// Embed appends an arbitrary element occupying rows layout rows
func (b *Buffer) Embed(element any, rows int) {
	if rows <= 0 {
		rows = 1
	}
	b.append(Entry{Element: element, Rows: rows})
}

func (b *Buffer) append(entry Entry) {
	b.entries = append(b.entries, entry)
	b.rows += entry.Rows
	b.trim()

	if b.renderer != nil {
		b.renderer.Render(entry)
	}
}

func (b *Buffer) trim() {
	if b.limit <= 0 || len(b.entries) <= b.limit {
		return
	}
	drop := len(b.entries) - b.limit
	for _, e := range b.entries[:drop] {
		b.rows -= e.Rows
	}
	b.entries = append([]Entry(nil), b.entries[drop:]...)
}

// Clear removes every entry and resets the layout accumulator
func (b *Buffer) Clear() {
	b.entries = nil
	b.rows = 0
	b.startOfOutput = false

	if b.renderer != nil {
		b.renderer.Clear()
	}
}

// Entries returns a copy of the retained entries
func (b *Buffer) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Lines returns the text of every retained text entry
func (b *Buffer) Lines() []string {
	lines := make([]string, 0, len(b.entries))
	for _, e := range b.entries {
		if e.Element == nil {
			lines = append(lines, e.Text)
		}
	}
	return lines
}

// Len returns the number of retained entries
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Rows returns the layout accumulator
func (b *Buffer) Rows() int {
	return b.rows
}
