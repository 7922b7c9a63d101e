// Package console ties the interpreter pieces into a single interactive session.
//
// A Session owns the history, the transcript, the suggestion state and the routine
// scheduler, and exposes the input operations a host maps its keys to: Edit,
// Submit, SelectNext, ToggleSuggestions and history recall. Only one session may be
// live per process.
package console

import (
	"io"
	"sync"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/completion"
	"github.com/NikitaCOEUR/devconsole/internal/derrors"
	"github.com/NikitaCOEUR/devconsole/internal/dispatch"
	"github.com/NikitaCOEUR/devconsole/internal/history"
	"github.com/NikitaCOEUR/devconsole/internal/logger"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/scheduler"
	"github.com/NikitaCOEUR/devconsole/internal/tokenizer"
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
	"github.com/google/uuid"
)

var (
	liveMu sync.Mutex
	live   *Session
)

// Options configures a new session
type Options struct {
	Commands  []registry.Command
	Providers []registry.Provider
	// Aliases maps a command name to a line template
	Aliases map[string]string

	HistoryLimit    int
	TranscriptLimit int
	DisplayLimit    int
	StartVisible    bool

	// Output receives the rendered transcript, nil keeps it in memory only
	Output io.Writer
	// ForwardLogs copies warnings and errors of Logger into the transcript
	// until Shutdown. Entries must then be logged from the goroutine driving
	// the session, like every other session call.
	ForwardLogs bool
	Logger      *logger.Logger
}

// Session is a live console
type Session struct {
	id          string
	registry    *registry.Registry
	dispatcher  *dispatch.Dispatcher
	engine      *completion.Engine
	suggestions *completion.Suggestions
	history     *history.Buffer
	transcript  *transcript.Buffer
	scheduler   *scheduler.Scheduler
	log         *logger.Logger
	hookLog     *logger.Logger
	hook        *transcriptHook

	input   string
	partial string
	open    bool
	onOpen  []func()
	onClose []func()
	ended   bool
}

// New builds the command registry and opens a session. It fails while another
// session is live or when the command set is invalid.
func New(opts Options) (*Session, error) {
	liveMu.Lock()
	defer liveMu.Unlock()

	if live != nil {
		return nil, derrors.NewConfigurationError("console",
			"a console session is already live: "+live.id, nil)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	s := &Session{
		id:          uuid.NewString(),
		suggestions: completion.NewSuggestions(opts.DisplayLimit),
		history:     history.New(opts.HistoryLimit),
		transcript:  transcript.New(opts.Output),
	}
	s.log = log.With("session", s.id[:8])
	s.scheduler = scheduler.New(s.log)
	s.transcript.SetLimit(opts.TranscriptLimit)

	b := registry.NewBuilder(s.log).
		Commands(s.builtins()...).
		Commands(opts.Commands...).
		Provider(s.commandNameProvider())
	for _, p := range opts.Providers {
		b.Provider(p)
	}
	aliases, err := s.aliasCommands(opts.Aliases)
	if err != nil {
		return nil, err
	}
	b.Commands(aliases...)

	reg, err := b.Build()
	if err != nil {
		return nil, err
	}
	s.registry = reg

	s.dispatcher = dispatch.New(dispatch.Options{
		Registry:  reg,
		History:   s.history,
		Output:    s.transcript,
		Scheduler: s.scheduler,
		Logger:    s.log,
	})
	s.engine = completion.NewEngine(reg, s.log)
	s.scheduler.OnFailure(func(h scheduler.Handle, err error) {
		transcript.Print(s.transcript, transcript.Error, err.Error())
	})

	if opts.ForwardLogs {
		s.hook = &transcriptHook{session: s}
		s.hookLog = log
		log.AddHook(s.hook)
	}
	if opts.StartVisible {
		s.suggestions.Show()
	}

	live = s
	s.log.Info().Int("commands", reg.Len()).Msg("Console session started")
	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Registry returns the frozen command registry
func (s *Session) Registry() *registry.Registry { return s.registry }

// Transcript returns the session transcript
func (s *Session) Transcript() *transcript.Buffer { return s.transcript }

// History returns the submitted lines
func (s *Session) History() *history.Buffer { return s.history }

// Suggestions returns the displayed suggestion state
func (s *Session) Suggestions() *completion.Suggestions { return s.suggestions }

// Input returns the current input text
func (s *Session) Input() string { return s.input }

// Edit replaces the input with text typed by the user
func (s *Session) Edit(text string) {
	s.input = text
	s.partial = tokenizer.ArgumentUnderCursor(text)
	s.refresh()
}

// refresh recomputes suggestions for the current input. The filter text is
// the one captured by the last Edit, so cycling keeps the same candidates.
func (s *Session) refresh() {
	if !s.suggestions.Visible() {
		return
	}
	res := s.engine.Complete(s.input)
	s.suggestions.Set(completion.Filter(res.Candidates, s.partial), res.Header)
}

// Complete computes completions for text without touching the session state
func (s *Session) Complete(text string) completion.Result {
	return s.engine.Complete(text)
}

// SelectNext selects the next suggestion and applies it to the input
func (s *Session) SelectNext() (string, bool) {
	choice, ok := s.suggestions.Next()
	if !ok {
		return "", false
	}
	s.input = completion.Apply(s.input, choice)
	s.refresh()
	return choice, true
}

// ToggleSuggestions shows or hides the suggestions and returns the new visibility
func (s *Session) ToggleSuggestions() bool {
	visible := s.suggestions.Toggle()
	if visible {
		s.refresh()
	}
	return visible
}

// Submit executes the current input and resets it. Empty input is ignored.
func (s *Session) Submit() dispatch.Outcome {
	line := s.input
	if line == "" {
		return dispatch.Outcome{Kind: dispatch.Void}
	}
	out := s.dispatcher.Execute(line)
	s.Edit("")
	return out
}

// Execute runs line as if it had been submitted
func (s *Session) Execute(line string) dispatch.Outcome {
	return s.dispatcher.Execute(line)
}

// HistoryPrevious recalls the previous line into the input
func (s *Session) HistoryPrevious() (string, bool) {
	if !s.open {
		return "", false
	}
	line, ok := s.history.Previous()
	if ok {
		s.Edit(line)
	}
	return line, ok
}

// HistoryNext recalls the next line into the input
func (s *Session) HistoryNext() (string, bool) {
	if !s.open {
		return "", false
	}
	line, ok := s.history.Next()
	if ok {
		s.Edit(line)
	}
	return line, ok
}

// OnOpen registers a hook run every time the console opens
func (s *Session) OnOpen(fn func()) { s.onOpen = append(s.onOpen, fn) }

// OnClose registers a hook run every time the console closes
func (s *Session) OnClose(fn func()) { s.onClose = append(s.onClose, fn) }

// Open shows the console and resets the input
func (s *Session) Open() {
	s.open = true
	for _, fn := range s.onOpen {
		fn()
	}
	s.Edit("")
}

// Close hides the console
func (s *Session) Close() {
	s.open = false
	for _, fn := range s.onClose {
		fn()
	}
}

// IsOpen reports whether the console is shown
func (s *Session) IsOpen() bool { return s.open }

// Tick advances long-running commands
func (s *Session) Tick(now time.Time) int {
	return s.scheduler.Tick(now)
}

// Pending returns the number of running long-running commands
func (s *Session) Pending() int {
	return s.scheduler.Pending()
}

// NextDue returns when the next long-running step is due
func (s *Session) NextDue() (time.Time, bool) {
	return s.scheduler.NextDue()
}

// Clear empties the transcript and the history
func (s *Session) Clear() {
	s.transcript.Clear()
	s.history.Clear()
}

// Shutdown stops every routine and releases the session slot
func (s *Session) Shutdown() {
	liveMu.Lock()
	defer liveMu.Unlock()

	if s.ended {
		return
	}
	s.ended = true
	s.scheduler.Close()
	if s.hook != nil {
		s.hookLog.RemoveHook(s.hook)
		s.hook = nil
	}
	if live == s {
		live = nil
	}
	s.log.Info().Msg("Console session ended")
}
