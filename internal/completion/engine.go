package completion

import (
	"strings"

	"github.com/NikitaCOEUR/devconsole/internal/logger"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/tokenizer"
)

// Headers describing what is being completed when no parameter applies
const (
	HeaderCommand = "Command"
	HeaderInvalid = "invalid command"
	HeaderTooMany = "too many arguments"
)

// Result is the outcome of a completion request
type Result struct {
	Header string
	// Candidates are unfiltered
	Candidates []string
	// Slot is the argument position being typed, 0 for the command name
	Slot int
	// Partial is the argument under the cursor
	Partial string
}

// Filtered returns the candidates matching the argument under the cursor
func (r Result) Filtered() []string {
	return Filter(r.Candidates, r.Partial)
}

// Engine works out what is being typed and gathers candidates for it
type Engine struct {
	registry *registry.Registry
	sources  []Source
	log      *logger.Logger
}

// NewEngine creates an engine trying enum values first, then completion providers
func NewEngine(reg *registry.Registry, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		registry: reg,
		sources: []Source{
			EnumSource{},
			ProviderSource{Registry: reg},
		},
		log: log,
	}
}

// Complete computes the header and raw candidates for text
func (e *Engine) Complete(text string) Result {
	tokens := tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return Result{Header: HeaderCommand}
	}

	slot := len(tokens) - 1
	if tokenizer.LastTokenIsComplete(text) {
		slot++
	}
	res := Result{Slot: slot, Partial: tokenizer.ArgumentUnderCursor(text)}

	if slot == 0 {
		res.Header = HeaderCommand
		res.Candidates = e.registry.Names()
		return res
	}

	cmd, ok := e.registry.Lookup(tokens[0])
	if !ok {
		res.Header = HeaderInvalid
		return res
	}
	if slot > len(cmd.Params) {
		res.Header = HeaderTooMany
		return res
	}

	param := cmd.Params[slot-1]
	res.Header = param.Name

	for _, src := range e.sources {
		if src.Supports(cmd, param) {
			res.Candidates = src.Candidates(cmd, param)
			break
		}
	}

	e.log.Debug().
		Str("command", cmd.Name).
		Str("param", param.Name).
		Int("candidates", len(res.Candidates)).
		Msg("Completion computed")
	return res
}

// Filter keeps the candidates containing partial, ignoring case.
// An empty partial keeps everything.
func Filter(candidates []string, partial string) []string {
	if candidates == nil {
		return nil
	}
	if partial == "" {
		return append([]string{}, candidates...)
	}

	needle := strings.ToLower(partial)
	filtered := []string{}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), needle) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Apply puts candidate into text: it replaces the argument under the cursor,
// or starts a new argument when the cursor follows a complete token.
func Apply(text, candidate string) string {
	tokens := tokenizer.Tokenize(text)
	if tokenizer.LastTokenIsComplete(text) || len(tokens) == 0 {
		return text + tokenizer.Quote(candidate)
	}
	tokens[len(tokens)-1] = candidate
	return tokenizer.Join(tokens)
}
