package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/NikitaCOEUR/devconsole/internal/completion"
	"github.com/NikitaCOEUR/devconsole/internal/console"
	"github.com/NikitaCOEUR/devconsole/internal/timing"
	"github.com/NikitaCOEUR/devconsole/internal/trace"
	"github.com/peterh/liner"
)

// ShellParams contains parameters for the Shell command
type ShellParams struct {
	SessionParams
	// Prompt overrides the configured prompt
	Prompt string
}

// Shell runs an interactive console on the terminal until end of input
func Shell(ctx context.Context, params ShellParams) error {
	e, err := openSession(params.SessionParams)
	if err != nil {
		return err
	}
	session := e.session
	defer session.Shutdown()

	prompt := params.Prompt
	if prompt == "" {
		prompt = e.cfg.Prompt
	}

	state := liner.NewLiner()
	defer func() { _ = state.Close() }()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)
	state.SetCompleter(completer(session))

	session.Open()
	defer session.Close()

	for {
		line, err := state.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		state.AppendHistory(line)

		timer := timing.NewTimer()
		end := trace.Region(ctx, "submit")
		session.Edit(line)
		out := session.Submit()
		timer.Mark("execute")
		err = drain(ctx, session)
		timer.Mark("routines")
		end()

		e.log.Debug().
			Str("outcome", out.Kind.String()).
			Str("timing", timer.Summary()).
			Msg("Line submitted")
		if err != nil {
			return err
		}
	}
}

// completer returns full input lines, each with one filtered candidate applied
func completer(session *console.Session) liner.Completer {
	return func(line string) []string {
		res := session.Complete(line)
		candidates := res.Filtered()
		lines := make([]string, 0, len(candidates))
		for _, c := range candidates {
			lines = append(lines, completion.Apply(line, c))
		}
		return lines
	}
}
