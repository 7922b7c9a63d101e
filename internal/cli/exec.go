package cli

import (
	"context"

	"github.com/NikitaCOEUR/devconsole/internal/dispatch"
	"github.com/NikitaCOEUR/devconsole/internal/timing"
	"github.com/NikitaCOEUR/devconsole/internal/trace"
)

// ExecParams contains parameters for the Exec command
type ExecParams struct {
	SessionParams
	Line string
}

// Exec runs one console line, waits for the routines it started and returns
// the line error if it failed
func Exec(ctx context.Context, params ExecParams) error {
	timer := timing.NewTimer()

	e, err := openSession(params.SessionParams)
	if err != nil {
		return err
	}
	defer e.session.Shutdown()
	timer.Mark("session")

	trace.Log(ctx, "line", params.Line)
	endExec := trace.Region(ctx, "execute")
	out := e.session.Execute(params.Line)
	endExec()
	timer.Mark("execute")

	if out.Kind == dispatch.Errored {
		return out.Err
	}

	endDrain := trace.Region(ctx, "routines")
	err = drain(ctx, e.session)
	endDrain()
	timer.Mark("routines")

	e.log.Debug().
		Str("line", params.Line).
		Str("outcome", out.Kind.String()).
		Str("timing", timer.Summary()).
		Msg("Line executed")
	return err
}
