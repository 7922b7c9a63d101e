package cli

import (
	"fmt"
	"io"
	"os"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	SessionParams
	Line string
}

// Complete prints what is being completed in Line and the matching candidates,
// one per line
func Complete(params CompleteParams) error {
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

	res := e.session.Complete(params.Line)
	return printCompletions(w, res.Header, res.Filtered())
}

func printCompletions(w io.Writer, header string, candidates []string) error {
	if _, err := fmt.Fprintf(w, "# %s\n", header); err != nil {
		return err
	}
	for _, c := range candidates {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
