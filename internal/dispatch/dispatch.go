// Package dispatch executes submitted console lines against the command registry.
//
// Execute never fails: every line resolves to a classified Outcome, and every error
// outcome pushes exactly one error message to the transcript.
package dispatch

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/derrors"
	"github.com/NikitaCOEUR/devconsole/internal/logger"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/scheduler"
	"github.com/NikitaCOEUR/devconsole/internal/tokenizer"
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
)

// DefaultMaxDepth bounds nested executions started by aliases
const DefaultMaxDepth = 8

// Kind classifies an Outcome
type Kind int

const (
	Void Kind = iota
	Printed
	Errored
	Started
)

func (k Kind) String() string {
	switch k {
	case Printed:
		return "printed"
	case Errored:
		return "errored"
	case Started:
		return "started"
	default:
		return "void"
	}
}

// Outcome is the result of executing one line
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
	Handle  scheduler.Handle
}

// Recorder receives every submitted line
type Recorder interface {
	Add(line string)
}

// Starter runs long-running routines
type Starter interface {
	Start(name string, seq iter.Seq[time.Duration]) scheduler.Handle
}

// Options wires a dispatcher to its collaborators
type Options struct {
	Registry  *registry.Registry
	History   Recorder
	Output    transcript.Sink
	Scheduler Starter
	Logger    *logger.Logger
	// MaxDepth limits ExecuteNested recursion, 0 means DefaultMaxDepth
	MaxDepth int
}

// Dispatcher resolves, validates, coerces and invokes commands
type Dispatcher struct {
	registry  *registry.Registry
	history   Recorder
	out       transcript.Sink
	scheduler Starter
	log       *logger.Logger
	depth     int
	maxDepth  int
}

// New creates a dispatcher
func New(opts Options) *Dispatcher {
	d := &Dispatcher{
		registry:  opts.Registry,
		history:   opts.History,
		out:       opts.Output,
		scheduler: opts.Scheduler,
		log:       opts.Logger,
		maxDepth:  opts.MaxDepth,
	}
	if d.out == nil {
		d.out = transcript.New(nil)
	}
	if d.log == nil {
		d.log = logger.Nop()
	}
	if d.maxDepth <= 0 {
		d.maxDepth = DefaultMaxDepth
	}
	return d
}

// Execute records line in the history and runs it
func (d *Dispatcher) Execute(line string) Outcome {
	if d.history != nil {
		d.history.Add(line)
	}
	return d.run(line)
}

// ExecuteNested runs line from inside another command without recording it
func (d *Dispatcher) ExecuteNested(line string) Outcome {
	if d.depth >= d.maxDepth {
		return d.fail(derrors.NewExecutionError(firstToken(line),
			fmt.Sprintf("nested execution deeper than %d: %s", d.maxDepth, line), nil))
	}
	d.depth++
	defer func() { d.depth-- }()
	return d.run(line)
}

func (d *Dispatcher) run(line string) Outcome {
	tokens := tokenizer.Tokenize(line)
	if len(tokens) == 0 {
		return Outcome{Kind: Void}
	}
	name, raw := tokens[0], tokens[1:]

	cmd, ok := d.registry.Lookup(name)
	if !ok {
		return d.fail(derrors.NewUnknownCommandError(name))
	}

	transcript.Print(d.out, transcript.Command, line)

	args, err := resolve(cmd, raw, line)
	if err != nil {
		return d.fail(err)
	}

	d.log.Debug().Str("command", name).Strs("args", raw).Msg("Invoking command")

	call := &registry.Call{Command: cmd, Args: args, Line: line, Out: d.out}
	res, err := invoke(cmd, call)
	if err != nil {
		return d.fail(derrors.NewExecutionError(name, fmt.Sprintf("command %s failed", name), err))
	}

	switch cmd.Returns() {
	case registry.ReturnsValue:
		msg := fmt.Sprint(res.Value)
		transcript.Print(d.out, transcript.Output, msg)
		return Outcome{Kind: Printed, Message: msg}
	case registry.ReturnsRoutine:
		switch {
		case res.Routine == nil:
			return d.fail(derrors.NewExecutionError(name, fmt.Sprintf("command %s returned no routine", name), nil))
		case d.scheduler == nil:
			return d.fail(derrors.NewExecutionError(name, fmt.Sprintf("command %s needs a scheduler to run", name), nil))
		}
		h := d.scheduler.Start(name, res.Routine)
		return Outcome{Kind: Started, Handle: h}
	default:
		return Outcome{Kind: Void}
	}
}

func (d *Dispatcher) fail(err error) Outcome {
	transcript.Print(d.out, transcript.Error, err.Error())
	d.log.Debug().Err(err).Msg("Command rejected")
	return Outcome{Kind: Errored, Message: err.Error(), Err: err}
}

// resolve turns raw argument strings into the tagged values the command expects
func resolve(cmd *registry.Command, raw []string, line string) ([]registry.Value, error) {
	if len(cmd.Params) == 0 {
		return nil, nil
	}
	if cmd.TakesList() {
		return []registry.Value{registry.ListValue(raw)}, nil
	}

	if required := cmd.RequiredCount(); len(raw) < required {
		return nil, derrors.NewArityError(line, required, len(raw))
	}

	args := make([]registry.Value, len(cmd.Params))
	for i, p := range cmd.Params {
		if i >= len(raw) {
			args[i] = *p.Default
			continue
		}
		v, err := Coerce(p.Type, raw[i])
		if err != nil {
			return nil, derrors.NewCoercionError(cmd.Name, p.Name, raw[i], p.Type.String(), line, err)
		}
		args[i] = v
	}
	return args, nil
}

// Coerce converts a raw argument to a value of type t
func Coerce(t registry.Type, raw string) (registry.Value, error) {
	switch t.Kind {
	case registry.KindEnum:
		if !t.Enum.Contains(raw) {
			return registry.Value{}, fmt.Errorf("expected one of %s", strings.Join(t.Enum.Values, ", "))
		}
		return registry.EnumValue(raw), nil
	case registry.KindInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return registry.Value{}, err
		}
		return registry.IntValue(n), nil
	case registry.KindFloat:
		// hex floats, digit separators, Inf and NaN are not decimal numbers
		if strings.ContainsAny(raw, "xXpP_") {
			return registry.Value{}, fmt.Errorf("%q is not a decimal number", raw)
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return registry.Value{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return registry.Value{}, fmt.Errorf("%q is not a decimal number", raw)
		}
		return registry.FloatValue(f), nil
	case registry.KindStringList:
		return registry.ListValue([]string{raw}), nil
	default:
		return registry.StringValue(raw), nil
	}
}

func invoke(cmd *registry.Command, call *registry.Call) (res registry.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.Handler.Invoke(call)
}

func firstToken(line string) string {
	if tokens := tokenizer.Tokenize(line); len(tokens) > 0 {
		return tokens[0]
	}
	return ""
}
