package registry

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/transcript"
)

// Kind is the semantic type of a parameter or argument value
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
	KindEnum
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindEnum:
		return "enum"
	case KindStringList:
		return "string[]"
	default:
		return "string"
	}
}

// Enum is a named, ordered set of case-sensitive values
type Enum struct {
	Name   string
	Values []string
}

// Contains reports whether value is one of the enum's names
func (e *Enum) Contains(value string) bool {
	return e != nil && slices.Contains(e.Values, value)
}

// Type describes a parameter type. Enum is only set for KindEnum.
type Type struct {
	Kind Kind
	Enum *Enum
}

// Built-in parameter types
var (
	String     = Type{Kind: KindString}
	Integer    = Type{Kind: KindInteger}
	Float      = Type{Kind: KindFloat}
	StringList = Type{Kind: KindStringList}
)

// EnumOf declares an enum type
func EnumOf(name string, values ...string) Type {
	return Type{Kind: KindEnum, Enum: &Enum{Name: name, Values: values}}
}

// Equal reports whether two types are the same; enums compare by name
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != KindEnum {
		return true
	}
	if t.Enum == nil || o.Enum == nil {
		return t.Enum == o.Enum
	}
	return t.Enum.Name == o.Enum.Name
}

func (t Type) String() string {
	if t.Kind == KindEnum && t.Enum != nil && t.Enum.Name != "" {
		return t.Enum.Name
	}
	return t.Kind.String()
}

// Value is a tagged argument value handed to an operation
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	list []string
}

// StringValue wraps a string argument
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue wraps an integer argument
func IntValue(n int64) Value { return Value{kind: KindInteger, num: n} }

// FloatValue wraps a float argument
func FloatValue(f float64) Value { return Value{kind: KindFloat, flt: f} }

// EnumValue wraps an enum member name
func EnumValue(name string) Value { return Value{kind: KindEnum, str: name} }

// ListValue wraps a string list argument
func ListValue(items []string) Value {
	return Value{kind: KindStringList, list: append([]string{}, items...)}
}

// Kind returns the tag of the value
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload
func (v Value) Str() string { return v.str }

// Int returns the integer payload
func (v Value) Int() int64 { return v.num }

// Float returns the float payload
func (v Value) Float() float64 { return v.flt }

// Enum returns the enum member name
func (v Value) Enum() string { return v.str }

// Strings returns the list payload
func (v Value) Strings() []string { return v.list }

// Any returns the payload as a plain Go value
func (v Value) Any() any {
	switch v.kind {
	case KindInteger:
		return v.num
	case KindFloat:
		return v.flt
	case KindStringList:
		return v.list
	default:
		return v.str
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindStringList:
		return strings.Join(v.list, " ")
	default:
		return v.str
	}
}

// Param describes one positional parameter
type Param struct {
	Name string
	Type Type
	// Default makes the parameter optional
	Default *Value
}

// Required declares a parameter without default
func Required(name string, t Type) Param {
	return Param{Name: name, Type: t}
}

// Optional declares a parameter with a default value
func Optional(name string, t Type, def Value) Param {
	return Param{Name: name, Type: t, Default: &def}
}

// Optional reports whether the parameter can be omitted
func (p Param) Optional() bool {
	return p.Default != nil
}

// Display renders the parameter for usage lines: name, name=default or name="default"
func (p Param) Display() string {
	if p.Default == nil {
		return p.Name
	}
	if p.Type.Kind == KindString {
		return fmt.Sprintf("%s=%q", p.Name, p.Default.Str())
	}
	return p.Name + "=" + p.Default.String()
}

// ReturnKind classifies what an operation produces
type ReturnKind int

const (
	ReturnsNone ReturnKind = iota
	ReturnsValue
	ReturnsRoutine
)

func (r ReturnKind) String() string {
	switch r {
	case ReturnsValue:
		return "value"
	case ReturnsRoutine:
		return "routine"
	default:
		return "void"
	}
}

// Call is the invocation context of an operation
type Call struct {
	Command *Command
	Args    []Value
	Line    string
	Out     transcript.Sink
}

// Print pushes an output line to the transcript
func (c *Call) Print(text string) {
	transcript.Print(c.Out, transcript.Output, text)
}

// Printf pushes a formatted line with the given severity
func (c *Call) Printf(severity transcript.Severity, format string, args ...any) {
	transcript.Printf(c.Out, severity, format, args...)
}

// Result is what an invoked operation hands back to the dispatcher
type Result struct {
	Value   any
	Routine iter.Seq[time.Duration]
}

// Handler is a typed operation adapter
type Handler struct {
	returns ReturnKind
	invoke  func(*Call) (Result, error)
}

// Action adapts an operation returning nothing
func Action(fn func(c *Call) error) Handler {
	return Handler{
		returns: ReturnsNone,
		invoke: func(c *Call) (Result, error) {
			return Result{}, fn(c)
		},
	}
}

// Func adapts an operation returning a printable value
func Func(fn func(c *Call) (any, error)) Handler {
	return Handler{
		returns: ReturnsValue,
		invoke: func(c *Call) (Result, error) {
			v, err := fn(c)
			return Result{Value: v}, err
		},
	}
}

// Routine adapts a long-running operation. Each yielded duration is the pause
// requested before the next step.
func Routine(fn func(c *Call) (iter.Seq[time.Duration], error)) Handler {
	return Handler{
		returns: ReturnsRoutine,
		invoke: func(c *Call) (Result, error) {
			seq, err := fn(c)
			return Result{Routine: seq}, err
		},
	}
}

// Returns reports the handler's return kind
func (h Handler) Returns() ReturnKind { return h.returns }

// Invoke runs the operation
func (h Handler) Invoke(c *Call) (Result, error) {
	return h.invoke(c)
}

// Valid reports whether the handler wraps an operation
func (h Handler) Valid() bool { return h.invoke != nil }

// Command is an immutable command descriptor
type Command struct {
	Name        string
	Description string
	Example     string
	Params      []Param
	Handler     Handler
	// ResultType names the produced value in signatures, e.g. "int"
	ResultType string
}

// Returns reports the command's return kind
func (c *Command) Returns() ReturnKind {
	return c.Handler.Returns()
}

// RequiredCount returns the number of parameters without default
func (c *Command) RequiredCount() int {
	n := 0
	for _, p := range c.Params {
		if !p.Optional() {
			n++
		}
	}
	return n
}

// TakesList reports whether the command receives its raw arguments as one list
func (c *Command) TakesList() bool {
	return len(c.Params) == 1 && c.Params[0].Type.Kind == KindStringList
}

// Signature renders "name ::  (types) -> result"
func (c *Command) Signature() string {
	types := make([]string, len(c.Params))
	for i, p := range c.Params {
		types[i] = p.Type.String()
	}

	result := c.ResultType
	if result == "" {
		result = c.Returns().String()
	}
	return fmt.Sprintf("%s ::  (%s) -> %s", c.Name, strings.Join(types, ", "), result)
}

// Usage renders the command followed by its parameters
func (c *Command) Usage() string {
	parts := []string{c.Name}
	for _, p := range c.Params {
		parts = append(parts, p.Display())
	}
	return strings.Join(parts, " ")
}

// Provider supplies completion candidates for matching parameters.
// Empty filters match everything.
type Provider struct {
	Name       string
	Command    string
	Parameter  string
	Type       *Type
	Priority   int
	Candidates func() []string
}

// Score returns the provider priority: the override when set,
// else 4 for a command filter, 2 for a parameter filter, 1 for a type filter.
func (p Provider) Score() int {
	if p.Priority != 0 {
		return p.Priority
	}
	score := 0
	if p.Command != "" {
		score += 4
	}
	if p.Parameter != "" {
		score += 2
	}
	if p.Type != nil {
		score++
	}
	return score
}

// Matches reports whether the provider applies to param of command
func (p Provider) Matches(command string, param Param) bool {
	if p.Command != "" && p.Command != command {
		return false
	}
	if p.Parameter != "" && p.Parameter != param.Name {
		return false
	}
	if p.Type != nil && !p.Type.Equal(param.Type) {
		return false
	}
	return true
}
