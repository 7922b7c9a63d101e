// Package samples provides a small demonstration command set.
package samples

import (
	"iter"
	"strings"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
)

// Color is the enum taken by the color command
var Color = registry.EnumOf("Color", "Red", "Green", "Blue")

var colorHex = map[string]string{
	"Red":   "#FF0000",
	"Green": "#00FF00",
	"Blue":  "#0000FF",
}

// Clearer empties the console, used by hack once it is done
type Clearer interface {
	Clear()
}

// Commands returns the demonstration commands
func Commands(console Clearer) []registry.Command {
	return []registry.Command{
		{
			Name:    "color",
			Example: "color Red",
			Params:  []registry.Param{registry.Required("col", Color)},
			Handler: registry.Action(func(c *registry.Call) error {
				name := c.Args[0].Enum()
				c.Out.Push(transcript.Entry{Text: name, Color: colorHex[name]})
				return nil
			}),
		},
		{
			Name:        "image",
			Description: "embed an image in the console",
			Handler: registry.Action(func(c *registry.Call) error {
				c.Out.Embed(Logo, strings.Count(Logo.String(), "\n")+1)
				return nil
			}),
		},
		{
			Name:        "echo",
			Description: "show all the provided arguments in the console",
			Example:     `echo "hello world"`,
			Params:      []registry.Param{registry.Required("args", registry.StringList)},
			Handler: registry.Action(func(c *registry.Call) error {
				c.Print(strings.Join(c.Args[0].Strings(), " "))
				return nil
			}),
		},
		{
			Name:        "add",
			Description: "add two numbers together",
			Example:     "add 10 20",
			Params:      []registry.Param{registry.Required("a", registry.Integer), registry.Required("b", registry.Integer)},
			ResultType:  "int",
			Handler: registry.Func(func(c *registry.Call) (any, error) {
				return c.Args[0].Int() + c.Args[1].Int(), nil
			}),
		},
		{
			Name:        "hack",
			Description: "coroutine test",
			Handler: registry.Routine(func(c *registry.Call) (iter.Seq[time.Duration], error) {
				return hack(c, console), nil
			}),
		},
	}
}

// Providers returns the completion providers of the demonstration commands
func Providers() []registry.Provider {
	return []registry.Provider{
		{
			Name:    "echo-phrases",
			Command: "echo",
			Candidates: func() []string {
				return []string{"hello world", "hello devconsole", "testing"}
			},
		},
	}
}

func hack(c *registry.Call, console Clearer) iter.Seq[time.Duration] {
	return func(yield func(time.Duration) bool) {
		for range 5 {
			c.Print("initializing...")
			if !yield(200 * time.Millisecond) {
				return
			}
		}

		for i := range 50 {
			color := transcript.OutputColor
			if i%2 != 0 {
				color = transcript.CommandColor
			}
			c.Out.Push(transcript.Entry{Text: "hacking...", Color: string(color)})
			if !yield(50 * time.Millisecond) {
				return
			}
		}

		steps := []struct {
			text     string
			severity transcript.Severity
			pause    time.Duration
		}{
			{"You've been hacked!", transcript.Error, 500 * time.Millisecond},
			{"(Not really, dont worry)", transcript.Success, 2500 * time.Millisecond},
			{"Unless?", transcript.Error, 500 * time.Millisecond},
		}
		for _, s := range steps {
			c.Printf(s.severity, "%s", s.text)
			if !yield(s.pause) {
				return
			}
		}

		console.Clear()
	}
}
