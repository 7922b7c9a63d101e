package console

import (
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
)

func (s *Session) builtins() []registry.Command {
	return []registry.Command{
		{
			Name:        "help",
			Description: "list the commands, or describe one",
			Example:     "help add",
			Params:      []registry.Param{registry.Optional("commandName", registry.String, registry.StringValue(""))},
			Handler:     registry.Action(s.help),
		},
		{
			Name:        "clear",
			Description: "clears the screen",
			Handler: registry.Action(func(*registry.Call) error {
				s.Clear()
				return nil
			}),
		},
	}
}

// commandNameProvider completes string parameters named commandName
func (s *Session) commandNameProvider() registry.Provider {
	str := registry.String
	return registry.Provider{
		Name:      "command-names",
		Parameter: "commandName",
		Type:      &str,
		Candidates: func() []string {
			return s.registry.Names()
		},
	}
}

func (s *Session) help(c *registry.Call) error {
	name := c.Args[0].Str()
	if name == "" {
		c.Print("Type help <commandname> for command specific help.")
		c.Print("List of available commands:")
		for _, n := range s.registry.Names() {
			c.Print("    " + n)
		}
		return nil
	}

	cmd, ok := s.registry.Lookup(name)
	if !ok {
		c.Printf(transcript.Error, "Command not found: %s", name)
		return nil
	}

	if cmd.Description == "" {
		c.Print(cmd.Name)
	} else {
		c.Print(cmd.Name + " - " + cmd.Description)
	}
	c.Print(cmd.Signature())

	if len(cmd.Params) == 0 {
		c.Print("This command has no arguments, call it by simply typing: " + cmd.Name)
	} else {
		c.Print(cmd.Usage())
	}

	if cmd.Example != "" {
		c.Print("example usage:")
		c.Printf(transcript.Info, "%s", cmd.Example)
	}
	return nil
}
