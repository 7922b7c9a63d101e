// Package registry holds the console's command and completion provider descriptors.
//
// A Registry is assembled once through a Builder, which validates every descriptor,
// and is read-only afterwards.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/devconsole/internal/derrors"
	"github.com/NikitaCOEUR/devconsole/internal/logger"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Builder collects descriptors before the registry is frozen
type Builder struct {
	commands  []Command
	providers []Provider
	log       *logger.Logger
}

// NewBuilder creates an empty builder
func NewBuilder(log *logger.Logger) *Builder {
	if log == nil {
		log = logger.Nop()
	}
	return &Builder{log: log}
}

// Command registers a command descriptor
func (b *Builder) Command(cmd Command) *Builder {
	b.commands = append(b.commands, cmd)
	return b
}

// Commands registers several command descriptors
func (b *Builder) Commands(cmds ...Command) *Builder {
	b.commands = append(b.commands, cmds...)
	return b
}

// Provider registers a completion provider
func (b *Builder) Provider(p Provider) *Builder {
	b.providers = append(b.providers, p)
	return b
}

// Build validates the descriptors and returns the frozen registry.
// Every problem found is reported as a ConfigurationError.
func (b *Builder) Build() (*Registry, error) {
	var errs []error

	commands := orderedmap.New[string, *Command]()
	for i := range b.commands {
		cmd := b.commands[i]
		if problems := validateCommand(&cmd); len(problems) > 0 {
			errs = append(errs, problems...)
			continue
		}
		if _, exists := commands.Get(cmd.Name); exists {
			errs = append(errs, derrors.NewConfigurationError(cmd.Name,
				fmt.Sprintf("duplicate command name: %s", cmd.Name), nil))
			continue
		}
		cmd.Params = slices.Clone(cmd.Params)
		commands.Set(cmd.Name, &cmd)
	}

	for i, p := range b.providers {
		if p.Candidates == nil {
			subject := p.Name
			if subject == "" {
				subject = fmt.Sprintf("provider #%d", i)
			}
			errs = append(errs, derrors.NewConfigurationError(subject,
				fmt.Sprintf("completion provider %s has no candidate function", subject), nil))
		}
	}

	if len(errs) > 0 {
		b.log.Error().Int("problems", len(errs)).Msg("Invalid command set")
		return nil, errors.Join(errs...)
	}

	b.log.Debug().
		Int("commands", commands.Len()).
		Int("providers", len(b.providers)).
		Msg("Command registry built")

	return &Registry{
		commands:  commands,
		providers: slices.Clone(b.providers),
	}, nil
}

func validateCommand(cmd *Command) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, derrors.NewConfigurationError(cmd.Name, fmt.Sprintf(format, args...), nil))
	}

	if cmd.Name == "" {
		fail("command name is empty")
	} else if strings.IndexFunc(cmd.Name, unicode.IsSpace) >= 0 {
		fail("command name %q contains whitespace", cmd.Name)
	}
	if !cmd.Handler.Valid() {
		fail("command %s has no operation", cmd.Name)
	}

	seenOptional := false
	names := make(map[string]struct{}, len(cmd.Params))
	for i, p := range cmd.Params {
		if p.Name == "" {
			fail("command %s: parameter #%d has no name", cmd.Name, i)
		}
		if _, dup := names[p.Name]; dup && p.Name != "" {
			fail("command %s: duplicate parameter %s", cmd.Name, p.Name)
		}
		names[p.Name] = struct{}{}

		switch p.Type.Kind {
		case KindStringList:
			if len(cmd.Params) != 1 {
				fail("command %s: string[] parameter %s must be the only parameter", cmd.Name, p.Name)
			}
		case KindEnum:
			if p.Type.Enum == nil || len(p.Type.Enum.Values) == 0 {
				fail("command %s: enum parameter %s declares no values", cmd.Name, p.Name)
			}
		}

		if p.Optional() {
			seenOptional = true
			if p.Default.Kind() != p.Type.Kind {
				fail("command %s: default of %s is %s, expected %s",
					cmd.Name, p.Name, p.Default.Kind(), p.Type.Kind)
			} else if p.Type.Kind == KindEnum && !p.Type.Enum.Contains(p.Default.Enum()) {
				fail("command %s: default %q of %s is not a member of %s",
					cmd.Name, p.Default.Enum(), p.Name, p.Type)
			}
		} else if seenOptional {
			fail("command %s: required parameter %s follows an optional one", cmd.Name, p.Name)
		}
	}

	return errs
}

// Registry is the immutable command table
type Registry struct {
	commands  *orderedmap.OrderedMap[string, *Command]
	providers []Provider
}

// Lookup finds a command by name
func (r *Registry) Lookup(name string) (*Command, bool) {
	return r.commands.Get(name)
}

// Names returns every command name in registration order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.commands.Len())
	for pair := r.commands.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Commands returns every command in registration order
func (r *Registry) Commands() []*Command {
	cmds := make([]*Command, 0, r.commands.Len())
	for pair := r.commands.Oldest(); pair != nil; pair = pair.Next() {
		cmds = append(cmds, pair.Value)
	}
	return cmds
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	return r.commands.Len()
}

// Providers returns every registered provider in registration order
func (r *Registry) Providers() []Provider {
	return slices.Clone(r.providers)
}

// ProvidersMatching returns the providers applicable to param of command,
// highest score first, registration order among equal scores.
func (r *Registry) ProvidersMatching(command string, param Param) []Provider {
	var matching []Provider
	for _, p := range r.providers {
		if p.Matches(command, param) {
			matching = append(matching, p)
		}
	}
	slices.SortStableFunc(matching, func(a, b Provider) int {
		return b.Score() - a.Score()
	})
	return matching
}

// BestProvider returns the head of ProvidersMatching
func (r *Registry) BestProvider(command string, param Param) (Provider, bool) {
	matching := r.ProvidersMatching(command, param)
	if len(matching) == 0 {
		return Provider{}, false
	}
	return matching[0], true
}
