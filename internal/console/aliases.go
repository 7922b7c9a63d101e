package console

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/NikitaCOEUR/devconsole/internal/derrors"
	"github.com/NikitaCOEUR/devconsole/internal/dispatch"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/tokenizer"
)

// AliasData is the template context of an alias line
type AliasData struct {
	Name string
	Args []string
	Line string
}

// aliasFuncs returns sprig's functions plus "tokens", which joins
// arguments back into a line that tokenizes to the same arguments
func aliasFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["tokens"] = tokenizer.Join
	return funcs
}

// ParseAlias compiles an alias template
func ParseAlias(name, text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, derrors.NewConfigurationError(name, fmt.Sprintf("alias %s has an empty template", name), nil)
	}
	tmpl, err := template.New(name).Funcs(aliasFuncs()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, derrors.NewConfigurationError(name, fmt.Sprintf("alias %s has an invalid template", name), err)
	}
	return tmpl, nil
}

// RenderAlias expands an alias template for the given arguments
func RenderAlias(tmpl *template.Template, data AliasData) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(sb.String()), nil
}

func (s *Session) aliasCommands(aliases map[string]string) ([]registry.Command, error) {
	names := slices.Sorted(maps.Keys(aliases))
	cmds := make([]registry.Command, 0, len(names))

	for _, name := range names {
		text := aliases[name]
		tmpl, err := ParseAlias(name, text)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, registry.Command{
			Name:        name,
			Description: "alias for: " + text,
			Params:      []registry.Param{registry.Required("args", registry.StringList)},
			Handler: registry.Action(func(c *registry.Call) error {
				line, err := RenderAlias(tmpl, AliasData{Name: name, Args: c.Args[0].Strings(), Line: c.Line})
				if err != nil {
					return err
				}
				s.log.Debug().Str("alias", name).Str("line", line).Msg("Expanding alias")

				if out := s.dispatcher.ExecuteNested(line); out.Kind == dispatch.Errored {
					return out.Err
				}
				return nil
			}),
		})
	}
	return cmds, nil
}
