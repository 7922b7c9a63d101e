// Package completion computes live suggestions for partially typed console input.
package completion

import (
	"github.com/NikitaCOEUR/devconsole/internal/registry"
)

// Source produces raw candidates for one parameter of a command
type Source interface {
	// Supports returns true if this source can answer for the parameter
	Supports(command *registry.Command, param registry.Param) bool

	// Candidates returns the unfiltered candidate values
	Candidates(command *registry.Command, param registry.Param) []string
}

// EnumSource lists every value of an enum parameter
type EnumSource struct{}

// Supports implements Source
func (EnumSource) Supports(_ *registry.Command, param registry.Param) bool {
	return param.Type.Kind == registry.KindEnum && param.Type.Enum != nil
}

// Candidates implements Source
func (EnumSource) Candidates(_ *registry.Command, param registry.Param) []string {
	return append([]string{}, param.Type.Enum.Values...)
}

// ProviderSource asks the registry for the most specific completion provider
type ProviderSource struct {
	Registry *registry.Registry
}

// Supports implements Source
func (s ProviderSource) Supports(command *registry.Command, param registry.Param) bool {
	_, ok := s.Registry.BestProvider(command.Name, param)
	return ok
}

// Candidates implements Source
func (s ProviderSource) Candidates(command *registry.Command, param registry.Param) []string {
	p, ok := s.Registry.BestProvider(command.Name, param)
	if !ok {
		return nil
	}
	return p.Candidates()
}
