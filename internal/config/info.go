package config

import (
	"maps"
	"slices"
)

// Info summarizes a loaded configuration
type Info struct {
	Path        string
	Defaults    bool
	LogLevel    string
	Aliases     []string
	Completions int
}

// Describe summarizes cfg loaded from path, an empty path meaning defaults only
func Describe(path string, cfg *Config) *Info {
	return &Info{
		Path:        path,
		Defaults:    path == "",
		LogLevel:    cfg.LogLevel,
		Aliases:     slices.Sorted(maps.Keys(cfg.Aliases)),
		Completions: len(cfg.Completions),
	}
}

// Source returns a human readable origin of the configuration
func (i *Info) Source() string {
	if i.Defaults {
		return "built-in defaults"
	}
	return i.Path
}
