package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/config"
	"github.com/NikitaCOEUR/devconsole/internal/console"
	"github.com/NikitaCOEUR/devconsole/internal/logger"
	"github.com/NikitaCOEUR/devconsole/internal/samples"
)

// SessionParams contains what every command needs to open a console session
type SessionParams struct {
	ConfigPath string
	LogLevel   string
	// Output receives the rendered transcript
	Output io.Writer
	// Logs receives the diagnostic log, defaults to stderr
	Logs io.Writer
}

func (p SessionParams) logger() *logger.Logger {
	return logger.New(p.LogLevel, p.Logs)
}

// loadConfig loads the file at path, or the default location when path is empty
func loadConfig(path string, log *logger.Logger) (*config.Config, string, error) {
	loader := config.New(log)
	if path == "" {
		return loader.LoadDefault()
	}
	cfg, err := loader.Load(path)
	return cfg, path, err
}

// sessionClearer lets the sample commands clear the session they belong to,
// which only exists once the registry is built
type sessionClearer struct {
	session *console.Session
}

func (c *sessionClearer) Clear() {
	if c.session != nil {
		c.session.Clear()
	}
}

// env is an open console session with the configuration and logger it runs with
type env struct {
	session *console.Session
	cfg     *config.Config
	log     *logger.Logger
}

// openSession loads the configuration and starts a session with the sample
// commands, the configured completions and aliases
func openSession(params SessionParams) (*env, error) {
	log := params.logger()

	cfg, path, err := loadConfig(params.ConfigPath, log)
	if err != nil {
		return nil, err
	}
	if params.LogLevel == "" {
		log.SetLevel(cfg.LogLevel)
	}
	log.Debug().Str("config", config.Describe(path, cfg).Source()).Msg("Configuration loaded")

	providers, err := cfg.Providers()
	if err != nil {
		return nil, err
	}

	clearer := &sessionClearer{}
	session, err := console.New(console.Options{
		Commands:     samples.Commands(clearer),
		Providers:    append(samples.Providers(), providers...),
		Aliases:      cfg.Aliases,
		HistoryLimit: cfg.History.Limit,
		DisplayLimit: cfg.Suggestions.DisplayLimit,
		StartVisible: cfg.StartVisible,
		Output:       params.Output,
		ForwardLogs:  cfg.ForwardLogs,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start console: %w", err)
	}
	clearer.session = session
	return &env{session: session, cfg: cfg, log: log}, nil
}

// drain runs the session routines until none is left or ctx is done,
// sleeping until the next routine is due between ticks
func drain(ctx context.Context, session *console.Session) error {
	for session.Pending() > 0 {
		due, ok := session.NextDue()
		if !ok {
			return nil
		}
		if wait := time.Until(due); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		session.Tick(time.Now())
	}
	return nil
}
