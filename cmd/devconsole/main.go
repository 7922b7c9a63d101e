// Package main is the entry point for the devconsole application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	dcli "github.com/NikitaCOEUR/devconsole/internal/cli"
	"github.com/NikitaCOEUR/devconsole/internal/trace"
	"github.com/NikitaCOEUR/devconsole/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	stopTrace := trace.Init()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args)
	stop()
	stopTrace()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	session := func(cmd *cli.Command) dcli.SessionParams {
		return dcli.SessionParams{
			ConfigPath: cmd.String("config"),
			LogLevel:   cmd.String("log-level"),
			Output:     stdout,
			Logs:       stderr,
		}
	}

	shell := func(ctx context.Context, cmd *cli.Command) error {
		return dcli.Shell(ctx, dcli.ShellParams{
			SessionParams: session(cmd),
			Prompt:        cmd.String("prompt"),
		})
	}

	return &cli.Command{
		Name:                  "devconsole",
		Usage:                 "Interactive developer console with typed commands and completion",
		Version:               version.String(),
		EnableShellCompletion: true,
		Writer:                stdout,
		ErrWriter:             stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the config file",
				Sources: cli.EnvVars("DEVCONSOLE_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (defaults to $XDG_CONFIG_HOME/devconsole/config.yml)",
				Sources: cli.EnvVars("DEVCONSOLE_CONFIG"),
			},
		},
		Action: shell,
		Commands: []*cli.Command{
			{
				Name:  "shell",
				Usage: "Start an interactive console",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prompt",
						Usage: "Prompt, overrides the config file",
					},
				},
				Action: shell,
			},
			{
				Name:            "exec",
				Usage:           "Run one console line and wait for the routines it starts",
				ArgsUsage:       "<line...>",
				SkipFlagParsing: true,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("exec needs a console line")
					}
					return dcli.Exec(ctx, dcli.ExecParams{
						SessionParams: session(cmd),
						Line:          strings.Join(cmd.Args().Slice(), " "),
					})
				},
			},
			{
				Name:            "complete",
				Usage:           "Print the completion candidates of a partial console line",
				ArgsUsage:       "<line>",
				SkipFlagParsing: true,
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Complete(dcli.CompleteParams{
						SessionParams: session(cmd),
						Line:          strings.Join(cmd.Args().Slice(), " "),
					})
				},
			},
			{
				Name:  "commands",
				Usage: "List the registered commands",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Print the commands as YAML",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Commands(dcli.CommandsParams{
						SessionParams: session(cmd),
						YAML:          cmd.Bool("yaml"),
					})
				},
			},
			{
				Name:  "config",
				Usage: "Show the configuration in effect",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Info(stdout, session(cmd))
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a devconsole configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return dcli.Validate(stdout, cmd.Args().First())
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for devconsole configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return dcli.Schema(stdout, outputPath)
				},
			},
		},
	}
}
