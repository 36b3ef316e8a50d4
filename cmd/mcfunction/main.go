// Package main is the entry point for the mcfunction CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	mcli "github.com/NikitaCOEUR/mcfunction/internal/cli"
	"github.com/NikitaCOEUR/mcfunction/internal/trace"
	"github.com/NikitaCOEUR/mcfunction/pkg/version"
)

func main() {
	defer trace.Init()()

	if err := newApp(os.Stdout, os.Stdin).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// common collects the global flags shared by every catalog-backed command
func common(cmd *cli.Command, out io.Writer) mcli.Common {
	return mcli.Common{
		Dir:      cmd.String("dir"),
		LogLevel: cmd.String("log-level"),
		Catalog:  cmd.String("catalog"),
		Schemas:  cmd.String("schemas"),
		Output:   out,
	}
}

func newApp(out io.Writer, in io.Reader) *cli.Command {
	return &cli.Command{
		Name:                  "mcfunction",
		Usage:                 "Context-sensitive completion for mcfunction command lines",
		Version:               version.Version,
		EnableShellCompletion: true,
		Writer:                out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), overrides the configuration",
				Sources: cli.EnvVars("MCFUNCTION_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Command catalog file (json, yaml or toml), overrides the configuration",
				Sources: cli.EnvVars("MCFUNCTION_CATALOG"),
			},
			&cli.StringFlag{
				Name:    "schemas",
				Usage:   "Directory of JSON schema documents, overrides the configuration",
				Sources: cli.EnvVars("MCFUNCTION_SCHEMAS"),
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory the configuration is resolved from (defaults to the current directory)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "complete",
				Usage:     "Print completions for a cursor position on a command line",
				ArgsUsage: "<line>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "cursor",
						Aliases: []string{"c"},
						Value:   -1,
						Usage:   "Byte offset of the cursor (end of line when negative)",
					},
					&cli.IntFlag{
						Name:    "line-number",
						Aliases: []string{"l"},
						Usage:   "Line number reported in ranges",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Go template rendering each item (sprig functions available)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() == 0 {
						return fmt.Errorf("command line required")
					}
					return mcli.Complete(ctx, mcli.CompleteParams{
						Common:     common(cmd, out),
						Line:       cmd.Args().Get(0),
						Cursor:     int(cmd.Int("cursor")),
						LineNumber: int(cmd.Int("line-number")),
						Format:     cmd.String("format"),
					})
				},
			},
			{
				Name:      "commands",
				Usage:     "List the commands of the active catalog",
				ArgsUsage: "[prefix]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "selectors",
						Aliases: []string{"s"},
						Usage:   "List selector arguments instead of commands",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.Commands(mcli.CommandsParams{
						Common:    common(cmd, out),
						Prefix:    cmd.Args().Get(0),
						Selectors: cmd.Bool("selectors"),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a command catalog or a configuration file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "config",
						Usage: "Validate a configuration file instead of a catalog",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.Validate(mcli.ValidateParams{
						Common: common(cmd, out),
						Path:   cmd.Args().Get(0),
						Config: cmd.Bool("config"),
					})
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for catalog or configuration files",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
					&cli.BoolFlag{
						Name:  "config",
						Usage: "Export the configuration schema instead of the catalog schema",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return mcli.Schema(mcli.SchemaParams{
						OutputPath: outputPath,
						Config:     cmd.Bool("config"),
						Output:     out,
					})
				},
			},
			{
				Name:  "status",
				Usage: "Show the configuration, catalog and schemas in effect",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.Status(mcli.StatusParams{
						Dir:    cmd.String("dir"),
						Output: out,
					})
				},
			},
			{
				Name:  "init",
				Usage: "Create a sample config file in the current folder or the global config",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "global",
						Aliases: []string{"g"},
						Usage:   "Create global config file instead of local",
					},
					&cli.BoolFlag{
						Name:  "export-catalog",
						Usage: "Also write the built-in catalog next to the config",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mcli.Init(mcli.InitParams{
						Dir:           cmd.String("dir"),
						Global:        cmd.Bool("global"),
						ExportCatalog: cmd.Bool("export-catalog"),
						Output:        out,
					})
				},
			},
			{
				Name:  "serve",
				Usage: "Answer JSON-lines completion requests on stdin",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Reload the catalog file when it changes",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mcli.Serve(ctx, mcli.ServeParams{
						Common: common(cmd, out),
						Input:  in,
						Watch:  cmd.Bool("watch"),
					})
				},
			},
		},
	}
}
