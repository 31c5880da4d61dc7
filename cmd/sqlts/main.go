package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tordrt/sqlts"
	"github.com/tordrt/sqlts/internal/config"
	"github.com/tordrt/sqlts/internal/debug"
)

// appFs is where config, templates and output live
var appFs = afero.NewOsFs()

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

type options struct {
	configPath string
	format     string
	outputDir  string
	stdout     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sqlts",
		Short: "Generate TypeScript types from a database schema",
		Long: `sqlts introspects a PostgreSQL, MySQL, SQL Server or SQLite database and
writes TypeScript interfaces and enums describing its tables.

Options are read from a JSON config file (sqlts.json by default). The client,
connection, template, filename and folder options may also come from flags or
SQLTS_* environment variables, and .env / .env.local files are loaded first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Config file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", sqlts.FormatTypeScript, "Output format: typescript, markdown, text or json")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "Write one file per schema into this directory")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write to stdout instead of <folder>/<filename>")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log introspection progress to stderr")

	// Bound to config keys by config.Load
	cmd.Flags().String("client", "", "Database client: postgres, mysql, mssql or sqlite")
	cmd.Flags().String("connection", "", "Connection string")
	cmd.Flags().String("template", "", "Template file (default: built-in TypeScript template)")
	cmd.Flags().String("filename", "", "Output file name without extension (default: Database)")
	cmd.Flags().String("folder", "", "Output folder (default: .)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	debug.Init(opts.verbose, cmd.ErrOrStderr())

	if err := validateOptions(opts); err != nil {
		return err
	}

	cfg, err := config.Load(appFs, opts.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client := sqlts.FromConfig(cfg).WithFs(appFs)

	switch {
	case opts.outputDir != "":
		if err := client.Render(ctx, &sqlts.OutputOptions{Format: opts.format, OutputDir: opts.outputDir}); err != nil {
			return fmt.Errorf("failed to generate: %w", err)
		}
		_, _ = successColor.Fprintf(cmd.OutOrStdout(), "Definitions written to %s\n", opts.outputDir)
	case opts.stdout:
		if err := client.Render(ctx, &sqlts.OutputOptions{Format: opts.format, Writer: cmd.OutOrStdout()}); err != nil {
			return fmt.Errorf("failed to generate: %w", err)
		}
	default:
		path, err := client.Generate(ctx, opts.format)
		if err != nil {
			return fmt.Errorf("failed to generate: %w", err)
		}
		_, _ = successColor.Fprintf(cmd.OutOrStdout(), "Definitions written to %s\n", path)
	}
	return nil
}

func validateOptions(opts *options) error {
	switch opts.format {
	case sqlts.FormatTypeScript, sqlts.FormatMarkdown, sqlts.FormatText, sqlts.FormatJSON:
	default:
		return fmt.Errorf("invalid format: %s (must be typescript, markdown, text or json)", opts.format)
	}
	if opts.outputDir != "" && opts.stdout {
		return fmt.Errorf("cannot use both --output-dir and --stdout")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = errorColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
