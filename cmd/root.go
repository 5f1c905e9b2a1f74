package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/astdump/internal/catalog"
	"github.com/agentic-research/astdump/internal/config"
	"github.com/agentic-research/astdump/internal/convert"
	"github.com/agentic-research/astdump/internal/logging"
	"github.com/agentic-research/astdump/internal/render"
	"github.com/agentic-research/astdump/internal/selector"
	"github.com/agentic-research/astdump/internal/sink"
	"github.com/agentic-research/astdump/internal/source"
)

// exitError carries a process exit code for a failure that has already
// been reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

type rootFlags struct {
	configPath string
	language   string
	format     string
	anonymous  bool
	positions  bool
	selectExpr string
	catalog    string
	strict     bool
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "astdump [input] [output]",
		Short: "Dump the syntax tree of a source file as deterministic text",
		Long: `astdump parses one source file with a tree-sitter grammar and writes a
deterministic, indented rendering of its syntax tree to the output path,
replacing any existing file.

A file that fails to open or parse produces no output. The failure is
reported on stdout and, unless --strict is set, the exit status stays 0.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg, args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Path to an HCL config file")
	f.StringVarP(&flags.language, "lang", "l", "", "Grammar to parse with (default: detect from extension, falling back to rust)")
	f.StringVarP(&flags.format, "format", "f", string(render.FormatText), "Output format: text, json or sexp")
	f.BoolVar(&flags.anonymous, "anonymous", false, "Include anonymous tokens (keywords, punctuation)")
	f.BoolVar(&flags.positions, "positions", false, "Append row:column ranges to every node")
	f.StringVar(&flags.selectExpr, "select", "", "JSONPath choosing the sub-trees to render")
	f.StringVar(&flags.catalog, "catalog", "", "SQLite database to record the conversion in")
	f.BoolVar(&flags.strict, "strict", false, "Exit with status 1 when the conversion fails")
	f.StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	f.StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")

	cmd.AddCommand(newCatalogCmd())
	return cmd
}

// resolveConfig loads the optional config file and applies explicitly set
// flags over it.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("lang") {
		cfg.Language = flags.language
	}
	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("anonymous") {
		cfg.Anonymous = flags.anonymous
	}
	if changed("positions") {
		cfg.Positions = flags.positions
	}
	if changed("select") {
		cfg.Select = flags.selectExpr
	}
	if changed("catalog") {
		cfg.Catalog = flags.catalog
	}
	if changed("strict") {
		cfg.Strict = flags.strict
	}
	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = flags.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, cfg *config.Config, input, output string) error {
	logger, err := logging.New(cmd.OutOrStdout(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	ctx := logging.WithLogger(cmd.Context(), logger)

	parsers, err := convert.Parsers(cfg.Language)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	renderer, err := render.New(format, render.Options{Anonymous: cfg.Anonymous, Positions: cfg.Positions})
	if err != nil {
		return err
	}

	var opts []convert.Option
	if cfg.Select != "" {
		sel, err := selector.New(cfg.Select)
		if err != nil {
			return err
		}
		opts = append(opts, convert.WithSelector(sel))
	}
	if cfg.Catalog != "" {
		cat, err := catalog.Open(cfg.Catalog)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close() }()
		opts = append(opts, convert.WithRecorder(cat))
	}

	pipeline := convert.New(source.NewLoader(nil), parsers, renderer, sink.NewWriter(nil), opts...)
	if _, err := pipeline.Run(ctx, convert.Request{Input: input, Output: output}); err != nil {
		if cfg.Strict {
			return &exitError{code: 1, err: err}
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
