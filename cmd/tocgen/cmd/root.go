// Package cmd provides the CLI commands for tocgen.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/tocgen/internal/config"
	tocerrors "github.com/Aman-CERP/tocgen/internal/errors"
	"github.com/Aman-CERP/tocgen/internal/logging"
	"github.com/Aman-CERP/tocgen/internal/output"
	"github.com/Aman-CERP/tocgen/internal/toc"
	"github.com/Aman-CERP/tocgen/pkg/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	dir           string
	output        string
	configPath    string
	logLevel      string
	skipMalformed bool
	noLock        bool
	debug         bool
	verbose       bool

	loggingCleanup func()
}

// NewRootCmd creates the root command for tocgen CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "tocgen",
		Short: "Generate table_of_contents.json for a docs directory",
		Long: `tocgen reads the title: and slug: header lines of every Markdown file in
a docs directory (index.md excluded, no recursion), sorts the entries by
title and writes them to table_of_contents.json.

Run it with no arguments in the docs directory. It prints nothing on
success and exits non-zero, leaving any existing output untouched, on
failure.`,
		Example: `  # Regenerate the table of contents in the current directory
  tocgen

  # Generate for another directory, tolerating malformed headers
  tocgen -C docs/functions --skip-malformed

  # Fail CI when the committed table of contents is stale
  tocgen check -C docs/functions`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}

	cmd.SetVersionTemplate("tocgen version {{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Docs directory to scan")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file, relative to --dir (default: table_of_contents.json)")
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: .tocgen.yaml in --dir)")
	flags.BoolVar(&opts.skipMalformed, "skip-malformed", false, "Skip documents with malformed title:/slug: lines instead of failing")
	flags.BoolVar(&opts.noLock, "no-lock", false, "Do not take the cross-process output lock")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.tocgen/logs/")
	flags.StringVar(&opts.logLevel, "log-level", "", "Console log level: debug, info, warn, error (default: warn, env TOCGEN_LOG_LEVEL)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print a summary after writing")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return opts.startLogging(cmd)
	}
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		opts.stopLogging()
		return nil
	}

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and prints any error to
// stderr.
func ExecuteContext(ctx context.Context) error {
	return executeRoot(ctx, NewRootCmd())
}

func executeRoot(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprint(root.ErrOrStderr(), tocerrors.FormatForCLI(err))
	}
	return err
}

// startLogging installs the default slog logger.
func (o *globalOptions) startLogging(cmd *cobra.Command) error {
	if o.debug {
		logger, cleanup, err := logging.Setup(logging.DebugConfig())
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		o.loggingCleanup = cleanup
		slog.SetDefault(logger)
		slog.Info("Debug logging enabled",
			slog.String("log_file", logging.DefaultLogPath()),
			slog.String("version", version.Version))
		return nil
	}

	level := o.logLevel
	if level == "" {
		level = logging.LevelFromEnv("warn")
	}
	slog.SetDefault(logging.NewConsoleLogger(cmd.ErrOrStderr(), level))
	return nil
}

func (o *globalOptions) stopLogging() {
	if o.loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		o.loggingCleanup()
		o.loggingCleanup = nil
	}
}

// loadConfig resolves the configuration for the docs directory: defaults,
// project file, environment, then flags.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(o.dir)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, tocerrors.New(tocerrors.ErrCodeConfigNotFound, "config file not found: "+o.configPath, err).
			WithSuggestion("Create one with 'tocgen init' or drop --config")
	}
	if err != nil {
		return nil, tocerrors.ConfigError("failed to load configuration: "+err.Error(), err).
			WithSuggestion("Check .tocgen.yaml and TOCGEN_* environment variables")
	}

	if o.output != "" {
		cfg.Output.Path = o.output
	}
	if o.skipMalformed {
		cfg.Metadata.OnMalformed = config.MalformedSkip
	}
	if o.noLock {
		cfg.Output.Lock = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, tocerrors.ConfigError("invalid options: "+err.Error(), err)
	}
	return cfg, nil
}

// tocOptions returns the run options for the resolved configuration.
func (o *globalOptions) tocOptions() (toc.Options, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return toc.Options{}, err
	}
	return toc.OptionsFromConfig(cfg, o.dir), nil
}

// runBuild regenerates the table of contents.
func runBuild(ctx context.Context, cmd *cobra.Command, opts *globalOptions) error {
	runOpts, err := opts.tocOptions()
	if err != nil {
		return err
	}

	result, err := toc.Run(ctx, runOpts)
	if err != nil {
		return err
	}

	if opts.verbose {
		out := output.New(cmd.OutOrStdout())
		out.Successf("Wrote %d entries to %s", len(result.Records), result.Output)
		printSkipped(out, result)
	}
	return nil
}

// printSkipped reports the candidates that did not make it into the output.
func printSkipped(out *output.Writer, result *toc.Result) {
	if n := len(result.Skipped); n > 0 {
		out.Warningf("%d file(s) without title and slug", n)
		for _, name := range result.Skipped {
			out.Detail(name)
		}
	}
	if n := len(result.Malformed); n > 0 {
		out.Warningf("%d file(s) with malformed headers skipped", n)
		for _, name := range result.Malformed {
			out.Detail(name)
		}
	}
}
