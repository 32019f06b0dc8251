// Package cli implements the lookupdoc command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lookupdoc/internal/catalog"
	"lookupdoc/internal/config"
	"lookupdoc/internal/domain"
	"lookupdoc/internal/engine"
	"lookupdoc/internal/report"
	"lookupdoc/internal/storage"
)

var (
	version = "dev"
	commit  = "none"
)

// lookupSource is a query engine the report can be run against and closed afterwards.
type lookupSource interface {
	domain.LookupSource
	Close() error
}

// tableLister finds lookup files on the object store.
type tableLister interface {
	ListTables(ctx context.Context, ext string) ([]string, error)
}

// deps holds the collaborators commands reach out to; tests swap them for fakes.
type deps struct {
	openSource func(ctx context.Context, opts engine.Options) (lookupSource, error)
	newLister  func(loc storage.Location, region string) tableLister
}

func defaultDeps() deps {
	return deps{
		openSource: func(ctx context.Context, opts engine.Options) (lookupSource, error) {
			return engine.Open(ctx, opts)
		},
		newLister: func(loc storage.Location, region string) tableLister {
			return storage.NewLister(loc, region)
		},
	}
}

// settings is the resolved run configuration shared by all commands.
type settings struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd(defaultDeps())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(d deps) *cobra.Command {
	var (
		baseURL   string
		manifest  string
		title     string
		logLevel  string
		logFormat string
		rateLimit float64
		envFile   string
	)
	s := &settings{}

	rootCmd := &cobra.Command{
		Use:   "lookupdoc",
		Short: "Document lookup tables stored as remote Parquet files",
		Long: "Prints a Markdown catalog of every lookup table: its row count, its schema\n" +
			"and all of its rows, read directly from object storage with DuckDB.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return fmt.Errorf("dotenv: %w", err)
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			// Apply precedence: flag > env > manifest > default
			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("manifest") {
				cfg.ManifestPath = manifest
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				if err := config.ValidateLogFormat(logFormat); err != nil {
					return err
				}
				cfg.LogFormat = logFormat
			}
			if flags.Changed("rate-limit") {
				if rateLimit < 0 {
					return fmt.Errorf("--rate-limit must not be negative")
				}
				cfg.RateLimit = rateLimit
			}

			cat := catalog.Default()
			if cfg.ManifestPath != "" {
				if cat, err = catalog.LoadManifest(cfg.ManifestPath); err != nil {
					return err
				}
			}
			if cfg.BaseURL != "" {
				cat.BaseURL = cfg.BaseURL
			}
			if flags.Changed("title") {
				cat.Title = title
			}

			s.cfg = cfg
			s.catalog = cat
			s.logger = newLogger(cmd.ErrOrStderr(), cfg)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), s, d)
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Object-store prefix holding the lookup files (env LOOKUP_BASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&manifest, "manifest", "m", "", "YAML manifest with title, base_url, extension and tables (env LOOKUP_MANIFEST)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: auto, text, json (env LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	rootCmd.Flags().StringVar(&title, "title", catalog.DefaultTitle, "Report title; empty omits the heading")
	rootCmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "Maximum queries per second, 0 for unlimited (env QUERY_RATE_LIMIT)")

	rootCmd.AddCommand(newTablesCmd(s))
	rootCmd.AddCommand(newDiscoverCmd(s, d))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// runReport opens one engine session and prints the whole catalog through it.
func runReport(ctx context.Context, out io.Writer, s *settings, d deps) error {
	src, err := d.openSource(ctx, engine.Options{
		InstallExtensions: s.cfg.InstallExtensions,
		MaxMemory:         s.cfg.MaxMemory,
		Threads:           s.cfg.Threads,
		RateLimit:         s.cfg.RateLimit,
		Logger:            s.logger,
	})
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck

	s.logger.Info("documenting lookup tables",
		"base_url", s.catalog.BaseURL,
		"tables", len(s.catalog.Tables))
	return report.NewPrinter(src, out, s.logger).Print(ctx, s.catalog)
}

// skipSetup replaces the root PersistentPreRunE for commands that need
// neither configuration nor a catalog.
func skipSetup(*cobra.Command, []string) error { return nil }

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "completion [bash|zsh|fish|powershell]",
		Short:             "Generate shell completion scripts",
		Args:              cobra.ExactArgs(1),
		PersistentPreRunE: skipSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
