// Package main provides the hydradoc binary entry point.
// Hydradoc generates Hydra API documentation (JSON-LD) from a declarative
// API schema.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/hydradoc/config"
	"github.com/c360studio/hydradoc/export"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "hydradoc"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// overrideFlags adjust the loaded configuration.
type overrideFlags struct {
	schemas    []string
	api        string
	baseURL    string
	format     string
	output     string
	publishURL string
}

func rootCmd() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Hydra API documentation generator",
		Long: `Hydradoc builds Hydra API documentation from a declarative API schema.

It registers the schema's classes, derives collection wrappers, adds the
Hydra base classes and synthesizes the entry point, then renders the
documentation as JSON-LD, Turtle, N-Triples, a Python module or Go source.
Rendered documents can be published to a NATS KV bucket.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(generateCmd(&g), watchCmd(&g), initCmd(&g), formatsCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func generateCmd(g *globalFlags) *cobra.Command {
	var o overrideFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the API documentation once",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(g.logLevel)
			cfg, err := loadConfig(g, &o, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := NewApp(cfg, logger)
			defer app.Shutdown()
			if err := app.Start(ctx); err != nil {
				return err
			}

			_, err = app.Generate(ctx)
			return err
		},
	}
	addOverrideFlags(cmd, &o)
	return cmd
}

func watchCmd(g *globalFlags) *cobra.Command {
	var (
		o           overrideFlags
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the documentation whenever schema files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(g.logLevel)
			cfg, err := loadConfig(g, &o, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := NewApp(cfg, logger)
			defer app.Shutdown()
			if err := app.Start(ctx); err != nil {
				return err
			}
			return app.Watch(ctx, metricsAddr)
		},
	}
	addOverrideFlags(cmd, &o)
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address (e.g. :9090)")
	return cmd
}

func initCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default " + config.ProjectConfigFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, created, err := config.NewLoader(newLogger(g.logLevel)).EnsureProjectConfig(dir)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported output formats",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range export.FormatNames() {
				info, _ := export.GetFormatInfo(export.Format(name))
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-5s %s\n", name, info.Extension, info.Description)
			}
		},
	}
}

func addOverrideFlags(cmd *cobra.Command, o *overrideFlags) {
	cmd.Flags().StringArrayVarP(&o.schemas, "schema", "s", nil, "Schema file glob (repeatable, replaces config schema.paths)")
	cmd.Flags().StringVar(&o.api, "api", "", "API identifier")
	cmd.Flags().StringVar(&o.baseURL, "base-url", "", "Server base URL")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format ("+strings.Join(export.FormatNames(), ", ")+")")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output file (- for stdout)")
	cmd.Flags().StringVar(&o.publishURL, "publish", "", "NATS URL to publish the documentation to")
}

// loadConfig layers the flag overrides on top of the loaded configuration.
func loadConfig(g *globalFlags, o *overrideFlags, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.Merge(&config.Config{
		Doc:    config.DocConfig{API: o.api, BaseURL: o.baseURL},
		Schema: config.SchemaConfig{Paths: o.schemas},
		Output: config.OutputConfig{Path: o.output, Format: o.format},
		NATS:   config.NATSConfig{URL: o.publishURL},
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
