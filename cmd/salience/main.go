// Package main provides the salience binary entry point.
// Salience computes period-segmented lexical salience over a corpus of
// morphologically tokenized documents.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/salience/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "salience"
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

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Period-segmented lexical salience analysis",
		Long: `Salience computes period-segmented lexical salience over a corpus
of morphologically tokenized documents.

The pipeline tokenizes each document with an external morphological
analyzer, buckets documents into historical periods, fits a single
TF-IDF model over the whole corpus, selects the globally most salient
terms, aggregates their weights per period (sum and mean), and
normalizes the resulting matrices for comparison.`,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(runCommand(&configPath, &logLevel))
	cmd.AddCommand(freqCommand(&configPath, &logLevel))
	cmd.AddCommand(watchCommand(&configPath, &logLevel))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func runCommand(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run [patterns...]",
		Short: "Run the full salience pipeline once",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(*configPath, *logLevel, args)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.RunOnce(signalContext())
		},
	}
}

func freqCommand(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "freq [patterns...]",
		Short: "Write a surface-form frequency report for the corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(*configPath, *logLevel, args)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Freq(signalContext())
		},
	}
}

func watchCommand(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [patterns...]",
		Short: "Run the pipeline and re-run whenever input files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(*configPath, *logLevel, args)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Watch(signalContext())
		},
	}
}

// setup loads configuration, configures logging, and wires the app.
// Patterns given on the command line override the configured ones.
func setup(configPath, logLevel string, patterns []string) (*App, error) {
	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(patterns) > 0 {
		cfg.Input.Patterns = patterns
	}
	if len(cfg.Input.Patterns) == 0 {
		return nil, fmt.Errorf("no input patterns: pass them as arguments or set input.patterns in %s", config.ProjectConfigFile)
	}

	return NewApp(cfg, logger)
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
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx
}
