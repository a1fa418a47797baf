package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/internal/server"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/legal"
	"github.com/iwvelando/finance-calculators/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type options struct {
	configLocation       string
	logLevel             string
	outputFormat         string
	serverConfigLocation string
	maxBodySize          string
	year                 int
	paramsFormat         string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "finance-calculators",
		Short: "Colombian financial, labor and tax calculators",
		Long: `finance-calculators runs loan, compound interest, savings goal, payroll
benefit, income tax and withholding calculations under Colombian law.

Calculations are read from a YAML configuration file (run) or served
through a JSON HTTP API (serve).`,
		SilenceUsage: true,
		Version:      version,
	}
	root.PersistentFlags().StringVar(&opts.configLocation, "config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run every calculation of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalculations(cmd, opts)
		},
	}
	runCmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over HTTP",
		Long: `Serve the calculators as a JSON API. Legal parameters come from the
configuration file when it exists, otherwise the built-in values of the
default fiscal year are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, opts)
		},
	}
	serveCmd.Flags().StringVar(&opts.serverConfigLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&opts.maxBodySize, "max-body-size", "", "request body limit override (e.g. 64K, 1M)")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "Print the legal parameters of a fiscal year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printParameters(cmd, opts)
		},
	}
	paramsCmd.Flags().IntVar(&opts.year, "year", legal.DefaultYear, "fiscal year")
	paramsCmd.Flags().StringVar(&opts.paramsFormat, "format", "json", "output format: json, yaml")

	root.AddCommand(runCmd, serveCmd, paramsCmd)
	return root
}

func runCalculations(cmd *cobra.Command, opts *options) error {
	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat, err := conf.OutputFormat(opts.outputFormat)
	if err != nil {
		logger.Error(err.Error(),
			zap.String("op", "main.runCalculations"),
		)
		return err
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration(calculator.Known) {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.runCalculations"),
		)
	}

	params, err := conf.LegalParameters()
	if err != nil {
		logger.Error("failed to resolve legal parameters",
			zap.String("op", "main.runCalculations"),
			zap.Error(err),
		)
		return err
	}

	engine := calculator.NewEngine(logger, params)
	enabled := conf.Enabled()
	results := make([]calculator.Result, 0, len(enabled))
	failed := 0
	for _, calc := range enabled {
		result, err := engine.Run(calc.Name, calc.Type, calc.Params)
		if err != nil {
			logger.Error("calculation failed",
				zap.String("op", "main.runCalculations"),
				zap.String("name", calc.Name),
				zap.Error(err),
			)
			failed++
			continue
		}
		results = append(results, *result)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.WritePretty(cmd.OutOrStdout(), results)
	case constants.OutputFormatCSV:
		output.WriteCsv(cmd.OutOrStdout(), results)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d calculations failed", failed, len(enabled))
	}
	return nil
}

func serve(cmd *cobra.Command, opts *options) error {
	cfg, err := server.LoadConfig(opts.serverConfigLocation)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", opts.serverConfigLocation, err)
	}
	if opts.maxBodySize != "" {
		size, err := server.ParseSize(opts.maxBodySize)
		if err != nil {
			return err
		}
		cfg.SetBodySizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	params := legal.Current()
	if conf, err := config.LoadConfiguration(opts.configLocation); err == nil {
		if params, err = conf.LegalParameters(); err != nil {
			return fmt.Errorf("invalid legal parameters in %s: %w", opts.configLocation, err)
		}
	} else if cmd.Flags().Changed("config") {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configLocation, err)
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, cfg, params, version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.Int("fiscalYear", params.Year),
			zap.Int64("maxBodySize", cfg.BodySizeBytes()),
			zap.Duration("cacheTTL", cfg.CacheDuration()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("server shutting down",
		zap.String("op", "main.serve"),
	)
	return srv.Shutdown(shutdownCtx)
}

func printParameters(cmd *cobra.Command, opts *options) error {
	params, err := legal.ForYear(opts.year)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.paramsFormat {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(params); err != nil {
			return fmt.Errorf("failed to encode parameters: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(params)
	default:
		return fmt.Errorf("expected parameters format of yaml or json, got %s", opts.paramsFormat)
	}
}
