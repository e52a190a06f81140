// OTLP Probe
//
// A diagnostic tool that sends hardcoded OTLP/HTTP JSON payloads (logs,
// metrics, traces and three synthetic service metric sets) to a collector,
// for exercising downstream exporter pipelines end to end.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ollystack/otlp-probe/internal/config"
	"github.com/ollystack/otlp-probe/internal/emitter"
	"github.com/ollystack/otlp-probe/internal/probe"
)

var (
	version  = "0.1.0"
	cfgFile  string
	logLevel string

	endpoint   string
	hostName   string
	hostRegion string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "otlp-probe",
		Short: "OTLP Probe - send test telemetry to a collector",
		Long: `OTLP Probe sends hand-built OTLP/HTTP JSON payloads to a collector's
/v1/logs, /v1/metrics and /v1/traces endpoints.

The default run sends the full fixture sequence: one log record, one gauge
metric, three synthetic metric sets (Go runtime, Redis, database) and one
trace, pausing between sends so the receiving pipeline can settle.`,
		Version: version,
		RunE:    runSequence,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "collector base URL (default http://localhost:4318)")
	rootCmd.PersistentFlags().StringVar(&hostName, "host-name", "", "host.name resource attribute (auto-detected if empty)")
	rootCmd.PersistentFlags().StringVar(&hostRegion, "host-region", "", "host.region resource attribute")

	// Subcommands
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(metricCmd())
	rootCmd.AddCommand(traceCmd())
	rootCmd.AddCommand(syntheticCmd())
	rootCmd.AddCommand(loopCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup builds the logger, configuration and probe shared by all commands.
func setup() (*probe.Probe, *zap.Logger, error) {
	logger, err := initLogger(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := config.LoadWithOverrides(cfgFile, config.Overrides{
		Endpoint:   endpoint,
		HostName:   hostName,
		HostRegion: hostRegion,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	em := emitter.New(emitter.Config{
		APIKey:      cfg.Target.APIKey,
		BearerToken: cfg.Target.BearerToken,
		Timeout:     cfg.Target.Timeout,
	}, logger)

	return probe.New(cfg, em, logger), logger, nil
}

func runSequence(cmd *cobra.Command, args []string) error {
	p, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signalContext()
	defer cancel()

	if err := p.RunSequence(ctx); err != nil {
		return err
	}

	logger.Info("Sequence complete")
	return nil
}

func sendOne(kind string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		p, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, cancel := signalContext()
		defer cancel()

		return p.SendOne(ctx, kind)
	}
}

func logCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Send a single log payload",
		RunE:  sendOne("log"),
	}
}

func metricCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metric",
		Short: "Send a single gauge metric payload",
		RunE:  sendOne("metric"),
	}
}

func traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Send a single trace payload",
		RunE:  sendOne("trace"),
	}
}

func syntheticCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "synthetic [runtime|redis|database]",
		Short:     "Send one of the canned synthetic metric sets",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"runtime", "redis", "database"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendOne(args[0])(cmd, args)
		},
	}
}

func loopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "loop",
		Short: "Re-run the sequence continuously with a health/metrics listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			return p.RunLoop(ctx)
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Configuration valid:\n%+v\n", cfg)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("OTLP Probe v%s\n", version)
		},
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx, cancel
}

func initLogger(level string) (*zap.Logger, error) {
	var cfg zap.Config

	if level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return cfg.Build()
}
