package commands

import (
	"context"
	"fmt"
	"largestbanks/lib/configutil"
	"largestbanks/lib/serviceutil"
	"largestbanks/lib/telemetry"
	"largestbanks/services/bankcap"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func noopShutdown(context.Context) error { return nil }

var shutdownTelemetry = noopShutdown

// flushTelemetry exports buffered spans and metrics, later calls are no-ops.
func flushTelemetry() {
	shutdown := shutdownTelemetry
	shutdownTelemetry = noopShutdown

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := shutdown(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to shutdown telemetry:", err)
	}
}

// fatal flushes telemetry before exiting, PersistentPostRun does not run
// after os.Exit.
func fatal(message string, err error) {
	flushTelemetry()
	serviceutil.Fatal(message, err)
}

var rootCmd = &cobra.Command{
	Use:   "bankcap",
	Short: "bankcap scrapes the largest banks by market cap and loads them into csv and sqlite.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)
		t, err := telemetry.SetupFromEnv(cmd.Context(), "bankcap")
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		shutdownTelemetry = t.Shutdown
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		flushTelemetry()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Config file, a <name>.local.<ext> file next to it overrides it.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
}

func loadConfig() bankcap.Config {
	cfg, err := configutil.ReadWithDefaults(configPath, bankcap.DefaultConfig())
	if err != nil {
		fatal("failed to read config", err)
	}
	return cfg
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		flushTelemetry()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
