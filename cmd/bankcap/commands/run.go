package commands

import (
	"largestbanks/services/bankcap"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var strictDB bool

func init() {
	runCmd.Flags().BoolVar(&strictDB, "strict-db", false, "Fail the run when the database cannot be written.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--config <config.json5>] [--strict-db]",
	Short: "Runs the extract, transform and load pipeline once.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cmd.Flags().Changed("strict-db") {
			cfg.StrictDB = strictDB
		}

		pipeline, err := bankcap.NewPipeline(cfg, os.Stdout)
		if err != nil {
			fatal("failed to create pipeline", err)
		}

		t1 := time.Now()
		report, err := pipeline.Run(cmd.Context())
		if err != nil {
			fatal("pipeline failed", err)
		}
		t2 := time.Now()

		slog.Info(
			"pipeline finished",
			"run_id", report.RunId,
			"records", len(report.Records),
			"db_error", report.DBError != nil,
			"seconds", t2.Sub(t1).Seconds(),
		)
	},
}
