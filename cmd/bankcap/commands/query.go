package commands

import (
	"largestbanks/services/bankcap"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query [--config <config.json5>]",
	Short: "Runs the read queries against the database of a previous run.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		err := cfg.Validate()
		if err != nil {
			fatal("invalid config", err)
		}

		pipeline := bankcap.Pipeline{Config: cfg, Out: os.Stdout}
		_, err = pipeline.RunQueries(cmd.Context())
		if err != nil {
			fatal("failed to run queries", err)
		}
	},
}
