package commands

import (
	"largestbanks/services/bankcap"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [path/to/output.csv]",
	Short: "Prints the csv written by a previous run.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := loadConfig().CsvFile
		if len(args) > 0 {
			path = args[0]
		}

		records, err := bankcap.ReadCSV(path)
		if err != nil {
			fatal("failed to read csv", err)
		}
		bankcap.RenderRecords(os.Stdout, records)
	},
}
