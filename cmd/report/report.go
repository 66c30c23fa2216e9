// Package report handles spending summaries
package report

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hsaledger/cmd/common"
	"hsaledger/cmd/root"
)

var (
	year   string
	asJSON bool
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a year's spending",
	Long: `Summarize one year of the ledger: total and count, spending by
category and by month, and the most recent transactions.

Example:
  hsaledger report --year 2024`,
	Run: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&year, "year", "y", "", "Year to report on (default: current year)")
	Cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Print the report as JSON")
}

func reportFunc(cmd *cobra.Command, args []string) {
	generator := root.GetContainer().GetReporter()

	reportYear := year
	if reportYear == "" {
		reportYear = fmt.Sprintf("%d", time.Now().Year())
	}

	summary, err := generator.Generate(reportYear)
	if err != nil {
		root.Log.Fatalf("Failed to generate report: %v", err)
	}

	if asJSON {
		if err := common.WriteJSON(os.Stdout, summary); err != nil {
			root.Log.Fatalf("%v", err)
		}
		return
	}
	fmt.Print(generator.RenderText(summary))
}
