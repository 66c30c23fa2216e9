// Package scan handles single-receipt ingestion
package scan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hsaledger/cmd/common"
	"hsaledger/cmd/root"
)

var (
	dryRun bool
	asJSON bool
)

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Ingest one scanned receipt into the ledger",
	Long: `Ingest a single receipt image or PDF: extract the expense fields with
the vision model, screen for duplicates, archive the source file and
append a row to the year's ledger partition.

Duplicates and incomplete extractions are reported, not recorded.

Example:
  hsaledger scan incoming/receipt-2024-06-01.jpg`,
	Args: cobra.ExactArgs(1),
	Run:  scanFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Run every check but write nothing")
	Cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Print the outcome as JSON")
}

func scanFunc(cmd *cobra.Command, args []string) {
	orchestrator, err := root.GetContainer().GetOrchestrator()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	outcome, err := orchestrator.Process(cmd.Context(), args[0], dryRun)
	if err != nil {
		root.Log.Fatalf("Failed to ingest %s: %v", args[0], err)
	}

	if asJSON {
		if err := common.WriteJSON(os.Stdout, outcome); err != nil {
			root.Log.Fatalf("%v", err)
		}
		return
	}
	fmt.Print(common.FormatOutcome(outcome))
}
