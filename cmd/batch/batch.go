// Package batch handles directory-wide receipt ingestion
package batch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hsaledger/cmd/common"
	"hsaledger/cmd/root"
	internalbatch "hsaledger/internal/batch"
)

var (
	processedDir string
	deleteAfter  bool
	dryRun       bool
	asJSON       bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch [directory]",
	Short: "Batch process a directory of receipts",
	Long: `Batch process every supported receipt file in a directory, in filename
order. Each file is ingested independently: one failure never stops the run.
The summary sorts every file into processed, duplicate, skipped or errored,
and the exit status reports errors only.

With no directory argument the configured incoming directory is used.

Example:
  hsaledger batch incoming/ --processed done/`,
	Args: cobra.MaximumNArgs(1),
	Run:  batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&processedDir, "processed", "p", "", "Move recorded originals into this directory")
	Cmd.Flags().BoolVar(&deleteAfter, "delete", false, "Delete originals after recording")
	Cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Run every check but write nothing")
	Cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Print the summary as JSON")
}

func batchFunc(cmd *cobra.Command, args []string) {
	c := root.GetContainer()
	runner, err := c.GetRunner()
	if err != nil {
		root.Log.Fatalf("%v", err)
	}

	dir := c.GetConfig().Incoming.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	moveTo := processedDir
	if moveTo == "" {
		moveTo = c.GetConfig().Processed.Dir
	}

	summary, err := runner.Run(cmd.Context(), dir, internalbatch.Options{
		ProcessedDir: moveTo,
		DeleteAfter:  deleteAfter,
		DryRun:       dryRun,
	})
	if err != nil {
		root.Log.Fatalf("Batch run failed: %v", err)
	}

	if asJSON {
		if err := common.WriteJSON(os.Stdout, summary); err != nil {
			root.Log.Fatalf("%v", err)
		}
	} else {
		fmt.Print(common.FormatSummary(summary))
	}

	if summary.HasErrors() {
		os.Exit(1)
	}
}
