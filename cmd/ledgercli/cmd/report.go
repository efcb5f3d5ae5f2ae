package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/millspills/ledgercli/pkg/journal"
	"github.com/millspills/ledgercli/pkg/ledger"
	"github.com/millspills/ledgercli/pkg/report"
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show totals per account",
	Long: `Sum the explicit amounts posted to each account of the ledger.
Balancing postings without an amount are not counted.

Example:
  ledgercli report`,
	Run: runReport,
}

func runReport(cmd *cobra.Command, args []string) {
	_, pathResolver := loadEnvironment([]string{"ledger", "file"})

	repo := journal.NewFileSystemRepository(pathResolver)
	text, err := repo.Read(pathResolver.GetLedgerFile())
	exitOnError(err, "failed to read ledger")

	file, _ := ledger.Parse(text)
	totals, skipped := report.Summarize(file)

	fmt.Fprint(cmd.OutOrStdout(), report.Format(totals))
	if len(skipped) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%d postings skipped (see warnings above)\n", len(skipped))
	}
}
