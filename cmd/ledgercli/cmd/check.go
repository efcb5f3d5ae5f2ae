package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/millspills/ledgercli/pkg/journal"
	"github.com/millspills/ledgercli/pkg/ledger"
)

var (
	writeBack bool
	force     bool
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Report transactions that cannot be parsed",
	Long: `Parse a ledger file and list every transaction block that is skipped.
Defaults to the configured ledger file.

With --write the file is rewritten in canonical form. Skipped blocks would be
lost, so --write refuses to run while any exist unless --force is given.

Example:
  ledgercli check
  ledgercli check --write`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&writeBack, "write", false, "Rewrite the file in canonical form")
	checkCmd.Flags().BoolVar(&force, "force", false, "Rewrite even if blocks were skipped (they are dropped)")
}

func runCheck(cmd *cobra.Command, args []string) {
	var required [][]string
	if len(args) == 0 {
		required = append(required, []string{"ledger", "file"})
	}
	_, pathResolver := loadEnvironment(required...)

	path := pathResolver.GetLedgerFile()
	if len(args) == 1 {
		path = args[0]
	}

	repo := journal.NewFileSystemRepository(pathResolver)
	text, err := repo.Read(path)
	exitOnError(err, "failed to read ledger")

	file, skipped := ledger.Parse(text)

	out := cmd.OutOrStdout()
	unread := 0
	for _, txn := range file.Transactions {
		if txn.Title.Unread {
			unread++
		}
	}
	fmt.Fprintf(out, "%s: %d transactions, %d unread, %d skipped\n", path, len(file.Transactions), unread, len(skipped))
	for _, blockErr := range skipped {
		fmt.Fprintf(out, "\n%v\n%s\n", blockErr, blockErr.Block)
	}

	if writeBack {
		if len(skipped) > 0 && !force {
			exitOnError(fmt.Errorf("%d blocks would be dropped", len(skipped)), "refusing to rewrite ledger")
		}
		err := repo.WriteLedger(path, file)
		exitOnError(err, "failed to write ledger")
		slog.Info("Ledger rewritten", "path", path)
		return
	}

	if len(skipped) > 0 {
		os.Exit(1)
	}
}
