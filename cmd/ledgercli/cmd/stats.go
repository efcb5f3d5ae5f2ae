package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/millspills/ledgercli/pkg/db"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display import statistics",
	Long: `Display statistics about imported notifications.

Shows:
- Number of notifications per outcome
- Last import timestamp
- Last alias rebuild

With --forget the record of one notification (by the hash shown in debug
logs) is removed, so the next import processes it again.

Example:
  ledgercli stats
  ledgercli stats --forget 3f2a...`,
	Run: runStats,
}

var forgetHash string

func init() {
	statsCmd.Flags().StringVar(&forgetHash, "forget", "", "Remove the import record with this hash")
}

func runStats(cmd *cobra.Command, args []string) {
	_, pathResolver := loadEnvironment([]string{"ledger", "file"})
	ctx := cmd.Context()

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	history := db.NewImportHistory(conn)

	if forgetHash != "" {
		err := forgetImport(ctx, history, forgetHash, cmd.OutOrStdout())
		exitOnError(err, "failed to forget import")
		return
	}

	stats, err := history.GetStats(ctx)
	exitOnError(err, "failed to get statistics")

	rebuiltAt, err := history.GetMetadata(ctx, aliasesRebuiltKey)
	exitOnError(err, "failed to get metadata")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n=== Import Statistics ===")
	fmt.Fprintf(out, "Written to ledger:  %d\n", stats.ByStatus[db.StatusWritten])
	fmt.Fprintf(out, "Debug log only:     %d\n", stats.ByStatus[db.StatusDebug])
	fmt.Fprintf(out, "Payments ignored:   %d\n", stats.ByStatus[db.StatusSuppressed])
	fmt.Fprintf(out, "Not a bank:         %d\n", stats.ByStatus[db.StatusUnrouted])
	fmt.Fprintf(out, "No amount found:    %d\n", stats.ByStatus[db.StatusUnrecoverable])
	fmt.Fprintf(out, "Total:              %d\n", stats.Total)

	if stats.LastImport.Valid {
		fmt.Fprintf(out, "Last import:        %s\n", stats.LastImport.String)
	} else {
		fmt.Fprintf(out, "Last import:        (never)\n")
	}
	if rebuiltAt != "" {
		fmt.Fprintf(out, "Aliases rebuilt:    %s\n", rebuiltAt)
	} else {
		fmt.Fprintf(out, "Aliases rebuilt:    (never)\n")
	}

	fmt.Fprintln(out)
}

// forgetImport deletes one import record, printing what it was.
func forgetImport(ctx context.Context, history *db.ImportHistory, hash string, out io.Writer) error {
	record, err := history.GetImportRecord(ctx, hash)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("no import recorded with hash %s", hash)
	}

	if _, err := history.DeleteImportRecord(ctx, hash); err != nil {
		return err
	}

	fmt.Fprintf(out, "Forgot %s notification from %s (%s %s), imported %s\n",
		record.Status, record.Package, record.Payee, record.Amount, record.ImportedAt.Format("2006-01-02 15:04"))
	slog.Info("Import record deleted", "hash", hash)
	return nil
}
