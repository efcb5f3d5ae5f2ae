package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/millspills/ledgercli/pkg/alias"
	"github.com/millspills/ledgercli/pkg/db"
	"github.com/millspills/ledgercli/pkg/importer"
	"github.com/millspills/ledgercli/pkg/journal"
	"github.com/millspills/ledgercli/pkg/notification"
	"github.com/millspills/ledgercli/pkg/pathutil"
)

var (
	dryRun         bool
	rebuildAliases bool
	workers        int
)

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import bank notifications into the ledger",
	Long: `Import bank notifications, one JSON object per line:

  {"package": "com.cibc.android.mobi", "title": "...", "text": "...", "big_text": "..."}

This command:
1. Extracts amount, payee and account from each notification
2. Skips notifications already recorded in the import history
3. Replaces payees with their learned alias and category
4. Appends the entries to the ledger (and the debug log, if configured)
5. Records the outcome in SQLite

Reads standard input when no file (or "-") is given.

Example:
  ledgercli import notifications.jsonl
  adb logcat ... | ledgercli import --dry-run`,
	Args: cobra.MaximumNArgs(1),
	Run:  runImport,
}

func init() {
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (print entries, no file writes)")
	importCmd.Flags().BoolVar(&rebuildAliases, "rebuild-aliases", false, "Rebuild aliases even if the ledger is unchanged since the saved snapshot")
	importCmd.Flags().IntVar(&workers, "workers", 4, "Number of notifications extracted concurrently")
}

func runImport(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadEnvironment([]string{"ledger", "file"})
	ctx := cmd.Context()

	input := io.Reader(cmd.InOrStdin())
	source := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		exitOnError(err, "failed to open notifications file")
		defer f.Close()
		input = f
		source = args[0]
	}

	notes, err := readNotifications(input)
	exitOnError(err, "failed to read notifications")
	slog.Info("Starting import", "source", source, "notifications", len(notes), "dry_run", dryRun)

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	repo := journal.NewFileSystemRepository(pathResolver)

	registry, err := loadAliases(ctx, conn, repo, pathResolver, rebuildAliases)
	exitOnError(err, "failed to load aliases")
	store := alias.NewStore()
	store.Swap(registry)

	mapper := importer.DefaultMapper()
	if settingsFile := pathResolver.GetSettingsFile(); pathResolver.FileExists(settingsFile) {
		mapper, err = importer.NewMapper(settingsFile)
		exitOnError(err, "failed to load settings")
	}
	mapper.SetCreditCard(cfg.Notifications.DefaultCreditCard)

	im := importer.New(repo, db.NewImportHistory(conn), store, mapper, importer.Options{
		LedgerFile:   pathResolver.GetLedgerFile(),
		DebugLogFile: pathResolver.GetDebugLogFile(),
		ProdMode:     cfg.Notifications.ProdMode,
		DryRun:       dryRun,
		Out:          cmd.OutOrStdout(),
		Workers:      workers,
	})

	summary, err := im.Import(ctx, notes)
	exitOnError(err, "failed to import notifications")

	fmt.Fprintln(cmd.ErrOrStderr(), "\n=== Import Summary ===")
	fmt.Fprintf(cmd.ErrOrStderr(), "Written to ledger:  %d\n", summary.Written)
	fmt.Fprintf(cmd.ErrOrStderr(), "Debug log only:     %d\n", summary.Debug)
	fmt.Fprintf(cmd.ErrOrStderr(), "Already imported:   %d\n", summary.Duplicates)
	fmt.Fprintf(cmd.ErrOrStderr(), "Payments ignored:   %d\n", summary.Suppressed)
	fmt.Fprintf(cmd.ErrOrStderr(), "Not a bank:         %d\n", summary.Unrouted)
	fmt.Fprintf(cmd.ErrOrStderr(), "No amount found:    %d\n", summary.Unrecoverable)
}

// readNotifications decodes one notification per non-blank line.
func readNotifications(r io.Reader) ([]notification.Notification, error) {
	var notes []notification.Notification

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var n notification.Notification
		if err := json.Unmarshal([]byte(text), &n); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse notification: %w", line, err)
		}
		notes = append(notes, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan input: %w", err)
	}

	return notes, nil
}

// loadAliases returns the saved alias snapshot while the ledger and override
// file are unchanged since it was saved. Otherwise, or when asked to, the
// registry is rebuilt and saved.
func loadAliases(ctx context.Context, conn *db.Connection, repo journal.Repository, pathResolver *pathutil.PathResolver, rebuild bool) (*alias.Registry, error) {
	sources, err := readAliasSources(repo, pathResolver)
	if err != nil {
		return nil, err
	}

	if !rebuild {
		savedHash, err := db.NewImportHistory(conn).GetMetadata(ctx, aliasesSourceKey)
		if err != nil {
			return nil, err
		}
		if savedHash == sources.hash() {
			registry, err := db.NewAliasSnapshot(conn).Load(ctx)
			if err != nil {
				return nil, err
			}
			slog.Debug("Using saved alias snapshot", "payees", registry.Len())
			return registry, nil
		}
		slog.Debug("Ledger or alias overrides changed since the last snapshot")
	}

	registry := sources.rebuild()
	if err := saveAliases(ctx, conn, registry, sources); err != nil {
		return nil, err
	}
	return registry, nil
}
