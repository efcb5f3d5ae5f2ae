package cmd

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/millspills/ledgercli/pkg/alias"
	"github.com/millspills/ledgercli/pkg/db"
	"github.com/millspills/ledgercli/pkg/importer"
	"github.com/millspills/ledgercli/pkg/journal"
	"github.com/millspills/ledgercli/pkg/notification"
	"github.com/millspills/ledgercli/pkg/pathutil"
)

// Metadata keys written whenever the alias snapshot is saved.
const (
	aliasesRebuiltKey = "aliases_rebuilt_at"
	aliasesSourceKey  = "aliases_source_hash"
)

var payee string

// aliasesCmd represents the aliases command.
var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Rebuild and show learned payee aliases",
	Long: `Rebuild the payee alias registry from the ledger and the alias override file,
save it for the import command and print it.

Override file paragraphs look like:

  Landlord|Expenses:Rent
  interac etransfer

Example:
  ledgercli aliases
  ledgercli aliases --payee "LOBLAWS #1002 TORONTO"`,
	Run: runAliases,
}

func init() {
	aliasesCmd.Flags().StringVar(&payee, "payee", "", "Resolve a single payee instead of listing every group")
}

func runAliases(cmd *cobra.Command, args []string) {
	_, pathResolver := loadEnvironment([]string{"ledger", "file"})
	ctx := cmd.Context()

	repo := journal.NewFileSystemRepository(pathResolver)
	sources, err := readAliasSources(repo, pathResolver)
	exitOnError(err, "failed to read alias sources")
	registry := sources.rebuild()

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	err = saveAliases(ctx, conn, registry, sources)
	exitOnError(err, "failed to save aliases")

	out := cmd.OutOrStdout()

	if payee != "" {
		d := importer.Resolve(notification.Draft{Payee: payee, Category: notification.DefaultCategory}, registry)
		fmt.Fprintf(out, "Payee:     %s\n", d.Payee)
		fmt.Fprintf(out, "Category:  %s\n", d.Category)
		fmt.Fprintf(out, "Confident: %t\n", d.Confident)
		return
	}

	for _, canonical := range registry.Payees() {
		g, _ := registry.Lookup(canonical)
		category, ok, confident := g.Resolve()
		if !ok {
			category = "-"
		}

		marker := " "
		if !confident {
			marker = "!"
		}
		fmt.Fprintf(out, "%s %s -> %s (%d postings)\n", marker, canonical, category, g.Total())
		fmt.Fprintf(out, "    %s\n", strings.Join(g.Aliases(), ", "))
	}

	slog.Info("Aliases saved", "payees", registry.Len())
}

// aliasSources is the text an alias registry is rebuilt from.
type aliasSources struct {
	ledger    string
	overrides string
}

func readAliasSources(repo journal.Repository, pathResolver *pathutil.PathResolver) (aliasSources, error) {
	ledgerText, err := repo.Read(pathResolver.GetLedgerFile())
	if err != nil {
		return aliasSources{}, fmt.Errorf("failed to read ledger: %w", err)
	}
	overrideText, err := repo.Read(pathResolver.GetAliasesFile())
	if err != nil {
		return aliasSources{}, fmt.Errorf("failed to read alias overrides: %w", err)
	}
	return aliasSources{ledger: ledgerText, overrides: overrideText}, nil
}

// hash changes whenever either file changes.
func (s aliasSources) hash() string {
	h := sha256.New()
	h.Write([]byte(s.ledger))
	h.Write([]byte{0})
	h.Write([]byte(s.overrides))
	return hex.EncodeToString(h.Sum(nil))
}

func (s aliasSources) rebuild() *alias.Registry {
	// skipped blocks are already logged by the parsers
	registry, errs := alias.Rebuild(s.ledger, s.overrides)
	slog.Info("Rebuilt aliases", "payees", registry.Len(), "skipped", len(errs))
	return registry
}

// saveAliases stores the registry along with the hash of the text it was built from.
func saveAliases(ctx context.Context, conn *db.Connection, registry *alias.Registry, sources aliasSources) error {
	if err := db.NewAliasSnapshot(conn).Save(ctx, registry); err != nil {
		return err
	}

	history := db.NewImportHistory(conn)
	if err := history.SetMetadata(ctx, aliasesSourceKey, sources.hash()); err != nil {
		return err
	}
	return history.SetMetadata(ctx, aliasesRebuiltKey, time.Now().Format(time.RFC3339))
}
