package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/millspills/ledgercli/pkg/alias"
	"github.com/millspills/ledgercli/pkg/db"
	"github.com/millspills/ledgercli/pkg/journal"
	"github.com/millspills/ledgercli/pkg/notification"
)

const defaultWorkers = 4

// History remembers which notifications were already imported.
type History interface {
	IsImported(ctx context.Context, hash string) (bool, error)
	RecordImport(ctx context.Context, record db.ImportRecord) error
}

// Options controls where and whether entries are written.
type Options struct {
	LedgerFile   string
	DebugLogFile string // optional
	// ProdMode appends to the ledger; when false only the debug log is written.
	ProdMode bool
	// DryRun prints entries to Out instead of writing anything.
	DryRun  bool
	Out     io.Writer
	Workers int
}

// Importer appends bank notifications to the ledger.
type Importer struct {
	repo    journal.Repository
	history History
	aliases *alias.Store
	mapper  *Mapper
	opts    Options
}

// New creates an Importer. history may be nil, in which case nothing is deduplicated
// across runs.
func New(repo journal.Repository, history History, aliases *alias.Store, mapper *Mapper, opts Options) *Importer {
	if mapper == nil {
		mapper = DefaultMapper()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	return &Importer{
		repo:    repo,
		history: history,
		aliases: aliases,
		mapper:  mapper,
		opts:    opts,
	}
}

// Result is the outcome for one notification.
type Result struct {
	Notification notification.Notification
	Hash         string
	Route        notification.Route
	Draft        notification.Draft
	Status       db.ImportStatus
	Duplicate    bool
}

// Summary counts the outcomes of one import.
type Summary struct {
	Results       []Result
	Duplicates    int
	Written       int
	Debug         int
	Suppressed    int
	Unrouted      int
	Unrecoverable int
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if r.Duplicate {
		s.Duplicates++
		return
	}
	switch r.Status {
	case db.StatusWritten:
		s.Written++
	case db.StatusDebug:
		s.Debug++
	case db.StatusSuppressed:
		s.Suppressed++
	case db.StatusUnrouted:
		s.Unrouted++
	case db.StatusUnrecoverable:
		s.Unrecoverable++
	}
}

type extraction struct {
	hash  string
	draft notification.Draft
	route notification.Route
	ok    bool
}

// Hash identifies a notification by its content.
func Hash(n notification.Notification) string {
	h := sha256.New()
	for _, field := range []string{n.Package, n.Title, n.Text, n.BigText} {
		h.Write([]byte(field))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Import processes notifications in order. Extraction runs concurrently;
// everything that touches files or history runs sequentially so entries are
// appended in input order.
func (im *Importer) Import(ctx context.Context, notes []notification.Notification) (*Summary, error) {
	extracted := make([]extraction, len(notes))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.Workers)
	for i, n := range notes {
		i, n := i, n
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			d, route, ok := notification.Extract(n)
			extracted[i] = extraction{hash: Hash(n), draft: d, route: route, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to extract notifications: %w", err)
	}

	var registry *alias.Registry
	if im.aliases != nil {
		registry = im.aliases.Load()
	}

	summary := &Summary{}
	seen := make(map[string]bool)
	for i, n := range notes {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result, err := im.process(ctx, n, extracted[i], registry, seen)
		if err != nil {
			return summary, err
		}
		summary.add(result)
	}

	slog.Info("Import finished",
		"written", summary.Written,
		"debug", summary.Debug,
		"duplicates", summary.Duplicates,
		"suppressed", summary.Suppressed,
		"unrouted", summary.Unrouted,
		"unrecoverable", summary.Unrecoverable,
	)

	return summary, nil
}

func (im *Importer) process(ctx context.Context, n notification.Notification, ex extraction, registry *alias.Registry, seen map[string]bool) (Result, error) {
	result := Result{Notification: n, Hash: ex.hash, Route: ex.route}

	duplicate, err := im.isDuplicate(ctx, ex.hash, seen)
	if err != nil {
		return result, err
	}
	seen[ex.hash] = true
	if duplicate {
		slog.Debug("Skipping already imported notification", "hash", ex.hash)
		result.Duplicate = true
		return result, nil
	}

	switch {
	case ex.route.Suppressed:
		slog.Debug("Ignoring credit card payment", "package", n.Package)
		result.Status = db.StatusSuppressed
		return result, im.record(ctx, result)
	case !ex.ok:
		slog.Debug("Ignoring notification", "package", n.Package, "title", n.Title)
		result.Status = db.StatusUnrouted
		return result, im.record(ctx, result)
	}

	d := im.mapper.Map(ex.draft)
	d = Resolve(d, registry)
	result.Draft = d
	slog.Debug("Finalized transaction", "source", ex.route.Source, "extractor", ex.route.Extractor, "entry", d.LedgerLines())

	if !d.HasAmount() {
		slog.Warn("Failed to parse notification", "summary", n.Summary())
		result.Status = db.StatusUnrecoverable
		if err := im.writeDebug(d.CommentedLines(), n); err != nil {
			return result, err
		}
		return result, im.record(ctx, result)
	}

	entry := d.LedgerLines()
	writeLedger := im.opts.ProdMode && !ex.route.Test
	result.Status = db.StatusDebug
	if writeLedger {
		result.Status = db.StatusWritten
	}

	if im.opts.DryRun {
		fmt.Fprintf(im.opts.Out, "%s\n\n", entry)
		return result, nil
	}

	if writeLedger {
		if err := im.repo.AppendEntry(im.opts.LedgerFile, entry, ""); err != nil {
			return result, fmt.Errorf("failed to append to ledger: %w", err)
		}
	}
	if err := im.writeDebug(entry, n); err != nil {
		return result, err
	}

	return result, im.record(ctx, result)
}

func (im *Importer) isDuplicate(ctx context.Context, hash string, seen map[string]bool) (bool, error) {
	if seen[hash] {
		return true, nil
	}
	if im.history == nil {
		return false, nil
	}
	imported, err := im.history.IsImported(ctx, hash)
	if err != nil {
		return false, fmt.Errorf("failed to check import history: %w", err)
	}
	return imported, nil
}

// writeDebug appends entry and the raw notification to the debug log, if one is configured.
func (im *Importer) writeDebug(entry string, n notification.Notification) error {
	if im.opts.DebugLogFile == "" || im.opts.DryRun {
		return nil
	}
	if err := im.repo.AppendEntry(im.opts.DebugLogFile, entry, n.Summary()); err != nil {
		return fmt.Errorf("failed to append to debug log: %w", err)
	}
	return nil
}

func (im *Importer) record(ctx context.Context, r Result) error {
	if im.history == nil || im.opts.DryRun {
		return nil
	}

	record := db.ImportRecord{
		Hash:    r.Hash,
		Package: r.Notification.Package,
		Title:   r.Notification.Title,
		Status:  r.Status,
	}
	if r.Status == db.StatusWritten || r.Status == db.StatusDebug || r.Status == db.StatusUnrecoverable {
		record.Payee = r.Draft.PayeeName()
		record.Amount = r.Draft.DollarAmount()
	}
	if r.Status == db.StatusWritten {
		record.LedgerFile = im.opts.LedgerFile
	}

	if err := im.history.RecordImport(ctx, record); err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	slog.Debug("Recorded import", "hash", r.Hash, "status", r.Status)
	return nil
}
