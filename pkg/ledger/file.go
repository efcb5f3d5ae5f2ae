package ledger

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// paragraphBreak treats whitespace-only lines as blank.
var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

// File is a whole ledger document. The first two paragraphs are kept verbatim.
//
// An empty header does not survive String and Parse: its blank line merges
// with the separators, so the first transaction is read back as the header.
// Files that may lack a header should carry at least a comment line in each.
type File struct {
	Aliases         string
	InitialComments string
	Transactions    []*Transaction
}

// BlockError describes a transaction block that was skipped during parsing.
type BlockError struct {
	Paragraph int
	Block     string
	Err       error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("paragraph %d: %v", e.Paragraph, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Parse parses a ledger document. A malformed transaction block never aborts
// the parse: it is logged, reported in the returned slice, and skipped.
func Parse(text string) (*File, []*BlockError) {
	paragraphs := paragraphBreak.Split(text, -1)
	file := &File{}
	var skipped []*BlockError

	for i, paragraph := range paragraphs {
		switch i {
		case 0:
			file.Aliases = paragraph
			continue
		case 1:
			file.InitialComments = paragraph
			continue
		}

		if strings.TrimSpace(paragraph) == "" {
			continue
		}

		txn, err := ParseTransaction(paragraph)
		if err != nil {
			blockErr := &BlockError{Paragraph: i, Block: paragraph, Err: err}
			slog.Warn("Skipping malformed transaction", "paragraph", i, "error", err)
			skipped = append(skipped, blockErr)
			continue
		}
		file.Transactions = append(file.Transactions, txn)
	}

	return file, skipped
}

// String renders the document: both header paragraphs, then every
// transaction followed by a blank line.
func (f *File) String() string {
	var sb strings.Builder

	sb.WriteString(f.Aliases)
	sb.WriteString("\n\n")
	sb.WriteString(f.InitialComments)
	sb.WriteString("\n\n")
	for _, txn := range f.Transactions {
		sb.WriteString(txn.String())
		sb.WriteString("\n")
	}

	return sb.String()
}
