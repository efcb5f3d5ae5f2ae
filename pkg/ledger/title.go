// Package ledger parses and serializes the plain-text ledger dialect:
// a title line per transaction, indented account lines, and optional comments.
package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the date format of a title line.
const DateLayout = "2006/01/02"

const (
	inlineCommentPrefix  = "    ; "
	titleCommentPrefix   = "    ; "
	accountIndent        = "    "
	accountCommentPrefix = "        ; "
	unreadMarker         = "! "
)

var (
	// ErrTitleMismatch is returned when a line is not a transaction title.
	ErrTitleMismatch = errors.New("line is not a transaction title")

	titlePattern = regexp.MustCompile(`^(\d{4}/\d{2}/\d{2}) (! )?([^;]+)(?:    ; (.*))?$`)
)

// Title is the first line of a transaction.
type Title struct {
	Date            time.Time
	Unread          bool
	Payee           string
	InlineComment   string
	NextLineComment string
}

// Day truncates t to a calendar day in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseTitle parses a line of the form "DATE [! ]PAYEE[    ; COMMENT]".
func ParseTitle(line string) (*Title, error) {
	m := titlePattern.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrTitleMismatch, line)
	}

	date, err := time.Parse(DateLayout, m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrTitleMismatch, m[1])
	}

	payee := strings.TrimSpace(m[3])
	if payee == "" {
		return nil, fmt.Errorf("%w: empty payee in %q", ErrTitleMismatch, line)
	}

	return &Title{
		Date:          date,
		Unread:        m[2] == unreadMarker,
		Payee:         payee,
		InlineComment: strings.TrimSpace(m[4]),
	}, nil
}

// AttachComment sets the comment carried on the line after the title.
func (t *Title) AttachComment(comment string) {
	t.NextLineComment = comment
}

// String renders the title, including its next-line comment if any.
func (t *Title) String() string {
	var sb strings.Builder

	sb.WriteString(t.Date.Format(DateLayout))
	sb.WriteString(" ")
	if t.Unread {
		sb.WriteString(unreadMarker)
	}
	sb.WriteString(t.Payee)
	if t.InlineComment != "" {
		sb.WriteString(inlineCommentPrefix)
		sb.WriteString(t.InlineComment)
	}
	if t.NextLineComment != "" {
		sb.WriteString("\n")
		sb.WriteString(titleCommentPrefix)
		sb.WriteString(t.NextLineComment)
	}

	return sb.String()
}
