package ledger

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrAccountMismatch is returned when a line is not an account line.
	ErrAccountMismatch = errors.New("line is not an account line")
	// ErrBlankAccount is returned when an account line has no account path.
	ErrBlankAccount = errors.New("account cannot be blank")

	accountPattern = regexp.MustCompile(`^\s*([^$;]*?)(?:\s+(-?\$-?[\d.,]+))?(?:\s+; (.*))?\s*$`)
)

// Account is one posting line under a transaction title.
type Account struct {
	Account         string
	Amount          string // empty for the balancing leg
	InlineComment   string
	NextLineComment string
}

// ParseAccount parses an indented line of the form "ACCOUNT[    AMOUNT][    ; COMMENT]".
func ParseAccount(line string) (*Account, error) {
	m := accountPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrAccountMismatch, line)
	}

	account := strings.TrimSpace(m[1])
	if account == "" {
		return nil, fmt.Errorf("%w: %q", ErrBlankAccount, line)
	}

	return &Account{
		Account:       account,
		Amount:        m[2],
		InlineComment: strings.TrimSpace(m[3]),
	}, nil
}

// AttachComment sets the comment carried on the line after the account.
func (a *Account) AttachComment(comment string) {
	a.NextLineComment = comment
}

// String renders the account line, including its next-line comment if any.
func (a *Account) String() string {
	var sb strings.Builder

	sb.WriteString(accountIndent)
	sb.WriteString(a.Account)
	if a.Amount != "" {
		sb.WriteString(accountIndent)
		sb.WriteString(a.Amount)
	}
	if a.InlineComment != "" {
		sb.WriteString(inlineCommentPrefix)
		sb.WriteString(a.InlineComment)
	}
	if a.NextLineComment != "" {
		sb.WriteString("\n")
		sb.WriteString(accountCommentPrefix)
		sb.WriteString(a.NextLineComment)
	}

	return sb.String()
}
