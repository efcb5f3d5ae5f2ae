package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAccounts is returned for a transaction block without account lines.
var ErrNoAccounts = errors.New("transaction has no accounts")

// Transaction is a title followed by its account lines, in ledger order.
type Transaction struct {
	Title    *Title
	Accounts []*Account
}

// NewTransaction creates a transaction with no accounts.
func NewTransaction(title *Title) *Transaction {
	return &Transaction{Title: title}
}

// AddAccount appends an account line.
func (t *Transaction) AddAccount(account *Account) {
	t.Accounts = append(t.Accounts, account)
}

// String renders the transaction with every line newline-terminated.
func (t *Transaction) String() string {
	var sb strings.Builder

	sb.WriteString(t.Title.String())
	sb.WriteString("\n")
	for _, account := range t.Accounts {
		sb.WriteString(account.String())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ParseTransaction parses one transaction block: a title, an optional title
// comment line, then account lines each optionally followed by a comment line.
func ParseTransaction(block string) (*Transaction, error) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	title, err := ParseTitle(lines[0])
	if err != nil {
		return nil, err
	}

	i := 1
	if i < len(lines) && strings.HasPrefix(lines[i], titleCommentPrefix) {
		title.AttachComment(strings.TrimPrefix(lines[i], titleCommentPrefix))
		i++
	}

	txn := NewTransaction(title)
	for i < len(lines) {
		account, err := ParseAccount(lines[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		i++
		if i < len(lines) && strings.HasPrefix(lines[i], accountCommentPrefix) {
			account.AttachComment(strings.TrimPrefix(lines[i], accountCommentPrefix))
			i++
		}
		txn.AddAccount(account)
	}

	if len(txn.Accounts) == 0 {
		return nil, ErrNoAccounts
	}

	return txn, nil
}
