// Package journal reads and writes the ledger files on disk.
package journal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/millspills/ledgercli/pkg/ledger"
	"github.com/millspills/ledgercli/pkg/pathutil"
)

// Repository defines the interface for ledger file operations.
type Repository interface {
	// Read reads a whole file; a missing file reads as empty
	Read(path string) (string, error)

	// AppendEntry appends a rendered transaction, optionally followed by a
	// comment line carrying the raw notification summary
	AppendEntry(path, entry, summary string) error

	// WriteLedger replaces a ledger file with the serialized document
	WriteLedger(path string, file *ledger.File) error
}

// FileSystemRepository is a file system implementation of Repository.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
	}
}

// Read reads the content of a file.
// Returns empty string if the path is empty or the file doesn't exist.
func (r *FileSystemRepository) Read(path string) (string, error) {
	if !r.pathResolver.FileExists(path) {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// AppendEntry appends an entry to a ledger file, separated from the previous
// content by a blank line. It creates the file if it doesn't exist.
func (r *FileSystemRepository) AppendEntry(path, entry, summary string) error {
	if err := r.pathResolver.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	endsWithNewline, err := fileEndsWithNewline(path)
	if err != nil {
		return fmt.Errorf("failed to inspect file: %w", err)
	}

	var content strings.Builder
	if !endsWithNewline {
		content.WriteString("\n")
	}
	content.WriteString("\n")
	content.WriteString(entry)
	if summary != "" {
		content.WriteString("\n        ; ")
		content.WriteString(strings.ReplaceAll(summary, "\n", ""))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file for appending: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(content.String()); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}

// WriteLedger replaces a ledger file with the serialized document.
func (r *FileSystemRepository) WriteLedger(path string, file *ledger.File) error {
	if err := r.pathResolver.EnsureParentDir(path); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(file.String()), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// fileEndsWithNewline reports whether the file's last byte is a line break.
// A missing or empty file counts as ending with one.
func fileEndsWithNewline(path string) (bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
		return false, err
	}

	return last[0] == '\n' || last[0] == '\r', nil
}
