// Package errors defines the error taxonomy shared by the strategy code codec.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Text envelope errors 📜
	ErrFormat = errors.New("❌ invalid strategy code envelope")
	ErrCipher = errors.New("❌ character outside cipher alphabet")

	// Payload errors 📦
	ErrCompression = errors.New("❌ deflate decompression failed")
	ErrTruncated   = errors.New("❌ binary payload truncated")

	// Layout errors 🧩
	ErrBlockNotFound = errors.New("❌ block not found")
	ErrCountMismatch = errors.New("❌ object count mismatch")
	ErrValidation    = errors.New("❌ validation failed")
)

// BlockNotFoundError reports that the locator exhausted every method for a block.
type BlockNotFoundError struct {
	Block string
	Count int
}

func (e *BlockNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (count %d)", ErrBlockNotFound, e.Block, e.Count)
}

func (e *BlockNotFoundError) Unwrap() error {
	return ErrBlockNotFound
}

// NewBlockNotFound builds a BlockNotFoundError for the named block.
func NewBlockNotFound(block string, count int) error {
	return &BlockNotFoundError{Block: block, Count: count}
}

// ValidationError reports caller input that does not fit the document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validationf builds a ValidationError with a formatted reason.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// BlockName returns the block name carried by err, or "" when err is not a
// BlockNotFoundError.
func BlockName(err error) string {
	var bnf *BlockNotFoundError
	if errors.As(err, &bnf) {
		return bnf.Block
	}
	return ""
}
