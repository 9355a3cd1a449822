// Package locator resolves the byte offset of a parameter block in a decoded
// strategy board. The layout has no block index, so each block is found by
// trying an ordered list of methods until one succeeds.
package locator

import (
	"github.com/hashicorp/go-hclog"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

// Result describes a resolved block.
type Result struct {
	Kind   block.Kind
	Offset int
	Method string
}

// Locator runs a fallback chain of methods.
type Locator struct {
	methods []Method
	logger  hclog.Logger
}

// New creates a locator using DefaultMethods.
func New() *Locator {
	return NewWithLogger(hclog.NewNullLogger())
}

// NewWithLogger creates a locator using DefaultMethods that logs each attempt.
func NewWithLogger(logger hclog.Logger) *Locator {
	return NewWithMethods(logger, DefaultMethods...)
}

// NewWithMethods creates a locator with a custom method chain.
func NewWithMethods(logger hclog.Logger, methods ...Method) *Locator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Locator{methods: methods, logger: logger}
}

// Methods returns the method names in the order they are tried.
func (l *Locator) Methods() []string {
	names := make([]string, len(l.methods))
	for i, m := range l.methods {
		names[i] = m.Name
	}
	return names
}

// Resolve returns the first successful method's result, or a
// BlockNotFoundError.
func (l *Locator) Resolve(buf []byte, kind block.Kind, count int) (Result, error) {
	for _, m := range l.methods {
		off, ok := m.Find(buf, kind, count)
		l.logger.Trace("🔍 Locator attempt", "block", kind, "method", m.Name, "count", count, "found", ok)
		if ok {
			l.logger.Debug("✅ Located block", "block", kind, "method", m.Name, "offset", off)
			return Result{Kind: kind, Offset: off, Method: m.Name}, nil
		}
	}

	l.logger.Debug("❌ Block not found", "block", kind, "count", count, "size", len(buf))
	return Result{Kind: kind}, stgyerrors.NewBlockNotFound(kind.String(), count)
}

// Locate returns the data offset of kind.
func (l *Locator) Locate(buf []byte, kind block.Kind, count int) (int, error) {
	res, err := l.Resolve(buf, kind, count)
	if err != nil {
		return 0, err
	}
	return res.Offset, nil
}

var defaultLocator = New()

// Locate resolves kind with the default method chain.
func Locate(buf []byte, kind block.Kind, count int) (int, error) {
	return defaultLocator.Locate(buf, kind, count)
}
