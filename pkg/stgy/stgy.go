// Package stgy decodes and encodes strategy codes: the bracketed text form
// of a strategy board layout.
//
// A code is built by deflating the board binary, base64 encoding it,
// running it through a seeded substitution cipher and wrapping the result
// in a "[stgy:...]" envelope. Decoding runs the same stages in reverse and
// parses the binary into a Document.
package stgy

import (
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/layout"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/operations"
)

type (
	Document      = layout.Document
	Object        = layout.Object
	Point         = layout.Point
	Color         = layout.Color
	Summary       = layout.Summary
	SummaryObject = layout.SummaryObject
)

// DefaultChain is the encode pipeline; decoding applies it in reverse.
var DefaultChain = []uint8{
	operations.OP_ZLIB,
	operations.OP_BASE64,
	operations.OP_CIPHER,
	operations.OP_ENVELOPE,
}

var defaultCodec = MustNew(DefaultOptions())

// NewObject returns an object of typeID at (x, y) with default parameters.
func NewObject(typeID uint16, x, y float64) Object {
	return layout.NewObject(typeID, x, y)
}

// NewDocument builds a document from a title and objects.
func NewDocument(title string, objects ...Object) *Document {
	return layout.NewDocument(title, objects...)
}

// Decode parses a strategy code with the default codec.
func Decode(code string) (*Document, error) {
	return defaultCodec.Decode(code)
}

// Encode serializes doc into a strategy code with the default codec.
func Encode(doc *Document) (string, error) {
	return defaultCodec.Encode(doc)
}

// DecodeBinary returns the raw board binary of a strategy code.
func DecodeBinary(code string) ([]byte, error) {
	return defaultCodec.DecodeBinary(code)
}

// EncodeBinary turns a raw board binary into a strategy code.
func EncodeBinary(buf []byte) (string, error) {
	return defaultCodec.EncodeBinary(buf)
}

// LocateBlock returns the data offset of kind in a decoded binary.
func LocateBlock(buf []byte, kind block.Kind, count int) (int, error) {
	return defaultCodec.LocateBlock(buf, kind, count)
}
