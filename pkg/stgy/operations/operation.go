package operations

import (
	"fmt"
	"sync"
)

// Operation ids for the strategy code pipeline stages
const (
	// No operation - raw data
	OP_NONE = 0x00

	// Payload operations (0x10-0x1F)
	OP_ZLIB = 0x10 // zlib-wrapped deflate

	// Text operations (0x20-0x3F)
	OP_BASE64   = 0x20 // URL-safe base64 without padding
	OP_CIPHER   = 0x30 // seeded substitution cipher
	OP_ENVELOPE = 0x38 // "[stgy:" ... "]" wrapper
)

// Operation represents a single reversible pipeline stage.
//
// Apply runs in the encode direction (binary towards text) and Reverse in the
// decode direction.
type Operation interface {
	// ID returns the operation identifier (e.g., OP_ZLIB)
	ID() uint8

	// Name returns the human-readable name
	Name() string

	// Apply applies the operation to input data
	Apply(input []byte) ([]byte, error)

	// Reverse reverses the operation
	Reverse(input []byte) ([]byte, error)

	// CanReverse returns true if the operation is reversible
	CanReverse() bool

	// EstimateSize estimates the output size given input size
	EstimateSize(inputSize int64) int64
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	OpID   uint8
	OpName string
}

func (o *BaseOperation) ID() uint8 {
	return o.OpID
}

func (o *BaseOperation) Name() string {
	return o.OpName
}

func (o *BaseOperation) CanReverse() bool {
	return true
}

func (o *BaseOperation) EstimateSize(inputSize int64) int64 {
	return inputSize
}

var (
	registryMu sync.RWMutex
	registry   = make(map[uint8]Operation)
)

// Register registers an operation implementation, replacing any previous
// implementation with the same id.
func Register(op Operation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[op.ID()] = op
}

// Get retrieves an operation by ID
func Get(id uint8) (Operation, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	op, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown operation: 0x%02x", id)
	}
	return op, nil
}

// GetName returns the name of an operation by ID
func GetName(id uint8) string {
	switch id {
	case OP_NONE:
		return "NONE"
	case OP_ZLIB:
		return "ZLIB"
	case OP_BASE64:
		return "BASE64"
	case OP_CIPHER:
		return "CIPHER"
	case OP_ENVELOPE:
		return "ENVELOPE"
	default:
		return fmt.Sprintf("UNKNOWN_%02x", id)
	}
}
