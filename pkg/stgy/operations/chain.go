package operations

import (
	"fmt"
	"strings"
)

// Chain is an ordered list of operations, listed in encode order.
type Chain []Operation

// Resolve looks up every id in the registry and returns the chain.
func Resolve(ids ...uint8) (Chain, error) {
	chain := make(Chain, 0, len(ids))
	for _, id := range ids {
		op, err := Get(id)
		if err != nil {
			return nil, err
		}
		chain = append(chain, op)
	}
	return chain, nil
}

// String renders the chain as pipe-separated lower-case names.
func (c Chain) String() string {
	if len(c) == 0 {
		return "raw"
	}
	names := make([]string, len(c))
	for i, op := range c {
		names[i] = strings.ToLower(op.Name())
	}
	return strings.Join(names, "|")
}

// Apply runs every operation in order.
func (c Chain) Apply(data []byte) ([]byte, error) {
	current := data

	for _, op := range c {
		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}
		current = result
	}

	return current, nil
}

// Reverse runs every operation's Reverse in reverse order.
func (c Chain) Reverse(data []byte) ([]byte, error) {
	current := data

	for i := len(c) - 1; i >= 0; i-- {
		op := c[i]
		if !op.CanReverse() {
			return nil, fmt.Errorf("operation %s is not reversible", op.Name())
		}

		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}
		current = result
	}

	return current, nil
}

// EstimateSize folds EstimateSize across the chain.
func (c Chain) EstimateSize(inputSize int64) int64 {
	size := inputSize
	for _, op := range c {
		size = op.EstimateSize(size)
	}
	return size
}

// ApplyChain applies a chain of registered operations to data
func ApplyChain(data []byte, ids []uint8) ([]byte, error) {
	chain, err := Resolve(ids...)
	if err != nil {
		return nil, err
	}
	return chain.Apply(data)
}

// ReverseChain reverses a chain of registered operations on data
func ReverseChain(data []byte, ids []uint8) ([]byte, error) {
	chain, err := Resolve(ids...)
	if err != nil {
		return nil, err
	}
	return chain.Reverse(data)
}
