package transport

import (
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/operations"
)

func init() {
	operations.Register(NewBase64Operation())
	operations.Register(NewEnvelopeOperation())
}

// Base64Operation converts between compressed bytes and unpadded base64 text.
type Base64Operation struct {
	operations.BaseOperation
}

// NewBase64Operation creates the base64 pipeline stage.
func NewBase64Operation() *Base64Operation {
	return &Base64Operation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_BASE64,
			OpName: "BASE64",
		},
	}
}

func (o *Base64Operation) Apply(input []byte) ([]byte, error) {
	return []byte(EncodeBase64(input)), nil
}

func (o *Base64Operation) Reverse(input []byte) ([]byte, error) {
	return DecodeBase64(string(input))
}

// EstimateSize estimates unpadded base64 length
func (o *Base64Operation) EstimateSize(inputSize int64) int64 {
	return (inputSize*8 + 5) / 6
}

// EnvelopeOperation adds and strips the "[stgy:" ... "]" envelope.
type EnvelopeOperation struct {
	operations.BaseOperation
}

// NewEnvelopeOperation creates the envelope pipeline stage.
func NewEnvelopeOperation() *EnvelopeOperation {
	return &EnvelopeOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_ENVELOPE,
			OpName: "ENVELOPE",
		},
	}
}

func (o *EnvelopeOperation) Apply(input []byte) ([]byte, error) {
	return []byte(Wrap(string(input))), nil
}

func (o *EnvelopeOperation) Reverse(input []byte) ([]byte, error) {
	payload, err := Unwrap(string(input))
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

func (o *EnvelopeOperation) EstimateSize(inputSize int64) int64 {
	return inputSize + int64(len(Prefix)+len(Suffix))
}
