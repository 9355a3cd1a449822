package cipher

import (
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/operations"
)

func init() {
	operations.Register(NewOperation(New(DefaultSeed)))
}

// Operation adapts a Cipher to the codec pipeline: Apply enciphers base64
// text, Reverse deciphers a payload.
type Operation struct {
	operations.BaseOperation
	cipher *Cipher
}

// NewOperation wraps c as a pipeline operation.
func NewOperation(c *Cipher) *Operation {
	return &Operation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_CIPHER,
			OpName: "CIPHER",
		},
		cipher: c,
	}
}

func (o *Operation) Apply(input []byte) ([]byte, error) {
	out, err := o.cipher.Encipher(string(input))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

func (o *Operation) Reverse(input []byte) ([]byte, error) {
	out, err := o.cipher.Decipher(string(input))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// EstimateSize accounts for the seed character.
func (o *Operation) EstimateSize(inputSize int64) int64 {
	return inputSize + 1
}
