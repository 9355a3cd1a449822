// Package cipher implements the seeded substitution cipher that maps base64
// text onto strategy code payload characters.
//
// The first payload character is the seed. Every following character at
// position i (0-based) carries the base64 index
//
//	(Value(char) - Value(seed) - (i+1)) & 0x3F
package cipher

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

// DefaultSeed is the seed character written by the encoder.
const DefaultSeed = 'a'

// Cipher enciphers and deciphers payloads.
type Cipher struct {
	seed   byte
	logger hclog.Logger
}

// New returns a Cipher that writes payloads with the given seed character.
func New(seed byte) *Cipher {
	return NewWithLogger(seed, hclog.NewNullLogger())
}

// NewWithLogger returns a Cipher that reports lossy substitutions to logger.
func NewWithLogger(seed byte, logger hclog.Logger) *Cipher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cipher{seed: seed, logger: logger}
}

// Seed returns the seed character used when enciphering.
func (c *Cipher) Seed() byte {
	return c.seed
}

// Decipher turns a payload (seed character first) into unpadded URL-safe
// base64 text. The seed is read from the payload itself. Characters outside
// the payload alphabet, the seed included, carry value 0 and so decode as if
// they were 'A'; no error is reported for them.
func (c *Cipher) Decipher(payload string) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty payload", stgyerrors.ErrFormat)
	}

	seed := int(Value(payload[0]))
	data := payload[1:]

	var sb strings.Builder
	sb.Grow(len(data))
	for i := 0; i < len(data); i++ {
		v := (int(Value(data[i])) - seed - (i + 1)) & 0x3F
		sb.WriteByte(base64Alphabet[v])
	}

	return sb.String(), nil
}

// Encipher turns base64 text (standard or URL-safe, padding ignored) into a
// payload starting with the cipher's seed character.
func (c *Cipher) Encipher(b64 string) (string, error) {
	seed := int(Value(c.seed))

	var sb strings.Builder
	sb.Grow(len(b64) + 1)
	sb.WriteByte(c.seed)

	pos := 0
	for i := 0; i < len(b64); i++ {
		ch := b64[i]
		if ch == '=' {
			continue
		}
		idx := base64Index[ch]
		if idx < 0 {
			return "", fmt.Errorf("%w: %q at offset %d", stgyerrors.ErrCipher, ch, i)
		}

		out, ok := CharFor(byte((int(idx) + seed + pos + 1) & 0x3F))
		if !ok {
			c.logger.Warn("⚠️ No payload character for cipher value, substituting fallback",
				"offset", pos,
				"fallback", string(rune(FallbackChar)),
			)
		}
		sb.WriteByte(out)
		pos++
	}

	return sb.String(), nil
}

// Decipher deciphers payload with a throwaway Cipher. Invalid characters
// decode as 'A'.
func Decipher(payload string) (string, error) {
	return New(DefaultSeed).Decipher(payload)
}

// Encipher enciphers b64 with DefaultSeed.
func Encipher(b64 string) (string, error) {
	return New(DefaultSeed).Encipher(b64)
}
