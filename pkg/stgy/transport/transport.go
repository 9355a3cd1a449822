// Package transport handles the text envelope around a strategy code payload
// and the base64 step between compressed bytes and cipher input.
package transport

import (
	"encoding/base64"
	"fmt"
	"strings"

	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

const (
	// Prefix opens every strategy code.
	Prefix = "[stgy:"
	// Suffix closes every strategy code.
	Suffix = "]"
)

// Wrap places payload inside the strategy code envelope.
func Wrap(payload string) string {
	return Prefix + payload + Suffix
}

// Unwrap returns the payload of a strategy code. Surrounding whitespace is
// not tolerated.
func Unwrap(code string) (string, error) {
	if !strings.HasPrefix(code, Prefix) {
		return "", fmt.Errorf("%w: missing %q prefix", stgyerrors.ErrFormat, Prefix)
	}
	if len(code) < len(Prefix)+len(Suffix) || !strings.HasSuffix(code, Suffix) {
		return "", fmt.Errorf("%w: missing %q suffix", stgyerrors.ErrFormat, Suffix)
	}

	payload := code[len(Prefix) : len(code)-len(Suffix)]
	if payload == "" {
		return "", fmt.Errorf("%w: empty payload", stgyerrors.ErrFormat)
	}
	return payload, nil
}

// IsCode reports whether s carries the strategy code envelope.
func IsCode(s string) bool {
	_, err := Unwrap(s)
	return err == nil
}

// EncodeBase64 encodes data with the URL-safe alphabet and strips padding.
func EncodeBase64(data []byte) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

// DecodeBase64 pads s to a multiple of four and decodes it with the URL-safe
// alphabet.
func DecodeBase64(s string) ([]byte, error) {
	if rem := len(s) % 4; rem > 0 {
		s += strings.Repeat("=", 4-rem)
	}
	data, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", stgyerrors.ErrFormat, err)
	}
	return data, nil
}
