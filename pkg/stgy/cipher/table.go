package cipher

// keyAlphabet lists the payload characters in substitution-value order:
// keyAlphabet[v] is the character whose substitution value is v.
const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// base64Alphabet is indexed by the deciphered 6-bit value. The two last
// slots use the URL-safe characters.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// FallbackChar is emitted when no payload character carries a value.
const FallbackChar = 'A'

var (
	// substitution maps every byte to its cipher value; bytes outside the
	// payload alphabet map to 0.
	substitution [256]byte

	// inverse maps a 6-bit value back to a payload character. ok[v] is false
	// when no payload character carries v.
	inverse   [64]byte
	inverseOK [64]bool

	// base64Index maps a base64 character (standard or URL-safe) to its
	// 6-bit index; -1 marks characters outside both alphabets.
	base64Index [256]int8
)

func init() {
	for i := 0; i < len(keyAlphabet); i++ {
		substitution[keyAlphabet[i]] = byte(i)
	}
	// '.' is accepted on input with the same value as '-'
	substitution['.'] = substitution['-']

	// First match in byte order over the characters an encoder may emit.
	for c := 0; c < 256; c++ {
		if !isPayloadChar(byte(c)) {
			continue
		}
		v := substitution[c] & 0x3F
		if !inverseOK[v] {
			inverse[v] = byte(c)
			inverseOK[v] = true
		}
	}

	for i := range base64Index {
		base64Index[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		base64Index[base64Alphabet[i]] = int8(i)
	}
	base64Index['+'] = 62
	base64Index['/'] = 63
}

// isPayloadChar reports whether c may appear in an enciphered payload.
func isPayloadChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// Value returns the substitution value for c.
func Value(c byte) byte {
	return substitution[c]
}

// CharFor returns the payload character whose substitution value is v, and
// false (with FallbackChar) when none exists.
func CharFor(v byte) (byte, bool) {
	v &= 0x3F
	if !inverseOK[v] {
		return FallbackChar, false
	}
	return inverse[v], true
}
