package layout

import (
	"bytes"
	"strings"

	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

// EncodeTitle returns the NUL-terminated, padded title block.
func EncodeTitle(title string) ([]byte, error) {
	if len(title) > MaxTitleBytes {
		return nil, stgyerrors.Validationf("title", "%d bytes exceeds the %d byte budget", len(title), MaxTitleBytes)
	}
	if strings.IndexByte(title, 0) >= 0 {
		return nil, stgyerrors.Validationf("title", "contains a NUL byte")
	}

	buf := make([]byte, 0, len(title)+TitleAlignment)
	buf = append(buf, title...)
	buf = append(buf, 0)
	for (TitleOffset+len(buf))%TitleAlignment != 0 {
		buf = append(buf, 0)
	}
	return buf, nil
}

// DecodeTitle reads the title up to its NUL terminator, dropping invalid
// UTF-8 sequences.
func DecodeTitle(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return strings.ToValidUTF8(string(raw), "")
}
