package layout

import (
	"encoding/binary"
	"fmt"

	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

// Header is the fixed 28-byte prefix of a strategy board binary.
type Header struct {
	Version     uint32 // FormatVersion
	TotalLength uint32 // len(binary) - 16
	Reserved1   [10]byte
	BodyLength  uint16 // len(binary) - 28
	Reserved2   [4]byte
	Flag        uint16 // HeaderFlag
	TitleLength uint16 // title bytes including NUL and padding
}

// NewHeader builds the header for a binary of totalLen bytes.
func NewHeader(totalLen int, titleLen int) (*Header, error) {
	if totalLen-BodyLengthBias > 0xFFFF {
		return nil, stgyerrors.Validationf("document", "binary length %d exceeds the 16-bit body length field", totalLen)
	}
	return &Header{
		Version:     FormatVersion,
		TotalLength: uint32(totalLen - TotalLengthBias),
		BodyLength:  uint16(totalLen - BodyLengthBias),
		Flag:        HeaderFlag,
		TitleLength: uint16(titleLen),
	}, nil
}

// Pack serializes the header to bytes
func (h *Header) Pack() []byte {
	buf := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint32(buf[0:4], h.Version)
	binary.LittleEndian.PutUint32(buf[4:8], h.TotalLength)
	copy(buf[8:18], h.Reserved1[:])
	binary.LittleEndian.PutUint16(buf[18:20], h.BodyLength)
	copy(buf[20:24], h.Reserved2[:])
	binary.LittleEndian.PutUint16(buf[24:26], h.Flag)
	binary.LittleEndian.PutUint16(buf[26:28], h.TitleLength)

	return buf
}

// Unpack deserializes the header from the start of data
func (h *Header) Unpack(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", stgyerrors.ErrTruncated, HeaderSize, len(data))
	}

	h.Version = binary.LittleEndian.Uint32(data[0:4])
	h.TotalLength = binary.LittleEndian.Uint32(data[4:8])
	copy(h.Reserved1[:], data[8:18])
	h.BodyLength = binary.LittleEndian.Uint16(data[18:20])
	copy(h.Reserved2[:], data[20:24])
	h.Flag = binary.LittleEndian.Uint16(data[24:26])
	h.TitleLength = binary.LittleEndian.Uint16(data[26:28])

	return nil
}

// TitleEnd returns the offset right after the title block.
func (h *Header) TitleEnd() int {
	return TitleOffset + int(h.TitleLength)
}

// Check compares the length fields against the actual binary length and
// returns a description of every disagreement.
func (h *Header) Check(totalLen int) []string {
	var problems []string
	if h.Version != FormatVersion {
		problems = append(problems, fmt.Sprintf("version %d, expected %d", h.Version, FormatVersion))
	}
	if int(h.TotalLength) != totalLen-TotalLengthBias {
		problems = append(problems, fmt.Sprintf("total length field %d, expected %d", h.TotalLength, totalLen-TotalLengthBias))
	}
	if int(h.BodyLength) != totalLen-BodyLengthBias {
		problems = append(problems, fmt.Sprintf("body length field %d, expected %d", h.BodyLength, totalLen-BodyLengthBias))
	}
	if (TitleOffset+int(h.TitleLength))%TitleAlignment != 0 {
		problems = append(problems, fmt.Sprintf("title length %d breaks %d-byte alignment", h.TitleLength, TitleAlignment))
	}
	return problems
}
