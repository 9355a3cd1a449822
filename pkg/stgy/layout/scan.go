package layout

import (
	"bytes"
	"encoding/binary"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
)

// TypeRecord is one entry of the Type block.
type TypeRecord struct {
	Offset int
	TypeID uint16
	Text   string
}

// MetadataRecord is one entry of the fixed metadata region.
type MetadataRecord struct {
	TypeID    uint16
	SubtypeID uint16
	AuxID     uint16
}

// TypeScanEnd returns where the Type record scan stops: the first Coord
// prefix after the title, or the end of the buffer.
func TypeScanEnd(buf []byte, titleEnd int) int {
	if titleEnd >= len(buf) {
		return len(buf)
	}
	if idx := bytes.Index(buf[titleEnd:], block.Coord.Prefix()); idx >= 0 {
		return titleEnd + idx
	}
	return len(buf)
}

// ScanTypeRecords walks buf[start:end] for up to count Type records. Bytes
// that do not start a record are skipped. A text record following a text
// object is captured and skipped.
func ScanTypeRecords(buf []byte, start, end, count int) []TypeRecord {
	if end > len(buf) {
		end = len(buf)
	}
	tag := block.Type.Signature(0)
	stride := block.Type.Stride()

	var records []TypeRecord
	for pos := start; len(records) < count && pos >= 0 && pos+stride <= end; {
		if !bytes.Equal(buf[pos:pos+2], tag) {
			pos++
			continue
		}

		rec := TypeRecord{Offset: pos, TypeID: binary.LittleEndian.Uint16(buf[pos+2 : pos+4])}
		pos += stride

		if rec.TypeID == TextTypeID && pos+4 <= end &&
			binary.LittleEndian.Uint16(buf[pos:pos+2]) == TextRecordID {
			n := int(binary.LittleEndian.Uint16(buf[pos+2 : pos+4]))
			if pos+4+n <= end {
				rec.Text = DecodeTitle(buf[pos+4 : pos+4+n])
				pos += 4 + n
			}
		}
		records = append(records, rec)
	}
	return records
}

// ReadMetadataRecords reads count 6-byte records starting at start. It fails
// when the region would run past limit.
func ReadMetadataRecords(buf []byte, start, count, limit int) ([]MetadataRecord, bool) {
	if limit > len(buf) {
		limit = len(buf)
	}
	if start < 0 || count <= 0 || start+count*MetadataRecordSize > limit {
		return nil, false
	}

	records := make([]MetadataRecord, count)
	for i := range records {
		off := start + i*MetadataRecordSize
		records[i] = MetadataRecord{
			TypeID:    binary.LittleEndian.Uint16(buf[off : off+2]),
			SubtypeID: binary.LittleEndian.Uint16(buf[off+2 : off+4]),
			AuxID:     binary.LittleEndian.Uint16(buf[off+4 : off+6]),
		}
	}
	return records, true
}

// EncodeText returns the text record for a text object.
func EncodeText(text string) []byte {
	n := len(text) + 1
	for n%TitleAlignment != 0 {
		n++
	}
	buf := make([]byte, 4, 4+n)
	binary.LittleEndian.PutUint16(buf[0:2], TextRecordID)
	binary.LittleEndian.PutUint16(buf[2:4], uint16(n))
	buf = append(buf, text...)
	return append(buf, make([]byte, n-len(text))...)
}
