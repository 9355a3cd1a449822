package locator

import (
	"bytes"
	"encoding/binary"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
)

// Board bounds, in tenths of a unit, accepted by the coordinate value scan.
const (
	ValueScanStart = 40
	MinBoardX      = 500
	MaxBoardX      = 5000
	MinBoardY      = 500
	MaxBoardY      = 3800
)

// titleHeaderSize is where the title starts; the title length sits in the
// two bytes before it.
const titleHeaderSize = 28

// countedPrefixes holds the id/flag prefix of every counted block.
var countedPrefixes = func() map[block.Kind][]byte {
	m := make(map[block.Kind][]byte)
	for _, k := range block.Kinds {
		if k.Counted() {
			m[k] = k.Prefix()
		}
	}
	return m
}()

var footerBytes = block.FooterBytes()

// FindFunc returns the data offset of kind in buf, or false.
type FindFunc func(buf []byte, kind block.Kind, count int) (int, bool)

// Method is one step of the locator fallback chain.
type Method struct {
	Name string
	Find FindFunc
}

// DefaultMethods is the fallback chain, tried in order.
var DefaultMethods = []Method{
	{Name: "exact-signature", Find: FindExact},
	{Name: "generic-signature", Find: FindGeneric},
	{Name: "coord-values", Find: FindCoordValues},
}

// fits reports whether count objects of kind starting at data lie inside buf.
func fits(buf []byte, kind block.Kind, data, count int) bool {
	return data >= 0 && data+kind.DataLen(count) <= len(buf)
}

// Chain maps each block of a walked block chain to its data offset. The
// footer, when present, maps to the offset right after it.
type Chain map[block.Kind]int

// FindChain walks the body after the title for the first run of adjacent
// counted blocks, each declaring count objects, that ends at the footer or
// at the end of buf. A block kind may appear only once in a run.
func FindChain(buf []byte, count int) (Chain, bool) {
	if count <= 0 || len(buf) < titleHeaderSize {
		return nil, false
	}
	start := titleHeaderSize + int(binary.LittleEndian.Uint16(buf[26:28]))
	for pos := start; pos+block.HeaderSize <= len(buf); pos++ {
		if _, ok := countedAt(buf, pos); !ok {
			continue
		}
		if chain, ok := walkChain(buf, pos, count); ok {
			return chain, true
		}
	}
	return nil, false
}

func walkChain(buf []byte, pos, count int) (Chain, bool) {
	chain := Chain{}
	for pos != len(buf) && !footerAt(buf, pos) {
		kind, ok := countedAt(buf, pos)
		if !ok {
			return nil, false
		}
		if _, dup := chain[kind]; dup {
			return nil, false
		}
		if n, ok := block.HeaderCount(buf, pos); !ok || n != count {
			return nil, false
		}
		data := pos + block.HeaderSize
		if !fits(buf, kind, data, count) {
			return nil, false
		}
		chain[kind] = data
		pos = data + kind.DataLen(count)
	}
	if pos != len(buf) {
		chain[block.Footer] = pos + block.FooterSize
	}
	return chain, true
}

// onChain returns the data offset of kind on the block chain for count.
func onChain(buf []byte, kind block.Kind, count int) (int, bool) {
	chain, ok := FindChain(buf, count)
	if !ok {
		return 0, false
	}
	data, ok := chain[kind]
	return data, ok
}

// countedAt returns the counted block whose prefix starts at pos.
func countedAt(buf []byte, pos int) (block.Kind, bool) {
	if pos < 0 || pos+4 > len(buf) {
		return 0, false
	}
	for k, prefix := range countedPrefixes {
		if bytes.Equal(buf[pos:pos+4], prefix) {
			return k, true
		}
	}
	return 0, false
}

func footerAt(buf []byte, pos int) bool {
	return pos >= 0 && pos+block.FooterSize <= len(buf) &&
		bytes.Equal(buf[pos:pos+block.FooterSize], footerBytes)
}

// followed reports whether the data of kind at data ends at the buffer end,
// the footer or another block header.
func followed(buf []byte, kind block.Kind, data, count int) bool {
	end := data + kind.DataLen(count)
	if end == len(buf) || footerAt(buf, end) {
		return true
	}
	_, ok := countedAt(buf, end)
	return ok
}

// FindExact returns the data offset of kind with its full signature,
// including the count field. Per-object values can spell out a header, so
// the offset comes from the block chain when one exists; otherwise the first
// occurrence followed by another header wins over a bare match. Type records
// are found by their tag after the title; the footer by its fixed 8 bytes.
func FindExact(buf []byte, kind block.Kind, count int) (int, bool) {
	switch kind {
	case block.Footer:
		if data, ok := onChain(buf, kind, count); ok {
			return data, true
		}
		idx := bytes.Index(buf, footerBytes)
		if idx < 0 {
			return 0, false
		}
		return idx + block.FooterSize, true
	case block.Type:
		return findFirstTypeRecord(buf)
	}

	if count <= 0 {
		return 0, false
	}
	if data, ok := onChain(buf, kind, count); ok {
		return data, true
	}

	sig := kind.Signature(count)
	first := -1
	for from := 0; from < len(buf); {
		idx := bytes.Index(buf[from:], sig)
		if idx < 0 {
			break
		}
		data := from + idx + block.HeaderSize
		if fits(buf, kind, data, count) {
			if followed(buf, kind, data, count) {
				return data, true
			}
			if first < 0 {
				first = data
			}
		}
		from += idx + 1
	}
	return first, first >= 0
}

// FindGeneric takes kind from the block chain, else walks every occurrence
// of the 4-byte id/flag prefix and accepts one whose count field equals
// count and whose data fits, preferring an occurrence followed by another
// header.
func FindGeneric(buf []byte, kind block.Kind, count int) (int, bool) {
	if !kind.Counted() || count <= 0 {
		return 0, false
	}

	if data, ok := onChain(buf, kind, count); ok {
		return data, true
	}

	prefix := kind.Prefix()
	first := -1
	for from := 0; from < len(buf); {
		idx := bytes.Index(buf[from:], prefix)
		if idx < 0 {
			break
		}
		pos := from + idx
		if n, ok := block.HeaderCount(buf, pos); ok && n == count {
			data := pos + block.HeaderSize
			if fits(buf, kind, data, count) {
				if followed(buf, kind, data, count) {
					return data, true
				}
				if first < 0 {
					first = data
				}
			}
		}
		from = pos + 1
	}

	return first, first >= 0
}

// FindCoordValues scans 2-byte aligned offsets from ValueScanStart for an
// int16 (x, y) pair inside the board bounds. It only applies to Coord.
func FindCoordValues(buf []byte, kind block.Kind, count int) (int, bool) {
	if kind != block.Coord {
		return 0, false
	}
	if count < 1 {
		count = 1
	}

	for i := ValueScanStart; i+count*4 <= len(buf); i += 2 {
		x := int16(binary.LittleEndian.Uint16(buf[i : i+2]))
		y := int16(binary.LittleEndian.Uint16(buf[i+2 : i+4]))
		if x >= MinBoardX && x <= MaxBoardX && y >= MinBoardY && y <= MaxBoardY {
			return i, true
		}
	}

	return 0, false
}

func findFirstTypeRecord(buf []byte) (int, bool) {
	if len(buf) < titleHeaderSize {
		return 0, false
	}
	start := titleHeaderSize + int(binary.LittleEndian.Uint16(buf[26:28]))
	tag := block.Type.Signature(0)
	for pos := start; pos+block.Type.Stride() <= len(buf); pos++ {
		if bytes.Equal(buf[pos:pos+2], tag) {
			return pos, true
		}
	}
	return 0, false
}
