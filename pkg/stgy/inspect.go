package stgy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/layout"
)

// BlockInfo is where a block was found, if at all.
type BlockInfo struct {
	Kind   block.Kind `json:"kind"`
	Offset int        `json:"offset"`
	Method string     `json:"method,omitempty"`
	Found  bool       `json:"found"`
}

// Analysis is a structural overview of a decoded binary.
type Analysis struct {
	Size        int                `json:"size"`
	TitleOffset int                `json:"title_offset"`
	Title       string             `json:"title"`
	Count       int                `json:"count"`
	CountSource layout.CountSource `json:"count_source"`
	Header      []string           `json:"header_problems,omitempty"`
	Blocks      []BlockInfo        `json:"blocks"`
}

// Summarize lists object types and positions without decoding every block.
func (c *Codec) Summarize(code string) (*Summary, error) {
	buf, err := c.DecodeBinary(code)
	if err != nil {
		return nil, err
	}
	return c.reader.ReadSummary(buf)
}

// Analyze reports the title, derived object count and the location of each
// block.
func (c *Codec) Analyze(code string) (*Analysis, error) {
	buf, err := c.DecodeBinary(code)
	if err != nil {
		return nil, err
	}

	a := &Analysis{Size: len(buf), TitleOffset: layout.TitleOffset}
	if len(buf) > layout.TitleOffset {
		rest := buf[layout.TitleOffset:]
		if end := bytes.IndexByte(rest, 0); end >= 0 {
			a.Title = layout.DecodeTitle(rest[:end])
		}
	}

	var h layout.Header
	if err := h.Unpack(buf); err != nil {
		return a, nil
	}
	a.Header = h.Check(len(buf))
	a.Count, a.CountSource = layout.DeriveCount(buf, min(h.TitleEnd(), len(buf)))

	loc := c.reader.Locator()
	for _, kind := range block.Kinds {
		info := BlockInfo{Kind: kind}
		if res, err := loc.Resolve(buf, kind, a.Count); err == nil {
			info.Offset, info.Method, info.Found = res.Offset, res.Method, true
		}
		a.Blocks = append(a.Blocks, info)
	}
	return a, nil
}

// DumpHex renders length bytes of the decoded binary from start, 16 bytes
// per line, each line prefixed with its offset.
func (c *Codec) DumpHex(code string, start, length int) (string, error) {
	buf, err := c.DecodeBinary(code)
	if err != nil {
		return "", err
	}
	return HexDump(buf, start, length), nil
}

// HexDump formats buf[start:start+length] clamped to the buffer.
func HexDump(buf []byte, start, length int) string {
	start = max(start, 0)
	end := min(start+max(length, 0), len(buf))

	var lines []string
	var sb strings.Builder
	for i := start; i < end; i += 16 {
		sb.Reset()
		fmt.Fprintf(&sb, "%4d:", i)
		for _, b := range buf[i:min(i+16, end)] {
			fmt.Fprintf(&sb, " %02x", b)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// Summarize lists object types and positions with the default codec.
func Summarize(code string) (*Summary, error) {
	return defaultCodec.Summarize(code)
}

// Analyze reports block locations with the default codec.
func Analyze(code string) (*Analysis, error) {
	return defaultCodec.Analyze(code)
}

// DumpHex renders part of the decoded binary with the default codec.
func DumpHex(code string, start, length int) (string, error) {
	return defaultCodec.DumpHex(code, start, length)
}
