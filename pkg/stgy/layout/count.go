package layout

import (
	"bytes"
	"fmt"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/locator"
)

// Candidate is a count-bearing block header whose data fits in the buffer.
type Candidate struct {
	Offset int // start of the 6-byte header
	Count  int
}

// Candidates lists every header of kind at or after from with a positive
// count whose data fits in buf.
func Candidates(buf []byte, kind block.Kind, from int) []Candidate {
	if !kind.Counted() || from < 0 {
		return nil
	}

	var out []Candidate
	prefix := kind.Prefix()
	for pos := from; pos < len(buf); {
		idx := bytes.Index(buf[pos:], prefix)
		if idx < 0 {
			break
		}
		at := pos + idx
		if n, ok := block.HeaderCount(buf, at); ok && n > 0 {
			if at+block.HeaderSize+kind.DataLen(n) <= len(buf) {
				out = append(out, Candidate{Offset: at, Count: n})
			}
		}
		pos = at + 1
	}
	return out
}

// corroborated reports whether another block carries an exact signature
// for n objects.
func corroborated(buf []byte, self block.Kind, n int) bool {
	for _, k := range []block.Kind{block.Layer, block.Coord, block.Angle, block.Size, block.Trans} {
		if k == self {
			continue
		}
		if _, ok := locator.FindExact(buf, k, n); ok {
			return true
		}
	}
	return false
}

// DeriveCount determines the object count: from the Size block, else the
// Angle block, else an estimate from the buffer length. Per-object values
// can mimic a header, so a candidate that sits on the block chain wins, then
// one whose count another block's exact signature confirms, then the first.
func DeriveCount(buf []byte, titleEnd int) (int, CountSource) {
	for _, src := range []struct {
		kind   block.Kind
		source CountSource
	}{
		{block.Size, CountFromSize},
		{block.Angle, CountFromAngle},
	} {
		cands := Candidates(buf, src.kind, titleEnd)
		for _, c := range cands {
			chain, ok := locator.FindChain(buf, c.Count)
			if ok && chain[src.kind] == c.Offset+block.HeaderSize {
				return c.Count, src.source
			}
		}
		for _, c := range cands {
			if corroborated(buf, src.kind, c.Count) {
				return c.Count, src.source
			}
		}
		if len(cands) > 0 {
			return cands[0].Count, src.source
		}
	}
	return EstimateCount(len(buf)), CountFromEstimate
}

// EstimateCount guesses the object count from the buffer length.
func EstimateCount(length int) int {
	return max(1, (length-EstimateBase)/EstimateStride)
}

// CheckCounts verifies that the Size and Angle blocks, when present, agree
// with count. A block disagrees when none of its header candidates carries
// count.
func CheckCounts(buf []byte, titleEnd, count int) error {
	for _, kind := range []block.Kind{block.Size, block.Angle} {
		cands := Candidates(buf, kind, titleEnd)
		if len(cands) == 0 {
			continue
		}
		match := false
		for _, c := range cands {
			if c.Count == count {
				match = true
				break
			}
		}
		if !match {
			return fmt.Errorf("%w: %s block declares %d objects, expected %d",
				stgyerrors.ErrCountMismatch, kind, cands[0].Count, count)
		}
	}
	return nil
}
