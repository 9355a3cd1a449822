package layout

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/logging"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/locator"
)

// Reader parses strategy board binaries.
type Reader struct {
	locator *locator.Locator
	logger  hclog.Logger
}

// NewReader creates a reader with the default locator.
func NewReader(logger hclog.Logger) *Reader {
	logger = logging.OrNull(logger)
	return &Reader{locator: locator.NewWithLogger(logger.Named("locator")), logger: logger}
}

// NewReaderWithLocator creates a reader with a custom locator.
func NewReaderWithLocator(loc *locator.Locator, logger hclog.Logger) *Reader {
	logger = logging.OrNull(logger)
	return &Reader{locator: loc, logger: logger}
}

// Locator returns the locator used for block resolution.
func (r *Reader) Locator() *locator.Locator {
	return r.locator
}

// preamble is the header, title and object count shared by both readers.
type preamble struct {
	header   Header
	title    string
	titleEnd int
	count    int
	source   CountSource
}

func (r *Reader) readPreamble(buf []byte) (*preamble, error) {
	p := &preamble{}
	if err := p.header.Unpack(buf); err != nil {
		return nil, err
	}
	for _, problem := range p.header.Check(len(buf)) {
		r.logger.Debug("⚠️ Header field disagrees", "problem", problem)
	}

	p.titleEnd = p.header.TitleEnd()
	if p.titleEnd > len(buf) {
		return nil, fmt.Errorf("%w: title ends at %d, binary is %d bytes",
			stgyerrors.ErrTruncated, p.titleEnd, len(buf))
	}
	p.title = DecodeTitle(buf[TitleOffset:p.titleEnd])
	p.count, p.source = DeriveCount(buf, p.titleEnd)

	r.logger.Debug("📋 Read preamble", "title", p.title, "count", p.count, "source", p.source, "size", len(buf))
	return p, nil
}

// Read parses buf into a document. The buffer is not retained.
func (r *Reader) Read(buf []byte) (*Document, error) {
	p, err := r.readPreamble(buf)
	if err != nil {
		return nil, err
	}
	if err := CheckCounts(buf, p.titleEnd, p.count); err != nil {
		return nil, err
	}
	count := p.count

	doc := &Document{
		Title:       p.title,
		RawSize:     len(buf),
		CountSource: p.source,
		Objects:     make([]Object, count),
	}
	for i := range doc.Objects {
		doc.Objects[i] = NewObject(0, 0, 0)
	}

	coordOff, coordErr := r.locator.Locate(buf, block.Coord, count)

	records := ScanTypeRecords(buf, p.titleEnd, TypeScanEnd(buf, p.titleEnd), count)
	if len(records) == count {
		doc.MetadataPath = MetadataFromTypeRecords
		for i, rec := range records {
			doc.Objects[i].TypeID = rec.TypeID
			doc.Objects[i].Text = rec.Text
		}
	} else {
		limit := len(buf)
		if coordErr == nil {
			limit = coordOff - block.HeaderSize
		}
		meta, ok := ReadMetadataRecords(buf, p.titleEnd, count, limit)
		if !ok {
			return nil, fmt.Errorf("%w: found %d type records, expected %d",
				stgyerrors.ErrCountMismatch, len(records), count)
		}
		r.logger.Debug("🔁 Using metadata region", "records", len(records), "count", count)
		doc.MetadataPath = MetadataFromRegion
		for i, m := range meta {
			doc.Objects[i].TypeID = m.TypeID
			doc.Objects[i].SubtypeID = m.SubtypeID
			doc.Objects[i].AuxID = m.AuxID
		}
		if coordErr != nil {
			off := p.titleEnd + count*MetadataRecordSize
			if off+block.Coord.DataLen(count) <= len(buf) {
				coordOff, coordErr = off, nil
			}
		}
	}
	if coordErr != nil {
		return nil, fmt.Errorf("reading coordinates: %w", coordErr)
	}

	for i := range doc.Objects {
		off := coordOff + i*4
		doc.Objects[i].X = FromFixed(int16(binary.LittleEndian.Uint16(buf[off : off+2])))
		doc.Objects[i].Y = FromFixed(int16(binary.LittleEndian.Uint16(buf[off+2 : off+4])))
	}

	for _, kind := range []block.Kind{block.Layer, block.Angle, block.Size, block.Trans, block.ParamA, block.ParamB, block.ParamC} {
		off, err := r.locator.Locate(buf, kind, count)
		if err != nil {
			if !errors.Is(err, stgyerrors.ErrBlockNotFound) {
				return nil, err
			}
			r.logger.Debug("ℹ️ Optional block missing, using defaults", "block", kind)
			doc.Missing = append(doc.Missing, kind)
			continue
		}
		readBlock(doc.Objects, buf, kind, off, doc.MetadataPath == MetadataFromRegion)
	}

	return doc, nil
}

// readBlock copies per-object values of kind from buf at off. The locator
// guarantees the data fits.
func readBlock(objects []Object, buf []byte, kind block.Kind, off int, subtypeKnown bool) {
	for i := range objects {
		o := &objects[i]
		at := off + i*kind.Stride()
		switch kind {
		case block.Layer:
			if !subtypeKnown {
				o.SubtypeID = binary.LittleEndian.Uint16(buf[at : at+2])
			}
		case block.Angle:
			o.Angle = binary.LittleEndian.Uint16(buf[at : at+2])
		case block.Size:
			o.Size = buf[at]
		case block.Trans:
			o.Color = Color{R: buf[at], G: buf[at+1], B: buf[at+2]}
			o.Transparency = buf[at+3]
		case block.ParamA:
			o.Params[0] = binary.LittleEndian.Uint16(buf[at : at+2])
		case block.ParamB:
			o.Params[1] = binary.LittleEndian.Uint16(buf[at : at+2])
		case block.ParamC:
			o.Params[2] = binary.LittleEndian.Uint16(buf[at : at+2])
		}
	}
}

// SummaryObject is a position-only view of an object.
type SummaryObject struct {
	Index  int     `json:"index"`
	TypeID uint16  `json:"type_id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Summary is the lightweight decode used for listings.
type Summary struct {
	Title   string          `json:"title"`
	RawSize int             `json:"raw_size"`
	Objects []SummaryObject `json:"objects"`
	// Partial is set when the object list could not be recovered.
	Partial bool `json:"partial,omitempty"`
}

// ReadSummary lists type ids and positions using the Type record scan. When
// the Size or Coord block cannot be found it returns the title and size only.
func (r *Reader) ReadSummary(buf []byte) (*Summary, error) {
	var h Header
	if err := h.Unpack(buf); err != nil {
		return nil, err
	}
	titleEnd := h.TitleEnd()
	if titleEnd > len(buf) {
		return nil, fmt.Errorf("%w: title ends at %d, binary is %d bytes",
			stgyerrors.ErrTruncated, titleEnd, len(buf))
	}
	sum := &Summary{
		Title:   DecodeTitle(buf[TitleOffset:titleEnd]),
		RawSize: len(buf),
		Objects: []SummaryObject{},
	}

	sizes := Candidates(buf, block.Size, titleEnd)
	if len(sizes) == 0 {
		r.logger.Debug("ℹ️ Summary without Size block", "size", len(buf))
		sum.Partial = true
		return sum, nil
	}
	count, _ := DeriveCount(buf, titleEnd)

	coordOff, err := r.locator.Locate(buf, block.Coord, count)
	if err != nil {
		r.logger.Debug("ℹ️ Summary without Coord block", "count", count)
		sum.Partial = true
		return sum, nil
	}

	records := ScanTypeRecords(buf, titleEnd, TypeScanEnd(buf, titleEnd), count)
	for i := 0; i < count; i++ {
		obj := SummaryObject{Index: i + 1}
		if i < len(records) {
			obj.TypeID = records[i].TypeID
		}
		off := coordOff + i*4
		obj.X = FromFixed(int16(binary.LittleEndian.Uint16(buf[off : off+2])))
		obj.Y = FromFixed(int16(binary.LittleEndian.Uint16(buf[off+2 : off+4])))
		sum.Objects = append(sum.Objects, obj)
	}
	return sum, nil
}
