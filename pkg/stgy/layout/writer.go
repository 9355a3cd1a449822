package layout

import (
	"encoding/binary"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/logging"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

// MaxTextBytes bounds the text of a text object.
const MaxTextBytes = 0xFFFF - TitleAlignment

// Writer serializes documents in canonical block order.
type Writer struct {
	logger hclog.Logger
}

// NewWriter creates a writer.
func NewWriter(logger hclog.Logger) *Writer {
	logger = logging.OrNull(logger)
	return &Writer{logger: logger}
}

// Validate checks that doc can be serialized.
func Validate(doc *Document) error {
	if doc == nil {
		return stgyerrors.Validationf("document", "nil document")
	}
	if len(doc.Objects) == 0 {
		return stgyerrors.Validationf("objects", "at least one object is required")
	}
	if len(doc.Objects) > MaxObjects {
		return stgyerrors.Validationf("objects", "%d objects exceeds the maximum of %d", len(doc.Objects), MaxObjects)
	}
	if _, err := EncodeTitle(doc.Title); err != nil {
		return err
	}
	for i, o := range doc.Objects {
		if _, err := ToFixed(o.X); err != nil {
			return stgyerrors.Validationf("objects", "object %d x: %v", i, err)
		}
		if _, err := ToFixed(o.Y); err != nil {
			return stgyerrors.Validationf("objects", "object %d y: %v", i, err)
		}
		if len(o.Text) > MaxTextBytes || strings.IndexByte(o.Text, 0) >= 0 {
			return stgyerrors.Validationf("objects", "object %d text is too long or contains NUL", i)
		}
	}
	return nil
}

// Write serializes doc into a fresh buffer.
func (w *Writer) Write(doc *Document) ([]byte, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	title, _ := EncodeTitle(doc.Title)
	n := len(doc.Objects)

	var body []byte
	for _, o := range doc.Objects {
		body = binary.LittleEndian.AppendUint16(body, block.IDType)
		body = binary.LittleEndian.AppendUint16(body, o.TypeID)
		if o.TypeID == TextTypeID && o.Text != "" {
			body = append(body, EncodeText(o.Text)...)
		}
	}

	for _, kind := range block.Kinds[1:] {
		if kind == block.Footer {
			body = append(body, block.FooterBytes()...)
			continue
		}
		body = append(body, kind.Signature(n)...)
		body = appendBlockData(body, kind, doc.Objects)
	}

	total := HeaderSize + len(title) + len(body)
	header, err := NewHeader(total, len(title))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, total)
	out = append(out, header.Pack()...)
	out = append(out, title...)
	out = append(out, body...)

	w.logger.Debug("📝 Wrote layout", "title", doc.Title, "objects", n, "size", len(out))
	return out, nil
}

func appendBlockData(buf []byte, kind block.Kind, objects []Object) []byte {
	for _, o := range objects {
		switch kind {
		case block.Layer:
			sub := o.SubtypeID
			if sub == 0 {
				sub = DefaultSubtypeID
			}
			buf = binary.LittleEndian.AppendUint16(buf, sub)
		case block.Coord:
			x, _ := ToFixed(o.X)
			y, _ := ToFixed(o.Y)
			buf = binary.LittleEndian.AppendUint16(buf, uint16(x))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(y))
		case block.Angle:
			buf = binary.LittleEndian.AppendUint16(buf, o.Angle)
		case block.Size:
			buf = append(buf, o.Size)
		case block.Trans:
			buf = append(buf, o.Color.R, o.Color.G, o.Color.B, o.Transparency)
		case block.ParamA:
			buf = binary.LittleEndian.AppendUint16(buf, o.Params[0])
		case block.ParamB:
			buf = binary.LittleEndian.AppendUint16(buf, o.Params[1])
		case block.ParamC:
			buf = binary.LittleEndian.AppendUint16(buf, o.Params[2])
		}
	}
	if kind == block.Size && len(objects)%2 == 1 {
		buf = append(buf, 0)
	}
	return buf
}
