package stgy

import (
	"encoding/binary"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/layout"
)

// Changes groups per-object values for ModifyAll. Nil fields are left
// untouched; non-nil fields must hold one value per object.
type Changes struct {
	Points       []Point
	Sizes        []uint8
	Angles       []uint16
	Transparency []uint8
	Colors       []Color
}

// edit rewrites the per-object records of one block.
type edit struct {
	kind  block.Kind
	write func(rec []byte, i int)
}

// apply locates every target block on the unmodified buffer, then writes.
// Written values may spell out a block header, so no block is located after
// a write.
func (c *Codec) apply(buf []byte, count int, edits ...edit) error {
	offsets := make([]int, len(edits))
	for i, e := range edits {
		off, err := c.LocateBlock(buf, e.kind, count)
		if err != nil {
			return err
		}
		offsets[i] = off
	}
	for i, e := range edits {
		stride := e.kind.Stride()
		for j := 0; j < count; j++ {
			at := offsets[i] + j*stride
			e.write(buf[at:at+stride], j)
		}
	}
	return nil
}

func checkLen(field string, count, n int) error {
	if count <= 0 {
		return stgyerrors.Validationf(field, "object count must be positive, got %d", count)
	}
	if n != count {
		return stgyerrors.Validationf(field, "got %d values for %d objects", n, count)
	}
	return nil
}

// mutate decodes code, applies fn to a private copy of the binary and
// re-encodes it.
func (c *Codec) mutate(code string, fn func(buf []byte) error) (string, error) {
	buf, err := c.DecodeBinary(code)
	if err != nil {
		return "", err
	}
	if err := fn(buf); err != nil {
		return "", err
	}
	return c.EncodeBinary(buf)
}

func pointsEdit(points []Point) (edit, error) {
	fixed := make([][2]int16, len(points))
	for i, p := range points {
		x, err := layout.ToFixed(p.X)
		if err != nil {
			return edit{}, err
		}
		y, err := layout.ToFixed(p.Y)
		if err != nil {
			return edit{}, err
		}
		fixed[i] = [2]int16{x, y}
	}
	return edit{kind: block.Coord, write: func(rec []byte, i int) {
		binary.LittleEndian.PutUint16(rec[0:2], uint16(fixed[i][0]))
		binary.LittleEndian.PutUint16(rec[2:4], uint16(fixed[i][1]))
	}}, nil
}

// ModifyCoordinates replaces every object position.
func (c *Codec) ModifyCoordinates(code string, count int, points []Point) (string, error) {
	return c.ModifyAll(code, count, Changes{Points: points})
}

// ModifyCoordinate moves the object at index, deriving the object count
// from the code itself.
func (c *Codec) ModifyCoordinate(code string, index int, x, y float64) (string, error) {
	return c.mutate(code, func(buf []byte) error {
		var h layout.Header
		if err := h.Unpack(buf); err != nil {
			return err
		}
		count, _ := layout.DeriveCount(buf, h.TitleEnd())
		if index < 0 || index >= count {
			return stgyerrors.Validationf("index", "%d is outside 0..%d", index, count-1)
		}

		fx, err := layout.ToFixed(x)
		if err != nil {
			return err
		}
		fy, err := layout.ToFixed(y)
		if err != nil {
			return err
		}

		off, err := c.LocateBlock(buf, block.Coord, count)
		if err != nil {
			return err
		}
		at := off + index*block.Coord.Stride()
		binary.LittleEndian.PutUint16(buf[at:at+2], uint16(fx))
		binary.LittleEndian.PutUint16(buf[at+2:at+4], uint16(fy))
		return nil
	})
}

// ModifySizes replaces every object size.
func (c *Codec) ModifySizes(code string, count int, sizes []uint8) (string, error) {
	return c.ModifyAll(code, count, Changes{Sizes: sizes})
}

// ModifyAngles replaces every object angle.
func (c *Codec) ModifyAngles(code string, count int, angles []uint16) (string, error) {
	return c.ModifyAll(code, count, Changes{Angles: angles})
}

// ModifyTransparency replaces the transparency byte of every object,
// keeping its color.
func (c *Codec) ModifyTransparency(code string, count int, values []uint8) (string, error) {
	return c.ModifyAll(code, count, Changes{Transparency: values})
}

// ModifyColors replaces the RGB bytes of every object, keeping its
// transparency.
func (c *Codec) ModifyColors(code string, count int, colors []Color) (string, error) {
	return c.ModifyAll(code, count, Changes{Colors: colors})
}

// ModifyAll applies every non-nil field of ch in one decode/encode pass.
// All lengths are checked before any block is touched.
func (c *Codec) ModifyAll(code string, count int, ch Changes) (string, error) {
	checks := []struct {
		field string
		set   bool
		n     int
	}{
		{"points", ch.Points != nil, len(ch.Points)},
		{"sizes", ch.Sizes != nil, len(ch.Sizes)},
		{"angles", ch.Angles != nil, len(ch.Angles)},
		{"transparency", ch.Transparency != nil, len(ch.Transparency)},
		{"colors", ch.Colors != nil, len(ch.Colors)},
	}
	for _, chk := range checks {
		if !chk.set {
			continue
		}
		if err := checkLen(chk.field, count, chk.n); err != nil {
			return "", err
		}
	}

	var edits []edit
	if ch.Points != nil {
		e, err := pointsEdit(ch.Points)
		if err != nil {
			return "", err
		}
		edits = append(edits, e)
	}
	if ch.Sizes != nil {
		edits = append(edits, edit{kind: block.Size, write: func(rec []byte, i int) {
			rec[0] = ch.Sizes[i]
		}})
	}
	if ch.Angles != nil {
		edits = append(edits, edit{kind: block.Angle, write: func(rec []byte, i int) {
			binary.LittleEndian.PutUint16(rec, ch.Angles[i])
		}})
	}
	if ch.Transparency != nil || ch.Colors != nil {
		edits = append(edits, edit{kind: block.Trans, write: func(rec []byte, i int) {
			if ch.Colors != nil {
				rec[0], rec[1], rec[2] = ch.Colors[i].R, ch.Colors[i].G, ch.Colors[i].B
			}
			if ch.Transparency != nil {
				rec[3] = ch.Transparency[i]
			}
		}})
	}

	return c.mutate(code, func(buf []byte) error {
		return c.apply(buf, count, edits...)
	})
}

// ModifyCoordinates replaces every object position with the default codec.
func ModifyCoordinates(code string, count int, points []Point) (string, error) {
	return defaultCodec.ModifyCoordinates(code, count, points)
}

// ModifyCoordinate moves one object with the default codec.
func ModifyCoordinate(code string, index int, x, y float64) (string, error) {
	return defaultCodec.ModifyCoordinate(code, index, x, y)
}

// ModifySizes replaces every object size with the default codec.
func ModifySizes(code string, count int, sizes []uint8) (string, error) {
	return defaultCodec.ModifySizes(code, count, sizes)
}

// ModifyAngles replaces every object angle with the default codec.
func ModifyAngles(code string, count int, angles []uint16) (string, error) {
	return defaultCodec.ModifyAngles(code, count, angles)
}

// ModifyTransparency replaces every transparency byte with the default codec.
func ModifyTransparency(code string, count int, values []uint8) (string, error) {
	return defaultCodec.ModifyTransparency(code, count, values)
}

// ModifyColors replaces every object color with the default codec.
func ModifyColors(code string, count int, colors []Color) (string, error) {
	return defaultCodec.ModifyColors(code, count, colors)
}

// ModifyAll applies several changes with the default codec.
func ModifyAll(code string, count int, ch Changes) (string, error) {
	return defaultCodec.ModifyAll(code, count, ch)
}
