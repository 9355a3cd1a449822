package layout

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
)

func testLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.Trace,
	})
}

// buildBinary wraps body with a valid header and title block.
func buildBinary(t *testing.T, title string, body []byte) []byte {
	t.Helper()
	tb, err := EncodeTitle(title)
	require.NoError(t, err)
	total := HeaderSize + len(tb) + len(body)
	h, err := NewHeader(total, len(tb))
	require.NoError(t, err)

	out := append(h.Pack(), tb...)
	return append(out, body...)
}

func blockBytes(kind block.Kind, count int, data ...byte) []byte {
	return append(kind.Signature(count), data...)
}

func TestHeaderPackUnpack(t *testing.T) {
	h, err := NewHeader(120, 12)
	require.NoError(t, err)

	raw := h.Pack()
	require.Len(t, raw, HeaderSize)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(raw[0:4]))
	assert.Equal(t, uint32(104), binary.LittleEndian.Uint32(raw[4:8]))
	assert.Equal(t, make([]byte, 10), raw[8:18])
	assert.Equal(t, uint16(92), binary.LittleEndian.Uint16(raw[18:20]))
	assert.Equal(t, make([]byte, 4), raw[20:24])
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(raw[24:26]))
	assert.Equal(t, uint16(12), binary.LittleEndian.Uint16(raw[26:28]))

	var back Header
	require.NoError(t, back.Unpack(raw))
	assert.Equal(t, *h, back)
	assert.Equal(t, 40, back.TitleEnd())
	assert.Empty(t, back.Check(120))
	assert.Len(t, back.Check(124), 2)

	err = back.Unpack(raw[:10])
	assert.ErrorIs(t, err, stgyerrors.ErrTruncated)
}

func TestEncodeTitle(t *testing.T) {
	testCases := []struct {
		title  string
		length int
	}{
		{"", 4},
		{"abc", 4},
		{"abcd", 8},
		{"Test 1 Tank", 12},
		{"Test 12 Tank", 16},
	}

	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			raw, err := EncodeTitle(tc.title)
			require.NoError(t, err)
			assert.Len(t, raw, tc.length)
			assert.Zero(t, (TitleOffset+len(raw))%TitleAlignment)
			assert.Equal(t, byte(0), raw[len(tc.title)])
			assert.Equal(t, tc.title, DecodeTitle(raw))
		})
	}

	_, err := EncodeTitle(string(bytes.Repeat([]byte("x"), MaxTitleBytes+1)))
	assert.ErrorIs(t, err, stgyerrors.ErrValidation)

	_, err = EncodeTitle("bad\x00title")
	assert.ErrorIs(t, err, stgyerrors.ErrValidation)

	_, err = EncodeTitle(string(bytes.Repeat([]byte("x"), MaxTitleBytes)))
	assert.NoError(t, err)
}

func TestFixedPoint(t *testing.T) {
	testCases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{100, 1000},
		{12.34, 123},
		{-12.34, -123},
		{3276.75, 32767},
		{-3276.85, -32768},
		{-50.5, -505},
	}
	for _, tc := range testCases {
		got, err := ToFixed(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "ToFixed(%v)", tc.in)
	}

	for _, bad := range []float64{3300, -3300, 1e9, math.NaN()} {
		_, err := ToFixed(bad)
		assert.ErrorIs(t, err, stgyerrors.ErrValidation, "ToFixed(%v)", bad)
	}

	assert.Equal(t, 100.0, FromFixed(1000))
	assert.Equal(t, -50.5, FromFixed(-505))
	assert.InDelta(t, 12.3, FromFixed(123), 1e-9)
	assert.InDelta(t, -0.5, FromFixed(-5), 1e-9)
}

func TestWriteSingleObject(t *testing.T) {
	w := NewWriter(testLogger("writer_test"))
	doc := NewDocument("Test 1 Tank", NewObject(0x2F, 100, 100))

	buf, err := w.Write(doc)
	require.NoError(t, err)
	require.Len(t, buf, 120)

	var h Header
	require.NoError(t, h.Unpack(buf))
	assert.Empty(t, h.Check(len(buf)))
	assert.Equal(t, uint16(12), h.TitleLength)

	body := buf[40:]
	want := [][]byte{
		{0x02, 0x00, 0x2F, 0x00},
		{0x04, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00},
		{0x05, 0x00, 0x03, 0x00, 0x01, 0x00, 0xE8, 0x03, 0xE8, 0x03},
		{0x06, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00},
		{0x07, 0x00, 0x00, 0x00, 0x01, 0x00, 0x64, 0x00},
		{0x08, 0x00, 0x02, 0x00, 0x01, 0x00, 0xFF, 0xFF, 0xFF, 0x00},
		{0x0A, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00},
		{0x0B, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00},
		{0x0C, 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00},
		{0x03, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00},
	}
	assert.Equal(t, bytes.Join(want, nil), body)
}

func TestWriteValidation(t *testing.T) {
	w := NewWriter(nil)

	testCases := []struct {
		name string
		doc  *Document
	}{
		{"nil", nil},
		{"no objects", NewDocument("empty")},
		{"long title", NewDocument(string(bytes.Repeat([]byte("t"), 200)), NewObject(1, 0, 0))},
		{"x out of range", NewDocument("x", NewObject(1, 5000, 0))},
		{"y out of range", NewDocument("y", NewObject(1, 0, -4000))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := w.Write(tc.doc)
			assert.ErrorIs(t, err, stgyerrors.ErrValidation)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	logger := testLogger("roundtrip_test")
	w := NewWriter(logger)
	r := NewReader(logger)

	objects := []Object{
		NewObject(0x2F, 100, 100),
		NewObject(0x30, 150.55, 210.1),
		NewObject(TextTypeID, 300, 250),
		NewObject(0x0B, 12.3, 45.6),
	}
	objects[1].Size = 150
	objects[1].Angle = 90
	objects[1].Color = Color{R: 255, G: 0, B: 0}
	objects[1].Transparency = 128
	objects[2].Text = "Stack here"
	objects[3].Params = [3]uint16{1, 2, 3}

	for _, n := range []int{1, 2, 3, 4} {
		doc := NewDocument("Round trip", objects[:n]...)
		buf, err := w.Write(doc)
		require.NoError(t, err)

		got, err := r.Read(buf)
		require.NoError(t, err, "objects=%d", n)

		assert.Equal(t, doc.Title, got.Title)
		assert.Equal(t, len(buf), got.RawSize)
		assert.Equal(t, CountFromSize, got.CountSource)
		assert.Equal(t, MetadataFromTypeRecords, got.MetadataPath)
		assert.Empty(t, got.Missing)
		require.Len(t, got.Objects, n)

		for i, want := range doc.Objects {
			o := got.Objects[i]
			assert.Equal(t, want.TypeID, o.TypeID)
			assert.Equal(t, uint16(DefaultSubtypeID), o.SubtypeID)
			assert.InDelta(t, want.X, o.X, 0.1)
			assert.InDelta(t, want.Y, o.Y, 0.1)
			assert.Equal(t, want.Size, o.Size)
			assert.Equal(t, want.Angle, o.Angle)
			assert.Equal(t, want.Color, o.Color)
			assert.Equal(t, want.Transparency, o.Transparency)
			assert.Equal(t, want.Params, o.Params)
			assert.Equal(t, want.Text, o.Text)
		}
	}
}

func TestRoundTripHeaderLikeValues(t *testing.T) {
	base := func() []Object {
		objs := []Object{
			NewObject(0x2F, 100, 100),
			NewObject(0x30, 120.5, 95),
			NewObject(0x31, 80, 130),
		}
		for i, size := range []uint8{150, 100, 125} {
			objs[i].Size = size
		}
		return objs
	}

	testCases := []struct {
		name   string
		change func(objs []Object)
	}{
		{"angles spell Size header", func(objs []Object) {
			objs[0].Angle, objs[1].Angle, objs[2].Angle = 7, 0, 3
		}},
		{"angles spell Size header with another count", func(objs []Object) {
			objs[0].Angle, objs[1].Angle, objs[2].Angle = 7, 0, 5
		}},
		{"coordinates spell Size header", func(objs []Object) {
			objs[0].X, objs[0].Y = 0.7, 0
			objs[1].X, objs[1].Y = 0.3, 20
			objs[2].X, objs[2].Y = 30, 30
		}},
		{"subtypes spell Coord header", func(objs []Object) {
			objs[0].SubtypeID, objs[1].SubtypeID, objs[2].SubtypeID = 5, 3, 3
		}},
		{"colors spell ParamA header", func(objs []Object) {
			objs[0].Color = Color{R: 0x0A, B: 0x01}
			objs[1].Color = Color{R: 0x03}
		}},
		{"colors spell Footer", func(objs []Object) {
			objs[0].Color = Color{R: 0x03, B: 0x01}
			objs[1].Color = Color{R: 0x01, B: 0x01}
		}},
	}

	w := NewWriter(nil)
	r := NewReader(testLogger("shadow_test"))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			objs := base()
			tc.change(objs)
			doc := NewDocument("Shadow", objs...)

			buf, err := w.Write(doc)
			require.NoError(t, err)

			count, source := DeriveCount(buf, TitleOffset+8)
			assert.Equal(t, 3, count)
			assert.Equal(t, CountFromSize, source)

			got, err := r.Read(buf)
			require.NoError(t, err)
			assert.Empty(t, got.Missing)
			assert.Equal(t, doc.Objects, got.Objects)
		})
	}
}

func TestSizePadding(t *testing.T) {
	w := NewWriter(nil)
	for _, n := range []int{1, 2, 3} {
		objs := make([]Object, n)
		for i := range objs {
			objs[i] = NewObject(1, 10, 10)
		}
		buf, err := w.Write(NewDocument("pad", objs...))
		require.NoError(t, err)

		sizeAt := bytes.Index(buf, block.Size.Signature(n))
		transAt := bytes.Index(buf, block.Trans.Signature(n))
		require.Positive(t, sizeAt)
		assert.Equal(t, block.HeaderSize+block.Size.DataLen(n), transAt-sizeAt, "objects=%d", n)
	}
}

func TestReadCountMismatch(t *testing.T) {
	w := NewWriter(nil)
	doc := NewDocument("Mismatch",
		NewObject(0x2F, 100, 100),
		NewObject(0x30, 200, 150),
		NewObject(0x31, 300, 250),
	)
	buf, err := w.Write(doc)
	require.NoError(t, err)

	angleAt := bytes.Index(buf, block.Angle.Signature(3))
	require.Positive(t, angleAt)
	binary.LittleEndian.PutUint16(buf[angleAt+4:], 2)

	count, source := DeriveCount(buf, 40)
	assert.Equal(t, 3, count)
	assert.Equal(t, CountFromSize, source)

	_, err = NewReader(nil).Read(buf)
	assert.ErrorIs(t, err, stgyerrors.ErrCountMismatch)
	assert.ErrorIs(t, CheckCounts(buf, 40, 3), stgyerrors.ErrCountMismatch)
}

func TestReadMetadataRegion(t *testing.T) {
	body := []byte{
		0x10, 0x00, 0x01, 0x00, 0x00, 0x00,
		0x11, 0x00, 0x01, 0x00, 0x07, 0x00,
	}
	body = append(body, blockBytes(block.Coord, 2, 0xE8, 0x03, 0xE8, 0x03, 0xD0, 0x07, 0xDC, 0x05)...)
	body = append(body, blockBytes(block.Size, 2, 80, 120)...)
	body = append(body, block.FooterBytes()...)
	buf := buildBinary(t, "Meta", body)

	doc, err := NewReader(testLogger("metadata_test")).Read(buf)
	require.NoError(t, err)

	assert.Equal(t, "Meta", doc.Title)
	assert.Equal(t, MetadataFromRegion, doc.MetadataPath)
	require.Len(t, doc.Objects, 2)
	assert.Equal(t, uint16(0x10), doc.Objects[0].TypeID)
	assert.Equal(t, uint16(0x11), doc.Objects[1].TypeID)
	assert.Equal(t, uint16(7), doc.Objects[1].AuxID)
	assert.InDelta(t, 200.0, doc.Objects[1].X, 1e-9)
	assert.InDelta(t, 150.0, doc.Objects[1].Y, 1e-9)
	assert.Equal(t, uint8(120), doc.Objects[1].Size)
	assert.Contains(t, doc.Missing, block.Angle)
}

func TestReadMissingOptionalBlocks(t *testing.T) {
	body := []byte{0x02, 0x00, 0x2F, 0x00}
	body = append(body, blockBytes(block.Coord, 1, 0xE8, 0x03, 0xD0, 0x07)...)
	body = append(body, block.FooterBytes()...)
	buf := buildBinary(t, "Test 1 Tank", body)

	doc, err := NewReader(nil).Read(buf)
	require.NoError(t, err)

	assert.Equal(t, CountFromEstimate, doc.CountSource)
	require.Len(t, doc.Objects, 1)
	o := doc.Objects[0]
	assert.Equal(t, uint16(0x2F), o.TypeID)
	assert.InDelta(t, 100.0, o.X, 1e-9)
	assert.InDelta(t, 200.0, o.Y, 1e-9)
	assert.Equal(t, uint8(DefaultSize), o.Size)
	assert.Equal(t, uint16(DefaultAngle), o.Angle)
	assert.Equal(t, DefaultColor, o.Color)
	assert.Equal(t, uint8(DefaultTransparency), o.Transparency)
	assert.ElementsMatch(t,
		[]block.Kind{block.Layer, block.Angle, block.Size, block.Trans, block.ParamA, block.ParamB, block.ParamC},
		doc.Missing)
}

func TestReadCoordNotFound(t *testing.T) {
	body := []byte{0x02, 0x00, 0x2F, 0x00}
	body = append(body, blockBytes(block.Size, 1, 0x64, 0x00)...)
	body = append(body, block.FooterBytes()...)
	buf := buildBinary(t, "Test", body)

	_, err := NewReader(nil).Read(buf)
	require.ErrorIs(t, err, stgyerrors.ErrBlockNotFound)
	assert.Equal(t, "Coord", stgyerrors.BlockName(err))
}

func TestReadTruncated(t *testing.T) {
	r := NewReader(nil)

	_, err := r.Read([]byte{0x02, 0x00})
	assert.ErrorIs(t, err, stgyerrors.ErrTruncated)

	h, err := NewHeader(40, 64)
	require.NoError(t, err)
	buf := append(h.Pack(), make([]byte, 12)...)
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, stgyerrors.ErrTruncated)
}

func TestEstimateCount(t *testing.T) {
	assert.Equal(t, 1, EstimateCount(0))
	assert.Equal(t, 1, EstimateCount(68))
	assert.Equal(t, 4, EstimateCount(98))
}

func TestScanTypeRecordsSkipsText(t *testing.T) {
	buf := []byte{0x02, 0x00, 0x64, 0x00}
	buf = append(buf, EncodeText("go")...)
	buf = append(buf, 0xFF, 0x02, 0x00, 0x2F, 0x00)

	recs := ScanTypeRecords(buf, 0, len(buf), 5)
	require.Len(t, recs, 2)
	assert.Equal(t, TextTypeID, recs[0].TypeID)
	assert.Equal(t, "go", recs[0].Text)
	assert.Equal(t, uint16(0x2F), recs[1].TypeID)
	assert.Equal(t, 13, recs[1].Offset)
}

func TestReadSummary(t *testing.T) {
	w := NewWriter(nil)
	buf, err := w.Write(NewDocument("Summary",
		NewObject(0x2F, 100, 100),
		NewObject(0x30, 200.5, 150),
	))
	require.NoError(t, err)

	sum, err := NewReader(nil).ReadSummary(buf)
	require.NoError(t, err)
	assert.Equal(t, "Summary", sum.Title)
	assert.False(t, sum.Partial)
	require.Len(t, sum.Objects, 2)
	assert.Equal(t, SummaryObject{Index: 2, TypeID: 0x30, X: 200.5, Y: 150}, sum.Objects[1])

	partial, err := NewReader(nil).ReadSummary(buildBinary(t, "Bare", []byte{0x02, 0x00, 0x01, 0x00}))
	require.NoError(t, err)
	assert.True(t, partial.Partial)
	assert.Equal(t, "Bare", partial.Title)
	assert.Empty(t, partial.Objects)
}

func TestObjectJSONDefaults(t *testing.T) {
	var doc Document
	err := json.Unmarshal([]byte(`{"title":"J","objects":[{"type_id":47,"x":10,"y":20},{"type_id":1,"size":50,"color":{"r":1,"g":2,"b":3}}],"missing":["Angle"]}`), &doc)
	require.NoError(t, err)

	require.Len(t, doc.Objects, 2)
	assert.Equal(t, uint8(DefaultSize), doc.Objects[0].Size)
	assert.Equal(t, DefaultColor, doc.Objects[0].Color)
	assert.Equal(t, uint16(DefaultSubtypeID), doc.Objects[0].SubtypeID)
	assert.Equal(t, uint8(50), doc.Objects[1].Size)
	assert.Equal(t, Color{R: 1, G: 2, B: 3}, doc.Objects[1].Color)
	assert.Equal(t, []block.Kind{block.Angle}, doc.Missing)

	out, err := json.Marshal(doc.Missing)
	require.NoError(t, err)
	assert.JSONEq(t, `["Angle"]`, string(out))
}
