package layout

import (
	"encoding/json"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
)

// Color is an RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Point is a board position in game units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is one placed item. Its identity is its index in Document.Objects.
type Object struct {
	TypeID       uint16    `json:"type_id"`
	SubtypeID    uint16    `json:"subtype_id"`
	AuxID        uint16    `json:"aux_id"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Size         uint8     `json:"size"`
	Angle        uint16    `json:"angle"`
	Color        Color     `json:"color"`
	Transparency uint8     `json:"transparency"`
	Params       [3]uint16 `json:"params"`
	Text         string    `json:"text,omitempty"`
}

// NewObject returns an object of typeID at (x, y) with default parameters.
func NewObject(typeID uint16, x, y float64) Object {
	return Object{
		TypeID:       typeID,
		SubtypeID:    DefaultSubtypeID,
		X:            x,
		Y:            y,
		Size:         DefaultSize,
		Angle:        DefaultAngle,
		Color:        DefaultColor,
		Transparency: DefaultTransparency,
	}
}

// UnmarshalJSON fills fields absent from data with the object defaults.
func (o *Object) UnmarshalJSON(data []byte) error {
	type plain Object
	p := plain(NewObject(0, 0, 0))
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Object(p)
	return nil
}

// Position returns the object's position.
func (o Object) Position() Point {
	return Point{X: o.X, Y: o.Y}
}

// CountSource records where the object count of a decoded document came from.
type CountSource string

const (
	CountFromSize     CountSource = "size"
	CountFromAngle    CountSource = "angle"
	CountFromEstimate CountSource = "estimate"
)

// MetadataPath records how per-object type ids were recovered.
type MetadataPath string

const (
	MetadataFromTypeRecords MetadataPath = "type-records"
	MetadataFromRegion      MetadataPath = "metadata-region"
)

// Document is a decoded or programmatically built strategy board.
type Document struct {
	Title   string   `json:"title"`
	Objects []Object `json:"objects"`

	// Decode-only information; ignored when writing.
	RawSize      int          `json:"raw_size,omitempty"`
	CountSource  CountSource  `json:"count_source,omitempty"`
	MetadataPath MetadataPath `json:"metadata_path,omitempty"`
	Missing      []block.Kind `json:"missing,omitempty"`
}

// NewDocument builds a document from a title and objects.
func NewDocument(title string, objects ...Object) *Document {
	return &Document{Title: title, Objects: objects}
}

// Count returns the number of objects.
func (d *Document) Count() int {
	return len(d.Objects)
}
