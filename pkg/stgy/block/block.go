// Package block describes the typed parameter blocks of the strategy board
// binary layout: their ids, signatures and per-object strides.
package block

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Kind identifies a block of the binary layout.
type Kind int

const (
	Type Kind = iota
	Layer
	Coord
	Angle
	Size
	Trans
	ParamA
	ParamB
	ParamC
	Footer
)

// Kinds lists every block kind in canonical write order.
var Kinds = []Kind{Type, Layer, Coord, Angle, Size, Trans, ParamA, ParamB, ParamC, Footer}

// Block ids and flags as stored in the 2+2 byte signature prefix.
const (
	IDType   uint16 = 0x0002
	IDFooter uint16 = 0x0003
	IDLayer  uint16 = 0x0004
	IDCoord  uint16 = 0x0005
	IDAngle  uint16 = 0x0006
	IDSize   uint16 = 0x0007
	IDTrans  uint16 = 0x0008
	IDParamA uint16 = 0x000A
	IDParamB uint16 = 0x000B
	IDParamC uint16 = 0x000C
)

// HeaderSize is the length of a count-bearing block header.
const HeaderSize = 6

// FooterSize is the fixed length of the footer block.
const FooterSize = 8

type spec struct {
	name   string
	id     uint16
	flag   uint16
	stride int
}

var specs = map[Kind]spec{
	Type:   {name: "Type", id: IDType, flag: 0, stride: 4},
	Layer:  {name: "Layer", id: IDLayer, flag: 0x0001, stride: 2},
	Coord:  {name: "Coord", id: IDCoord, flag: 0x0003, stride: 4},
	Angle:  {name: "Angle", id: IDAngle, flag: 0x0001, stride: 2},
	Size:   {name: "Size", id: IDSize, flag: 0x0000, stride: 1},
	Trans:  {name: "Trans", id: IDTrans, flag: 0x0002, stride: 4},
	ParamA: {name: "ParamA", id: IDParamA, flag: 0x0001, stride: 2},
	ParamB: {name: "ParamB", id: IDParamB, flag: 0x0001, stride: 2},
	ParamC: {name: "ParamC", id: IDParamC, flag: 0x0001, stride: 2},
	Footer: {name: "Footer", id: IDFooter, flag: 0x0001, stride: 0},
}

func (k Kind) String() string {
	if s, ok := specs[k]; ok {
		return s.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a block name case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown block %q", name)
}

// ID returns the block id.
func (k Kind) ID() uint16 {
	return specs[k].id
}

// Flag returns the subtype/flag half of the signature prefix.
func (k Kind) Flag() uint16 {
	return specs[k].flag
}

// Stride returns the bytes per object in the block data.
func (k Kind) Stride() int {
	return specs[k].stride
}

// Counted reports whether the block carries a header with an object count.
func (k Kind) Counted() bool {
	return k != Type && k != Footer
}

// Prefix returns the 4-byte generic signature: id and flag.
func (k Kind) Prefix() []byte {
	s := specs[k]
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf[0:2], s.id)
	binary.LittleEndian.PutUint16(buf[2:4], s.flag)
	return buf
}

// Signature returns the full signature for count objects: the 6-byte header
// for counted blocks, the 8-byte footer, or the 4-byte prefix for Type.
func (k Kind) Signature(count int) []byte {
	switch k {
	case Footer:
		return FooterBytes()
	case Type:
		return k.Prefix()[:2]
	}
	buf := make([]byte, HeaderSize)
	copy(buf, k.Prefix())
	binary.LittleEndian.PutUint16(buf[4:6], uint16(count))
	return buf
}

// DataLen returns the length of the block data for count objects, including
// the Size block padding byte.
func (k Kind) DataLen(count int) int {
	n := k.Stride() * count
	if k == Size && count%2 == 1 {
		n++
	}
	return n
}

// FooterBytes returns the fixed footer block.
func FooterBytes() []byte {
	buf := make([]byte, FooterSize)
	binary.LittleEndian.PutUint16(buf[0:2], IDFooter)
	binary.LittleEndian.PutUint16(buf[2:4], 0x0001)
	binary.LittleEndian.PutUint16(buf[4:6], 0x0001)
	binary.LittleEndian.PutUint16(buf[6:8], 0x0001)
	return buf
}

// HeaderCount reads the count field of a block header starting at off.
func HeaderCount(buf []byte, off int) (int, bool) {
	if off < 0 || off+HeaderSize > len(buf) {
		return 0, false
	}
	return int(binary.LittleEndian.Uint16(buf[off+4 : off+6])), true
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := specs[k]; !ok {
		return nil, fmt.Errorf("unknown block kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText parses a block name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
