package layout

// Core layout constants of the strategy board binary format
const (
	// Format version stored in the first header word
	FormatVersion = 2

	// Fixed sizes
	HeaderSize     = 28  // header up to and including the title length
	TitleOffset    = 28  // title bytes start right after the header
	TitleAlignment = 4   // 28 + title length is a multiple of this
	MaxTitleBytes  = 128 // UTF-8 bytes before the NUL terminator
	MaxObjects     = 0xFFFF

	// Header field arithmetic
	TotalLengthBias = 16 // total-length field = len(binary) - 16
	BodyLengthBias  = 28 // body-length field = len(binary) - 28
	HeaderFlag      = 1

	// Object count estimate when no count-bearing block is present
	EstimateBase   = 58
	EstimateStride = 10

	// Metadata region records: type, subtype, aux
	MetadataRecordSize = 6

	// Text objects carry a string record after their type record
	TextTypeID   uint16 = 0x64
	TextRecordID uint16 = 0x0003
)

// Object defaults
const (
	DefaultSubtypeID    = 1
	DefaultSize         = 100
	DefaultAngle        = 0
	DefaultTransparency = 0
)

// DefaultColor is opaque white.
var DefaultColor = Color{R: 255, G: 255, B: 255}
