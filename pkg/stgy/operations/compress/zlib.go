package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	dsflate "github.com/dsnet/compress/flate"
	"github.com/klauspost/compress/zlib"

	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/operations"
)

// DefaultLevel is the compression effort used for strategy codes.
const DefaultLevel = 6

func init() {
	operations.Register(NewZlibOperation(DefaultLevel))
}

// ZlibOperation deflates binary payloads into zlib streams and inflates them
// back, accepting headerless deflate streams as well.
type ZlibOperation struct {
	operations.BaseOperation
	level   int
	writers sync.Pool
}

// NewZlibOperation creates a zlib operation writing at the given level.
// Levels outside 1..9 fall back to DefaultLevel.
func NewZlibOperation(level int) *ZlibOperation {
	if level < zlib.BestSpeed || level > zlib.BestCompression {
		level = DefaultLevel
	}
	o := &ZlibOperation{
		BaseOperation: operations.BaseOperation{
			OpID:   operations.OP_ZLIB,
			OpName: "ZLIB",
		},
		level: level,
	}
	o.writers.New = func() any {
		zw, err := zlib.NewWriterLevel(nil, o.level)
		if err != nil {
			panic(err)
		}
		return zw
	}
	return o
}

// Level returns the configured compression level.
func (o *ZlibOperation) Level() int {
	return o.level
}

// Apply compresses data into a zlib-wrapped deflate stream
func (o *ZlibOperation) Apply(input []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw := o.writers.Get().(*zlib.Writer)
	defer o.writers.Put(zw)
	zw.Reset(&buf)

	if _, err := zw.Write(input); err != nil {
		return nil, fmt.Errorf("writing zlib data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zlib writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Reverse decompresses data, see Inflate.
func (o *ZlibOperation) Reverse(input []byte) ([]byte, error) {
	return Inflate(input)
}

// EstimateSize estimates compressed size
func (o *ZlibOperation) EstimateSize(inputSize int64) int64 {
	// Layout blocks are highly repetitive
	return inputSize/2 + 6 // +6 for zlib header/trailer
}

// Deflate compresses data at DefaultLevel.
func Deflate(data []byte) ([]byte, error) {
	return NewZlibOperation(DefaultLevel).Apply(data)
}

// Inflate decompresses a zlib stream, retrying as raw deflate when the zlib
// header or trailer does not check out.
func Inflate(data []byte) ([]byte, error) {
	out, zerr := inflateZlib(data)
	if zerr == nil {
		return out, nil
	}

	out, rerr := inflateRaw(data)
	if rerr == nil {
		return out, nil
	}

	return nil, fmt.Errorf("%w: zlib: %v; raw deflate: %v", stgyerrors.ErrCompression, zerr, rerr)
}

func inflateZlib(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

func inflateRaw(data []byte) ([]byte, error) {
	fr, err := dsflate.NewReader(bytes.NewReader(data), &dsflate.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	return io.ReadAll(fr)
}
