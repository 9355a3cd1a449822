package stgy

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/wtw0212/ff14-stratboard-decode/pkg/logging"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/block"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/cipher"
	stgyerrors "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/errors"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/layout"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/operations"
	"github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/operations/compress"
	_ "github.com/wtw0212/ff14-stratboard-decode/pkg/stgy/transport"
)

// Options configures a Codec.
type Options struct {
	Logger           hclog.Logger
	CompressionLevel int  // 1..9
	Seed             byte // seed character written at the start of the payload
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{
		Logger:           hclog.NewNullLogger(),
		CompressionLevel: compress.DefaultLevel,
		Seed:             cipher.DefaultSeed,
	}
}

// Codec converts between strategy codes, board binaries and documents.
// It holds no per-call state and is safe for concurrent use.
type Codec struct {
	chain  operations.Chain
	reader *layout.Reader
	writer *layout.Writer
	logger hclog.Logger
}

// New creates a codec from opts.
func New(opts Options) (*Codec, error) {
	logger := logging.OrNull(opts.Logger)
	if opts.CompressionLevel < 1 || opts.CompressionLevel > 9 {
		return nil, stgyerrors.Validationf("compression level", "%d is outside 1..9", opts.CompressionLevel)
	}
	if c, ok := cipher.CharFor(cipher.Value(opts.Seed)); !ok || (c != opts.Seed && opts.Seed != '.') {
		return nil, stgyerrors.Validationf("seed", "%q is not a payload character", opts.Seed)
	}

	chain, err := operations.Resolve(DefaultChain...)
	if err != nil {
		return nil, fmt.Errorf("resolving codec pipeline: %w", err)
	}
	for i, op := range chain {
		switch op.ID() {
		case operations.OP_ZLIB:
			if opts.CompressionLevel != compress.DefaultLevel {
				chain[i] = compress.NewZlibOperation(opts.CompressionLevel)
			}
		case operations.OP_CIPHER:
			chain[i] = cipher.NewOperation(cipher.NewWithLogger(opts.Seed, logger.Named("cipher")))
		}
	}

	logger.Debug("🔧 Codec ready", "pipeline", chain.String(), "level", opts.CompressionLevel, "seed", string(opts.Seed))
	return &Codec{
		chain:  chain,
		reader: layout.NewReader(logger.Named("layout")),
		writer: layout.NewWriter(logger.Named("layout")),
		logger: logger,
	}, nil
}

// MustNew is New that panics on invalid options.
func MustNew(opts Options) *Codec {
	c, err := New(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Pipeline returns the encode pipeline, e.g. "zlib|base64|cipher|envelope".
func (c *Codec) Pipeline() string {
	return c.chain.String()
}

// DecodeBinary returns the raw board binary of a strategy code.
func (c *Codec) DecodeBinary(code string) ([]byte, error) {
	buf, err := c.chain.Reverse([]byte(code))
	if err != nil {
		return nil, fmt.Errorf("decoding strategy code: %w", err)
	}
	return buf, nil
}

// EncodeBinary turns a raw board binary into a strategy code.
func (c *Codec) EncodeBinary(buf []byte) (string, error) {
	out, err := c.chain.Apply(buf)
	if err != nil {
		return "", fmt.Errorf("encoding strategy code: %w", err)
	}
	return string(out), nil
}

// Decode parses a strategy code into a document.
func (c *Codec) Decode(code string) (*Document, error) {
	buf, err := c.DecodeBinary(code)
	if err != nil {
		return nil, err
	}
	doc, err := c.reader.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("parsing board: %w", err)
	}
	c.logger.Debug("📖 Decoded strategy code", "title", doc.Title, "objects", doc.Count(), "size", doc.RawSize)
	return doc, nil
}

// Encode serializes doc into a strategy code.
func (c *Codec) Encode(doc *Document) (string, error) {
	buf, err := c.writer.Write(doc)
	if err != nil {
		return "", err
	}
	return c.EncodeBinary(buf)
}

// LocateBlock returns the data offset of kind in a decoded binary.
func (c *Codec) LocateBlock(buf []byte, kind block.Kind, count int) (int, error) {
	return c.reader.Locator().Locate(buf, kind, count)
}
