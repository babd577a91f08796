package codec

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm selects the compression applied on top of a codec.
type Algorithm uint8

const (
	// None stores the encoded bytes as they are.
	None Algorithm = iota
	// LZ4 is fast block compression.
	LZ4
	// Zstd trades speed for a better ratio.
	Zstd
)

// String returns the stable algorithm name used in codec names and extensions.
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
}

// ParseAlgorithm maps "none"/"", "lz4" and "zstd"/"zst" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%q: %w", s, ErrUnknownAlgorithm)
	}
}

// Compressed wraps a codec with block compression.
//
// Framing: [uncompressed size uint32][compressed size uint32][payload].
// A compressed size of 0 means the payload is stored as is, which happens
// when compression does not shrink it.
type Compressed struct {
	Codec     Codec
	Algorithm Algorithm
}

const blockHeaderSize = 8

// MaxDecodedSize bounds the uncompressed size a block header may announce.
// Larger claims are rejected as corrupt before any buffer is allocated.
const MaxDecodedSize = 256 << 20

// zstd encoders/decoders are pooled; both are safe to reuse across calls.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}

	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}

	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedSize))
}

// Name returns "<codec>+<algorithm>", or the inner name when Algorithm is None.
func (c Compressed) Name() string {
	if c.Algorithm == None {
		return c.inner().Name()
	}

	return c.inner().Name() + "+" + c.Algorithm.String()
}

func (c Compressed) inner() Codec {
	if c.Codec == nil {
		return Default
	}

	return c.Codec
}

// Marshal encodes v with the inner codec and compresses the result.
func (c Compressed) Marshal(v any) ([]byte, error) {
	raw, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	if c.Algorithm == None {
		return raw, nil
	}

	return compressBlock(raw, c.Algorithm)
}

// Unmarshal decompresses data and decodes it into v with the inner codec.
func (c Compressed) Unmarshal(data []byte, v any) error {
	raw := data
	if c.Algorithm != None {
		var err error
		if raw, err = decompressBlock(data, c.Algorithm); err != nil {
			return err
		}
	}

	return c.inner().Unmarshal(raw, v)
}

func compressBlock(data []byte, a Algorithm) ([]byte, error) {
	if len(data) > MaxDecodedSize {
		return nil, fmt.Errorf("payload of %d bytes exceeds %d", len(data), MaxDecodedSize)
	}
	var (
		compressed []byte
		err        error
	)
	switch a {
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		var n int
		if n, err = lz4.CompressBlock(data, buf, nil); err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case Zstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, err
		}
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%v: %w", a, ErrUnknownAlgorithm)
	}

	// Incompressible input (n == 0 for lz4) is stored as is.
	stored := len(compressed) == 0 || len(compressed) >= len(data)
	payload := compressed
	if stored {
		payload = data
	}
	out := make([]byte, blockHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if !stored {
		binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	}
	copy(out[blockHeaderSize:], payload)

	return out, nil
}

func decompressBlock(data []byte, a Algorithm) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("block of %d bytes: %w", len(data), ErrCorrupt)
	}
	size := binary.LittleEndian.Uint32(data[0:])
	csize := binary.LittleEndian.Uint32(data[4:])
	body := data[blockHeaderSize:]
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("announced size %d exceeds %d: %w", size, MaxDecodedSize, ErrCorrupt)
	}

	if csize == 0 {
		if uint32(len(body)) != size {
			return nil, fmt.Errorf("stored block size %d, have %d: %w", size, len(body), ErrCorrupt)
		}

		return body, nil
	}
	if uint32(len(body)) != csize {
		return nil, fmt.Errorf("compressed size %d, have %d: %w", csize, len(body), ErrCorrupt)
	}

	out := make([]byte, size)
	switch a {
	case LZ4:
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("decompressed %d of %d bytes: %w", n, size, ErrCorrupt)
		}

		return out, nil
	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)
		decoded, err := dec.DecodeAll(body, out[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != size {
			return nil, fmt.Errorf("decompressed %d of %d bytes: %w", len(decoded), size, ErrCorrupt)
		}

		return decoded, nil
	default:
		return nil, fmt.Errorf("%v: %w", a, ErrUnknownAlgorithm)
	}
}
