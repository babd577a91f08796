// Package codec centralizes how matrices, decompositions and weight vectors
// are persisted.
//
// A codec name is stable and self-describing: "json", "go-json", or a base
// codec combined with a compression algorithm such as "go-json+zstd".
// Changing the codec of an existing file changes its bytes; read it back with
// the codec it was written with (ForPath picks one from the file extension).
package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCodec indicates a codec name that ByName cannot resolve.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrUnknownAlgorithm indicates an unsupported compression algorithm.
	ErrUnknownAlgorithm = errors.New("codec: unknown compression algorithm")

	// ErrCorrupt indicates a compressed payload whose framing is inconsistent.
	ErrCorrupt = errors.New("codec: corrupt compressed payload")

	// ErrMalformedDocument indicates a document whose fields disagree (for
	// example a MatrixDocument whose data length is not Rows*Cols).
	ErrMalformedDocument = errors.New("codec: malformed document")
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is requested.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name. Compressed codecs are
// named "<base>+<algorithm>".
func ByName(name string) (Codec, bool) {
	base, algo, compressed := strings.Cut(name, "+")
	var c Codec
	switch base {
	case "json":
		c = JSON{}
	case "go-json":
		c = GoJSON{}
	default:
		return nil, false
	}
	if !compressed {
		return c, true
	}
	a, err := ParseAlgorithm(algo)
	if err != nil || a == None {
		return nil, false
	}

	return Compressed{Codec: c, Algorithm: a}, true
}

// Lookup is ByName with an error: ErrUnknownCodec for names it cannot resolve.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCodec)
	}

	return c, nil
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}

	return b
}
