package codec

import (
	"fmt"
	"os"
	"strings"
)

// ForPath picks a codec from a file name: ".json" is plain JSON, and a
// trailing ".zst"/".zstd" or ".lz4" adds compression. Unknown extensions get
// the Default codec.
func ForPath(path string) Codec {
	switch {
	case strings.HasSuffix(path, ".zst"), strings.HasSuffix(path, ".zstd"):
		return Compressed{Codec: Default, Algorithm: Zstd}
	case strings.HasSuffix(path, ".lz4"):
		return Compressed{Codec: Default, Algorithm: LZ4}
	case strings.HasSuffix(path, ".json"):
		return JSON{}
	default:
		return Default
	}
}

// ReadFile decodes the file at path into v using ForPath(path).
func ReadFile(path string, v any) error { return ReadFileWith(ForPath(path), path, v) }

// WriteFile encodes v with ForPath(path) and writes it with mode 0o644.
func WriteFile(path string, v any) error { return WriteFileWith(ForPath(path), path, v) }

// ReadFileWith decodes the file at path into v with c, ignoring the extension.
// A nil c selects ForPath(path).
func ReadFileWith(c Codec, path string, v any) error {
	if c == nil {
		c = ForPath(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s (%s): %w", path, c.Name(), err)
	}

	return nil
}

// WriteFileWith encodes v with c and writes it with mode 0o644.
// A nil c selects ForPath(path).
func WriteFileWith(c Codec, path string, v any) error {
	if c == nil {
		c = ForPath(path)
	}
	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s (%s): %w", path, c.Name(), err)
	}

	return os.WriteFile(path, data, 0o644)
}
