package codec

import gojson "github.com/goccy/go-json"

// GoJSON writes decompositions, weight vectors and matrix documents as
// single-line JSON through github.com/goccy/go-json. It is the Default codec
// and the payload under ".zst" and ".lz4" files, where indentation would only
// cost compressed bytes. Its output decodes with JSON as well.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name is "go-json", the base of "go-json+zstd" and "go-json+lz4".
func (GoJSON) Name() string { return "go-json" }
