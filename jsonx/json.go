package jsonx

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonx = jsoniter.ConfigCompatibleWithStandardLibrary

// canonical sorts map keys so structurally equal payloads always serialize
// to the same bytes, which digest computation depends on.
var canonical = jsoniter.Config{
	EscapeHTML:  true,
	SortMapKeys: true,
}.Froze()

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonx.Unmarshal(data, v)
}

func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return jsonx.MarshalIndent(v, prefix, indent)
}

// MarshalCanonical serializes v deterministically: identical values yield
// identical bytes regardless of map insertion order.
func MarshalCanonical(v interface{}) ([]byte, error) {
	return canonical.Marshal(v)
}

func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return jsonx.NewDecoder(r)
}

func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return jsonx.NewEncoder(w)
}
