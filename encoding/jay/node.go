package jay

import (
	"bytes"
	"fmt"
	"math"

	"github.com/francoispqt/gojay"
	"github.com/viant/bindly/encoding/document"
	"github.com/viant/bindly/encoding/json"
	"github.com/viant/bindly/visitor"
)

// object bridges document objects with gojay object codec, size bounds embedded values on decode
type object struct {
	*document.Object
	size int
}

func (o object) MarshalJSONObject(enc *gojay.Encoder) {
	for _, field := range o.Fields {
		encodeKey(enc, field.Key, field.Value)
	}
}

func (o object) IsNil() bool {
	return o.Object == nil
}

func (o object) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	value, err := decodeEmbedded(dec, o.size)
	if err != nil {
		return err
	}
	o.Fields = append(o.Fields, document.KeyValue{Key: key, Value: value})
	return nil
}

func (o object) NKeys() int {
	return 0
}

// array bridges document arrays with gojay array codec
type array struct {
	items *document.Array
	size  int
}

func (a array) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range *a.items {
		encodeItem(enc, item)
	}
}

func (a array) IsNil() bool {
	return a.items == nil
}

func (a array) UnmarshalJSONArray(dec *gojay.Decoder) error {
	value, err := decodeEmbedded(dec, a.size)
	if err != nil {
		return err
	}
	*a.items = append(*a.items, value)
	return nil
}

func encodeKey(enc *gojay.Encoder, key string, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.AddNullKey(key)
	case bool:
		enc.AddBoolKey(key, actual)
	case int64:
		enc.AddInt64Key(key, actual)
	case uint64:
		enc.AddUint64Key(key, actual)
	case float64:
		enc.AddFloat64Key(key, actual)
	case string:
		enc.AddStringKey(key, actual)
	case document.Number:
		raw := gojay.EmbeddedJSON(actual)
		enc.AddEmbeddedJSONKey(key, &raw)
	case *document.Object:
		enc.AddObjectKey(key, object{Object: actual})
	case document.Array:
		enc.AddArrayKey(key, array{items: &actual})
	}
}

func encodeItem(enc *gojay.Encoder, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.AddNull()
	case bool:
		enc.AddBool(actual)
	case int64:
		enc.AddInt64(actual)
	case uint64:
		enc.AddUint64(actual)
	case float64:
		enc.AddFloat64(actual)
	case string:
		enc.AddString(actual)
	case document.Number:
		raw := gojay.EmbeddedJSON(actual)
		enc.AddEmbeddedJSON(&raw)
	case *document.Object:
		enc.AddObject(object{Object: actual})
	case document.Array:
		enc.AddArray(array{items: &actual})
	}
}

// checkNode rejects nodes gojay cannot encode as valid JSON
func checkNode(node interface{}) error {
	switch actual := node.(type) {
	case nil, bool, int64, uint64, string:
		return nil
	case float64:
		if math.IsNaN(actual) || math.IsInf(actual, 0) {
			return fmt.Errorf("%w: unsupported float value %v", visitor.ErrUnsupportedType, actual)
		}
		return nil
	case document.Number:
		if !validNumber([]byte(actual)) {
			return fmt.Errorf("%w: invalid number %q", visitor.ErrUnsupportedType, string(actual))
		}
		return nil
	case *document.Object:
		for _, field := range actual.Fields {
			if err := checkNode(field.Value); err != nil {
				return err
			}
		}
		return nil
	case document.Array:
		for _, item := range actual {
			if err := checkNode(item); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unsupported document node %T", visitor.ErrUnsupportedType, node)
}

// decodeEmbedded decodes a child value, it has to be strictly shorter than its enclosing composite
func decodeEmbedded(dec *gojay.Decoder, size int) (interface{}, error) {
	var raw gojay.EmbeddedJSON
	if err := dec.EmbeddedJSON(&raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || len(raw) >= size {
		return nil, &json.SyntaxError{Msg: "invalid embedded value"}
	}
	return decodeNode(raw)
}

// decodeNode decodes one JSON value into an ordered document node, numbers stay as text
func decodeNode(raw []byte) (interface{}, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", visitor.ErrStructuralMismatch)
	}
	switch raw[0] {
	case '{':
		node := &document.Object{}
		if err := gojay.UnmarshalJSONObject(raw, object{Object: node, size: len(raw)}); err != nil {
			return nil, err
		}
		return node, nil
	case '[':
		node := document.Array{}
		if err := gojay.UnmarshalJSONArray(raw, array{items: &node, size: len(raw)}); err != nil {
			return nil, err
		}
		return node, nil
	case '"':
		var text string
		if err := gojay.Unmarshal(raw, &text); err != nil {
			return nil, err
		}
		return text, nil
	case 't', 'f':
		var flag bool
		if err := gojay.Unmarshal(raw, &flag); err != nil {
			return nil, err
		}
		return flag, nil
	case 'n':
		if string(raw) == "null" {
			return nil, nil
		}
	default:
		if validNumber(raw) {
			return document.Number(raw), nil
		}
	}
	return nil, fmt.Errorf("%w: invalid value %q", visitor.ErrStructuralMismatch, string(raw))
}

// validNumber checks JSON number grammar, magnitude is not limited
func validNumber(raw []byte) bool {
	i := 0
	if i < len(raw) && raw[i] == '-' {
		i++
	}
	switch {
	case i < len(raw) && raw[i] == '0':
		i++
	case i < len(raw) && raw[i] >= '1' && raw[i] <= '9':
		i = skipDigits(raw, i)
	default:
		return false
	}
	if i < len(raw) && raw[i] == '.' {
		start := i + 1
		if i = skipDigits(raw, start); i == start {
			return false
		}
	}
	if i < len(raw) && (raw[i] == 'e' || raw[i] == 'E') {
		i++
		if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
			i++
		}
		start := i
		if i = skipDigits(raw, start); i == start {
			return false
		}
	}
	return i == len(raw)
}

func skipDigits(raw []byte, i int) int {
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	return i
}
