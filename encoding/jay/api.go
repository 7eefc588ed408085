package jay

import (
	"github.com/francoispqt/gojay"
	"github.com/viant/bindly/encoding/document"
	"github.com/viant/bindly/encoding/json"
)

// Marshal produces JSON for supplied value with gojay encoder
func Marshal(value interface{}) ([]byte, error) {
	node, err := document.From(value)
	if err != nil {
		return nil, err
	}
	if err = checkNode(node); err != nil {
		return nil, err
	}
	switch actual := node.(type) {
	case *document.Object:
		return gojay.MarshalJSONObject(object{Object: actual})
	case document.Array:
		return gojay.MarshalJSONArray(array{items: &actual})
	case document.Number:
		return []byte(actual), nil
	case nil:
		return []byte("null"), nil
	}
	return gojay.Marshal(node)
}

// Unmarshal decodes JSON with gojay decoder into an ordered document, then consumes it into dest
func Unmarshal(data []byte, dest interface{}, opts ...document.Option) error {
	if !json.Valid(data) {
		return &json.SyntaxError{Msg: "invalid JSON input"}
	}
	node, err := decodeNode(data)
	if err != nil {
		return err
	}
	return document.Into(node, dest, opts...)
}
