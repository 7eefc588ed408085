package binary

import (
	"errors"

	"github.com/viant/bindly/visitor"
)

// Tag identifies the encoding of one unit
type Tag byte

const (
	TagNull Tag = iota
	TagFalse
	TagTrue
	//TagInt zig-zag varint
	TagInt
	//TagUint varint
	TagUint
	//TagFloat 8 bytes little endian IEEE 754
	TagFloat
	//TagString varint length followed by bytes
	TagString
	//TagObject varint member count followed by key, value pairs, keys are untagged strings
	TagObject
	//TagArray varint item count followed by values
	TagArray
)

// Kind returns visitor kind for a tag
func (t Tag) Kind() visitor.Kind {
	switch t {
	case TagNull:
		return visitor.KindNull
	case TagFalse, TagTrue:
		return visitor.KindBool
	case TagInt, TagUint, TagFloat:
		return visitor.KindNumber
	case TagString:
		return visitor.KindString
	case TagObject:
		return visitor.KindObject
	case TagArray:
		return visitor.KindArray
	}
	return visitor.KindError
}

// ErrMalformed reports truncated or invalid binary input
var ErrMalformed = errors.New("malformed binary input")

// MismatchPolicy controls input whose kind disagrees with the destination shape
type MismatchPolicy = visitor.MismatchPolicy

// Option configures Reader
type Option func(o *Options)

// Options holds reader settings
type Options struct {
	MismatchPolicy MismatchPolicy
}

// WithMismatchPolicy sets reader mismatch policy
func WithMismatchPolicy(policy MismatchPolicy) Option {
	return func(o *Options) { o.MismatchPolicy = policy }
}

func resolveOptions(opts []Option) Options {
	result := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}
	return result
}
