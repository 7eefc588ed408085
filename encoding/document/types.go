package document

import (
	"github.com/viant/bindly/conv"
)

type (
	// Object represents an ordered set of key value pairs
	Object struct {
		Fields []KeyValue
	}

	// KeyValue represents an object member
	KeyValue struct {
		Key   string
		Value interface{}
	}

	// Array represents an ordered list of values
	Array []interface{}

	// Number represents decimal number text
	Number = conv.Number
)

// Get returns member value for supplied key
func (o *Object) Get(key string) (interface{}, bool) {
	for i := range o.Fields {
		if o.Fields[i].Key == key {
			return o.Fields[i].Value, true
		}
	}
	return nil, false
}

// Put appends or replaces member value
func (o *Object) Put(key string, value interface{}) {
	for i := range o.Fields {
		if o.Fields[i].Key == key {
			o.Fields[i].Value = value
			return
		}
	}
	o.Fields = append(o.Fields, KeyValue{Key: key, Value: value})
}
