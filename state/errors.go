package state

import "errors"

var (
	//ErrUnknownPath reports a selector path not defined by the record registry
	ErrUnknownPath = errors.New("unknown path")
	//ErrIndexOutOfRange reports a missing or invalid slice index
	ErrIndexOutOfRange = errors.New("index out of range")
)
