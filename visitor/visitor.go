package visitor

// Visitor is implemented by format collaborators. One instance serves one
// traversal direction for the duration of a call.
type Visitor interface {
	// Peek returns the kind of the next unread unit, KindNone when writing
	Peek() Kind
	// Consume reads a composite of supplied kind calling each once per child
	// key in source order, each call visits the child before returning.
	// Writing visitors return false.
	Consume(kind Kind, each func(key string) error) (bool, error)
	// ProduceStart opens a composite being written
	ProduceStart(kind Kind) error
	// ProduceEnd closes a composite being written
	ProduceEnd(kind Kind) error

	Null() error
	Bool(value *bool) error
	Int(value *int64) error
	Uint(value *uint64) error
	Float(value *float64) error
	String(value *string) error
	// Buffer visits fixed size text, zero padded on read
	Buffer(value []byte) error
}

// Visitable is implemented by types traversing themselves instead of the reflection shapes
type Visitable interface {
	VisitWith(v Visitor) error
}

// NumberSkipper is implemented by readers able to drop a number without converting it,
// Discard uses it so that numbers out of float64 range do not fail
type NumberSkipper interface {
	SkipNumber() error
}
