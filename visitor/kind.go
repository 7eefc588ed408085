package visitor

// Kind describes the shape of a data unit
type Kind int

const (
	// KindNone is reported by writing visitors and at the end of input
	KindNone Kind = iota
	// KindError is reported for malformed input
	KindError
	KindObject
	KindArray
	KindNull
	KindBool
	KindNumber
	KindString
)

var kindNames = [...]string{
	KindNone:   "none",
	KindError:  "error",
	KindObject: "object",
	KindArray:  "array",
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsComposite returns true for object and array kinds
func (k Kind) IsComposite() bool {
	return k == KindObject || k == KindArray
}
