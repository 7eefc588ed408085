package visitor

// MismatchPolicy controls how reading visitors treat input whose kind disagrees with the destination shape
type MismatchPolicy int

const (
	// RejectMismatch fails with ErrStructuralMismatch
	RejectMismatch MismatchPolicy = iota
	// CoerceMismatch converts scalars where a lossless or truncating conversion exists
	// and skips composites that cannot be converted
	CoerceMismatch
)
