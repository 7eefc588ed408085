package visitor

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrStructuralMismatch reports input kind that disagrees with the expected shape
	ErrStructuralMismatch = errors.New("structural mismatch")
	// ErrUnsupportedType reports a type without traversal shape
	ErrUnsupportedType = errors.New("unsupported type")
)

// PathError reports a traversal error with the member path it occurred at
type PathError struct {
	Path []string
	Err  error
}

func (e *PathError) Error() string {
	return strings.Join(e.Path, ".") + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func fieldError(name string, err error) error {
	if pathErr, ok := err.(*PathError); ok {
		pathErr.Path = append([]string{name}, pathErr.Path...)
		return pathErr
	}
	return &PathError{Path: []string{name}, Err: err}
}

func indexError(index int, err error) error {
	return fieldError(strconv.Itoa(index), err)
}
