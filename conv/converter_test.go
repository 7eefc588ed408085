package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/bindly/visitor"
)

func TestConverter_Int64(t *testing.T) {
	var testCases = []struct {
		description string
		policy      visitor.MismatchPolicy
		src         interface{}
		expect      int64
		hasError    bool
	}{
		{description: "int", src: 12, expect: 12},
		{description: "int8", src: int8(-3), expect: -3},
		{description: "uint", src: uint64(7), expect: 7},
		{description: "uint overflow", src: uint64(math.MaxUint64), hasError: true},
		{description: "integral float", src: 3.0, expect: 3},
		{description: "fractional float", src: 3.7, hasError: true},
		{description: "number", src: Number("42"), expect: 42},
		{description: "exponent number", src: Number("1e3"), expect: 1000},
		{description: "string", src: "42", hasError: true},
		{description: "bool", src: true, hasError: true},
		{description: "coerce fractional float", policy: visitor.CoerceMismatch, src: 3.7, expect: 3},
		{description: "coerce string", policy: visitor.CoerceMismatch, src: " 42 ", expect: 42},
		{description: "coerce bool", policy: visitor.CoerceMismatch, src: true, expect: 1},
		{description: "coerce invalid string", policy: visitor.CoerceMismatch, src: "abc", hasError: true},
		{description: "coerce huge float", policy: visitor.CoerceMismatch, src: 1e30, hasError: true},
	}

	for _, testCase := range testCases {
		actual, err := NewConverter(testCase.policy).Int64(testCase.src)
		if testCase.hasError {
			assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_Uint64(t *testing.T) {
	var testCases = []struct {
		description string
		policy      visitor.MismatchPolicy
		src         interface{}
		expect      uint64
		hasError    bool
	}{
		{description: "int", src: 12, expect: 12},
		{description: "negative int", src: -1, hasError: true},
		{description: "max uint", src: uint64(math.MaxUint64), expect: math.MaxUint64},
		{description: "number", src: Number("18446744073709551615"), expect: math.MaxUint64},
		{description: "negative number", src: Number("-2"), hasError: true},
		{description: "coerce negative float", policy: visitor.CoerceMismatch, src: -1.5, hasError: true},
		{description: "coerce string", policy: visitor.CoerceMismatch, src: "9", expect: 9},
	}

	for _, testCase := range testCases {
		actual, err := NewConverter(testCase.policy).Uint64(testCase.src)
		if testCase.hasError {
			assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_Scalars(t *testing.T) {
	strict := NewConverter(visitor.RejectMismatch)
	coerce := NewConverter(visitor.CoerceMismatch)

	f, err := strict.Float64(Number("2.5"))
	assert.Nil(t, err)
	assert.Equal(t, 2.5, f)
	f, err = strict.Float64(int64(3))
	assert.Nil(t, err)
	assert.Equal(t, 3.0, f)
	_, err = strict.Float64("2.5")
	assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch))
	f, err = coerce.Float64("2.5")
	assert.Nil(t, err)
	assert.Equal(t, 2.5, f)

	b, err := strict.Bool(true)
	assert.Nil(t, err)
	assert.True(t, b)
	_, err = strict.Bool(1)
	assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch))
	b, err = coerce.Bool("false")
	assert.Nil(t, err)
	assert.False(t, b)
	b, err = coerce.Bool(Number("2"))
	assert.Nil(t, err)
	assert.True(t, b)
	_, err = coerce.Bool([]int{1})
	assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch))

	s, err := strict.String("text")
	assert.Nil(t, err)
	assert.Equal(t, "text", s)
	_, err = strict.String(Number("1"))
	assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch))
	s, err = coerce.String(Number("1.50"))
	assert.Nil(t, err)
	assert.Equal(t, "1.50", s)
	s, err = coerce.String(0.25)
	assert.Nil(t, err)
	assert.Equal(t, "0.25", s)
	s, err = coerce.String(uint8(200))
	assert.Nil(t, err)
	assert.Equal(t, "200", s)
}

func TestKind(t *testing.T) {
	var testCases = []struct {
		description string
		src         interface{}
		expect      visitor.Kind
	}{
		{description: "nil", src: nil, expect: visitor.KindNull},
		{description: "bool", src: false, expect: visitor.KindBool},
		{description: "int", src: 1, expect: visitor.KindNumber},
		{description: "float", src: 1.5, expect: visitor.KindNumber},
		{description: "number", src: Number("1"), expect: visitor.KindNumber},
		{description: "string", src: "1", expect: visitor.KindString},
		{description: "slice", src: []int{}, expect: visitor.KindError},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Kind(testCase.src), testCase.description)
	}
}
