package jay

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bindly"
	"github.com/viant/bindly/encoding/document"
	"github.com/viant/bindly/visitor"
)

type point struct {
	X int
}

type holder struct {
	A    int
	Sub  *point
	Ints []int
	Name string
}

func init() {
	bindly.MustDeclare[point](bindly.Bind("x", func(p *point) *int { return &p.X }))
	bindly.MustDeclare[holder](
		bindly.Bind("a", func(h *holder) *int { return &h.A }),
		bindly.Bind("sub", func(h *holder) **point { return &h.Sub }),
		bindly.Bind("ints", func(h *holder) *[]int { return &h.Ints }),
		bindly.Bind("name", func(h *holder) *string { return &h.Name }),
	)
}

func TestMarshal(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      string
	}{
		{description: "single field", value: &point{X: 1}, expect: `{"x":1}`},
		{description: "unset reference", value: &holder{A: 3}, expect: `{"a":3,"sub":null,"ints":[],"name":""}`},
		{description: "set reference", value: &holder{A: 3, Sub: &point{X: 1}, Ints: []int{1, 23, 456}, Name: "n"}, expect: `{"a":3,"sub":{"x":1},"ints":[1,23,456],"name":"n"}`},
		{description: "array root", value: []string{"a", "b"}, expect: `["a","b"]`},
		{description: "scalar root", value: 12, expect: `12`},
		{description: "nil root", value: nil, expect: `null`},
	}

	for _, testCase := range testCases {
		actual, err := Marshal(testCase.value)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestUnmarshal(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      holder
	}{
		{description: "declared fields", input: `{"a":3,"sub":{"x":1},"ints":[1,23,456],"name":"n"}`, expect: holder{A: 3, Sub: &point{X: 1}, Ints: []int{1, 23, 456}, Name: "n"}},
		{description: "unknown fields", input: `{"extra":{"deep":[1,{"z":null}]},"a":5,"more":[true,"x"]}`, expect: holder{A: 5}},
		{description: "null reference", input: `{"sub":null,"name":"q\"uote"}`, expect: holder{Name: `q"uote`}},
	}

	for _, testCase := range testCases {
		actual := holder{}
		err := Unmarshal([]byte(testCase.input), &actual)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestUnmarshal_Order(t *testing.T) {
	node, err := decodeNode([]byte(`{"b":1,"a":[2.5,"s",false,null]}`))
	require.NoError(t, err)
	expect := &document.Object{Fields: []document.KeyValue{
		{Key: "b", Value: document.Number("1")},
		{Key: "a", Value: document.Array{document.Number("2.5"), "s", false, nil}},
	}}
	assert.Equal(t, expect, node)
}

func TestRoundTrip(t *testing.T) {
	source := &holder{A: -7, Sub: &point{X: 42}, Ints: []int{0, 1}, Name: "line\nbreak"}
	data, err := Marshal(source)
	require.NoError(t, err)
	actual := holder{}
	require.NoError(t, Unmarshal(data, &actual))
	assert.Equal(t, *source, actual)
}

func TestErrors(t *testing.T) {
	_, err := Marshal(math.NaN())
	assert.True(t, errors.Is(err, visitor.ErrUnsupportedType))

	actual := holder{}
	err = Unmarshal([]byte(`{"a":"text"}`), &actual)
	assert.True(t, errors.Is(err, visitor.ErrStructuralMismatch))

	require.NoError(t, Unmarshal([]byte(`{"a":"12"}`), &actual, document.WithMismatchPolicy(visitor.CoerceMismatch)))
	assert.Equal(t, 12, actual.A)

	assert.NotNil(t, Unmarshal([]byte(``), &actual))
}

func TestUnmarshal_Malformed(t *testing.T) {
	var testCases = []string{
		`{"a":}`,
		`{"a":1,}`,
		`[1,]`,
		`{"a"}`,
		`{"a":01}`,
		`{"a":[}`,
		`{"a":1`,
		`NaN`,
		`{"a":Infinity}`,
	}
	for _, input := range testCases {
		actual := holder{}
		assert.NotNil(t, Unmarshal([]byte(input), &actual), input)
	}
}

func TestUnmarshal_UnknownNumbers(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
	}{
		{description: "beyond float64", input: `{"extra":1e999,"a":5}`},
		{description: "nested beyond float64", input: `{"extra":[-1e400,{"n":1E+500}],"a":5}`},
		{description: "long integer", input: `{"extra":123456789012345678901234567890,"a":5}`},
	}
	for _, testCase := range testCases {
		actual := holder{}
		if !assert.NoError(t, Unmarshal([]byte(testCase.input), &actual), testCase.description) {
			continue
		}
		assert.Equal(t, 5, actual.A, testCase.description)
	}
}

func TestValidNumber(t *testing.T) {
	for _, valid := range []string{"0", "-0", "12", "-1.5", "1e999", "2E-3", "0.5e+1"} {
		assert.True(t, validNumber([]byte(valid)), valid)
	}
	for _, invalid := range []string{"", "-", "01", "1.", ".5", "1e", "+1", "0x10", "Inf", "1_0"} {
		assert.False(t, validNumber([]byte(invalid)), invalid)
	}
}
