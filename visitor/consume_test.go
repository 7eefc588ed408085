package visitor_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bindly"
	"github.com/viant/bindly/encoding/document"
	"github.com/viant/bindly/visitor"
)

type (
	sub struct {
		X int8
	}

	target struct {
		A      int
		Sub    *sub
		Items  []int
		Pair   [2]int
		Scores map[string]sub
		Any    interface{}
		Named  fmt.Stringer
	}
)

func init() {
	bindly.MustDeclare[sub](bindly.Bind("x", func(s *sub) *int8 { return &s.X }))
	bindly.MustDeclare[target](
		bindly.Bind("a", func(t *target) *int { return &t.A }),
		bindly.Bind("sub", func(t *target) **sub { return &t.Sub }),
		bindly.Bind("items", func(t *target) *[]int { return &t.Items }),
		bindly.Bind("pair", func(t *target) *[2]int { return &t.Pair }),
		bindly.Bind("scores", func(t *target) *map[string]sub { return &t.Scores }),
		bindly.Bind("any", func(t *target) *interface{} { return &t.Any }),
		bindly.Bind("named", func(t *target) *fmt.Stringer { return &t.Named }),
	)
}

func object(pairs ...interface{}) *document.Object {
	ret := &document.Object{}
	for i := 0; i < len(pairs); i += 2 {
		ret.Put(pairs[i].(string), pairs[i+1])
	}
	return ret
}

func TestConsume(t *testing.T) {
	var testCases = []struct {
		description string
		init        func() *target
		node        interface{}
		expect      *target
		expectErr   error
		expectPath  []string
	}{
		{
			description: "allocate reference",
			init:        func() *target { return &target{} },
			node:        object("sub", object("x", int64(3))),
			expect:      &target{Sub: &sub{X: 3}},
		},
		{
			description: "update held reference in place",
			init:        func() *target { return &target{Sub: &sub{X: 1}} },
			node:        object("sub", object()),
			expect:      &target{Sub: &sub{X: 1}},
		},
		{
			description: "release held reference",
			init:        func() *target { return &target{Sub: &sub{X: 1}} },
			node:        object("sub", nil),
			expect:      &target{},
		},
		{
			description: "null for nil reference",
			init:        func() *target { return &target{} },
			node:        object("sub", nil),
			expect:      &target{},
		},
		{
			description: "failed reference is not published",
			init:        func() *target { return &target{} },
			node:        object("sub", object("x", int64(1000))),
			expect:      &target{},
			expectErr:   visitor.ErrStructuralMismatch,
			expectPath:  []string{"sub", "x"},
		},
		{
			description: "collection appends",
			init:        func() *target { return &target{Items: []int{1}} },
			node:        object("items", document.Array{int64(2), int64(3)}),
			expect:      &target{Items: []int{1, 2, 3}},
		},
		{
			description: "collection item error",
			init:        func() *target { return &target{} },
			node:        object("items", document.Array{int64(2), "x"}),
			expect:      &target{Items: []int{2, 0}},
			expectErr:   visitor.ErrStructuralMismatch,
			expectPath:  []string{"items", "1"},
		},
		{
			description: "array surplus discarded",
			init:        func() *target { return &target{} },
			node:        object("pair", document.Array{int64(1), int64(2), object("k", document.Array{})}),
			expect:      &target{Pair: [2]int{1, 2}},
		},
		{
			description: "array keeps missing positions",
			init:        func() *target { return &target{Pair: [2]int{7, 8}} },
			node:        object("pair", document.Array{int64(1)}),
			expect:      &target{Pair: [2]int{1, 8}},
		},
		{
			description: "map merges existing entry",
			init:        func() *target { return &target{Scores: map[string]sub{"a": {X: 1}}} },
			node:        object("scores", object("a", object(), "b", object("x", int64(2)))),
			expect:      &target{Scores: map[string]sub{"a": {X: 1}, "b": {X: 2}}},
		},
		{
			description: "unknown fields discarded",
			init:        func() *target { return &target{} },
			node: object(
				"zz", int64(1),
				"yy", object("deep", document.Array{object("q", nil), true, "s"}),
				"a", int64(5),
				"xx", document.Array{1.5},
				"ww", document.Number("-1e400"),
			),
			expect: &target{A: 5},
		},
		{
			description: "dynamic value",
			init:        func() *target { return &target{} },
			node:        object("any", object("k", document.Array{int64(1), "s", true, nil})),
			expect: &target{Any: map[string]interface{}{
				"k": []interface{}{1.0, "s", true, nil},
			}},
		},
		{
			description: "dynamic null",
			init:        func() *target { return &target{Any: "x"} },
			node:        object("any", nil),
			expect:      &target{},
		},
		{
			description: "non empty interface cannot be allocated",
			init:        func() *target { return &target{} },
			node:        object("named", "x"),
			expect:      &target{},
			expectErr:   visitor.ErrUnsupportedType,
			expectPath:  []string{"named"},
		},
		{
			description: "scalar into record",
			init:        func() *target { return &target{} },
			node:        object("sub", int64(1)),
			expect:      &target{},
			expectErr:   visitor.ErrStructuralMismatch,
			expectPath:  []string{"sub"},
		},
	}

	for _, testCase := range testCases {
		actual := testCase.init()
		err := document.Into(testCase.node, actual)
		assert.Equal(t, testCase.expect, actual, testCase.description)
		if testCase.expectErr == nil {
			assert.NoError(t, err, testCase.description)
			continue
		}
		assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
		var pathErr *visitor.PathError
		if assert.True(t, errors.As(err, &pathErr), testCase.description) {
			assert.Equal(t, testCase.expectPath, pathErr.Path, testCase.description)
		}
	}
}

func TestVisit_ReadDestination(t *testing.T) {
	reader := document.NewReader(int64(1))
	assert.ErrorIs(t, visitor.Visit(reader, nil), visitor.ErrUnsupportedType)
	assert.ErrorIs(t, visitor.Visit(reader, (*int)(nil)), visitor.ErrUnsupportedType)
	assert.ErrorIs(t, visitor.Visit(reader, 1), visitor.ErrUnsupportedType)

	var value int
	require.NoError(t, visitor.VisitOf(reader, &value))
	assert.Equal(t, 1, value)
	assert.True(t, reader.Done())
}

func TestDiscard(t *testing.T) {
	var testCases = []struct {
		description string
		node        interface{}
	}{
		{description: "null", node: nil},
		{description: "bool", node: true},
		{description: "number", node: int64(3)},
		{description: "number beyond float64", node: document.Number("1e999")},
		{description: "string", node: "s"},
		{description: "nested", node: document.Array{object("a", document.Array{int64(1), nil}), "x"}},
	}
	for _, testCase := range testCases {
		reader := document.NewReader(testCase.node)
		assert.NoError(t, visitor.Discard(reader), testCase.description)
		assert.True(t, reader.Done(), testCase.description)
		assert.NoError(t, visitor.Discard(reader), testCase.description)
	}
}

func TestConsume_Concurrent(t *testing.T) {
	type point struct {
		X, Y int
	}
	node := object("X", int64(1), "Y", int64(2))
	var wg sync.WaitGroup
	results := make([]point, 32)
	errs := make([]error, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = document.Into(node, &results[i])
		}(i)
	}
	wg.Wait()
	for i := range results {
		assert.NoError(t, errs[i])
		assert.Equal(t, point{X: 1, Y: 2}, results[i])
	}
}

func TestReader_Produce(t *testing.T) {
	reader := document.NewReader(int64(1))
	assert.ErrorIs(t, reader.ProduceStart(visitor.KindArray), visitor.ErrStructuralMismatch)
	assert.ErrorIs(t, reader.ProduceEnd(visitor.KindArray), visitor.ErrStructuralMismatch)
	assert.False(t, reader.Done())
}
