package bindly

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tagly/format/text"
)

func fieldNames(registry *Registry) []string {
	var result []string
	for _, field := range registry.Fields() {
		result = append(result, field.Name)
	}
	return result
}

func TestRegistryFor_ConcurrentBuild(t *testing.T) {
	type Point struct {
		X int
		Y int
	}
	var calls atomic.Int32
	err := DeclareFunc[Point](func() []Member {
		calls.Add(1)
		return []Member{
			Bind("y", func(r *Point) *int { return &r.Y }),
			Bind("x", func(r *Point) *int { return &r.X }),
		}
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, calls.Load())

	const workers = 32
	results := make([]*Registry, workers)
	errs := make([]error, workers)
	var start, done sync.WaitGroup
	start.Add(1)
	for i := 0; i < workers; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = RegistryFor[Point]()
		}(i)
	}
	start.Done()
	done.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, []string{"y", "x"}, fieldNames(results[0]))
}

func TestRegistry_Fields(t *testing.T) {
	type Inner struct {
		V int
	}
	type Record struct {
		A     int
		Inner Inner
		Label string
	}
	MustDeclare[Record](
		Bind("a", func(r *Record) *int { return &r.A }),
		Bind("v", func(r *Record) *int { return &r.Inner.V }),
		Bind("label", func(r *Record) *string { return &r.Label }),
	)
	registry, err := RegistryFor[*Record]()
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(Record{}), registry.Type())
	assert.Equal(t, 3, registry.Len())
	assert.Equal(t, []string{"a", "v", "label"}, fieldNames(registry))
	assert.True(t, registry.Has("label"))
	assert.False(t, registry.Has("Label"))
	assert.Nil(t, registry.Lookup("missing"))
	assert.Nil(t, registry.Marker())

	record := &Record{A: 1, Inner: Inner{V: 2}, Label: "x"}
	ptr := reflect.ValueOf(record).UnsafePointer()
	a := registry.Lookup("a")
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, "A", a.Member)
	assert.Equal(t, 1, a.Value(ptr))
	v := registry.Field(1)
	assert.Equal(t, "", v.Member)
	assert.Equal(t, 2, v.Value(ptr))
	registry.Lookup("label").Addr(ptr).Elem().SetString("y")
	assert.Equal(t, "y", record.Label)
	*(*int)(a.Pointer(ptr)) = 10
	assert.Equal(t, 10, record.A)
}

func TestDeclare_Errors(t *testing.T) {
	type Dup struct {
		A int
		B int
	}
	type Twice struct {
		A int
	}
	type Sealed struct {
		A int
	}
	type Other struct {
		A int
	}
	type Lazy struct {
		A int
	}

	err := Declare[Dup](
		Bind("a", func(r *Dup) *int { return &r.A }),
		Bind("a", func(r *Dup) *int { return &r.B }),
	)
	assert.ErrorIs(t, err, ErrDuplicateField)

	require.NoError(t, Declare[Twice](Bind("a", func(r *Twice) *int { return &r.A })))
	err = Declare[Twice](Bind("b", func(r *Twice) *int { return &r.A }))
	assert.ErrorIs(t, err, ErrAlreadyDeclared)

	_, err = RegistryFor[Sealed]()
	require.NoError(t, err)
	err = Declare[Sealed](Bind("a", func(r *Sealed) *int { return &r.A }))
	assert.ErrorIs(t, err, ErrAlreadyBuilt)

	err = Declare[Other](Bind("a", func(r *Sealed) *int { return &r.A }))
	assert.ErrorIs(t, err, ErrOwnerMismatch)

	require.NoError(t, DeclareFunc[Lazy](func() []Member {
		return []Member{
			Bind("a", func(r *Lazy) *int { return &r.A }),
			Bind("a", func(r *Lazy) *int { return &r.A }),
		}
	}))
	_, err = RegistryFor[Lazy]()
	assert.ErrorIs(t, err, ErrDuplicateField)
	_, err = RegistryFor[Lazy]()
	assert.ErrorIs(t, err, ErrDuplicateField)

	_, err = RegistryOf(reflect.TypeOf(1))
	assert.ErrorIs(t, err, ErrNotRecord)
	_, err = RegistryOf(nil)
	assert.ErrorIs(t, err, ErrNotRecord)
	assert.ErrorIs(t, Declare[int](), ErrNotRecord)
	assert.ErrorIs(t, Derive[string](), ErrNotRecord)
	assert.ErrorIs(t, DeclareNames[[]int]("a"), ErrNotRecord)
}

func TestDeclareNames(t *testing.T) {
	type Sub struct {
		X int
	}
	type Record struct {
		A     int
		Sub   *Sub
		Other string `json:"other_name"`
		Skip  bool
	}
	type Unknown struct {
		A int
	}
	require.NoError(t, DeclareNames[Record]("a, Sub,other_name"))
	registry, err := RegistryFor[Record]()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Sub", "other_name"}, fieldNames(registry))
	assert.Equal(t, "A", registry.Lookup("a").Member)
	assert.Equal(t, "Other", registry.Lookup("other_name").Member)
	assert.Equal(t, reflect.TypeOf(&Sub{}), registry.Lookup("Sub").Type)

	err = DeclareNames[Unknown]("a, b")
	assert.ErrorIs(t, err, ErrUnknownMember)
}

func TestParseNames(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      []string
	}{
		{description: "single", input: "a", expect: []string{"a"}},
		{description: "coma separated", input: "a, sub", expect: []string{"a", "sub"}},
		{description: "extra whitespace", input: "  a ,b  ,  c ", expect: []string{"a", "b", "c"}},
		{description: "empty", input: "", expect: nil},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, parseNames(testCase.input), testCase.description)
	}
}

func TestDerive(t *testing.T) {
	type Cased struct {
		ID        int
		FirstName string
	}
	type Tagged struct {
		Bound    int    `bind:"b" json:"jb"`
		JSON     int    `json:"j"`
		Format   int    `format:"name=Alias"`
		Ignored  int    `bind:"-"`
		JSONSkip int    `json:"-"`
		Plain    string `json:",omitempty"`
		hidden   int
	}
	type Custom struct {
		A int `db:"col_a" bind:"ignored"`
	}

	require.NoError(t, Derive[Cased](WithCaseFormat(text.CaseFormatLowerUnderscore)))
	registry, err := RegistryFor[Cased]()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "first_name"}, fieldNames(registry))

	registry, err = RegistryFor[Tagged]()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "j", "Alias", "Plain"}, fieldNames(registry))

	require.NoError(t, Derive[Custom](WithTagName("db")))
	registry, err = RegistryFor[Custom]()
	require.NoError(t, err)
	assert.Equal(t, []string{"col_a"}, fieldNames(registry))
}

func TestGenMarkerFields(t *testing.T) {
	type Foo struct {
		ID   int
		Name string
	}
	fields, err := GenMarkerFields(reflect.TypeOf(&Foo{}))
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "ID", fields[0].Name)
	assert.Equal(t, "Name", fields[1].Name)
	assert.Equal(t, reflect.Bool, fields[1].Type.Kind())

	holderType := reflect.StructOf(fields)
	recordType := reflect.StructOf([]reflect.StructField{
		{Name: "ID", Type: reflect.TypeOf(0)},
		{Name: "Name", Type: reflect.TypeOf("")},
		{Name: "Has", Type: reflect.PointerTo(holderType), Tag: `setMarker:"true"`},
	})
	registry, err := RegistryOf(recordType)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "Name"}, fieldNames(registry))
	marker := registry.Marker()
	require.NotNil(t, marker)

	ptr := reflect.New(recordType).UnsafePointer()
	assert.False(t, marker.CanUseHolder(ptr))
	require.NoError(t, marker.Set(ptr, 1, true))
	assert.True(t, marker.CanUseHolder(ptr))
	assert.True(t, marker.IsSet(ptr, 1))
	assert.False(t, marker.IsSet(ptr, 0))

	_, err = GenMarkerFields(reflect.TypeOf(""))
	assert.ErrorIs(t, err, ErrNotRecord)
}
