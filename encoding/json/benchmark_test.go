package json

import (
	"testing"
)

type benchBasic struct {
	ID   int
	Name string
	Flag bool
}

type benchAdvanced struct {
	ID      int
	Name    string
	Score   float64
	Tags    []string
	Payload map[string]interface{}
	Child   *benchBasic
}

func BenchmarkMarshal_Basic(b *testing.B) {
	in := benchBasic{ID: 7, Name: "alpha", Flag: true}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal_Basic(b *testing.B) {
	data := []byte(`{"ID":7,"Name":"alpha","Flag":true}`)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out benchBasic
		if err := Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMarshal_Advanced(b *testing.B) {
	in := benchAdvanced{
		ID:      11,
		Name:    "beta",
		Score:   99.1,
		Tags:    []string{"x", "y", "z"},
		Payload: map[string]interface{}{"k1": 1, "k2": "v2"},
		Child:   &benchBasic{ID: 1, Name: "child", Flag: true},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal_Advanced(b *testing.B) {
	data := []byte(`{"ID":11,"Name":"beta","Score":99.1,"Tags":["x","y","z"],"Payload":{"k1":1,"k2":"v2"},"Child":{"ID":1,"Name":"child","Flag":true},"Extra":[1e999,{"z":null}]}`)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var out benchAdvanced
		if err := Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
	}
}
