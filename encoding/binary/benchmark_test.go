package binary

import (
	"testing"
)

func BenchmarkMarshal(b *testing.B) {
	in := &holder{A: 7, Sub: &point{X: 1}, Ints: []int{1, 2, 3}, Labels: map[string]string{"k": "v"}}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Marshal(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUnmarshal(b *testing.B) {
	data, err := Marshal(&holder{A: 7, Sub: &point{X: 1}, Ints: []int{1, 2, 3}, Labels: map[string]string{"k": "v"}})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out holder
		if err := Unmarshal(data, &out); err != nil {
			b.Fatal(err)
		}
	}
}
