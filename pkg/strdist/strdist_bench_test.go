package strdist

import "testing"

func BenchmarkDistanceShortPair(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Distance("buffalo wings", "wings buffalo", nil)
	}
}

func BenchmarkDistanceBoundedReject(b *testing.B) {
	opts := &Options{MaxDistance: 3}
	left := "spicy chicken sandwich combo with fries"
	right := "iced caramel macchiato venti"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Distance(left, right, opts)
	}
}

func BenchmarkDistanceUnbounded(b *testing.B) {
	left := "spicy chicken sandwich combo with fries"
	right := "iced caramel macchiato venti"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Distance(left, right, nil)
	}
}
