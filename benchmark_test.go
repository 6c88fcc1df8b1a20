package ball

import "testing"

func BenchmarkParse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Parse("3.141592653589793")
	}
}

func BenchmarkParsePrec(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParsePrec("3.141592653589793", 200)
	}
}

func BenchmarkBall_String(b *testing.B) {
	x := MustParse("3.141592653589793")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.String()
	}
}

func BenchmarkBall_Add(b *testing.B) {
	x := MustParse("0.1")
	y := MustParse("0.2")
	z := new(Ball)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.Add(x, y)
	}
}

func BenchmarkBall_Mul(b *testing.B) {
	x := MustParse("0.1")
	y := MustParse("0.2")
	z := new(Ball)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.Mul(x, y)
	}
}

func BenchmarkBall_MulFloat64(b *testing.B) {
	x := MustParse("0.1")
	z := new(Ball)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.MulFloat64(x, 2.5)
	}
}

func BenchmarkBall_Cos(b *testing.B) {
	x := MustParse("1")
	z := new(Ball)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.Cos(x)
	}
}

func BenchmarkBall_CosHighPrec(b *testing.B) {
	x := MustParsePrec("1", 200)
	z := new(Ball)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		z.Cos(x)
	}
}
