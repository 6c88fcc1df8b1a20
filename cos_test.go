package ball

import (
	"math"
	"testing"
)

func TestBall_Cos(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		got := new(Ball).Cos(NewFromInt64(0))
		if m := got.Midpoint(); m != 1 {
			t.Errorf("Cos(0).Midpoint() = %v, want 1", m)
		}
		if r := got.Radius(); r != 0 {
			t.Errorf("Cos(0).Radius() = %v, want 0", r)
		}
		if s, want := got.String(), "(1.0000000000000000 +/- 0.0000000000000000)"; s != want {
			t.Errorf("Cos(0).String() = %q, want %q", s, want)
		}
	})

	t.Run("soundness", func(t *testing.T) {
		tests := []float64{
			1e-7, 0.0001, 0.5, 1, 2, 3.141592653589793, 6.283185307179586,
			10, 100, 1000, -7.25, 1e9, 1e300, -1e300,
		}
		for _, v := range tests {
			got := new(Ball).Cos(NewFromFloat64(v))
			if got.IsNaN() {
				t.Errorf("Cos(%v).IsNaN() = true, want false", v)
				continue
			}
			want := math.Cos(v)
			if d := math.Abs(want - got.Midpoint()); d > got.Radius()+1e-13 {
				t.Errorf("Cos(%v) = %q, want %v within %v", v, got, want, got.Radius())
			}
			if r := got.Radius(); r >= 1e-12 {
				t.Errorf("Cos(%v).Radius() = %v, want below 1e-12", v, r)
			}
		}
	})

	t.Run("small argument", func(t *testing.T) {
		got := new(Ball).Cos(NewFromFloat64(1e-7))
		if d := math.Abs(math.Cos(1e-7) - got.Midpoint()); d > got.Radius()+1e-16 {
			t.Errorf("Cos(1e-7) = %q, want %v within %v", got, math.Cos(1e-7), got.Radius())
		}
		if r := got.Radius(); r >= 1e-15 {
			t.Errorf("Cos(1e-7).Radius() = %v, want below 1e-15", r)
		}
	})

	t.Run("input radius", func(t *testing.T) {
		x := NewFromInt64(1)
		if err := x.AddError(0.25); err != nil {
			t.Fatalf("AddError(0.25) failed: %v", err)
		}
		got := new(Ball).Cos(x)
		if r := got.Radius(); r <= 0.25 {
			t.Errorf("Cos.Radius() = %v, want above the input radius 0.25", r)
		}

		// A zero midpoint with a small radius still encloses cos(0) = 1.
		x = NewFromInt64(0)
		if err := x.AddError(0.001); err != nil {
			t.Fatalf("AddError(0.001) failed: %v", err)
		}
		got = new(Ball).Cos(x)
		if m := got.Midpoint(); m != 1 {
			t.Errorf("Cos(0 ± 0.001).Midpoint() = %v, want 1", m)
		}
		if r := got.Radius(); r < 0.001 || r > 0.002 {
			t.Errorf("Cos(0 ± 0.001).Radius() = %v, want in [0.001, 0.002]", r)
		}
	})

	t.Run("wide", func(t *testing.T) {
		x := NewFromInt64(1)
		if err := x.AddError(4); err != nil {
			t.Fatalf("AddError(4) failed: %v", err)
		}
		got := new(Ball).Cos(x)
		if m := got.Midpoint(); m != 0 {
			t.Errorf("Cos(1 ± 4).Midpoint() = %v, want 0", m)
		}
		if r := got.Radius(); r != 1 {
			t.Errorf("Cos(1 ± 4).Radius() = %v, want 1", r)
		}

		x = NewFromInt64(1)
		if err := x.AddError(math.Inf(1)); err != nil {
			t.Fatalf("AddError(+Inf) failed: %v", err)
		}
		got = new(Ball).Cos(x)
		if m, r := got.Midpoint(), got.Radius(); m != 0 || r != 1 {
			t.Errorf("Cos(1 ± Inf) = %q, want (0 ± 1)", got)
		}
	})

	t.Run("huge argument", func(t *testing.T) {
		x := NewFromFloat64(1e300)
		x.Mul(x, x)
		x.Mul(x, x)
		x.Mul(x, x)
		got := new(Ball).Cos(x)
		if m, r := got.Midpoint(), got.Radius(); m != 0 || r != 1 {
			t.Errorf("Cos of a huge argument = %q, want (0 ± 1)", got)
		}
	})

	t.Run("precision", func(t *testing.T) {
		got := new(Ball).Cos(MustParsePrec("1", 100))
		if p := got.Prec(); p != 100 {
			t.Errorf("Cos.Prec() = %v, want 100", p)
		}
		if d := math.Abs(math.Cos(1) - got.Midpoint()); d > 1e-15 {
			t.Errorf("Cos(1).Midpoint() = %v at 100 bits, want %v", got.Midpoint(), math.Cos(1))
		}
		if r := got.Radius(); r >= 1e-25 {
			t.Errorf("Cos(1).Radius() = %v at 100 bits, want below 1e-25", r)
		}

		got = new(Ball).Cos(MustParsePrec("1", 200))
		if r := got.Radius(); r >= 1e-55 {
			t.Errorf("Cos(1).Radius() = %v at 200 bits, want below 1e-55", r)
		}
	})

	t.Run("special values", func(t *testing.T) {
		if !new(Ball).Cos(MustParse("nan")).IsNaN() {
			t.Errorf("Cos(nan).IsNaN() = false, want true")
		}
		if !new(Ball).Cos(MustParse("inf")).IsNaN() {
			t.Errorf("Cos(inf).IsNaN() = false, want true")
		}
		if !new(Ball).Cos(MustParse("-inf")).IsNaN() {
			t.Errorf("Cos(-inf).IsNaN() = false, want true")
		}
		if p := new(Ball).Cos(MustParsePrec("nan", 70)).Prec(); p != 70 {
			t.Errorf("Cos(nan).Prec() = %v, want 70", p)
		}
	})

	t.Run("aliasing", func(t *testing.T) {
		z := NewFromFloat64(0.5)
		want := Cos(NewFromFloat64(0.5)).String()
		z.Cos(z)
		if got := z.String(); got != want {
			t.Errorf("z.Cos(z) = %q, want %q", got, want)
		}
	})
}

func TestCos(t *testing.T) {
	x := MustParsePrec("2", 80)
	got := Cos(x)
	if p := got.Prec(); p != 80 {
		t.Errorf("Cos.Prec() = %v, want 80", p)
	}
	if want := new(Ball).Cos(x).String(); got.String() != want {
		t.Errorf("Cos(x) = %q, want %q", got, want)
	}
}

func FuzzBall_Cos(f *testing.F) {
	for _, v := range fcorpus {
		f.Add(v)
	}
	f.Fuzz(func(t *testing.T, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Skip()
			return
		}
		got := new(Ball).Cos(NewFromFloat64(v))
		if got.IsNaN() {
			t.Errorf("Cos(%v).IsNaN() = true, want false", v)
			return
		}
		want := math.Cos(v)
		if d := math.Abs(want - got.Midpoint()); d > got.Radius()+1e-13 {
			t.Errorf("Cos(%v) = %q, want %v within %v", v, got, want, got.Radius())
		}
	})
}
