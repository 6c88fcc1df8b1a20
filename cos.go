package ball

import (
	"math/big"
	"math/bits"
	"sync"
)

const (
	// cosGuard is the number of guard bits the cosine series carries beyond
	// the target precision.
	cosGuard = 32

	// maxCosExp caps the binary exponent of arguments the reduction step
	// accepts. Larger arguments yield the trivial enclosure.
	maxCosExp = 4096
)

// piCache holds the most precise π computed so far. It only ever grows.
var piCache struct {
	sync.Mutex
	pi *big.Float
}

// pi returns π rounded to prec bits, to nearest, accurate within one ulp.
func pi(prec uint) *big.Float {
	piCache.Lock()
	defer piCache.Unlock()
	if piCache.pi == nil || piCache.pi.Prec() < prec+8 {
		piCache.pi = machinPi(prec + 8)
	}
	return new(big.Float).SetPrec(prec).Set(piCache.pi)
}

// machinPi computes π at prec bits using Machin's formula
//
//	π = 16·atan(1/5) − 4·atan(1/239)
//
// The result is accurate to within one ulp at prec.
func machinPi(prec uint) *big.Float {
	wp := prec + 32
	a := atanInv(5, wp)
	b := atanInv(239, wp)
	a.Add(a, a)
	a.Add(a, a)
	a.Add(a, a)
	a.Add(a, a)
	b.Add(b, b)
	b.Add(b, b)
	p := new(big.Float).SetPrec(wp)
	p.Sub(a, b)
	return p.SetPrec(prec)
}

// atanInv computes atan(1/k) at prec bits by the alternating Taylor series
//
//	atan(x) = x − x³/3 + x⁵/5 − ...
//
// The series is cut off once the remaining terms fall below the working
// ulp; for an alternating series with decreasing terms the tail is bounded
// by the first omitted term.
func atanInv(k int64, prec uint) *big.Float {
	x := new(big.Float).SetPrec(prec)
	x.Quo(new(big.Float).SetInt64(1), new(big.Float).SetInt64(k))

	kk := new(big.Float).SetInt64(k * k)
	p := new(big.Float).SetPrec(prec).Set(x)
	sum := new(big.Float).SetPrec(prec).Set(x)
	t := new(big.Float).SetPrec(prec)
	d := new(big.Float)

	for i := int64(1); ; i++ {
		p.Quo(p, kk)
		t.Quo(p, d.SetInt64(2*i+1))
		if i%2 == 1 {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
		if p.MantExp(nil) < -int(prec)-8 {
			break
		}
	}
	return sum
}

// Cos sets z to an enclosure of the cosine of x and returns z.
// The result radius carries the input radius through the unit Lipschitz
// bound of cosine plus the series truncation and rounding bounds. The
// result precision is x's precision. A NaN or infinite x yields a NaN
// ball, and an x too wide or too large to reduce yields the trivial
// enclosure 0 ± 1.
func (z *Ball) Cos(x *Ball) *Ball {
	z.lazyInit()
	x.lazyInit()
	prec := x.precision()
	z.prec = int32(prec)
	if x.nan || x.mid.isInf() {
		return z.setNaN()
	}
	z.nan = false
	z.cosKernel(x, prec)
	return z
}

// Cos returns an enclosure of the cosine of x at x's precision.
func Cos(x *Ball) *Ball {
	return new(Ball).Cos(x)
}

// setUnit sets z to the trivial enclosure 0 ± 1, which contains every
// cosine value.
func (z *Ball) setUnit() {
	z.mid.setZero(false)
	z.rad.setPow2(0)
}

// cosKernel sets z to an enclosure of cos(x) with the midpoint rounded to
// prec bits. The caller has already screened non-finite midpoints.
//
// The argument is reduced by the nearest multiple of 2π, the series
//
//	cos(r) = 1 − r²/2! + r⁴/4! − ...
//
// is summed with guard bits, and the output radius accumulates the input
// radius, the series truncation bound, the reduction and summation rounding
// slack, and the final rounding step, all rounded upward.
func (z *Ball) cosKernel(x *Ball, prec uint) {
	if x.mid.isZero() && x.rad.isZero() {
		z.mid.setInt64(1)
		z.rad.setZero()
		return
	}
	if x.rad.isInf() || (!x.rad.isZero() && x.rad.exp() >= 3) {
		z.setUnit()
		return
	}
	e := 0
	if !x.mid.isZero() {
		e = x.mid.exp()
	}
	if e > maxCosExp {
		z.setUnit()
		return
	}

	wp := prec + cosGuard
	xm := (*big.Float)(x.mid)

	// Argument reduction: r = x − k·2π with k = trunc(x/2π), so |r| < 2π.
	r := new(big.Float).SetPrec(wp + 8)
	reduced := false
	if e >= 2 {
		pp := wp + uint(e) + 8
		twoPi := new(big.Float).SetPrec(pp)
		twoPi.Set(pi(pp))
		twoPi.Add(twoPi, twoPi)

		q := new(big.Float).SetPrec(uint(e) + 8)
		q.Quo(xm, twoPi)
		k, _ := q.Int(nil)
		if k.Sign() != 0 {
			kf := new(big.Float).SetInt(k)
			t := new(big.Float).SetPrec(pp)
			t.Mul(kf, twoPi)
			r.Sub(xm, t)
			reduced = true
		} else {
			r.Set(xm)
		}
	} else {
		r.Set(xm)
	}

	// Taylor series at wp bits.
	sum := new(big.Float).SetPrec(wp).SetInt64(1)
	r2 := new(big.Float).SetPrec(wp)
	r2.Mul(r, r)
	term := new(big.Float).SetPrec(wp).SetInt64(1)
	d := new(big.Float)

	n := 0
	truncExp := -int(wp) - 4
	maxIter := int(wp)/2 + 64
	for {
		n++
		if n > maxIter {
			z.setUnit()
			return
		}
		term.Mul(term, r2)
		term.Quo(term, d.SetInt64(int64(2*n-1)*int64(2*n)))
		if n%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if term.Sign() == 0 {
			break
		}
		// Past n = 4 each term shrinks by more than half, so the tail is
		// bounded by the last added term.
		if n >= 4 && term.MantExp(nil) < -int(wp)-4 {
			truncExp = term.MantExp(nil)
			break
		}
	}

	// Summation rounding slack: about 3 operations per term, each within
	// one ulp at wp of operands no larger than cosh(2π) < 2^9.
	slackExp := -int(wp) + 10 + bits.Len(uint(3*n+16))

	rad := getMag()
	(*big.Float)(rad).Copy((*big.Float)(x.rad))
	rad.addPow2(truncExp)
	rad.addPow2(slackExp)
	if reduced {
		rad.addPow2(-int(wp) + 4)
	}

	zf := (*big.Float)(z.mid)
	zf.SetPrec(0)
	zf.SetPrec(prec)
	zf.Set(sum)
	rad.addRounding(z.mid, prec)

	z.rad.set(rad)
	putMag(rad)
}
