package ball

import (
	"math"
	"math/big"
	"strconv"
	"sync"
)

// apf (Arbitrary-Precision Float) is a wrapper around big.Float used for
// midpoints. An apf stores its value exactly when set from a native type;
// rounding happens only in explicit operations carrying a target precision,
// always to nearest with ties to even.
type apf big.Float

// mag (MAGnitude) is a wrapper around big.Float used for radii. A mag is
// never negative and every operation on it rounds away from zero, so a
// computed bound can only grow.
type mag big.Float

// magPrec is the mantissa width of a mag, in bits.
const magPrec = 30

// Exponent bounds for decimal conversion, in big.Float.MantExp convention.
// The range matches float64's normal exponent range.
const (
	emin = -1021
	emax = 1024
)

var pool = sync.Pool{
	New: func() any {
		return new(big.Float)
	},
}

// getApf obtains a scratch midpoint from the pool, reset to zero.
func getApf() *apf {
	f := pool.Get().(*big.Float)
	f.SetMode(big.ToNearestEven)
	// SetPrec alone would keep an infinity left by a previous user.
	f.SetInt64(0)
	f.SetPrec(0)
	return (*apf)(f)
}

// putApf returns a scratch midpoint into the pool.
func putApf(x *apf) {
	pool.Put((*big.Float)(x))
}

// getMag obtains a scratch magnitude from the pool, reset to zero.
func getMag() *mag {
	f := pool.Get().(*big.Float)
	f.SetMode(big.AwayFromZero)
	f.SetUint64(0)
	f.SetPrec(magPrec)
	return (*mag)(f)
}

// putMag returns a scratch magnitude into the pool.
func putMag(x *mag) {
	pool.Put((*big.Float)(x))
}

func newApf() *apf {
	return (*apf)(new(big.Float))
}

func newMag() *mag {
	f := new(big.Float)
	f.SetMode(big.AwayFromZero)
	f.SetPrec(magPrec)
	return (*mag)(f)
}

// set copies x into z exactly, including precision.
func (z *apf) set(x *apf) *apf {
	(*big.Float)(z).Copy((*big.Float)(x))
	return z
}

// setInt64 sets z to n exactly.
func (z *apf) setInt64(n int64) *apf {
	(*big.Float)(z).SetPrec(0).SetInt64(n)
	return z
}

// setUint64 sets z to u exactly.
func (z *apf) setUint64(u uint64) *apf {
	(*big.Float)(z).SetPrec(0).SetUint64(u)
	return z
}

// setFloat64 sets z to f exactly, bit for bit. f must not be NaN.
func (z *apf) setFloat64(f float64) *apf {
	(*big.Float)(z).SetPrec(0).SetFloat64(f)
	return z
}

func (z *apf) setInf(neg bool) *apf {
	(*big.Float)(z).SetInf(neg)
	return z
}

// setZero sets z to zero with the given sign.
func (z *apf) setZero(neg bool) *apf {
	f := (*big.Float)(z).SetPrec(0).SetInt64(0)
	if neg {
		f.Neg(f)
	}
	return z
}

// neg sets z to x with the midpoint sign flipped, exactly.
func (z *apf) neg(x *apf) *apf {
	f := (*big.Float)(z)
	f.Copy((*big.Float)(x))
	f.Neg(f)
	return z
}

// round rounds x to prec bits, to nearest with ties to even, and reports the
// rounding direction.
func (z *apf) round(x *apf, prec uint) big.Accuracy {
	f := (*big.Float)(z)
	f.SetPrec(0)
	f.SetPrec(prec)
	f.Set((*big.Float)(x))
	return f.Acc()
}

func (x *apf) sign() int {
	return (*big.Float)(x).Sign()
}

func (x *apf) isInf() bool {
	return (*big.Float)(x).IsInf()
}

func (x *apf) isZero() bool {
	return (*big.Float)(x).Sign() == 0
}

func (x *apf) signbit() bool {
	return (*big.Float)(x).Signbit()
}

// exp returns the binary exponent of x in MantExp convention, with the
// mantissa normalized to [0.5, 1). x must be finite and nonzero.
func (x *apf) exp() int {
	return (*big.Float)(x).MantExp(nil)
}

// float64 returns x rounded to the nearest float64.
func (x *apf) float64() float64 {
	f, _ := (*big.Float)(x).Float64()
	return f
}

// parse sets z to the value of the decimal literal lit, correctly rounded to
// prec bits, and reports the rounding direction.
func (z *apf) parse(lit string, prec uint) (big.Accuracy, error) {
	f := (*big.Float)(z)
	f.SetPrec(0)
	f.SetPrec(prec)
	if _, _, err := f.Parse(lit, 10); err != nil {
		return big.Exact, err
	}
	return f.Acc(), nil
}

// stepExp returns k such that 2^k is the exact distance from x to the
// adjacent value representable in prec bits in the direction dir (positive
// toward +Inf, negative toward -Inf). The step toward zero out of an exact
// power of two is half the step away from zero. x must be finite and nonzero.
func (x *apf) stepExp(dir int, prec uint) int {
	f := (*big.Float)(x)
	k := f.MantExp(nil) - int(prec)
	away := (dir > 0) == (f.Sign() > 0)
	if !away && f.MinPrec() == 1 {
		k--
	}
	return k
}

// digitCount returns the number of decimal digits that guarantees an exact
// decimal round trip of a prec-bit value.
func digitCount(prec uint) int {
	return 1 + int(math.Ceil(float64(prec)*(math.Ln2/math.Ln10)))
}

// digits converts x, rounded to prec bits, into its correctly-rounded decimal
// digit string and decimal exponent. The exponent places the radix point
// before the first digit, so x ≈ ±0.dig × 10^exp. x must be finite. A zero x
// yields an all-zero digit string and a zero exponent.
func (x *apf) digits(prec uint) (dig []byte, exp int, neg bool) {
	n := digitCount(prec)
	neg = x.signbit()
	if x.isZero() {
		dig = make([]byte, n)
		for i := range dig {
			dig[i] = '0'
		}
		return dig, 0, neg
	}
	t := getApf()
	t.round(x, prec)
	buf := (*big.Float)(t).Append(make([]byte, 0, n+8), 'e', n-1)
	putApf(t)

	dig = make([]byte, 0, n)
	for i, c := range buf {
		switch {
		case c >= '0' && c <= '9':
			dig = append(dig, c)
		case c == 'e':
			e, _ := strconv.Atoi(string(buf[i+1:]))
			exp = e + 1
			return dig, exp, neg
		}
	}
	return dig, 1, neg
}

// set copies x into z.
func (z *mag) set(x *mag) *mag {
	(*big.Float)(z).Copy((*big.Float)(x))
	return z
}

// setFloat64 sets z to f rounded up. f must be non-negative and not NaN.
func (z *mag) setFloat64(f float64) *mag {
	(*big.Float)(z).SetFloat64(f)
	return z
}

// setPow2 sets z to 2^k exactly.
func (z *mag) setPow2(k int) *mag {
	f := (*big.Float)(z)
	f.SetUint64(1)
	f.SetMantExp(f, k)
	return z
}

func (z *mag) setZero() *mag {
	(*big.Float)(z).SetUint64(0)
	return z
}

func (z *mag) setInf() *mag {
	(*big.Float)(z).SetInf(false)
	return z
}

// add sets z to x + y, rounded up.
func (z *mag) add(x, y *mag) *mag {
	(*big.Float)(z).Add((*big.Float)(x), (*big.Float)(y))
	return z
}

// addPow2 adds 2^k to z, rounded up.
func (z *mag) addPow2(k int) *mag {
	t := getMag()
	t.setPow2(k)
	z.add(z, t)
	putMag(t)
	return z
}

// addMulAbs adds |m|·r to z, rounded up. A zero factor contributes nothing,
// even against an infinite one.
func (z *mag) addMulAbs(m *apf, r *mag) *mag {
	if m.isZero() || r.isZero() {
		return z
	}
	t := getMag()
	tf := (*big.Float)(t)
	tf.Abs((*big.Float)(m))
	tf.Mul(tf, (*big.Float)(r))
	z.add(z, t)
	putMag(t)
	return z
}

// addRounding adds the rounding bound of the last operation on t at prec
// bits: nothing when it was exact, half an ulp when it was inexact, and
// everything when it overflowed to infinity.
func (z *mag) addRounding(t *apf, prec uint) *mag {
	if (*big.Float)(t).Acc() == big.Exact {
		return z
	}
	if t.isInf() {
		return z.setInf()
	}
	return z.addPow2(t.exp() - int(prec) - 1)
}

// addMul adds x·y to z, rounded up. A zero factor contributes nothing.
func (z *mag) addMul(x, y *mag) *mag {
	if x.isZero() || y.isZero() {
		return z
	}
	t := getMag()
	(*big.Float)(t).Mul((*big.Float)(x), (*big.Float)(y))
	z.add(z, t)
	putMag(t)
	return z
}

func (x *mag) isZero() bool {
	return (*big.Float)(x).Sign() == 0
}

func (x *mag) isInf() bool {
	return (*big.Float)(x).IsInf()
}

// exp returns the binary exponent of x in MantExp convention. x must be
// finite and nonzero.
func (x *mag) exp() int {
	return (*big.Float)(x).MantExp(nil)
}

// float64Up returns x rounded up to a float64, so that the returned value is
// never below x.
func (x *mag) float64Up() float64 {
	f, acc := (*big.Float)(x).Float64()
	if acc == big.Below {
		f = math.Nextafter(f, math.Inf(1))
	}
	return f
}
