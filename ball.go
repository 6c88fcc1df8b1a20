package ball

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Ball type is a representation of a real number enclosure, a midpoint
// together with a radius such that the represented value is guaranteed to
// lie within [midpoint-radius, midpoint+radius].
// The zero value for a Ball is ready to use and represents the exact
// number 0 at [DefaultPrec] bits.
// A Ball is mutated in place by its methods and is therefore not safe for
// concurrent use by multiple goroutines.
//
// A ball is a struct with four parameters:
//
//   - Midpoint: a signed arbitrary-precision binary floating-point number.
//   - Radius: a non-negative low-precision magnitude bounding the
//     uncertainty of the midpoint.
//   - Precision: the number of mantissa bits results are rounded to.
//   - NaN flag: marks the indeterminate form, which the backend cannot
//     represent in a floating-point value.
//
// The precision field determines the number of mantissa bits a result is
// rounded to when the ball is the target of an operation. Values set from
// native types are stored exactly regardless of the precision, which only
// takes effect in subsequent operations and in rendering.
// The radius field can only ever overstate the true uncertainty. Every
// operation on a radius rounds away from zero, and every midpoint rounding
// adds its error bound to the radius, so the enclosure is preserved through
// arbitrary operation chains.
//
// One important aspect of the ball is that changing the precision does not
// reinterpret existing state: raising or lowering it leaves the midpoint
// bits untouched until the next operation rounds them.
type Ball struct {
	mid  *apf  // midpoint, rounded to nearest even at prec bits
	rad  *mag  // radius, rounded away from zero at magPrec bits
	prec int32 // working precision in bits; 0 means DefaultPrec
	nan  bool  // indicates whether the ball is the indeterminate form
}

const (
	DefaultPrec = 53        // precision of a newly constructed ball, in bits, matching float64
	MinPrec     = 1         // minimum working precision
	MaxPrec     = 1<<31 - 1 // maximum working precision
)

// Compile-time checks that the precision bounds are properly ordered.
const (
	_ uint = DefaultPrec - MinPrec
	_ uint = MaxPrec - DefaultPrec
)

var (
	// ErrInvalidArgument is returned when a string does not represent a
	// valid number, when an error term is NaN or negative, or when a value
	// cannot be rendered.
	ErrInvalidArgument = errors.New("ball: invalid argument")

	// ErrInvalidPrecision is returned when a requested precision is outside
	// the [MinPrec, MaxPrec] range.
	ErrInvalidPrecision = errors.New("ball: invalid precision")

	// ErrUnderflow is returned when a parsed value or a computed radius
	// falls below the smallest representable magnitude.
	ErrUnderflow = errors.New("ball: underflow")
)

// lazyInit initializes the zero value on first use.
func (z *Ball) lazyInit() *Ball {
	if z.mid == nil {
		z.mid = newApf()
		z.rad = newMag()
	}
	if z.prec == 0 {
		z.prec = DefaultPrec
	}
	return z
}

// precision returns the working precision of x, [DefaultPrec] for the
// zero value.
func (x *Ball) precision() uint {
	if x.prec == 0 {
		return DefaultPrec
	}
	return uint(x.prec)
}

func checkPrec(prec int) error {
	if prec < MinPrec || prec > MaxPrec {
		return fmt.Errorf("precision %d: %w", prec, ErrInvalidPrecision)
	}
	return nil
}

// setNaN sets z to the indeterminate form.
func (z *Ball) setNaN() *Ball {
	z.lazyInit()
	z.mid.setZero(false)
	z.rad.setZero()
	z.nan = true
	return z
}

// catchNaN recovers the [big.ErrNaN] panic the backend raises on
// indeterminate forms, such as inf - inf or 0 * inf, and turns z into a
// NaN ball.
func (z *Ball) catchNaN() {
	if r := recover(); r != nil {
		if _, ok := r.(big.ErrNaN); !ok {
			panic(r)
		}
		z.setNaN()
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// NewFromInt64 converts an int64 into a ball.
// The midpoint is stored exactly, the radius is zero, and the precision is
// [DefaultPrec].
func NewFromInt64(n int64) *Ball {
	z := new(Ball).lazyInit()
	z.mid.setInt64(n)
	return z
}

// NewFromInt64Prec is like [NewFromInt64] but rounds the midpoint to prec
// bits. If rounding is inexact, the radius grows to keep n enclosed.
//
// NewFromInt64Prec returns an error if prec is smaller than [MinPrec] or
// larger than [MaxPrec].
func NewFromInt64Prec(n int64, prec int) (*Ball, error) {
	if err := checkPrec(prec); err != nil {
		return nil, err
	}
	z := new(Ball).lazyInit()
	z.prec = int32(prec)
	t := getApf()
	t.setInt64(n)
	z.setRounded(t)
	putApf(t)
	return z, nil
}

// NewFromUint64 converts a uint64 into a ball.
// The midpoint is stored exactly, the radius is zero, and the precision is
// [DefaultPrec].
func NewFromUint64(u uint64) *Ball {
	z := new(Ball).lazyInit()
	z.mid.setUint64(u)
	return z
}

// NewFromUint64Prec is like [NewFromUint64] but rounds the midpoint to prec
// bits. If rounding is inexact, the radius grows to keep u enclosed.
//
// NewFromUint64Prec returns an error if prec is smaller than [MinPrec] or
// larger than [MaxPrec].
func NewFromUint64Prec(u uint64, prec int) (*Ball, error) {
	if err := checkPrec(prec); err != nil {
		return nil, err
	}
	z := new(Ball).lazyInit()
	z.prec = int32(prec)
	t := getApf()
	t.setUint64(u)
	z.setRounded(t)
	putApf(t)
	return z, nil
}

// NewFromFloat64 converts a float64 into a ball.
// The midpoint reproduces f exactly, bit for bit, not through a decimal
// round trip. A NaN argument yields a NaN ball and infinities are kept as
// infinite midpoints; the radius is zero and the precision is
// [DefaultPrec] either way.
func NewFromFloat64(f float64) *Ball {
	z := new(Ball).lazyInit()
	if math.IsNaN(f) {
		return z.setNaN()
	}
	z.mid.setFloat64(f)
	return z
}

// NewFromFloat64Prec is like [NewFromFloat64] but rounds the midpoint to
// prec bits. If rounding is inexact, the radius grows to keep f enclosed.
//
// NewFromFloat64Prec returns an error if prec is smaller than [MinPrec] or
// larger than [MaxPrec].
func NewFromFloat64Prec(f float64, prec int) (*Ball, error) {
	if err := checkPrec(prec); err != nil {
		return nil, err
	}
	z := new(Ball).lazyInit()
	z.prec = int32(prec)
	if math.IsNaN(f) {
		return z.setNaN(), nil
	}
	t := getApf()
	t.setFloat64(f)
	z.setRounded(t)
	putApf(t)
	return z, nil
}

// setRounded rounds t to z's precision as the new midpoint. If rounding is
// inexact, the radius becomes the exact distance from the rounded midpoint
// to its neighbor on the far side of the rounding, so the true value stays
// enclosed.
func (z *Ball) setRounded(t *apf) {
	acc := z.mid.round(t, z.precision())
	if acc == big.Exact {
		z.rad.setZero()
		return
	}
	dir := 1
	if acc == big.Above {
		dir = -1
	}
	z.rad.setPow2(z.mid.stepExp(dir, z.precision()))
}

// Parse converts a string into a ball at [DefaultPrec] bits.
// The input string must be in one of the following formats:
//
//	1.234
//	-1234
//	+0.000001234
//	1.83e5
//	0.22E-9
//	inf
//	nan
//
// The formal EBNF grammar for the supported format is as follows:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | '.' digits | digits '.' | digits
//	exponent       ::= ('e' | 'E') [sign] digits
//	special        ::= 'inf' | 'nan'
//	numeric-string ::= [space] [sign] (significand [exponent] | special)
//
// The special literals are matched case-insensitively. The whole string
// must be consumed; trailing characters are an error.
//
// The midpoint is the correctly-rounded value of the string, rounded to
// nearest with ties to even. If rounding was inexact, the radius is the
// exact distance from the midpoint to the adjacent value representable at
// the target precision on the side away from the rounding, which keeps the
// true decimal value enclosed.
//
// Parse returns an error:
//   - if the string does not represent a valid number;
//   - if the value is nonzero and its binary exponent is below the
//     conversion floor, see [ErrUnderflow].
//
// A finite value above the conversion ceiling becomes an infinite midpoint
// with a zero radius.
func Parse(s string) (*Ball, error) {
	return ParsePrec(s, DefaultPrec)
}

// ParsePrec is like [Parse] but rounds the midpoint to prec bits.
//
// ParsePrec returns an error if prec is smaller than [MinPrec] or larger
// than [MaxPrec].
func ParsePrec(s string, prec int) (*Ball, error) {
	if err := checkPrec(prec); err != nil {
		return nil, err
	}
	z := new(Ball).lazyInit()
	z.prec = int32(prec)
	if err := z.parseBall(s, uint(prec)); err != nil {
		return nil, err
	}
	return z, nil
}

// parseBall scans s against the grammar and sets z to the enclosure of its
// value rounded to prec bits. The scan collects the decimal magnitude of
// the value so that astronomically scaled literals are resolved without
// handing the backend an exponent it would have to expand digit by digit.
func (z *Ball) parseBall(s string, prec uint) error {
	var (
		pos      int
		width    int
		neg      bool
		hasCoef  bool
		hasE     bool
		hasEDig  bool
		eneg     bool
		eval     int64
		mantNZ   bool
		intDigs  int
		leadFrac int
	)

	width = len(s)

	// Leading whitespace
	for pos < width && isSpace(s[pos]) {
		pos++
	}
	start := pos

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	// Special values
	switch rest := s[pos:]; {
	case strings.EqualFold(rest, "inf"):
		z.mid.setInf(neg)
		z.rad.setZero()
		return nil
	case strings.EqualFold(rest, "nan"):
		z.setNaN()
		return nil
	}

	// Integer
	for pos < width && s[pos] >= '0' && s[pos] <= '9' {
		hasCoef = true
		if s[pos] != '0' {
			mantNZ = true
		}
		if mantNZ {
			intDigs++
		}
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hasCoef = true
			if s[pos] != '0' {
				mantNZ = true
			} else if !mantNZ {
				leadFrac++
			}
			pos++
		}
	}

	// Exponential part
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hasE = true
		pos++
		// Sign
		switch {
		case pos == width:
			// skip
		case s[pos] == '-':
			eneg = true
			pos++
		case s[pos] == '+':
			pos++
		}
		// Integer
		for pos < width && s[pos] >= '0' && s[pos] <= '9' {
			hasEDig = true
			if eval <= 1<<40 {
				eval = eval*10 + int64(s[pos]-'0')
			}
			pos++
		}
	}

	if pos != width {
		return fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidArgument)
	}
	if !hasCoef {
		return fmt.Errorf("no coefficient: %w", ErrInvalidArgument)
	}
	if hasE && !hasEDig {
		return fmt.Errorf("no exponent: %w", ErrInvalidArgument)
	}

	if !mantNZ {
		z.mid.setZero(neg)
		z.rad.setZero()
		return nil
	}

	// Decimal magnitude of the value: the first significant digit is at
	// 10^magExp. The thresholds are loose, anything within them is cheap
	// for the backend and is resolved exactly below.
	if eneg {
		eval = -eval
	}
	var magExp int64
	if intDigs > 0 {
		magExp = int64(intDigs) - 1 + eval
	} else {
		magExp = -int64(leadFrac) - 1 + eval
	}
	switch {
	case magExp > 309:
		z.mid.setInf(neg)
		z.rad.setZero()
		return nil
	case magExp < -309:
		return ErrUnderflow
	}

	acc, err := z.mid.parse(s[start:], prec)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", s, ErrInvalidArgument)
	}
	if e := z.mid.exp(); e < emin {
		return ErrUnderflow
	} else if e > emax {
		z.mid.setInf(neg)
		z.rad.setZero()
		return nil
	}
	if acc == big.Exact {
		z.rad.setZero()
		return nil
	}
	dir := 1
	if acc == big.Above {
		dir = -1
	}
	k := z.mid.stepExp(dir, prec)
	if k < emin-int(prec)-1 {
		return ErrUnderflow
	}
	z.rad.setPow2(k)
	return nil
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the enclosure in the following form:
//
//	(<midpoint> +/- <radius>)
//
// Each half is rounded to the ball's working precision and printed in
// normalized scientific notation with a radix point after the first digit,
// using the digit count that round-trips the working precision. The
// exponent marker is omitted when the value is zero or the decimal
// exponent is zero. Non-finite halves print as inf, -inf, or nan.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x *Ball) String() string {
	x.lazyInit()
	text, err := x.appendText(make([]byte, 0, 64))
	if err != nil {
		panic(fmt.Sprintf("String() failed: %v", err))
	}
	return string(text)
}

// appendText appends the rendering of x to buf.
func (x *Ball) appendText(buf []byte) ([]byte, error) {
	prec := x.precision()
	var err error
	buf = append(buf, '(')
	buf, err = appendHalf(buf, (*big.Float)(x.mid), x.nan, prec)
	if err != nil {
		return buf, err
	}
	buf = append(buf, " +/- "...)
	buf, err = appendHalf(buf, (*big.Float)(x.rad), false, prec)
	if err != nil {
		return buf, err
	}
	return append(buf, ')'), nil
}

// appendHalf appends one half of an enclosure, rounded to prec bits, in
// normalized scientific notation.
func appendHalf(buf []byte, f *big.Float, nan bool, prec uint) ([]byte, error) {
	if nan {
		return append(buf, "nan"...), nil
	}
	if f.IsInf() {
		if f.Signbit() {
			return append(buf, "-inf"...), nil
		}
		return append(buf, "inf"...), nil
	}
	dig, exp, neg := (*apf)(f).digits(prec)
	if neg {
		buf = append(buf, '-')
	}
	buf = append(buf, dig[0], '.')
	buf = append(buf, dig[1:]...)
	if exp == math.MinInt {
		return buf, fmt.Errorf("exponent out of range: %w", ErrInvalidArgument)
	}
	exp--
	if exp != 0 && f.Sign() != 0 {
		buf = append(buf, 'e')
		buf = strconv.AppendInt(buf, int64(exp), 10)
	}
	return buf, nil
}

// Format implements the [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%s, %v: (2.0000000000000000e1 +/- 0.0000000000000000)
//	%q:     "(2.0000000000000000e1 +/- 0.0000000000000000)"
//
// The '-' format flag can be used with all verbs to left-justify within a
// width. Precision is not supported.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (x *Ball) Format(state fmt.State, verb rune) {
	x.lazyInit()

	text, err := x.appendText(make([]byte, 0, 64))
	if err != nil {
		panic(fmt.Sprintf("Format() failed: %v", err))
	}

	// Quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Padding
	width := lquote + len(text) + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		if state.Flag('-') {
			tspaces = w - width
		} else {
			lspaces = w - width
		}
		width = w
	}

	// Writing buffer
	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	if lquote > 0 {
		buf = append(buf, '"')
	}
	buf = append(buf, text...)
	if tquote > 0 {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(ball.Ball="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}

// Prec returns the working precision of x in bits.
func (x *Ball) Prec() int {
	return int(x.precision())
}

// SetPrec sets the working precision for subsequent operations on z.
// The midpoint is not re-rounded; the new precision takes effect the next
// time z is the target of an operation or is rendered.
//
// SetPrec returns an error if prec is smaller than [MinPrec] or larger than
// [MaxPrec], leaving z untouched.
func (z *Ball) SetPrec(prec int) error {
	if err := checkPrec(prec); err != nil {
		return err
	}
	z.prec = int32(prec)
	return nil
}

// Midpoint returns the midpoint of x rounded to the nearest float64.
// For a NaN ball it returns NaN.
func (x *Ball) Midpoint() float64 {
	x.lazyInit()
	if x.nan {
		return math.NaN()
	}
	return x.mid.float64()
}

// Radius returns the radius of x rounded up to a float64, so the returned
// bound is never below the stored radius. For a NaN ball it returns 0.
func (x *Ball) Radius() float64 {
	x.lazyInit()
	if x.nan {
		return 0
	}
	return x.rad.float64Up()
}

// MidFloat returns the backend value holding the midpoint of x.
// The value is live, not a copy: mutating it changes x directly and
// bypasses the radius bookkeeping, so treat it as read-only unless the
// radius is adjusted to match. For a NaN ball the content is meaningless.
func (x *Ball) MidFloat() *big.Float {
	x.lazyInit()
	return (*big.Float)(x.mid)
}

// RadFloat returns the backend value holding the radius of x.
// See [Ball.MidFloat] for the aliasing caveat.
func (x *Ball) RadFloat() *big.Float {
	x.lazyInit()
	return (*big.Float)(x.rad)
}

// IsNaN reports whether x is the indeterminate form.
func (x *Ball) IsNaN() bool {
	return x.nan
}

// IsInf reports whether the midpoint of x is infinite.
func (x *Ball) IsInf() bool {
	x.lazyInit()
	return !x.nan && x.mid.isInf()
}

// IsZero reports whether x is exactly zero, with both the midpoint and the
// radius zero.
func (x *Ball) IsZero() bool {
	x.lazyInit()
	return !x.nan && x.mid.isZero() && x.rad.isZero()
}

// Set sets z to a deep copy of x, midpoint, radius, precision, and form,
// and returns z.
func (z *Ball) Set(x *Ball) *Ball {
	z.lazyInit()
	x.lazyInit()
	if z == x {
		return z
	}
	z.mid.set(x.mid)
	z.rad.set(x.rad)
	z.prec = int32(x.precision())
	z.nan = x.nan
	return z
}

// Swap exchanges the contents of x and y, including precisions, without
// copying backend storage. Both balls stay valid.
func Swap(x, y *Ball) {
	x.lazyInit()
	y.lazyInit()
	x.mid, y.mid = y.mid, x.mid
	x.rad, y.rad = y.rad, x.rad
	x.prec, y.prec = y.prec, x.prec
	x.nan, y.nan = y.nan, x.nan
}

// Neg sets z to x with the midpoint sign flipped and returns z.
// The radius is untouched, the enclosure is symmetric, and nothing is
// rounded. The result precision is x's precision.
func (z *Ball) Neg(x *Ball) *Ball {
	z.lazyInit()
	x.lazyInit()
	z.prec = int32(x.precision())
	if x.nan {
		return z.setNaN()
	}
	z.nan = false
	z.mid.neg(x.mid)
	z.rad.set(x.rad)
	return z
}

// AddError widens the radius of z by err, an absolute additional
// uncertainty. The radius is updated at the raw magnitude precision,
// bypassing z's working precision, and rounds away from zero, so the
// radius afterwards is at least the radius before plus err but may be
// slightly larger. A positive-infinite err is permitted and produces an
// infinite radius.
//
// AddError returns an error if err is NaN or negative, leaving z
// untouched.
func (z *Ball) AddError(err float64) error {
	if math.IsNaN(err) || err < 0 {
		return fmt.Errorf("error term %v: %w", err, ErrInvalidArgument)
	}
	z.lazyInit()
	if z.nan {
		return nil
	}
	t := getMag()
	t.setFloat64(err)
	z.rad.add(z.rad, t)
	putMag(t)
	return nil
}

// Add sets z to the (possibly rounded) sum x + y and returns z.
// The result precision is the larger of the operand precisions. The result
// radius is the sum of the operand radii plus the midpoint rounding bound,
// so both enclosures are carried through the sum.
func (z *Ball) Add(x, y *Ball) *Ball {
	return z.addSub(x, y, false)
}

// Sub sets z to the (possibly rounded) difference x - y and returns z.
// Precision and radius behave as in [Ball.Add].
func (z *Ball) Sub(x, y *Ball) *Ball {
	return z.addSub(x, y, true)
}

func (z *Ball) addSub(x, y *Ball, sub bool) (r *Ball) {
	z.lazyInit()
	x.lazyInit()
	y.lazyInit()
	prec := x.precision()
	if p := y.precision(); p > prec {
		prec = p
	}
	z.prec = int32(prec)
	if x.nan || y.nan {
		return z.setNaN()
	}
	z.nan = false
	r = z // the recovery in catchNaN bypasses the returns below
	defer z.catchNaN()

	rad := getMag()
	rad.add(x.rad, y.rad)

	t := getApf()
	tf := (*big.Float)(t)
	tf.SetPrec(prec)
	if sub {
		tf.Sub((*big.Float)(x.mid), (*big.Float)(y.mid))
	} else {
		tf.Add((*big.Float)(x.mid), (*big.Float)(y.mid))
	}
	rad.addRounding(t, prec)
	z.mid.set(t)
	putApf(t)

	z.rad.set(rad)
	putMag(rad)
	return z
}

// Mul sets z to the (possibly rounded) product x * y and returns z.
// The result precision is the larger of the operand precisions. The result
// radius covers every product of a value from x with a value from y plus
// the midpoint rounding bound.
func (z *Ball) Mul(x, y *Ball) (r *Ball) {
	z.lazyInit()
	x.lazyInit()
	y.lazyInit()
	prec := x.precision()
	if p := y.precision(); p > prec {
		prec = p
	}
	z.prec = int32(prec)
	if x.nan || y.nan {
		return z.setNaN()
	}
	z.nan = false
	r = z // the recovery in catchNaN bypasses the returns below
	defer z.catchNaN()

	// |xm|·yr + |ym|·xr + xr·yr, all rounded up.
	rad := getMag()
	rad.addMulAbs(x.mid, y.rad)
	rad.addMulAbs(y.mid, x.rad)
	rad.addMul(x.rad, y.rad)

	t := getApf()
	tf := (*big.Float)(t)
	tf.SetPrec(prec)
	tf.Mul((*big.Float)(x.mid), (*big.Float)(y.mid))
	rad.addRounding(t, prec)
	z.mid.set(t)
	putApf(t)

	z.rad.set(rad)
	putMag(rad)
	return z
}

// AddInt64 sets z to the sum x + n and returns z.
// n enters the sum exactly and the result precision is x's precision.
func (z *Ball) AddInt64(x *Ball, n int64) *Ball {
	z.lazyInit()
	x.lazyInit()
	t := getApf()
	t.setInt64(n)
	z.addSubNative(x, t, false)
	putApf(t)
	return z
}

// AddUint64 sets z to the sum x + u and returns z.
// u enters the sum exactly and the result precision is x's precision.
func (z *Ball) AddUint64(x *Ball, u uint64) *Ball {
	z.lazyInit()
	x.lazyInit()
	t := getApf()
	t.setUint64(u)
	z.addSubNative(x, t, false)
	putApf(t)
	return z
}

// AddFloat64 sets z to the sum x + f and returns z.
// f enters the sum exactly, bit for bit, and the result precision is x's
// precision. A NaN f yields a NaN ball.
func (z *Ball) AddFloat64(x *Ball, f float64) *Ball {
	z.lazyInit()
	x.lazyInit()
	if math.IsNaN(f) {
		z.prec = int32(x.precision())
		return z.setNaN()
	}
	t := getApf()
	t.setFloat64(f)
	z.addSubNative(x, t, false)
	putApf(t)
	return z
}

// SubInt64 sets z to the difference x - n and returns z.
// n enters the difference exactly and the result precision is x's
// precision.
func (z *Ball) SubInt64(x *Ball, n int64) *Ball {
	z.lazyInit()
	x.lazyInit()
	t := getApf()
	t.setInt64(n)
	z.addSubNative(x, t, true)
	putApf(t)
	return z
}

// SubUint64 sets z to the difference x - u and returns z.
// u enters the difference exactly and the result precision is x's
// precision.
func (z *Ball) SubUint64(x *Ball, u uint64) *Ball {
	z.lazyInit()
	x.lazyInit()
	t := getApf()
	t.setUint64(u)
	z.addSubNative(x, t, true)
	putApf(t)
	return z
}

// SubFloat64 sets z to the difference x - f and returns z.
// f enters the difference exactly, bit for bit, and the result precision
// is x's precision. A NaN f yields a NaN ball.
func (z *Ball) SubFloat64(x *Ball, f float64) *Ball {
	z.lazyInit()
	x.lazyInit()
	if math.IsNaN(f) {
		z.prec = int32(x.precision())
		return z.setNaN()
	}
	t := getApf()
	t.setFloat64(f)
	z.addSubNative(x, t, true)
	putApf(t)
	return z
}

// SubFromInt64 sets z to the difference n - x and returns z.
// The difference is computed as x - n rounded once at x's precision and
// then negated exactly, so only a single rounding step occurs.
func (z *Ball) SubFromInt64(x *Ball, n int64) *Ball {
	z.SubInt64(x, n)
	if !z.nan {
		z.mid.neg(z.mid)
	}
	return z
}

// SubFromUint64 sets z to the difference u - x and returns z.
// See [Ball.SubFromInt64] for the composition.
func (z *Ball) SubFromUint64(x *Ball, u uint64) *Ball {
	z.SubUint64(x, u)
	if !z.nan {
		z.mid.neg(z.mid)
	}
	return z
}

// SubFromFloat64 sets z to the difference f - x and returns z.
// See [Ball.SubFromInt64] for the composition. A NaN f yields a NaN ball.
func (z *Ball) SubFromFloat64(x *Ball, f float64) *Ball {
	z.SubFloat64(x, f)
	if !z.nan {
		z.mid.neg(z.mid)
	}
	return z
}

// MulInt64 sets z to the product x * n and returns z.
// n enters the product exactly and the result precision is x's precision.
func (z *Ball) MulInt64(x *Ball, n int64) *Ball {
	z.lazyInit()
	x.lazyInit()
	t := getApf()
	t.setInt64(n)
	z.mulNative(x, t)
	putApf(t)
	return z
}

// MulUint64 sets z to the product x * u and returns z.
// u enters the product exactly and the result precision is x's precision.
func (z *Ball) MulUint64(x *Ball, u uint64) *Ball {
	z.lazyInit()
	x.lazyInit()
	t := getApf()
	t.setUint64(u)
	z.mulNative(x, t)
	putApf(t)
	return z
}

// MulFloat64 sets z to the product x * f and returns z.
// f enters the product exactly, bit for bit, and the result precision is
// x's precision. A NaN f yields a NaN ball.
func (z *Ball) MulFloat64(x *Ball, f float64) *Ball {
	z.lazyInit()
	x.lazyInit()
	if math.IsNaN(f) {
		z.prec = int32(x.precision())
		return z.setNaN()
	}
	t := getApf()
	t.setFloat64(f)
	z.mulNative(x, t)
	putApf(t)
	return z
}

// addSubNative sets z to x + t or x - t at x's precision. t is exact with
// a zero radius, so the result radius is x's radius plus the midpoint
// rounding bound.
func (z *Ball) addSubNative(x *Ball, t *apf, sub bool) *Ball {
	prec := x.precision()
	z.prec = int32(prec)
	if x.nan {
		return z.setNaN()
	}
	z.nan = false
	defer z.catchNaN()

	rad := getMag()
	rad.set(x.rad)

	u := getApf()
	uf := (*big.Float)(u)
	uf.SetPrec(prec)
	if sub {
		uf.Sub((*big.Float)(x.mid), (*big.Float)(t))
	} else {
		uf.Add((*big.Float)(x.mid), (*big.Float)(t))
	}
	rad.addRounding(u, prec)
	z.mid.set(u)
	putApf(u)

	z.rad.set(rad)
	putMag(rad)
	return z
}

// mulNative sets z to x * t at x's precision. t is exact with a zero
// radius, so the result radius is |t| times x's radius plus the midpoint
// rounding bound.
func (z *Ball) mulNative(x *Ball, t *apf) *Ball {
	prec := x.precision()
	z.prec = int32(prec)
	if x.nan {
		return z.setNaN()
	}
	z.nan = false
	defer z.catchNaN()

	rad := getMag()
	rad.addMulAbs(t, x.rad)

	u := getApf()
	uf := (*big.Float)(u)
	uf.SetPrec(prec)
	uf.Mul((*big.Float)(x.mid), (*big.Float)(t))
	rad.addRounding(u, prec)
	z.mid.set(u)
	putApf(u)

	z.rad.set(rad)
	putMag(rad)
	return z
}
