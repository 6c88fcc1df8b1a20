package ball

import "fmt"

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding balls.
func MustParse(s string) *Ball {
	z, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return z
}

// MustParsePrec is like [ParsePrec] but panics if the string cannot be
// parsed or the precision is out of range.
func MustParsePrec(s string, prec int) *Ball {
	z, err := ParsePrec(s, prec)
	if err != nil {
		panic(fmt.Sprintf("MustParsePrec(%q, %d) failed: %v", s, prec, err))
	}
	return z
}

// MustNewFromFloat64Prec is like [NewFromFloat64Prec] but panics if the
// precision is out of range.
func MustNewFromFloat64Prec(f float64, prec int) *Ball {
	z, err := NewFromFloat64Prec(f, prec)
	if err != nil {
		panic(fmt.Sprintf("MustNewFromFloat64Prec(%v, %d) failed: %v", f, prec, err))
	}
	return z
}
