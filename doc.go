/*
Package ball implements arbitrary-precision ball arithmetic.
A ball is a midpoint paired with an error radius, and every operation keeps
the guarantee that the true mathematical result lies within the result ball.
Balls are a compact alternative to endpoint intervals for rigorous numerics:
the midpoint carries the working precision, while the radius is a cheap
low-precision bound that can only ever overstate the error.

# Representation

[Ball] is a struct with four fields:

  - Midpoint: a signed arbitrary-precision binary floating-point number,
    stored as a [big.Float] rounded to nearest with ties to even.
  - Radius: a non-negative magnitude, stored as a [big.Float] with a fixed
    30-bit mantissa that rounds away from zero in every operation.
  - Precision: the number of mantissa bits results are rounded to when the
    ball is the target of an operation.
  - NaN flag: marks the indeterminate form, which a [big.Float] cannot
    represent.

The enclosure a ball denotes is the closed interval

	[midpoint - radius, midpoint + radius]

and every constructor and operation maintains the invariant that the value
being represented lies inside it. Rounding a midpoint always adds the
rounding error to the radius, and radius arithmetic always rounds upward,
so the invariant survives arbitrary operation chains. A radius may
overstate the true error, but it never understates it.

# Precision

Each ball carries its own working precision in bits:

	| Constant      | Value        | Meaning                             |
	| ------------- | ------------ | ----------------------------------- |
	| [DefaultPrec] | 53           | precision of new balls (float64)    |
	| [MinPrec]     | 1            | smallest accepted precision         |
	| [MaxPrec]     | 2147483647   | largest accepted precision          |

Operand precisions are never lowered by an operation: the result precision
of a two-ball operation is the larger of the two operand precisions, and
the result precision of a ball-with-native operation is the ball operand's
precision. [Ball.SetPrec] changes only the precision field; the midpoint
keeps its exact bits until the next operation rounds them.

# Conversions

The package provides methods for converting balls:

  - from/to string:
    [Parse], [ParsePrec], [Ball.String], [Ball.Format].
  - from int64, uint64, float64:
    [NewFromInt64], [NewFromUint64], [NewFromFloat64] and their Prec
    variants.
  - to float64:
    [Ball.Midpoint], [Ball.Radius].
  - to the backend representation:
    [Ball.MidFloat], [Ball.RadFloat].

Native values convert exactly: integers are always representable, and a
float64 is reproduced bit for bit rather than through a decimal round
trip, so the radius of a converted native value is zero. String conversion
rounds to the requested precision and, when rounding occurred, sets the
radius to the exact distance to the neighboring representable value on the
far side of the rounding.

See the documentation for each method for more details.

# Operations

Operations follow the [big.Float] receiver convention: z.Add(x, y) sets z
to x + y and returns z, so chains read naturally and storage is reused.
The same method serves the in-place form, z.Add(z, y), and the binary
form, new(Ball).Add(x, y).

Addition, subtraction, and multiplication are provided between balls and
between a ball and each of the three native families int64, uint64, and
float64, including the reversed subtraction [Ball.SubFromInt64],
[Ball.SubFromUint64], and [Ball.SubFromFloat64]. [Ball.Neg] flips the
midpoint sign without rounding. [Ball.AddError] widens the radius by an
absolute error term. [Ball.Cos] evaluates cosine with a sound output
radius.

The radius of a result covers the operand radii, scaled by the partner
midpoints for multiplication, plus half an ulp of the result midpoint
whenever the midpoint rounding was inexact.

# Special values

Infinite midpoints are propagated by arithmetic. Indeterminate forms,
such as inf - inf, 0 * inf, or any operation on a NaN ball, produce a NaN
ball rather than an error or a panic. A NaN ball reports [Ball.IsNaN],
converts to NaN, prints as nan, and absorbs every further operation.

# Errors

All methods are panic-free except the Must variants.
Errors are returned in the following cases:

  - Invalid Argument, [ErrInvalidArgument].
    A string does not match the numeric grammar, or the error term passed
    to [Ball.AddError] is NaN or negative.

  - Invalid Precision, [ErrInvalidPrecision].
    A precision outside [MinPrec] through [MaxPrec] is requested.

  - Underflow, [ErrUnderflow].
    A parsed value or its radius falls below the conversion exponent
    floor, which matches the float64 normal range.

Failed operations leave their receiver untouched; validation happens
before the first write.

[big.Float]: https://pkg.go.dev/math/big#Float
*/
package ball
