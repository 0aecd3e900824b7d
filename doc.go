/*
Package decimal implements immutable exact decimal numbers of arbitrary precision.
It is designed for scientific and measurement code where values such as 1.2
must be stored and combined without binary floating-point error.

# Representation

[Number] is a struct with three fields:

  - Sign: -1, 0 or +1.
  - Magnitude: an arbitrary-precision non-negative integer holding
    the significant digits of the number.
  - Exponent: a signed integer indicating the power of ten the magnitude
    is multiplied by.
    For example, a number with a magnitude of 12345 and an exponent of -2
    represents the value 123.45.

The numerical value of a number is calculated as:

	Sign * Magnitude * 10^Exponent

In this approach, the same numeric value can have multiple representations.
For example, 1.2 and 1.20 are stored as 12e-1 and 120e-2.
They compare as equal, but the stored digits are preserved, so the
number of significant digits written by the user survives parsing.
The only exception is zero, which is always stored with exponent 0.

Special values such as [NaN], [Infinity], or [negative zeros] are not supported.

# Conversions

The package provides functions for converting numbers:

  - from/to string:
    [Parse], [Number.String], [Number.GoString], [Number.Format].
  - from/to float64:
    [NewFromFloat64], [Number.Float64].
  - from/to integers:
    [New], [NewFromInt64], [NewFromBigInt], [Number.Int64], [Number.BigInt].
  - from/to [apd.Decimal]:
    [NewFromAPD], [Number.APD].
  - from any supported value:
    [NewFromValue].

Integers are normalized: trailing zeros are moved into the exponent,
so 1200 is stored as 12e2. Strings and floats keep their trailing zeros,
so "1.20" is stored as 120e-2 and 10.0 as 100e-1.
Floats are converted through their shortest decimal text,
so 1.1 is 11e-1 and not the exact binary value.

# Operations

Operands are aligned to the smaller of their exponents before
addition, subtraction and comparison.
The following operations are exact:

  - [Number.Add], [Number.Sub], [Number.Mul].
  - [Number.FloorDiv], [Number.Mod], [Number.DivMod].
  - [Number.PowInt] and [Number.Pow] with a non-negative integral power.
  - [Number.Quo], when the quotient has a finite decimal expansion.

[Number.Quo] with a non-terminating quotient, such as 1 / 3, and [Number.Pow]
with a non-integral power are rounded to 34 significant digits
using half-to-even rounding, the same as the IEEE 754 decimal128 format.

# Rounding

The package provides several methods for explicit rounding to a given number
of digits after the decimal point:

  - half-up rounding:
    [Number.Round].
  - rounding the magnitude up, away from zero:
    [Number.Ceil].
  - rounding the magnitude down, towards zero:
    [Number.Floor], [Number.Trunc].

All of them keep the sign of the number, so the ceiling of -1.25 is -2.

A number that already has no more digits than requested is returned unchanged.

# Errors

All methods are pure. Only the Must* helpers panic.
Errors wrap one of the exported sentinel errors and can be checked
with [errors.Is]:

  - [ErrDivisionByZero]: [Number.Quo], [Number.FloorDiv], [Number.Mod],
    [Number.DivMod] with a zero divisor, and zero raised to a negative power.
  - [ErrInvalidOperation]: a negative number raised to a non-integral power.
  - [ErrInvalidDecimal]: malformed text, NaN or infinite floats.
  - [ErrUnsupportedOperand]: values of unsupported types passed to [NewFromValue].
  - [ErrExponentRange]: exponents that do not fit a conversion or a power.
  - [ErrInexactRescale]: [Number.Rescale] that would drop non-zero digits.

[Infinity]: https://en.wikipedia.org/wiki/Infinity#Computing
[NaN]: https://en.wikipedia.org/wiki/NaN
[negative zeros]: https://en.wikipedia.org/wiki/Signed_zero
[apd.Decimal]: https://pkg.go.dev/github.com/cockroachdb/apd/v3#Decimal
*/
package decimal
