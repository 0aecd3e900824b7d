package decimal

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

// decimal128 is the context used for operations whose exact result
// has no finite decimal expansion.
var decimal128 = apd.Context{
	Precision:   34,
	MaxExponent: apd.MaxExponent,
	MinExponent: apd.MinExponent,
	Traps:       apd.DefaultTraps,
	Rounding:    apd.RoundHalfEven,
}

// NewFromAPD converts an [apd.Decimal] to a number.
// The coefficient and the exponent are kept as is.
//
// NewFromAPD returns an error wrapping [ErrInvalidDecimal] if x is
// NaN or infinite.
func NewFromAPD(x *apd.Decimal) (Number, error) {
	switch {
	case x == nil:
		return Number{}, fmt.Errorf("converting nil %T: %w", x, ErrUnsupportedOperand)
	case x.Form != apd.Finite:
		return Number{}, fmt.Errorf("converting %v: %w", x, ErrInvalidDecimal)
	}
	sign := 1
	if x.Negative {
		sign = -1
	}
	return newNumber(sign, x.Coeff.MathBigInt(), int(x.Exponent)), nil
}

// APD converts d to an [apd.Decimal] with the same coefficient and exponent.
//
// APD returns an error wrapping [ErrExponentRange] if the exponent
// does not fit in int32.
func (d Number) APD() (*apd.Decimal, error) {
	if d.exp < math.MinInt32 || d.exp > math.MaxInt32 {
		return nil, fmt.Errorf("%v.APD(): %w", d, ErrExponentRange)
	}
	return newAPD(d.signed(), d.exp), nil
}

func newAPD(coef *big.Int, exp int) *apd.Decimal {
	return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(coef), int32(exp))
}

// quoInexact returns the quotient of non-zero numbers
// rounded to 34 significant digits.
func quoInexact(d, e Number) (Number, error) {
	x := newAPD(d.signed(), 0)
	y := newAPD(e.signed(), 0)
	z := new(apd.Decimal)
	if _, err := decimal128.Quo(z, x, y); err != nil {
		return Number{}, fmt.Errorf("%v / %v: %w", d, e, err)
	}
	f, err := NewFromAPD(z)
	if err != nil {
		return Number{}, fmt.Errorf("%v / %v: %w", d, e, err)
	}
	return f.shift(d.exp - e.exp), nil
}

// powFrac returns d raised to the non-integral power of e,
// where d is positive.
//
// With d = m * 10^k, the result is m^e * 10^(k*e). The power of ten is
// split into an integral part, which becomes the result exponent,
// and a fractional part, which scales the magnitude.
func powFrac(d, e Number) (Number, error) {
	power := New(int64(d.exp), 0).Mul(e)
	whole := power.Trunc(0)
	if power.Less(whole) {
		whole = whole.Sub(New(1, 0))
	}
	shift, ok := whole.Int64()
	if !ok || shift < math.MinInt32 || shift > math.MaxInt32 {
		return Number{}, fmt.Errorf("%v ** %v: %w", d, e, ErrExponentRange)
	}
	frac := power.Sub(whole)

	y, err := e.APD()
	if err != nil {
		return Number{}, fmt.Errorf("%v ** %v: %w", d, e, err)
	}
	x := newAPD(d.mag, 0)
	z := new(apd.Decimal)
	if _, err := decimal128.Pow(z, x, y); err != nil {
		return Number{}, fmt.Errorf("%v ** %v: %w", d, e, err)
	}

	if !frac.IsZero() {
		f, err := frac.APD()
		if err != nil {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, e, err)
		}
		t := new(apd.Decimal)
		if _, err := decimal128.Pow(t, apd.New(10, 0), f); err != nil {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, e, err)
		}
		if _, err := decimal128.Mul(z, z, t); err != nil {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, e, err)
		}
	}

	z.Reduce(z)
	f, err := NewFromAPD(z)
	if err != nil {
		return Number{}, fmt.Errorf("%v ** %v: %w", d, e, err)
	}
	return f.shift(int(shift)), nil
}
