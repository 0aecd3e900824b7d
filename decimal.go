package decimal

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Number type is an exact decimal number.
// The zero value is the number 0 and is ready to use.
//
// Number is immutable: no method modifies its receiver or its arguments,
// so it is safe for concurrent use by multiple goroutines.
//
// A number is a struct with three parameters:
//   - Sign: -1, 0 or +1.
//   - Magnitude: an arbitrary-precision non-negative integer.
//   - Exponent: a signed integer indicating the power of ten
//     the magnitude is multiplied by.
//
// For example, values are represented as follows:
//
//	| Value  | Sign | Magnitude | Exponent | String |
//	| ------ | ---- | --------- | -------- | ------ |
//	|   1200 |   +1 |        12 |        2 |   12e2 |
//	|   -1.2 |   -1 |        12 |       -1 | -12e-1 |
//	|   1.20 |   +1 |       120 |       -2 | 120e-2 |
//	|      0 |    0 |         0 |        0 |    0e0 |
//
// A magnitude is never normalized implicitly, so 1.2 and 1.20 are
// different representations of equal values. The only exception is zero,
// which always has exponent 0.
type Number struct {
	sign int      // -1, 0 or +1
	mag  *big.Int // nil means zero; shared between values and never modified
	exp  int
}

const maxParsedExp = 999_999_999

var (
	// ErrUnsupportedOperand is returned when a value cannot be converted to a Number.
	ErrUnsupportedOperand = errors.New("unsupported operand type")
	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidDecimal is returned for malformed decimal text and non-finite values.
	ErrInvalidDecimal = errors.New("invalid decimal")
	// ErrInvalidOperation is returned for a non-integral power of a negative number.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrExponentRange is returned when an exponent does not fit the target range.
	ErrExponentRange = errors.New("exponent out of range")
	// ErrInexactRescale is returned when rescaling would discard non-zero digits.
	ErrInexactRescale = errors.New("inexact rescale")
)

// newNumber creates a new number.
// The magnitude is retained and must not be modified afterwards.
// If the magnitude is zero, the sign and the exponent are ignored.
func newNumber(sign int, mag *big.Int, exp int) Number {
	if mag == nil || mag.Sign() == 0 {
		return Number{}
	}
	return Number{sign: sign, mag: mag, exp: exp}
}

// newFromSigned creates a new number from a signed coefficient.
// The coefficient is retained and must not be modified afterwards.
func newFromSigned(coef *big.Int, exp int) Number {
	sign := coef.Sign()
	coef.Abs(coef)
	return newNumber(sign, coef, exp)
}

// New returns a number equal to coef * 10^exp.
// Trailing zeros of coef are kept.
//
//	New(12, 2)   // 12e2
//	New(-120, -2) // -120e-2
func New(coef int64, exp int) Number {
	return newFromSigned(big.NewInt(coef), exp)
}

// NewFromParts returns a number built from an explicit sign, magnitude and exponent.
// The magnitude is copied and kept as is, with no trailing zeros removed.
// NewFromParts returns an error if:
//   - the magnitude is nil or negative;
//   - the sign is not -1, 0 or +1;
//   - the sign is 0 and the magnitude is not.
func NewFromParts(sign int, mag *big.Int, exp int) (Number, error) {
	switch {
	case mag == nil:
		return Number{}, fmt.Errorf("nil magnitude: %w", ErrInvalidDecimal)
	case mag.Sign() < 0:
		return Number{}, fmt.Errorf("negative magnitude %v: %w", mag, ErrInvalidDecimal)
	case sign < -1 || sign > 1:
		return Number{}, fmt.Errorf("sign %v out of range: %w", sign, ErrInvalidDecimal)
	case sign == 0 && mag.Sign() != 0:
		return Number{}, fmt.Errorf("zero sign with magnitude %v: %w", mag, ErrInvalidDecimal)
	case sign != 0 && mag.Sign() == 0:
		return Number{}, fmt.Errorf("sign %v with zero magnitude: %w", sign, ErrInvalidDecimal)
	}
	return newNumber(sign, new(big.Int).Set(mag), exp), nil
}

// NewFromBigInt converts an integer to a number.
// Trailing zeros are moved into the exponent, so 1200 becomes 12e2.
// A nil integer is treated as 0.
func NewFromBigInt(n *big.Int) Number {
	if n == nil || n.Sign() == 0 {
		return Number{}
	}
	coef := new(big.Int).Set(n)
	exp := ntz(coef)
	if exp > 0 {
		coef.Quo(coef, pow10(exp))
	}
	return newFromSigned(coef, exp)
}

// NewFromInt64 converts an integer to a number.
// See also method [Number.Int64].
func NewFromInt64(n int64) Number {
	return NewFromBigInt(big.NewInt(n))
}

// NewFromFloat64 converts a float to a number.
// The number is built from the shortest decimal text that round-trips
// to the same float, so 1.2 becomes 12e-1 and 10.0 becomes 100e-1.
// See also method [Number.Float64].
//
// NewFromFloat64 returns an error if the float is NaN or infinite.
func NewFromFloat64(f float64) (Number, error) {
	return newFromFloat(f, 64)
}

func newFromFloat(f float64, bitSize int) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, fmt.Errorf("converting %v: %w", f, ErrInvalidDecimal)
	}
	return parse(formatFloat(f, bitSize))
}

// formatFloat returns the shortest text of f in plain notation with at least
// one fractional digit, or in scientific notation for very large and
// very small magnitudes.
func formatFloat(f float64, bitSize int) string {
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bitSize)
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// NewFromValue converts a value of a supported type to a number.
// Supported types are Number, *Number, all integer types, *big.Int,
// float32, float64, string and *apd.Decimal.
//
// NewFromValue returns an error wrapping [ErrUnsupportedOperand]
// for any other type, including nil pointers.
func NewFromValue(v any) (Number, error) {
	switch v := v.(type) {
	case Number:
		return v, nil
	case *Number:
		if v != nil {
			return *v, nil
		}
	case int:
		return NewFromInt64(int64(v)), nil
	case int8:
		return NewFromInt64(int64(v)), nil
	case int16:
		return NewFromInt64(int64(v)), nil
	case int32:
		return NewFromInt64(int64(v)), nil
	case int64:
		return NewFromInt64(v), nil
	case uint:
		return NewFromBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint8:
		return NewFromBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint16:
		return NewFromBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint32:
		return NewFromBigInt(new(big.Int).SetUint64(uint64(v))), nil
	case uint64:
		return NewFromBigInt(new(big.Int).SetUint64(v)), nil
	case *big.Int:
		if v != nil {
			return NewFromBigInt(v), nil
		}
	case float32:
		return newFromFloat(float64(v), 32)
	case float64:
		return NewFromFloat64(v)
	case string:
		return Parse(v)
	case *apd.Decimal:
		return NewFromAPD(v)
	}
	return Number{}, fmt.Errorf("converting %T: %w", v, ErrUnsupportedOperand)
}

// Parse converts a string to a number.
// The string may be in plain or scientific notation:
//
//	[sign] digits [ "." [digits] ] [ ("e" | "E") [sign] digits ]
//	[sign] "." digits [ ("e" | "E") [sign] digits ]
//
// Trailing zeros are kept, so "1.20" becomes 120e-2.
// See also method [Number.String].
//
// Parse returns an error wrapping [ErrInvalidDecimal] if the string
// is not a valid number, or [ErrExponentRange] if the exponent
// exceeds 999,999,999 in absolute value.
func Parse(s string) (Number, error) {
	return parse(s)
}

func parse(s string) (Number, error) {
	var (
		pos     int
		width   = len(s)
		neg     bool
		digits  = make([]byte, 0, width)
		hascoef bool
		frac    int
		hase    bool
		eneg    bool
		hasexp  bool
		exp     int
	)

	// Sign
	if pos < width {
		switch s[pos] {
		case '-':
			neg = true
			pos++
		case '+':
			pos++
		}
	}

	// Integer
	for pos < width && isDigit(s[pos]) {
		digits = append(digits, s[pos])
		hascoef = true
		pos++
	}

	// Fraction
	if pos < width && s[pos] == '.' {
		pos++
		for pos < width && isDigit(s[pos]) {
			digits = append(digits, s[pos])
			hascoef = true
			frac++
			pos++
		}
	}

	// Exponent
	if pos < width && (s[pos] == 'e' || s[pos] == 'E') {
		hase = true
		pos++
		if pos < width {
			switch s[pos] {
			case '-':
				eneg = true
				pos++
			case '+':
				pos++
			}
		}
		for pos < width && isDigit(s[pos]) {
			exp = exp*10 + int(s[pos]-'0')
			if exp > maxParsedExp {
				return Number{}, fmt.Errorf("exponent of %q: %w", s, ErrExponentRange)
			}
			hasexp = true
			pos++
		}
	}

	if pos != width {
		return Number{}, fmt.Errorf("invalid character %q: %w", s[pos], ErrInvalidDecimal)
	}
	if !hascoef {
		return Number{}, fmt.Errorf("no coefficient in %q: %w", s, ErrInvalidDecimal)
	}
	if hase && !hasexp {
		return Number{}, fmt.Errorf("no exponent in %q: %w", s, ErrInvalidDecimal)
	}
	if eneg {
		exp = -exp
	}

	mag, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return Number{}, fmt.Errorf("coefficient of %q: %w", s, ErrInvalidDecimal)
	}
	sign := 1
	if neg {
		sign = -1
	}
	return newNumber(sign, mag, exp-frac), nil
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding numbers.
func MustParse(s string) Number {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("Parse(%q) failed: %v", s, err))
	}
	return d
}

// String implements the [fmt.Stringer] interface and returns
// a string representation of the number in the form [-]<mag>e<exp>.
// The string is an exact representation of the stored triple:
//
//	| Value  | String |
//	| ------ | ------ |
//	|   1200 |   12e2 |
//	|   -1.2 | -12e-1 |
//	|   1.20 | 120e-2 |
//	|      0 |    0e0 |
//
// See also functions [Parse] and [Number.Format].
func (d Number) String() string {
	return string(d.appendSci(make([]byte, 0, 24), true))
}

// appendSci appends [-]<mag>e<exp> to buf.
func (d Number) appendSci(buf []byte, withSign bool) []byte {
	if withSign && d.sign < 0 {
		buf = append(buf, '-')
	}
	buf = d.coef().Append(buf, 10)
	buf = append(buf, 'e')
	return strconv.AppendInt(buf, int64(d.exp), 10)
}

// GoString implements the [fmt.GoStringer] interface and returns
// a debugging representation such as decimal.Number(12e-1).
// The exponent is omitted when it is 0, as in decimal.Number(-12).
func (d Number) GoString() string {
	buf := make([]byte, 0, 32)
	buf = append(buf, "decimal.Number("...)
	if d.sign < 0 {
		buf = append(buf, '-')
	}
	buf = d.coef().Append(buf, 10)
	if d.exp != 0 {
		buf = append(buf, 'e')
		buf = strconv.AppendInt(buf, int64(d.exp), 10)
	}
	buf = append(buf, ')')
	return string(buf)
}

// plain returns the absolute value of d in plain notation
// with at least scale digits after the decimal point.
func (d Number) plain(scale int) string {
	digits := d.coef().Text(10)
	exp := d.exp
	if exp > 0 {
		digits += strings.Repeat("0", exp)
		exp = 0
	}
	frac := -exp
	if frac < scale {
		digits += strings.Repeat("0", scale-frac)
		frac = scale
	}
	if frac == 0 {
		return digits
	}
	if len(digits) <= frac {
		digits = strings.Repeat("0", frac-len(digits)+1) + digits
	}
	return digits[:len(digits)-frac] + "." + digits[len(digits)-frac:]
}

// Format implements the [fmt.Formatter] interface.
// The following format verbs are available:
//
//	| Verb   | Example     | Description         |
//	| ------ | ----------- | ------------------- |
//	| %s, %v | 12e-1       | Sign, mag, exponent |
//	| %q     | "12e-1"     | Quoted %s           |
//	| %f     | 1.2         | Plain notation      |
//	| %#v    | decimal.Number(12e-1) | Go syntax |
//
// The '-' format flag can be used with all verbs.
// The '+', ' ', '0' format flags can be used with all verbs except %q.
//
// Precision is only supported for %f verb.
// The value is rounded half-up to the requested number of digits
// after the decimal point.
func (d Number) Format(state fmt.State, verb rune) {
	// Go syntax
	if verb == 'v' && state.Flag('#') {
		fmt.Fprint(state, d.GoString())
		return
	}

	// Body
	var body string
	neg := d.IsNeg()
	switch verb {
	case 's', 'S', 'v', 'V', 'q', 'Q':
		body = string(d.appendSci(nil, false))
	case 'f', 'F':
		if p, ok := state.Precision(); ok {
			r := d.Round(p)
			neg = r.IsNeg()
			body = r.plain(p)
		} else {
			body = d.plain(0)
		}
	default:
		fmt.Fprintf(state, "%%!%c(decimal.Number=%s)", verb, d.String())
		return
	}

	// Sign
	var sign string
	switch {
	case neg:
		sign = "-"
	case state.Flag('+'):
		sign = "+"
	case state.Flag(' '):
		sign = " "
	}

	// Quotes
	quoted := verb == 'q' || verb == 'Q'
	if quoted {
		body = `"` + sign + body + `"`
		sign = ""
	}

	// Padding
	width := len(sign) + len(body)
	padding := 0
	if w, ok := state.Width(); ok && w > width {
		padding = w - width
	}

	var buf strings.Builder
	buf.Grow(width + padding)
	switch {
	case state.Flag('-'):
		buf.WriteString(sign)
		buf.WriteString(body)
		buf.WriteString(strings.Repeat(" ", padding))
	case state.Flag('0') && !quoted:
		buf.WriteString(sign)
		buf.WriteString(strings.Repeat("0", padding))
		buf.WriteString(body)
	default:
		buf.WriteString(strings.Repeat(" ", padding))
		buf.WriteString(sign)
		buf.WriteString(body)
	}
	fmt.Fprint(state, buf.String())
}

// MarshalText implements the [encoding.TextMarshaler] interface.
// See also method [Number.String].
func (d Number) MarshalText() ([]byte, error) {
	return d.appendSci(make([]byte, 0, 24), true), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
// See also function [Parse].
func (d *Number) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// coef returns the magnitude of d, which must not be modified.
func (d Number) coef() *big.Int {
	if d.mag == nil {
		return bzero
	}
	return d.mag
}

// signed returns a new integer equal to sign * magnitude.
func (d Number) signed() *big.Int {
	z := new(big.Int).Set(d.coef())
	if d.sign < 0 {
		z.Neg(z)
	}
	return z
}

// Mag returns a copy of the magnitude of d.
// See also methods [Number.Exp] and [Number.Sign].
func (d Number) Mag() *big.Int {
	return new(big.Int).Set(d.coef())
}

// Exp returns the exponent of d.
func (d Number) Exp() int {
	return d.exp
}

// Prec returns the number of digits in the magnitude.
// Prec returns 0 for zero.
//
//	| Value | Prec |
//	| ----- | ---- |
//	| 1200  |    2 |
//	| 1.20  |    3 |
//	| 0     |    0 |
func (d Number) Prec() int {
	return prec(d.coef())
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d = 0
//	+1 if d > 0
func (d Number) Sign() int {
	return d.sign
}

// IsZero returns:
//
//	true  if d = 0
//	false otherwise
func (d Number) IsZero() bool {
	return d.sign == 0
}

// IsPos returns:
//
//	true  if d > 0
//	false otherwise
func (d Number) IsPos() bool {
	return d.sign > 0
}

// IsNeg returns:
//
//	true  if d < 0
//	false otherwise
func (d Number) IsNeg() bool {
	return d.sign < 0
}

// Bool returns true if d is strictly positive.
// Note that negative numbers are false, like zero.
func (d Number) Bool() bool {
	return d.sign > 0
}

// IsInt returns true if the fractional part of d is equal to zero.
func (d Number) IsInt() bool {
	if d.IsZero() || d.exp >= 0 {
		return true
	}
	return ntz(d.mag) >= -d.exp
}

// Reduce returns a number equal to d with trailing zeros of the magnitude
// moved into the exponent.
//
//	| Value  | Reduced |
//	| ------ | ------- |
//	| 120e-2 |  12e-1  |
//	| 1200e0 |   12e2  |
func (d Number) Reduce() Number {
	n := ntz(d.coef())
	if n == 0 {
		return d
	}
	return newNumber(d.sign, new(big.Int).Quo(d.mag, pow10(n)), d.exp+n)
}

// Rescale returns a number equal to d expressed with the given exponent.
// Lowering the exponent appends zeros to the magnitude.
// Zero is always returned with exponent 0.
//
// Rescale returns an error wrapping [ErrInexactRescale] if raising
// the exponent would discard non-zero digits.
func (d Number) Rescale(exp int) (Number, error) {
	switch {
	case d.IsZero(), exp == d.exp:
		return d, nil
	case exp < d.exp:
		return newNumber(d.sign, lsh(d.mag, d.exp-exp), exp), nil
	}
	q, r := quoRemPow10(d.mag, exp-d.exp)
	if r.Sign() != 0 {
		return Number{}, fmt.Errorf("%v.Rescale(%v): %w", d, exp, ErrInexactRescale)
	}
	return newNumber(d.sign, q, exp), nil
}

// shift returns d * 10^n.
func (d Number) shift(n int) Number {
	if d.IsZero() {
		return d
	}
	return Number{sign: d.sign, mag: d.mag, exp: d.exp + n}
}

// BigInt returns the integer part of d, truncated towards zero.
func (d Number) BigInt() *big.Int {
	t := d.Trunc(0)
	z := t.signed()
	if t.exp > 0 {
		z.Mul(z, pow10(t.exp))
	}
	return z
}

// Int64 returns the integer part of d, truncated towards zero.
// If the result does not fit in int64, ok is false.
func (d Number) Int64() (i int64, ok bool) {
	if d.IsZero() {
		return 0, true
	}
	// Numbers with more than 19 integer digits never fit.
	if d.exp > 0 && d.exp+d.Prec() > 19 {
		return 0, false
	}
	z := d.BigInt()
	if !z.IsInt64() {
		return 0, false
	}
	return z.Int64(), true
}

// Float64 returns the nearest binary floating-point number rounded
// using "half to even" rule.
// If the result is infinite, ok is false.
// See also constructor [NewFromFloat64].
func (d Number) Float64() (f float64, ok bool) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil {
		return f, false
	}
	return f, true
}

// Neg returns a number with the opposite sign.
func (d Number) Neg() Number {
	return newNumber(-d.sign, d.mag, d.exp)
}

// Abs returns the absolute value of d.
func (d Number) Abs() Number {
	if d.sign < 0 {
		return d.Neg()
	}
	return d
}

// CopySign returns a number with the same magnitude as d and the sign of e.
// If e is zero, d is returned unchanged.
func (d Number) CopySign(e Number) Number {
	if e.IsZero() || d.sign == e.sign {
		return d
	}
	return d.Neg()
}

// Cmp compares numbers and returns:
//
//	-1 if d < e
//	 0 if d = e
//	+1 if d > e
//
// Numbers are compared by value, so 1.2 and 1.20 are equal.
func (d Number) Cmp(e Number) int {
	switch {
	case d.sign > e.sign:
		return 1
	case d.sign < e.sign:
		return -1
	case d.sign == 0:
		return 0
	}
	return d.sign * cmpAbs(d, e)
}

// CmpAbs compares absolute values of numbers and returns:
//
//	-1 if |d| < |e|
//	 0 if |d| = |e|
//	+1 if |d| > |e|
func (d Number) CmpAbs(e Number) int {
	switch {
	case d.IsZero() && e.IsZero():
		return 0
	case d.IsZero():
		return -1
	case e.IsZero():
		return 1
	}
	return cmpAbs(d, e)
}

// cmpAbs compares absolute values of non-zero numbers.
func cmpAbs(d, e Number) int {
	// Adjusted exponents
	dadj, eadj := d.Prec()+d.exp, e.Prec()+e.exp
	switch {
	case dadj > eadj:
		return 1
	case dadj < eadj:
		return -1
	}

	// Alignment
	dcoef, ecoef := d.mag, e.mag
	switch {
	case d.exp > e.exp:
		dcoef = lsh(dcoef, d.exp-e.exp)
	case d.exp < e.exp:
		ecoef = lsh(ecoef, e.exp-d.exp)
	}
	return dcoef.Cmp(ecoef)
}

// Equal returns true if d and e have the same value.
func (d Number) Equal(e Number) bool {
	return d.Cmp(e) == 0
}

// Less returns true if d < e.
func (d Number) Less(e Number) bool {
	return d.Cmp(e) < 0
}

// Max returns the larger number.
// If the numbers are equal, d is returned.
func (d Number) Max(e Number) Number {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Min returns the smaller number.
// If the numbers are equal, d is returned.
func (d Number) Min(e Number) Number {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}

// align returns signed coefficients of d and e expressed
// with the smaller of their exponents.
func align(d, e Number) (dcoef, ecoef *big.Int, exp int) {
	dcoef, ecoef = d.signed(), e.signed()
	switch {
	case d.exp > e.exp:
		dcoef.Mul(dcoef, pow10(d.exp-e.exp))
		return dcoef, ecoef, e.exp
	case d.exp < e.exp:
		ecoef.Mul(ecoef, pow10(e.exp-d.exp))
	}
	return dcoef, ecoef, d.exp
}

// Add returns the exact sum d + e.
// The result exponent is the smaller of the operand exponents.
func (d Number) Add(e Number) Number {
	switch {
	case e.IsZero():
		return d
	case d.IsZero():
		return e
	}
	dcoef, ecoef, exp := align(d, e)
	return newFromSigned(dcoef.Add(dcoef, ecoef), exp)
}

// Sub returns the exact difference d - e.
// The result exponent is the smaller of the operand exponents.
func (d Number) Sub(e Number) Number {
	return d.Add(e.Neg())
}

// Mul returns the exact product d * e.
// The result exponent is the sum of the operand exponents.
func (d Number) Mul(e Number) Number {
	if d.IsZero() || e.IsZero() {
		return Number{}
	}
	return newNumber(d.sign*e.sign, new(big.Int).Mul(d.mag, e.mag), d.exp+e.exp)
}

// Quo returns the quotient d / e.
// The quotient is exact whenever it has a finite decimal expansion,
// so 1 / 8 is 125e-3.
// Otherwise it is rounded half-to-even to 34 significant digits,
// so 1 / 3 is 3333333333333333333333333333333333e-34.
//
// Quo returns an error wrapping [ErrDivisionByZero] if e is zero.
func (d Number) Quo(e Number) (Number, error) {
	switch {
	case e.IsZero():
		return Number{}, fmt.Errorf("%v / %v: %w", d, e, ErrDivisionByZero)
	case d.IsZero():
		return Number{}, nil
	}
	if f, ok := quoExact(d, e); ok {
		return f, nil
	}
	return quoInexact(d, e)
}

// quoExact returns the quotient of non-zero numbers if its decimal
// expansion is finite, that is if the reduced divisor has no prime
// factors other than 2 and 5.
func quoExact(d, e Number) (Number, bool) {
	num := new(big.Int).Set(d.mag)
	den := new(big.Int).Set(e.mag)
	gcd := new(big.Int).GCD(nil, nil, num, den)
	num.Quo(num, gcd)
	den.Quo(den, gcd)

	// Factorization of the divisor
	twos := int(den.TrailingZeroBits())
	den.Rsh(den, uint(twos))
	fives := nfives(den)
	if den.Cmp(bone) != 0 {
		return Number{}, false
	}

	// num / (2^twos * 5^fives) = num * 2^(n-twos) * 5^(n-fives) / 10^n
	n := max(twos, fives)
	if n > twos {
		num.Lsh(num, uint(n-twos))
	}
	if n > fives {
		num.Mul(num, new(big.Int).Exp(bfive, big.NewInt(int64(n-fives)), nil))
	}
	return newNumber(d.sign*e.sign, num, d.exp-e.exp-n), true
}

// FloorDiv returns the floored quotient ⌊d / e⌋ of the magnitudes
// multiplied by 10^(d.Exp() - e.Exp()).
// For numbers with equal exponents this is the integer quotient
// rounded towards negative infinity.
//
// FloorDiv returns an error wrapping [ErrDivisionByZero] if e is zero.
// See also method [Number.DivMod].
func (d Number) FloorDiv(e Number) (Number, error) {
	q, _, err := d.DivMod(e)
	return q, err
}

// Mod returns the remainder r of the floored division,
// such that d.FloorDiv(e) * e + r = d exactly.
// The remainder has the exponent of d and the sign of e.
//
// Mod returns an error wrapping [ErrDivisionByZero] if e is zero.
// See also method [Number.DivMod].
func (d Number) Mod(e Number) (Number, error) {
	_, r, err := d.DivMod(e)
	return r, err
}

// DivMod returns the floored quotient and the remainder at once.
// See methods [Number.FloorDiv] and [Number.Mod].
func (d Number) DivMod(e Number) (q, r Number, err error) {
	if e.IsZero() {
		return Number{}, Number{}, fmt.Errorf("%v divmod %v: %w", d, e, ErrDivisionByZero)
	}
	qcoef, rcoef := floorQuoRem(d.signed(), e.signed())
	return newFromSigned(qcoef, d.exp-e.exp), newFromSigned(rcoef, d.exp), nil
}

// Pow returns d raised to the power of e.
// Integral powers are exact, apart from negative powers whose reciprocal
// has no finite decimal expansion.
// Non-integral powers are computed with 34 significant digits.
//
// Pow returns an error if:
//   - d is zero and e is negative ([ErrDivisionByZero]);
//   - d is negative and e is not an integer ([ErrInvalidOperation]);
//   - the result exponent is out of range ([ErrExponentRange]).
func (d Number) Pow(e Number) (Number, error) {
	switch {
	case e.IsZero():
		return New(1, 0), nil
	case d.IsZero():
		if e.IsNeg() {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, e, ErrDivisionByZero)
		}
		return Number{}, nil
	case e.IsInt():
		// Powers of ±1 do not depend on the size of e.
		if d.exp == 0 && d.mag.Cmp(bone) == 0 {
			if d.IsNeg() && e.isOdd() {
				return d, nil
			}
			return New(1, 0), nil
		}
		n, ok := e.Int64()
		if !ok {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, e, ErrExponentRange)
		}
		return d.PowInt(n)
	case d.IsNeg():
		return Number{}, fmt.Errorf("%v ** %v: non-integral power of negative number: %w", d, e, ErrInvalidOperation)
	}
	return powFrac(d, e)
}

// isOdd reports whether the integral number d is odd.
func (d Number) isOdd() bool {
	if d.IsZero() || d.exp > 0 {
		return false
	}
	q, _ := quoRemPow10(d.mag, -d.exp)
	return q.Bit(0) == 1
}

// PowInt returns d raised to the integer power of n.
// Negative powers are computed as 1 / d^|n|, see method [Number.Quo].
// 0^0 is 1.
func (d Number) PowInt(n int64) (Number, error) {
	switch {
	case n == 0:
		return New(1, 0), nil
	case d.IsZero():
		if n < 0 {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, n, ErrDivisionByZero)
		}
		return Number{}, nil
	case n < 0:
		if n == math.MinInt64 {
			return Number{}, fmt.Errorf("%v ** %v: %w", d, n, ErrExponentRange)
		}
		f, err := d.PowInt(-n)
		if err != nil {
			return Number{}, err
		}
		return New(1, 0).Quo(f)
	}

	exp, ok := mulExp(d.exp, n)
	if !ok {
		return Number{}, fmt.Errorf("%v ** %v: %w", d, n, ErrExponentRange)
	}
	sign := d.sign
	if n%2 == 0 {
		sign = 1
	}
	return newNumber(sign, new(big.Int).Exp(d.mag, big.NewInt(n), nil), exp), nil
}

// mulExp returns exp * n if it fits in int.
func mulExp(exp int, n int64) (int, bool) {
	if exp == 0 {
		return 0, true
	}
	p := int64(exp) * n
	if p/n != int64(exp) || p < math.MinInt || p > math.MaxInt {
		return 0, false
	}
	return int(p), true
}

// Floor returns d with its magnitude rounded down
// to the specified number of digits after the decimal point.
// The sign is kept, so negative numbers are rounded towards zero.
// If ndigits is negative, digits before the decimal point are rounded.
// If d already has no more than ndigits fractional digits,
// it is returned unchanged.
//
//	| Value | Floor(1) | Floor(0) | Floor(-1) |
//	| ----- | -------- | -------- | --------- |
//	|  1.25 |      1.2 |        1 |         0 |
//	| -1.25 |     -1.2 |       -1 |         0 |
func (d Number) Floor(ndigits int) Number {
	shift := -ndigits - d.exp
	if d.IsZero() || shift <= 0 {
		return d
	}
	return newNumber(d.sign, rshDown(d.mag, shift), -ndigits)
}

// Ceil returns d with its magnitude rounded up
// to the specified number of digits after the decimal point.
// The sign is kept, so negative numbers are rounded away from zero.
// If d already has no more than ndigits fractional digits,
// it is returned unchanged.
//
//	| Value | Ceil(1) | Ceil(0) | Ceil(-1) |
//	| ----- | ------- | ------- | -------- |
//	|  1.25 |     1.3 |       2 |       10 |
//	| -1.25 |    -1.3 |      -2 |      -10 |
func (d Number) Ceil(ndigits int) Number {
	shift := -ndigits - d.exp
	if d.IsZero() || shift <= 0 {
		return d
	}
	return newNumber(d.sign, rshUp(d.mag, shift), -ndigits)
}

// Round returns d rounded to the specified number of digits after
// the decimal point using "half up" rule: a tie is rounded away from zero.
// If d already has no more than ndigits fractional digits,
// it is returned unchanged.
//
//	| Value | Round(1) | Round(0) |
//	| ----- | -------- | -------- |
//	|  1.25 |      1.3 |        1 |
//	|  1.35 |      1.4 |        1 |
//	| -1.25 |     -1.3 |       -1 |
func (d Number) Round(ndigits int) Number {
	shift := -ndigits - d.exp
	if d.IsZero() || shift <= 0 {
		return d
	}
	return newNumber(d.sign, rshHalfUp(d.mag, shift), -ndigits)
}

// Trunc returns d rounded towards zero
// to the specified number of digits after the decimal point.
// If d already has no more than ndigits fractional digits,
// it is returned unchanged.
func (d Number) Trunc(ndigits int) Number {
	shift := -ndigits - d.exp
	if d.IsZero() || shift <= 0 {
		return d
	}
	return newNumber(d.sign, rshDown(d.mag, shift), -ndigits)
}
