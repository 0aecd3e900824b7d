package decimal

import "fmt"

// MustQuo is like [Number.Quo] but panics if the quotient cannot be computed.
func (d Number) MustQuo(e Number) Number {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("Quo(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustFloorDiv is like [Number.FloorDiv] but panics if the quotient cannot be computed.
func (d Number) MustFloorDiv(e Number) Number {
	f, err := d.FloorDiv(e)
	if err != nil {
		panic(fmt.Sprintf("FloorDiv(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustMod is like [Number.Mod] but panics if the remainder cannot be computed.
func (d Number) MustMod(e Number) Number {
	f, err := d.Mod(e)
	if err != nil {
		panic(fmt.Sprintf("Mod(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustPow is like [Number.Pow] but panics if the power cannot be computed.
func (d Number) MustPow(e Number) Number {
	f, err := d.Pow(e)
	if err != nil {
		panic(fmt.Sprintf("Pow(%v, %v) failed: %v", d, e, err))
	}
	return f
}

// MustPowInt is like [Number.PowInt] but panics if the power cannot be computed.
func (d Number) MustPowInt(n int64) Number {
	f, err := d.PowInt(n)
	if err != nil {
		panic(fmt.Sprintf("PowInt(%v, %v) failed: %v", d, n, err))
	}
	return f
}

// MustNewFromFloat64 is like [NewFromFloat64] but panics if the float is NaN or infinite.
func MustNewFromFloat64(f float64) Number {
	d, err := NewFromFloat64(f)
	if err != nil {
		panic(fmt.Sprintf("NewFromFloat64(%v) failed: %v", f, err))
	}
	return d
}
