package decimal

import (
	"math/big"
	"sync"
)

var (
	bzero = big.NewInt(0)
	bone  = big.NewInt(1)
	bfive = big.NewInt(5)
	bten  = big.NewInt(10)
)

// bpow10 is a cache of powers of 10, where bpow10[x] = 10^x.
// Cached values are shared and must never be modified.
var bpow10 = func() [100]*big.Int {
	var p [100]*big.Int
	p[0] = big.NewInt(1)
	for i := 1; i < len(p); i++ {
		p[i] = new(big.Int).Mul(p[i-1], bten)
	}
	return p
}()

// pow10 returns 10^n.
// If n is negative, the result is unpredictable.
// The result must not be modified.
func pow10(n int) *big.Int {
	if n < len(bpow10) {
		return bpow10[n]
	}
	return new(big.Int).Exp(bten, big.NewInt(int64(n)), nil)
}

// lsh (Left Shift) returns a new integer equal to x * 10^shift.
func lsh(x *big.Int, shift int) *big.Int {
	z := new(big.Int)
	if shift <= 0 {
		return z.Set(x)
	}
	return z.Mul(x, pow10(shift))
}

// quoRemPow10 returns q = ⌊x / 10^shift⌋ and r = x - q * 10^shift.
// x must be non-negative.
func quoRemPow10(x *big.Int, shift int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	switch {
	case shift <= 0:
		q.Set(x)
		return q, r
	case shift > prec(x): // 10^shift > x
		r.Set(x)
		return q, r
	}
	q.QuoRem(x, pow10(shift), r)
	return q, r
}

// rshDown (Right Shift) returns ⌊x / 10^shift⌋, rounding towards zero.
func rshDown(x *big.Int, shift int) *big.Int {
	q, _ := quoRemPow10(x, shift)
	return q
}

// rshUp (Right Shift) returns ⌈x / 10^shift⌉, rounding away from zero.
func rshUp(x *big.Int, shift int) *big.Int {
	q, r := quoRemPow10(x, shift)
	if r.Sign() > 0 {
		q.Add(q, bone)
	}
	return q
}

// rshHalfUp (Right Shift) returns round(x / 10^shift) using "half up" rule:
// an exact half is rounded away from zero.
func rshHalfUp(x *big.Int, shift int) *big.Int {
	q, r := quoRemPow10(x, shift)
	if r.Sign() == 0 {
		return q
	}
	if shift > prec(x) { // r < 10^(shift-1), which is less than a half
		return q
	}
	r.Lsh(r, 1) // r = r * 2
	if r.Cmp(pow10(shift)) >= 0 {
		q.Add(q, bone)
	}
	return q
}

// floorQuoRem returns q = ⌊x / y⌋ and r = x - q * y.
// Unlike [big.Int.QuoRem], the quotient is rounded towards negative infinity,
// so r has the sign of y.
func floorQuoRem(x, y *big.Int) (q, r *big.Int) {
	q, r = new(big.Int), new(big.Int)
	q.QuoRem(x, y, r)
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, bone)
		r.Add(r, y)
	}
	return q, r
}

// prec returns length of x in decimal digits.
// prec assumes that 0 has no digits.
// If x is negative, the result is unpredictable.
//
// prec(x) is significantly faster than len(x.String()),
// if x has less than len(bpow10) digits.
func prec(x *big.Int) int {
	// Special case
	if x.Cmp(bpow10[len(bpow10)-1]) > 0 {
		return len(x.Text(10))
	}
	// General case
	left, right := 0, len(bpow10)
	for left < right {
		mid := (left + right) / 2
		if x.Cmp(bpow10[mid]) < 0 {
			right = mid
		} else {
			left = mid + 1
		}
	}
	return left
}

// ntz returns number of trailing zeros in x.
// ntz assumes that 0 has no trailing zeros.
func ntz(x *big.Int) int {
	if x.Sign() == 0 {
		return 0
	}
	z := getBint()
	defer putBint(z)
	q := getBint()
	defer putBint(q)
	r := getBint()
	defer putBint(r)
	z.Set(x)
	n := 0
	for _, step := range [...]int{16, 4, 1} {
		y := bpow10[step]
		for {
			q.QuoRem(z, y, r)
			if r.Sign() != 0 {
				break
			}
			z.Set(q)
			n += step
		}
	}
	return n
}

// nfives removes all factors of 5 from x and returns their number.
// x must be positive.
func nfives(x *big.Int) int {
	q := getBint()
	defer putBint(q)
	r := getBint()
	defer putBint(r)
	n := 0
	for {
		q.QuoRem(x, bfive, r)
		if r.Sign() != 0 {
			return n
		}
		x.Set(q)
		n++
	}
}

// bpool is a cache of reusable *big.Int instances.
var bpool = sync.Pool{
	New: func() any {
		return new(big.Int)
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *big.Int {
	return bpool.Get().(*big.Int)
}

// putBint returns the *big.Int into the pool.
func putBint(b *big.Int) {
	bpool.Put(b)
}
