// Package field implements arithmetic over the characteristic-2 extension
// field GF(2^m) used by the VOLE commit/verify engine.
//
// Elements are represented as non-negative integers in [0, 2^m), read as
// GF(2)-polynomials of degree < m. Addition and subtraction both collapse to
// XOR; multiplication is carry-less (shift-and-conditional-XOR) reduced
// modulo a fixed irreducible polynomial of degree m. Only a small allowlist
// of extension degrees is supported — each one needs its own hand-verified
// irreducible polynomial, so degrees outside the allowlist are rejected at
// construction time rather than silently accepted.
package field

import (
	"fmt"

	"github.com/oblivexp/volesudoku/internal/prng"
)

// Config is an immutable parameter set for GF(2^m): the extension degree m
// and the integer encoding of the degree-m irreducible polynomial over
// GF(2). Construct one with NewConfig; the zero value is not valid.
type Config struct {
	m int

	// irrPoly holds the irreducible polynomial's coefficients below its
	// x^m term. For m < 64 the x^m bit itself is also stored (it fits),
	// matching the prototype's convention and letting Mul cancel an
	// overflow bit with a single XOR. For m = 64 the x^m bit does not fit
	// in a uint64 and is treated as implicit by mulWide.
	irrPoly uint64
}

// irreducibles maps each supported extension degree to its irreducible
// polynomial encoding.
//
// m=8 is the AES polynomial x^8+x^4+x^3+x+1 (0x11B), the mandatory fixture
// from spec §4.1, stored with its x^8 bit included.
//
// m=64 is x^64+x^4+x^3+x+1 — the same trinomial-plus-one shape lifted to
// 64 bits, a standard irreducible choice for GF(2^64) carry-less
// arithmetic. Its x^64 bit is implicit (see mulWide); only the low bits
// (0x1B) are stored.
var irreducibles = map[int]uint64{
	8:  0x11B,
	64: 0x1B,
}

// supportedDegrees is the allowlist from spec §3: a fixed, hand-verified
// set of extension degrees. Implementations MUST support m >= 64 for
// non-trivial Sudoku-validator soundness (spec §4.7); m=8 is kept for
// tests and for the Check0 validator, whose {1..9} constants are only
// verified for m=8 (spec §4.8, §9).
var supportedDegrees = []int{8, 64}

// NewConfig constructs a Config for GF(2^m). m must be one of the allowed
// extension degrees; any other value is a caller mistake, reported as an
// error rather than silently rounding to the nearest supported degree.
func NewConfig(m int) (*Config, error) {
	irr, ok := irreducibles[m]
	if !ok {
		return nil, fmt.Errorf("field: unsupported extension degree %d, must be one of %v", m, supportedDegrees)
	}
	return &Config{m: m, irrPoly: irr}, nil
}

// M returns the extension degree.
func (c *Config) M() int { return c.m }

// Add returns a XOR b, the field's addition (and subtraction — see Sub).
func (c *Config) Add(a, b uint64) uint64 { return a ^ b }

// Sub returns a XOR b. In characteristic 2, subtraction and addition
// coincide.
func (c *Config) Sub(a, b uint64) uint64 { return a ^ b }

// Mul returns the carry-less product of a and b reduced modulo the
// configured irreducible polynomial.
func (c *Config) Mul(a, b uint64) uint64 {
	if c.m == 64 {
		return mulWide(a, b, c.irrPoly)
	}
	var result uint64
	for b != 0 {
		if b&1 != 0 {
			result ^= a
		}
		b >>= 1
		a <<= 1
		if a>>uint(c.m) != 0 {
			a ^= c.irrPoly
		}
	}
	return result
}

// mulWide performs carry-less multiplication of two GF(2^64) elements
// modulo x^64+x^4+x^3+x+1 (irrLow holds the low bits, x^64 implicit).
//
// The m<64 path above shifts the single accumulator 'a' left one bit per
// round of 'b' and immediately folds any overflow past bit m back in; that
// does not work unmodified at m=64 because the overflow bit (bit 64)
// cannot be observed in a uint64. Instead this computes the full 127-bit
// carry-less product across a 128-bit (hi,lo) pair and then reduces it
// from the top down, one bit at a time, applying the same fold rule the
// narrow path uses implicitly.
func mulWide(a, b, irrLow uint64) uint64 {
	var lo, hi uint64
	aLo, aHi := a, uint64(0)
	for b != 0 {
		if b&1 != 0 {
			lo ^= aLo
			hi ^= aHi
		}
		b >>= 1
		aHi = (aHi << 1) | (aLo >> 63)
		aLo <<= 1
	}
	for i := 63; i >= 0; i-- {
		if (hi>>uint(i))&1 == 0 {
			continue
		}
		hi ^= uint64(1) << uint(i)
		if i == 0 {
			lo ^= irrLow
			continue
		}
		lo ^= irrLow << uint(i)
		hi ^= irrLow >> uint(64-i)
	}
	return lo
}

// Pow returns a^n via square-and-multiply.
func (c *Config) Pow(a, n uint64) uint64 {
	result := uint64(1)
	base := a
	for n != 0 {
		if n&1 != 0 {
			result = c.Mul(result, base)
		}
		base = c.Mul(base, base)
		n >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a via Fermat's little theorem:
// a^(2^m - 2). Undefined at a=0; this implementation returns 0 there,
// matching the prototype it was distilled from.
func (c *Config) Inv(a uint64) uint64 {
	if a == 0 {
		return 0
	}
	return c.Pow(a, c.maxElement()-1)
}

// maxElement returns 2^m - 1, the top element of the field, computed
// without overflow for m up to 64.
func (c *Config) maxElement() uint64 {
	if c.m == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(c.m)) - 1
}

// BitDec decomposes i into d bits, LSB first.
func (c *Config) BitDec(i uint64, d int) []uint64 {
	b := make([]uint64, d)
	for j := 0; j < d; j++ {
		b[j] = i & 1
		i >>= 1
	}
	return b
}

// NumRec reconstructs sum(bits[j] * 2^j) from a little-endian bit slice.
func (c *Config) NumRec(bits []uint64) uint64 {
	var result uint64
	for j, bit := range bits {
		result += bit << uint(j)
	}
	return result
}

// RandomElement draws a uniform element of the field from rng.
func (c *Config) RandomElement(rng prng.Source) uint64 {
	return prng.Bits64(rng, c.m)
}

// RandomBit draws a uniform bit from rng.
func (c *Config) RandomBit(rng prng.Source) uint64 {
	return prng.Bit(rng)
}
