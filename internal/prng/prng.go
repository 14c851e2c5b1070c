// Package prng provides the two random sources the engine is allowed to
// use: a cryptographically secure one for anything where soundness
// matters (VOLE setup, Δ, PIT challenges), and a deterministic one for
// tests that need byte-for-byte reproducible tapes.
//
// Nothing in this package is a package-level/global generator — per the
// design notes in spec §9, every caller injects the Source it wants,
// which keeps tests deterministic without reaching for math/rand's
// default source.
package prng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Source produces uniform random 64-bit values. Every quantity this engine
// samples — field elements, bits, Δ — lives in a power-of-two-sized range,
// so callers derive bounded values by masking the low bits of Uint64()
// rather than needing rejection sampling for arbitrary bounds.
type Source interface {
	// Uint64 returns a uniform value in [0, 2^64).
	Uint64() uint64
}

// cryptoSource draws from crypto/rand. Use this whenever the sampled
// values feed into Δ, u, v, or a PIT challenge — anywhere a real
// adversary could exploit predictability.
type cryptoSource struct{}

// CryptoSource returns the process's cryptographically secure Source.
func CryptoSource() Source { return cryptoSource{} }

func (cryptoSource) Uint64() uint64 {
	var buf [8]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		panic(fmt.Sprintf("prng: reading entropy: %v", err))
	}
	return binary.LittleEndian.Uint64(buf[:])
}

// deterministicSource draws from a ChaCha20 keystream seeded from a fixed
// 32-byte key, giving reproducible sequences across runs. Only meant for
// tests; NewDeterministicSource panics on a malformed seed since a broken
// deterministic fixture is a test-authoring bug, not a runtime condition
// to recover from.
type deterministicSource struct {
	cipher *chacha20.Cipher
}

// NewDeterministicSource builds a Source from a 32-byte seed. The same
// seed always produces the same sequence of draws.
func NewDeterministicSource(seed [32]byte) Source {
	var nonce [chacha20.NonceSize]byte
	cipher, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic(fmt.Sprintf("prng: constructing deterministic source: %v", err))
	}
	return &deterministicSource{cipher: cipher}
}

func (d *deterministicSource) Uint64() uint64 {
	var buf [8]byte
	d.cipher.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// Bits64 returns n (0..64) uniform random bits packed into the low bits
// of the result, masking the high bits of a single Uint64 draw.
func Bits64(s Source, n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n >= 64 {
		return s.Uint64()
	}
	return s.Uint64() & ((uint64(1) << uint(n)) - 1)
}

// Bit returns a single uniform random bit.
func Bit(s Source) uint64 {
	return s.Uint64() & 1
}
