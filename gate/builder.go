// Package gate implements the composite operations (Add, Sub, ScalarMul,
// AddConstant, Mul, Pow, NumRec, Check0) that compose committed wires into
// circuits, per spec §4.5.
//
// Builder plays the role gnark's frontend.API plays for a normal circuit:
// every composite operation is a method on it, it owns the paired
// Prover/Verifier calls that keep their cursors in lockstep, and it
// accumulates whether any check performed along the way failed so a
// validator can ask Accepted() once at the end instead of threading a
// bool through every call.
package gate

import (
	"fmt"

	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/internal/xlog"
	"github.com/oblivexp/volesudoku/vole"
)

var logger = xlog.Component("gate")

// Wire is a reference into the VOLE tapes: an index in [0, L). Wires are
// immutable once produced — a Builder method never mutates a Wire it has
// already returned, only allocates new ones.
type Wire int

// Builder composes gate-layer operations over one Prover/Verifier pair. A
// Builder must not be shared across goroutines (spec §5, inherited from
// the single Prover/Verifier pair it wraps).
type Builder struct {
	P *vole.Prover
	V *vole.Verifier
	F *field.Config

	accepted   bool
	rejections []string
}

// NewBuilder wraps a paired Prover/Verifier under one field configuration.
func NewBuilder(p *vole.Prover, v *vole.Verifier, f *field.Config) *Builder {
	return &Builder{P: p, V: v, F: f, accepted: true}
}

// Accepted reports whether every check_mul performed through this Builder
// has returned true so far. Opening checks are tracked separately by
// whatever validator calls Open, since those depend on revealed values the
// Builder itself never sees.
func (b *Builder) Accepted() bool { return b.accepted }

// Rejections returns a human-readable record of every failed check_mul,
// for diagnostics.
func (b *Builder) Rejections() []string { return b.rejections }

func (b *Builder) reject(reason string) {
	b.accepted = false
	b.rejections = append(b.rejections, reason)
	logger.Warn().Str("reason", reason).Msg("check_mul rejected")
}

func (b *Builder) mustLockstep(proverIdx, verifierIdx int) int {
	if proverIdx != verifierIdx {
		panic(fmt.Sprintf("gate: prover/verifier cursors diverged: %d != %d — calls were not paired in order", proverIdx, verifierIdx))
	}
	return proverIdx
}

// Commit fixes w at a fresh wire, pairing Prover.Commit with
// Verifier.UpdateQ.
func (b *Builder) Commit(w uint64) Wire {
	i, di := b.P.Commit(w)
	b.V.UpdateQ(i, di)
	logger.Debug().Int("wire", i).Msg("commit")
	return Wire(i)
}

// CommitBit is Commit specialized for a {0,1} value, used by the Sudoku
// circuit's per-cell bit decomposition.
func (b *Builder) CommitBit(bit uint64) Wire {
	return b.Commit(bit)
}

// Add left-folds the binary Add primitive over wires. At least two wires
// are required; a unary or empty call is a caller mistake (spec §4.5).
func (b *Builder) Add(wires ...Wire) Wire {
	if len(wires) < 2 {
		panic(fmt.Sprintf("gate: AddGate requires at least 2 inputs, got %d", len(wires)))
	}
	acc := b.addPair(wires[0], wires[1])
	for _, w := range wires[2:] {
		acc = b.addPair(acc, w)
	}
	return acc
}

func (b *Builder) addPair(a, c Wire) Wire {
	pi := b.P.Add(int(a), int(c))
	vi := b.V.Add(int(a), int(c))
	return Wire(b.mustLockstep(pi, vi))
}

// Sub allocates a - b. Identical to Add in characteristic 2, but kept as
// its own method for callers that want the subtraction naming to read
// clearly (e.g. the PIT validator's (r - x_i) terms).
func (b *Builder) Sub(a, c Wire) Wire {
	pi := b.P.Sub(int(a), int(c))
	vi := b.V.Sub(int(a), int(c))
	return Wire(b.mustLockstep(pi, vi))
}

// ScalarMul allocates k*a for a public scalar k.
func (b *Builder) ScalarMul(a Wire, k uint64) Wire {
	pi := b.P.ScalarMul(int(a), k)
	vi := b.V.ScalarMul(int(a), k)
	return Wire(b.mustLockstep(pi, vi))
}

// AddConstant allocates a + k for a public constant k.
func (b *Builder) AddConstant(a Wire, k uint64) Wire {
	pi := b.P.AddConstant(int(a), k)
	vi := b.V.AddConstant(int(a), k)
	return Wire(b.mustLockstep(pi, vi))
}

// Mul left-folds the binary Mul primitive over wires, running CheckMul at
// every step and recording (not panicking on) a rejection — a single
// false check_mul is fatal for the whole proof, but the proof's fatality
// is reported back through Accepted(), not by aborting circuit
// construction (spec §7: ProtocolError is recovered as a boolean).
func (b *Builder) Mul(wires ...Wire) Wire {
	if len(wires) < 2 {
		panic(fmt.Sprintf("gate: MulGate requires at least 2 inputs, got %d", len(wires)))
	}
	acc := b.mulPair(wires[0], wires[1])
	for _, w := range wires[2:] {
		acc = b.mulPair(acc, w)
	}
	return acc
}

func (b *Builder) mulPair(a, c Wire) Wire {
	pi, correction, d, e := b.P.Mul(int(a), int(c))
	vi := b.V.Mul(int(a), int(c), correction)
	result := b.mustLockstep(pi, vi)
	if !b.V.CheckMul(int(a), int(c), result, d, e) {
		b.reject(fmt.Sprintf("check_mul failed for wires (%d, %d) -> %d", a, c, result))
	}
	return Wire(result)
}

// Pow raises w to the n-th power. n=0 returns a freshly committed constant
// 1; n=1 returns w unchanged; otherwise w is multiplied by itself n-1
// times via repeated Mul, exactly as spec §4.5 describes — this is the
// right algorithm for the small, public exponents (2, 3, ...) the Sudoku
// validators use it for. It is deliberately NOT used to compute the
// Check0 zero-indicator's field-order exponent (2^m-1), which needs
// square-and-multiply instead; see Check0 below.
func (b *Builder) Pow(w Wire, n uint64) Wire {
	if n == 0 {
		return b.Commit(1)
	}
	if n == 1 {
		return w
	}
	acc := w
	for i := uint64(1); i < n; i++ {
		acc = b.mulPair(acc, w)
	}
	return acc
}

// NumRec reconstructs value = sum(bit_i * 2^i) from little-endian bit
// wires, using only ScalarMul and Add — it consumes no fresh VOLE
// material, matching spec §4.5's "purely linear" requirement.
func (b *Builder) NumRec(bitWires []Wire) Wire {
	if len(bitWires) == 0 {
		panic("gate: NumRecGate requires at least 1 bit wire")
	}
	terms := make([]Wire, len(bitWires))
	for i, bw := range bitWires {
		terms[i] = b.ScalarMul(bw, uint64(1)<<uint(i))
	}
	if len(terms) == 1 {
		// Add requires >= 2 inputs; a single-bit reconstruction is just
		// that bit's scaled value (2^0 = 1, so terms[0] == bitWires[0]
		// scaled by 1), no further folding needed.
		return terms[0]
	}
	return b.Add(terms...)
}

// powWireFast raises w to exponent n via square-and-multiply over wires
// (O(log n) Mul calls), used internally wherever n is the field's
// near-full order rather than a small public constant.
func (b *Builder) powWireFast(w Wire, n uint64) Wire {
	if n == 0 {
		return b.Commit(1)
	}
	result := Wire(-1)
	base := w
	first := true
	for n != 0 {
		if n&1 != 0 {
			if first {
				result = base
				first = false
			} else {
				result = b.mulPair(result, base)
			}
		}
		n >>= 1
		if n != 0 {
			base = b.mulPair(base, base)
		}
	}
	return result
}

// Check0 returns a wire equal to (prod_i (w_i^(|F|-1) XOR 1)) XOR 1 — zero
// iff every input wire is zero (spec §4.5/§4.8 Glossary). The inner power
// is the GF(2^m) zero-indicator, computed via powWireFast since |F|-1 is
// astronomically large for m=64 and naive repeated multiplication is not
// tractable there.
func (b *Builder) Check0(wires []Wire) Wire {
	if len(wires) == 0 {
		panic("gate: Check0Gate requires at least 1 input")
	}
	order := b.fieldOrderMinusOne()
	indicators := make([]Wire, len(wires))
	for i, w := range wires {
		pw := b.powWireFast(w, order)
		indicators[i] = b.AddConstant(pw, 1)
	}
	var product Wire
	if len(indicators) == 1 {
		product = indicators[0]
	} else {
		product = b.Mul(indicators...)
	}
	return b.AddConstant(product, 1)
}

// fieldOrderMinusOne returns 2^m - 1, the exponent that sends every
// nonzero field element to 1 (Fermat) and 0 to 0.
func (b *Builder) fieldOrderMinusOne() uint64 {
	if b.F.M() == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(b.F.M())) - 1
}

// Open reveals wire w and checks it against the verifier's q. It returns
// the revealed value and whether the opening was accepted; a false here
// is a ProtocolError exactly like a failed CheckMul (spec §7), recovered
// as a boolean rather than aborting.
func (b *Builder) Open(w Wire) (value uint64, ok bool) {
	idx, u, v := b.P.Open(int(w))
	return u, b.V.CheckOpen(u, v, idx)
}

// MarkDone closes out the underlying Verifier's lifecycle, for callers
// (validators) that have finished opening every wire they need and want
// State() to report Done from here on.
func (b *Builder) MarkDone() {
	b.V.MarkDone()
}
