// Package sudoku wires the gate layer into a predicate over a 9x9 board:
// "this is a valid Sudoku solution", using two interchangeable strategies
// (PIT and Check0) that only ever see committed wires, never raw cell
// values, per spec §4.6-§4.8.
package sudoku

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/gate"
	"github.com/oblivexp/volesudoku/internal/prng"
)

// cellBits is the number of bits committed per cell: cells range over
// 1..9, and 4 bits suffice (spec §4.6).
const cellBits = 4

// Board is the external board-supplier's output: a 9x9 grid of values in
// [1, 9], row-major, row 0 on top. Board generation itself (random
// generator, puzzle pretty-printing) is out of scope for this package
// (spec §1) — Board is the hand-off point from that external collaborator.
type Board [9][9]int

// Circuit bit-commits a 9x9 board and exposes row/column/box wire views
// over the reconstructed cell-value wires.
type Circuit struct {
	builder *gate.Builder
	field   *field.Config

	cells     [9][9]gate.Wire
	committed bool

	challenge    gate.Wire
	challengeVal uint64
	expectedPoly gate.Wire
	pitReady     bool
}

// NewCircuit wraps a Builder (and therefore a single Prover/Verifier
// pair) for one Sudoku proof.
func NewCircuit(b *gate.Builder, f *field.Config) *Circuit {
	return &Circuit{builder: b, field: f}
}

// CommitBoard bit-decomposes each of the 81 cells into cellBits bits,
// commits each bit, and reconstructs the cell-value wire via NumRec. It
// must be called exactly once per circuit, before any validator reads
// Row/Column/Box wires.
func (c *Circuit) CommitBoard(board Board) {
	if c.committed {
		panic("sudoku: CommitBoard called twice on the same circuit")
	}
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			c.cells[i][j] = c.commitCell(board[i][j])
		}
	}
	c.committed = true
}

// commitCell materializes value's bit decomposition as a bitset.BitSet
// (the corpus's usual representation for a fixed-width bit vector,
// rather than a raw []uint64), commits each bit left-to-right from the
// set, and reconstructs the cell-value wire via NumRec.
func (c *Circuit) commitCell(value int) gate.Wire {
	bits := bitset.New(cellBits)
	for k := 0; k < cellBits; k++ {
		if value&(1<<uint(k)) != 0 {
			bits.Set(uint(k))
		}
	}

	bitWires := make([]gate.Wire, cellBits)
	for k := 0; k < cellBits; k++ {
		var bit uint64
		if bits.Test(uint(k)) {
			bit = 1
		}
		bitWires[k] = c.builder.CommitBit(bit)
	}
	return c.builder.NumRec(bitWires)
}

func (c *Circuit) requireCommitted() {
	if !c.committed {
		panic("sudoku: circuit accessed before CommitBoard")
	}
}

// Row returns the 9 wires of row i (0-8).
func (c *Circuit) Row(i int) []gate.Wire {
	c.requireCommitted()
	row := make([]gate.Wire, 9)
	copy(row, c.cells[i][:])
	return row
}

// Column returns the 9 wires of column j (0-8).
func (c *Circuit) Column(j int) []gate.Wire {
	c.requireCommitted()
	col := make([]gate.Wire, 9)
	for i := 0; i < 9; i++ {
		col[i] = c.cells[i][j]
	}
	return col
}

// Box returns the 9 wires of the 3x3 box at index 0-8, laid out:
//
//	0 1 2
//	3 4 5
//	6 7 8
func (c *Circuit) Box(index int) []gate.Wire {
	c.requireCommitted()
	if index < 0 || index > 8 {
		panic(fmt.Sprintf("sudoku: box index %d out of range [0, 8]", index))
	}
	boxRow := (index / 3) * 3
	boxCol := (index % 3) * 3
	box := make([]gate.Wire, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			box = append(box, c.cells[boxRow+i][boxCol+j])
		}
	}
	return box
}

// EnsurePITChallenge commits a random challenge r and the constant
// expected polynomial prod_{i=1}^{9}(r - i), for reuse across every
// row/column/box PIT check (spec §4.6 — "commits the constant expected
// polynomial... as a separate wire", reused rather than recomputed per
// group, following original_source/sudoku_circuit.py's
// _generate_challenge/_compute_expected_polynomial). Idempotent: calling
// it more than once is a no-op after the first call.
func (c *Circuit) EnsurePITChallenge(rng prng.Source) {
	if c.pitReady {
		return
	}
	r := c.field.RandomElement(rng)
	c.challengeVal = r
	c.challenge = c.builder.Commit(r)

	one := c.builder.Commit(1)
	result := c.builder.Sub(c.challenge, one)
	for i := uint64(2); i <= 9; i++ {
		iWire := c.builder.Commit(i)
		diff := c.builder.Sub(c.challenge, iWire)
		result = c.builder.Mul(result, diff)
	}
	c.expectedPoly = result
	c.pitReady = true
}

// Challenge returns the PIT challenge wire. Panics if EnsurePITChallenge
// has not been called yet.
func (c *Circuit) Challenge() gate.Wire {
	if !c.pitReady {
		panic("sudoku: Challenge read before EnsurePITChallenge")
	}
	return c.challenge
}

// ExpectedPolynomial returns the committed prod_{i=1}^9 (r - i) wire.
// Panics if EnsurePITChallenge has not been called yet.
func (c *Circuit) ExpectedPolynomial() gate.Wire {
	if !c.pitReady {
		panic("sudoku: ExpectedPolynomial read before EnsurePITChallenge")
	}
	return c.expectedPoly
}

// ChallengeValue returns the challenge's cleartext field value, known
// in-process since the circuit itself drew it before committing it (spec
// §4.7(b)): a validator that needs r to build a random linear combination
// can read it here instead of opening the challenge wire, which would tip
// the circuit's Verifier into the Opening phase before every compute gate
// the combination needs has run. Panics if EnsurePITChallenge has not been
// called yet.
func (c *Circuit) ChallengeValue() uint64 {
	if !c.pitReady {
		panic("sudoku: ChallengeValue read before EnsurePITChallenge")
	}
	return c.challengeVal
}

// Builder exposes the underlying gate Builder, for validators that need
// to allocate their own auxiliary wires (constants, residuals).
func (c *Circuit) Builder() *gate.Builder { return c.builder }

// Field exposes the field configuration the circuit was built over.
func (c *Circuit) Field() *field.Config { return c.field }

// groups returns all 27 (row, column, box) wire-lists in the fixed order
// spec §4.7 counts soundness over: 9 rows, 9 columns, 9 boxes.
func (c *Circuit) groups() [][]gate.Wire {
	c.requireCommitted()
	groups := make([][]gate.Wire, 0, 27)
	for i := 0; i < 9; i++ {
		groups = append(groups, c.Row(i))
	}
	for j := 0; j < 9; j++ {
		groups = append(groups, c.Column(j))
	}
	for k := 0; k < 9; k++ {
		groups = append(groups, c.Box(k))
	}
	return groups
}
