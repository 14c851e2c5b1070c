package gate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/gate"
	"github.com/oblivexp/volesudoku/internal/prng"
	"github.com/oblivexp/volesudoku/vole"
)

func newBuilder(t *testing.T, m, length int) *gate.Builder {
	t.Helper()
	cfg, err := field.NewConfig(m)
	require.NoError(t, err)
	rng := prng.NewDeterministicSource([32]byte{3, 1, 4})
	p, v, err := vole.Setup(cfg, length, rng)
	require.NoError(t, err)
	return gate.NewBuilder(p, v, cfg)
}

func open(t *testing.T, b *gate.Builder, w gate.Wire) uint64 {
	t.Helper()
	val, ok := b.Open(w)
	require.True(t, ok, "opening must be accepted")
	return val
}

func TestAddGateRequiresTwoInputs(t *testing.T) {
	b := newBuilder(t, 8, 100)
	w := b.Commit(5)
	assert.Panics(t, func() { b.Add(w) })
}

func TestAddGateFoldsCorrectly(t *testing.T) {
	b := newBuilder(t, 8, 100)
	w1 := b.Commit(3)
	w2 := b.Commit(5)
	w3 := b.Commit(9)
	sum := b.Add(w1, w2, w3)
	assert.Equal(t, uint64(3^5^9), open(t, b, sum))
}

func TestMulGateChecksEachStep(t *testing.T) {
	b := newBuilder(t, 8, 100)
	w1 := b.Commit(3)
	w2 := b.Commit(5)
	product := b.Mul(w1, w2)
	assert.True(t, b.Accepted())
	cfg, err := field.NewConfig(8)
	require.NoError(t, err)
	assert.Equal(t, cfg.Mul(3, 5), open(t, b, product))
}

func TestPowGateSmallExponents(t *testing.T) {
	b := newBuilder(t, 8, 100)
	cfg, err := field.NewConfig(8)
	require.NoError(t, err)
	w := b.Commit(7)

	square := b.Pow(w, 2)
	cube := b.Pow(w, 3)
	one := b.Pow(w, 0)
	same := b.Pow(w, 1)

	// Openings come last: once a wire is opened, no further gate is accepted.
	assert.Equal(t, cfg.Mul(7, 7), open(t, b, square))
	assert.Equal(t, cfg.Mul(cfg.Mul(7, 7), 7), open(t, b, cube))
	assert.Equal(t, uint64(1), open(t, b, one))
	assert.Equal(t, uint64(7), open(t, b, same))
}

func TestNumRecGateReconstructsValue(t *testing.T) {
	cfg, err := field.NewConfig(8)
	require.NoError(t, err)
	// 16 values x (4 commits + 4 ScalarMul + 3 Add) = 176 slots.
	b := newBuilder(t, 8, 200)

	reconstructed := make([]gate.Wire, 16)
	for i := uint64(0); i < 16; i++ {
		bitsVals := cfg.BitDec(i, 4)
		wires := make([]gate.Wire, 4)
		for j, bv := range bitsVals {
			wires[j] = b.CommitBit(bv)
		}
		reconstructed[i] = b.NumRec(wires)
	}
	for i := uint64(0); i < 16; i++ {
		assert.Equal(t, i, open(t, b, reconstructed[i]), "i=%d", i)
	}
}

func TestCheck0GateZeroIffAllZero(t *testing.T) {
	b := newBuilder(t, 8, 2000)
	zero1 := b.Commit(0)
	zero2 := b.Commit(0)
	result := b.Check0([]gate.Wire{zero1, zero2})
	assert.Equal(t, uint64(0), open(t, b, result))
}

func TestCheck0GateNonzeroWhenOneInputNonzero(t *testing.T) {
	b := newBuilder(t, 8, 2000)
	zero := b.Commit(0)
	nonzero := b.Commit(5)
	result := b.Check0([]gate.Wire{zero, nonzero})
	assert.NotEqual(t, uint64(0), open(t, b, result))
}

func TestCheatingProverCorruptsMulCorrection(t *testing.T) {
	cfg, err := field.NewConfig(8)
	require.NoError(t, err)
	rng := prng.NewDeterministicSource([32]byte{9, 9})
	p, v, err := vole.Setup(cfg, 100, rng)
	require.NoError(t, err)

	a, diA := p.Commit(6)
	v.UpdateQ(a, diA)
	bIdx, diB := p.Commit(7)
	v.UpdateQ(bIdx, diB)

	c, correction, d, e := p.Mul(a, bIdx)
	forged := correction ^ 1
	vc := v.Mul(a, bIdx, forged)
	require.Equal(t, c, vc)

	assert.False(t, v.CheckMul(a, bIdx, c, d, e))
}
