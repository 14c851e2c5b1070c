package sudoku_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/gate"
	"github.com/oblivexp/volesudoku/internal/prng"
	"github.com/oblivexp/volesudoku/sudoku"
	"github.com/oblivexp/volesudoku/vole"
)

func runCheck0(t *testing.T, board sudoku.Board, m int, seed [32]byte) bool {
	t.Helper()
	cfg, err := field.NewConfig(m)
	require.NoError(t, err)
	rng := prng.NewDeterministicSource(seed)
	p, v, err := vole.Setup(cfg, 20000, rng)
	require.NoError(t, err)
	b := gate.NewBuilder(p, v, cfg)
	circuit := sudoku.NewCircuit(b, cfg)
	circuit.CommitBoard(board)

	validator := sudoku.NewCheck0Validator(cfg)
	ok, err := validator.IsValid(circuit)
	require.NoError(t, err)
	return ok
}

func TestCheck0AcceptsValidBoardAtM8(t *testing.T) {
	assert.True(t, runCheck0(t, validBoard, 8, [32]byte{10}))
}

func TestCheck0RejectsRowDuplicateAtM8(t *testing.T) {
	assert.False(t, runCheck0(t, rowDuplicateBoard, 8, [32]byte{11}))
}

func TestCheck0RejectsBoxDuplicateAtM8(t *testing.T) {
	assert.False(t, runCheck0(t, boxDuplicateBoard, 8, [32]byte{12}))
}

func TestCheck0AcceptsCyclicShiftAtM8(t *testing.T) {
	assert.True(t, runCheck0(t, cyclicShiftBoard, 8, [32]byte{13}))
}

func TestCheck0RejectsAllOnesAtM8(t *testing.T) {
	assert.False(t, runCheck0(t, allOnesBoard, 8, [32]byte{14}))
}

// TestCheck0AcceptsValidBoardAtM64 exercises the GF(2^64) wide
// multiplication path (field.mulWide) through the full gate and
// validator stack, not just field_test.go's narrower unit tests.
func TestCheck0AcceptsValidBoardAtM64(t *testing.T) {
	assert.True(t, runCheck0(t, validBoard, 64, [32]byte{15}))
}

func TestCheck0RejectsRowDuplicateAtM64(t *testing.T) {
	assert.False(t, runCheck0(t, rowDuplicateBoard, 64, [32]byte{16}))
}
