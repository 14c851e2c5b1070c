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

func newPITCircuit(t *testing.T, m, length int, seed [32]byte) *sudoku.Circuit {
	t.Helper()
	cfg, err := field.NewConfig(m)
	require.NoError(t, err)
	rng := prng.NewDeterministicSource(seed)
	p, v, err := vole.Setup(cfg, length, rng)
	require.NoError(t, err)
	b := gate.NewBuilder(p, v, cfg)
	return sudoku.NewCircuit(b, cfg)
}

func runPIT(t *testing.T, board sudoku.Board, seed [32]byte) bool {
	t.Helper()
	circuit := newPITCircuit(t, 8, 20000, seed)
	circuit.CommitBoard(board)
	validator := sudoku.NewPITValidator(prng.NewDeterministicSource(seed))
	ok, err := validator.IsValid(circuit)
	require.NoError(t, err)
	return ok
}

func TestPITAcceptsValidBoard(t *testing.T) {
	assert.True(t, runPIT(t, validBoard, [32]byte{1}))
}

func TestPITRejectsRowDuplicate(t *testing.T) {
	assert.False(t, runPIT(t, rowDuplicateBoard, [32]byte{2}))
}

func TestPITRejectsBoxDuplicate(t *testing.T) {
	assert.False(t, runPIT(t, boxDuplicateBoard, [32]byte{3}))
}

func TestPITAcceptsCyclicShift(t *testing.T) {
	assert.True(t, runPIT(t, cyclicShiftBoard, [32]byte{4}))
}

func TestPITRejectsAllOnes(t *testing.T) {
	assert.False(t, runPIT(t, allOnesBoard, [32]byte{5}))
}

func TestAggregatedPITMatchesPlainPIT(t *testing.T) {
	for _, tc := range []struct {
		name  string
		board sudoku.Board
		want  bool
	}{
		{"valid", validBoard, true},
		{"rowDuplicate", rowDuplicateBoard, false},
		{"allOnes", allOnesBoard, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			circuit := newPITCircuit(t, 8, 20000, [32]byte{6})
			circuit.CommitBoard(tc.board)
			validator := sudoku.NewAggregatedPITValidator(prng.NewDeterministicSource([32]byte{6}))
			ok, err := validator.IsValid(circuit)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

// TestPITDetectsTamperedOpening shows that a validator cannot be fooled
// by corrupting a revealed value after the fact: CheckOpen ties u and v
// to q via Δ, so handing the verifier a wrong u for a real wire fails
// the opening regardless of what the rest of the circuit computed.
func TestPITDetectsTamperedOpening(t *testing.T) {
	circuit := newPITCircuit(t, 8, 20000, [32]byte{8})
	circuit.CommitBoard(validBoard)
	b := circuit.Builder()

	w := b.Commit(42)
	idx, u, v := b.P.Open(int(w))
	assert.True(t, b.V.CheckOpen(u, v, idx))
	assert.False(t, b.V.CheckOpen(u^1, v, idx), "a tampered opening must be rejected")
}
