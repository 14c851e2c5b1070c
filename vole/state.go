package vole

// lifecycle tracks the small machine both Prover and Verifier drive, per
// spec §4.9: Fresh → Committing → Computing → Opening → Done.
//
// Real circuits (the Sudoku one included) freely interleave commits and
// linear/multiplicative operations while building up wires — the
// prototype's own SudokuCircuit commits constants in the middle of
// computing the expected PIT polynomial, for instance — so Committing and
// Computing are tracked as "highest phase reached" flags rather than a
// hard gate between them. The one transition this engine does enforce
// strictly is the one spec §4.9 calls irreversible in practice: once
// opening has begun, no further commit or compute is legal. That matches
// every validator in this repo, which always finishes building wires
// before it opens any of them.
type lifecycle struct {
	committed bool
	computed  bool
	opening   bool
	done      bool
}

func (l *lifecycle) requireBuilding(op string) {
	if l.done {
		panic("vole: " + op + " called after the proof reached Done")
	}
	if l.opening {
		panic("vole: " + op + " called after Opening has started")
	}
}

func (l *lifecycle) markCommit() {
	l.requireBuilding("commit")
	l.committed = true
}

func (l *lifecycle) markCompute() {
	l.requireBuilding("a compute gate")
	l.computed = true
}

func (l *lifecycle) markOpen() {
	if l.done {
		panic("vole: open called after the proof reached Done")
	}
	l.opening = true
}

func (l *lifecycle) markDone() {
	l.done = true
}

func (l *lifecycle) String() string {
	switch {
	case l.done:
		return "Done"
	case l.opening:
		return "Opening"
	case l.computed:
		return "Computing"
	case l.committed:
		return "Committing"
	default:
		return "Fresh"
	}
}
