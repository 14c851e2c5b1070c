package vole

import "fmt"

// Verifier holds the other half of the VOLE correlation: q and the secret
// Δ, plus the append cursor mirroring the prover's. A Verifier must not be
// shared across goroutines (spec §5) and never reads u or v directly —
// only the correction messages a Prover emits.
type Verifier struct {
	field Field
	q     []uint64
	delta uint64
	idx   int

	lifecycle lifecycle
}

func (v *Verifier) alloc() int {
	if v.idx >= len(v.q) {
		panic(fmt.Sprintf("vole: verifier capacity exhausted: cursor %d >= tape length %d", v.idx, len(v.q)))
	}
	i := v.idx
	v.idx++
	return i
}

// Index returns the verifier's current append cursor.
func (v *Verifier) Index() int { return v.idx }

// State reports the verifier's lifecycle phase, see spec §4.9.
func (v *Verifier) State() string { return v.lifecycle.String() }

// Delta exposes Δ only for tests and for the rare caller that legitimately
// needs to reason about it (e.g. a "cheating prover" test fixture that
// forges a correction); production circuit code never needs it.
func (v *Verifier) Delta() uint64 { return v.delta }

func (v *Verifier) checkIndex(i int) {
	if i < 0 || i >= v.idx {
		panic(fmt.Sprintf("vole: verifier index %d out of range [0, %d)", i, v.idx))
	}
}

// UpdateQ folds a correction di into q[i]: q[i] XOR= di*Δ. If i equals the
// current cursor this also allocates the slot (advances the cursor),
// matching a commit's pairing; UpdateQ MAY also be called with an index
// strictly less than the cursor for a later, already-allocated slot (spec
// §5), in which case the cursor does not move.
func (v *Verifier) UpdateQ(i int, di uint64) {
	v.lifecycle.markCommit()
	if i == v.idx {
		v.alloc()
	} else if i < 0 || i >= v.idx {
		panic(fmt.Sprintf("vole: verifier UpdateQ index %d out of range [0, %d]", i, v.idx))
	}
	v.q[i] = v.field.Add(v.q[i], v.field.Mul(di, v.delta))
}

// Add allocates c and sets q[c] = q[a] XOR q[b].
func (v *Verifier) Add(a, b int) (c int) {
	v.lifecycle.markCompute()
	v.checkIndex(a)
	v.checkIndex(b)
	c = v.alloc()
	v.q[c] = v.field.Add(v.q[a], v.q[b])
	return c
}

// Sub allocates c and sets q[c] = q[a] XOR q[b]. Identical to Add in
// characteristic 2.
func (v *Verifier) Sub(a, b int) (c int) {
	v.lifecycle.markCompute()
	v.checkIndex(a)
	v.checkIndex(b)
	c = v.alloc()
	v.q[c] = v.field.Sub(v.q[a], v.q[b])
	return c
}

// ScalarMul allocates c and sets q[c] = k*q[a] for a public scalar k.
func (v *Verifier) ScalarMul(a int, k uint64) (c int) {
	v.lifecycle.markCompute()
	v.checkIndex(a)
	c = v.alloc()
	v.q[c] = v.field.Mul(k, v.q[a])
	return c
}

// AddConstant allocates c and sets q[c] = q[a] XOR k*Δ for a public
// constant k.
func (v *Verifier) AddConstant(a int, k uint64) (c int) {
	v.lifecycle.markCompute()
	v.checkIndex(a)
	c = v.alloc()
	v.q[c] = v.field.Add(v.q[a], v.field.Mul(k, v.delta))
	return c
}

// Mul allocates c and applies the multiplication correction. This step
// alone places a tentative q[c]; it does not by itself verify that u[c]
// was computed correctly — call CheckMul with the prover's (d, e) for
// that.
func (v *Verifier) Mul(a, b int, correction uint64) (c int) {
	v.lifecycle.markCompute()
	v.checkIndex(a)
	v.checkIndex(b)
	c = v.alloc()
	v.q[c] = v.field.Add(v.q[c], v.field.Mul(correction, v.delta))
	return c
}

// CheckMul accepts iff q[a]*q[b] XOR Δ*q[c] = d*Δ XOR e. Any deviation in
// u[c], d, or e (a cheating prover) is caught with probability at least
// 1 - 1/|F|.
func (v *Verifier) CheckMul(a, b, c int, d, e uint64) bool {
	v.checkIndex(a)
	v.checkIndex(b)
	v.checkIndex(c)
	lhs := v.field.Add(v.field.Mul(v.q[a], v.q[b]), v.field.Mul(v.delta, v.q[c]))
	rhs := v.field.Add(v.field.Mul(d, v.delta), e)
	return lhs == rhs
}

// CheckOpen accepts iff q[i] = v XOR w*Δ, where (w, v) is the prover's
// opening of slot i.
func (v *Verifier) CheckOpen(w, vi uint64, i int) bool {
	v.lifecycle.markOpen()
	v.checkIndex(i)
	expected := v.field.Add(vi, v.field.Mul(w, v.delta))
	return v.q[i] == expected
}

// MarkDone records the verifier's final acceptance or rejection, closing
// out the Opening phase. Purely a bookkeeping/reporting aid — callers are
// not required to invoke it — but validators in this repo call it so
// State() accurately reports Done once a proof's outcome is settled.
func (v *Verifier) MarkDone() {
	v.lifecycle.markDone()
}
