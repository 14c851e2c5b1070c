package vole

import "fmt"

// Prover holds one party's half of a VOLE correlation: the tapes u
// (committed bits) and v (uniform field elements), and the append cursor
// that allocates fresh slots. Per spec §5, a Prover must not be shared
// across goroutines, and its tapes must never be mutated except through
// its own methods.
type Prover struct {
	field Field
	u     []uint64
	v     []uint64
	idx   int

	lifecycle lifecycle
}

// Field is the minimal arithmetic surface the vole package needs from
// field.Config, kept as an interface so this package does not import
// field directly in its method signatures and stays easy to unit-test
// against a stub.
type Field interface {
	Add(a, b uint64) uint64
	Sub(a, b uint64) uint64
	Mul(a, b uint64) uint64
}

func (p *Prover) alloc() int {
	if p.idx >= len(p.u) {
		panic(fmt.Sprintf("vole: prover capacity exhausted: cursor %d >= tape length %d", p.idx, len(p.u)))
	}
	i := p.idx
	p.idx++
	return i
}

// Index returns the prover's current append cursor.
func (p *Prover) Index() int { return p.idx }

// State reports the prover's lifecycle phase, see spec §4.9.
func (p *Prover) State() string { return p.lifecycle.String() }

func (p *Prover) checkIndex(i int) {
	if i < 0 || i >= p.idx {
		panic(fmt.Sprintf("vole: prover index %d out of range [0, %d)", i, p.idx))
	}
}

// Commit fixes w at a fresh tape slot: it sets di to the XOR of the old
// (unconstrained) u[i] and w, then overwrites u[i] with w. di is the
// correction message the verifier must feed to UpdateQ to repair q[i] for
// the newly committed value.
func (p *Prover) Commit(w uint64) (i int, di uint64) {
	p.lifecycle.markCommit()
	i = p.alloc()
	di = p.field.Add(p.u[i], w)
	p.u[i] = w
	return i, di
}

// Add allocates c = a + b (u[c] = u[a] XOR u[b], v[c] = v[a] XOR v[b]).
func (p *Prover) Add(a, b int) (c int) {
	p.lifecycle.markCompute()
	p.checkIndex(a)
	p.checkIndex(b)
	c = p.alloc()
	p.u[c] = p.field.Add(p.u[a], p.u[b])
	p.v[c] = p.field.Add(p.v[a], p.v[b])
	return c
}

// Sub allocates c = a - b. Identical to Add in characteristic 2.
func (p *Prover) Sub(a, b int) (c int) {
	p.lifecycle.markCompute()
	p.checkIndex(a)
	p.checkIndex(b)
	c = p.alloc()
	p.u[c] = p.field.Sub(p.u[a], p.u[b])
	p.v[c] = p.field.Sub(p.v[a], p.v[b])
	return c
}

// ScalarMul allocates c = k*a for a public scalar k.
func (p *Prover) ScalarMul(a int, k uint64) (c int) {
	p.lifecycle.markCompute()
	p.checkIndex(a)
	c = p.alloc()
	p.u[c] = p.field.Mul(k, p.u[a])
	p.v[c] = p.field.Mul(k, p.v[a])
	return c
}

// AddConstant allocates c = a + k for a public constant k. v is left
// unchanged, matching the verifier's rule q[c] = q[a] XOR k*Δ.
func (p *Prover) AddConstant(a int, k uint64) (c int) {
	p.lifecycle.markCompute()
	p.checkIndex(a)
	c = p.alloc()
	p.u[c] = p.field.Add(p.u[a], k)
	p.v[c] = p.v[a]
	return c
}

// Mul allocates c = a*b and returns the correction message plus the (d, e)
// pair the verifier needs for CheckMul. The allocation happens before the
// new u[c] is computed so that correction is expressed against whatever
// value the fresh slot's u held before this call (for a slot that has
// never been written, the random bit Setup sampled there), matching the
// prototype's "new_u XOR u[c_old]" rule.
func (p *Prover) Mul(a, b int) (c int, correction, d, e uint64) {
	p.lifecycle.markCompute()
	p.checkIndex(a)
	p.checkIndex(b)
	c = p.alloc()
	oldU := p.u[c]
	newU := p.field.Mul(p.u[a], p.u[b])
	correction = p.field.Add(newU, oldU)
	p.u[c] = newU

	d = p.field.Sub(
		p.field.Add(p.field.Mul(p.v[a], p.u[b]), p.field.Mul(p.v[b], p.u[a])),
		p.v[c],
	)
	e = p.field.Mul(p.v[a], p.v[b])
	return c, correction, d, e
}

// Open reveals both tapes at i: the committed value u[i] and its VOLE
// pad v[i].
func (p *Prover) Open(i int) (index int, u, v uint64) {
	p.lifecycle.markOpen()
	p.checkIndex(i)
	return i, p.u[i], p.v[i]
}
