// Package vole implements the VOLE (Vector Oblivious Linear Evaluation)
// correlation this engine is built on, and the Prover/Verifier tapes that
// expose commit / linear-op / multiplication-with-correction over it.
//
// Setup is trusted and local: no network transport, no real VOLE
// preprocessing protocol (spec §1 Non-goals) — u, v, Δ and q are sampled
// directly from an injected prng.Source and handed to the two parties.
package vole

import (
	"fmt"

	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/internal/prng"
	"github.com/oblivexp/volesudoku/internal/xlog"
)

var logger = xlog.Component("vole")

// Setup samples a fresh VOLE correlation of length L over cfg and returns
// a Prover holding (u, v) and a Verifier holding (Δ, q), satisfying
// q[i] = v[i] XOR (u[i] * Δ) for every i in [0, L).
//
// rng is the entropy source; pass prng.CryptoSource() whenever the
// resulting proof's soundness matters, and a prng.NewDeterministicSource
// only in tests.
func Setup(cfg *field.Config, length int, rng prng.Source) (*Prover, *Verifier, error) {
	if length <= 0 {
		return nil, nil, fmt.Errorf("vole: tape length must be positive, got %d", length)
	}

	u := make([]uint64, length)
	v := make([]uint64, length)
	q := make([]uint64, length)

	for i := range u {
		u[i] = cfg.RandomBit(rng)
		v[i] = cfg.RandomElement(rng)
	}
	delta := cfg.RandomElement(rng)
	for i := range q {
		q[i] = cfg.Add(v[i], cfg.Mul(u[i], delta))
	}

	p := &Prover{
		field: cfg,
		u:     u,
		v:     v,
	}
	ver := &Verifier{
		field: cfg,
		q:     q,
		delta: delta,
	}
	logger.Debug().Int("length", length).Int("m", cfg.M()).Msg("VOLE setup complete")
	return p, ver, nil
}
