package sudoku

import (
	"fmt"

	"github.com/oblivexp/volesudoku/gate"
	"github.com/oblivexp/volesudoku/internal/prng"
	"github.com/oblivexp/volesudoku/internal/xlog"
)

var pitLogger = xlog.Component("sudoku.pit")

// groupLabel names group index gi (0-8 rows, 9-17 columns, 18-26 boxes)
// for Warn-level diagnostics.
func groupLabel(gi int) string {
	switch {
	case gi < 9:
		return fmt.Sprintf("row %d", gi)
	case gi < 18:
		return fmt.Sprintf("column %d", gi-9)
	default:
		return fmt.Sprintf("box %d", gi-18)
	}
}

// PITValidator checks board validity via the Polynomial Identity Test
// strategy (spec §4.6): for every row/column/box, prod_i(r - x_i) is
// compared against the precomputed prod_i(r - i); a group is valid iff
// the two agree, which — since r was drawn after the board was
// committed — happens with overwhelming probability only when
// {x_1..x_9} is a permutation of {1..9}.
type PITValidator struct {
	rng prng.Source
}

// NewPITValidator builds a PIT validator seeded with rng, used to draw
// the circuit's challenge if it has not already been prepared.
func NewPITValidator(rng prng.Source) *PITValidator {
	return &PITValidator{rng: rng}
}

// groupDiffs computes, for every one of the 27 groups, the wire
// prod_i(r - x_i) XOR expected_poly — zero iff the group is a valid
// permutation of {1..9}.
func (v *PITValidator) groupDiffs(c *Circuit) []gate.Wire {
	c.EnsurePITChallenge(v.rng)
	b := c.Builder()
	r := c.Challenge()
	expected := c.ExpectedPolynomial()

	groups := c.groups()
	diffs := make([]gate.Wire, len(groups))
	for gi, group := range groups {
		diff := b.Sub(r, group[0])
		for _, cell := range group[1:] {
			term := b.Sub(r, cell)
			diff = b.Mul(diff, term)
		}
		diffs[gi] = b.Sub(diff, expected)
	}
	return diffs
}

// IsValid opens all 27 group-diff wires and requires every one of them
// to be zero, and every opening to be accepted (spec §4.6 — "opens the
// diff wire and expects 0"). It returns false if any group fails or any
// check_mul along the way was rejected; it always computes and opens every
// group's diff, even after a failure, so the caller's wire-level
// accounting (e.g. cmd/compare) sees a consistent circuit.
func (v *PITValidator) IsValid(c *Circuit) (bool, error) {
	diffs := v.groupDiffs(c)
	b := c.Builder()

	valid := b.Accepted()
	for gi, diff := range diffs {
		value, ok := b.Open(diff)
		if !ok || value != 0 {
			valid = false
			pitLogger.Warn().Str("group", groupLabel(gi)).Uint64("residual", value).Msg("PIT group check failed")
		}
	}
	b.MarkDone()
	return valid, nil
}

// AggregatedPITValidator is the bandwidth-saving variant spec §4.7
// allows as an alternative to opening all 27 diff wires individually: it
// folds them into one wire via a random linear combination in powers of
// the same challenge r, and opens only that combined wire. A forged
// single group diff still changes the combination with overwhelming
// probability, since the combination is a nonzero polynomial in r
// evaluated at a point chosen before the prover could have targeted it.
type AggregatedPITValidator struct {
	rng prng.Source
}

// NewAggregatedPITValidator builds the aggregated variant of
// PITValidator.
func NewAggregatedPITValidator(rng prng.Source) *AggregatedPITValidator {
	return &AggregatedPITValidator{rng: rng}
}

// IsValid folds the 27 group-diff wires as
// sum_i diff_i * r^i (r reused from the circuit's own PIT challenge) and
// opens only the combined wire. It reads r's cleartext value via
// c.ChallengeValue() rather than opening the challenge wire: the Verifier's
// lifecycle forbids compute gates (ScalarMul, Add) once any wire has been
// opened, and every diffs[gi] still needs folding into combined at this
// point, so opening the challenge wire here would panic on every input
// before the combination could ever be built.
func (v *AggregatedPITValidator) IsValid(c *Circuit) (bool, error) {
	pit := &PITValidator{rng: v.rng}
	diffs := pit.groupDiffs(c)
	b := c.Builder()
	rVal := c.ChallengeValue()

	power := uint64(1)
	combined := b.ScalarMul(diffs[0], power)
	for _, diff := range diffs[1:] {
		power = c.Field().Mul(power, rVal)
		scaled := b.ScalarMul(diff, power)
		combined = b.Add(combined, scaled)
	}

	value, ok := b.Open(combined)
	b.MarkDone()
	return b.Accepted() && ok && value == 0, nil
}
