package sudoku

import (
	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/gate"
	"github.com/oblivexp/volesudoku/internal/xlog"
)

var check0Logger = xlog.Component("sudoku.check0")

// Check0Validator checks board validity via the symmetric-function
// strategy (spec §4.8/§9 supplement): for every row/column/box, the sum
// of squares and sum of cubes of its 9 cell values are compared against
// the constants sum_{i=1}^9 i^2 and sum_{i=1}^9 i^3 computed in the same
// field — two necessary conditions for {x_1..x_9} being a permutation of
// {1..9}, combined into a single Check0Gate over all 27 groups'
// residuals instead of one PIT product per group.
//
// The constants are recomputed for whatever field the validator is
// constructed over, never hardcoded (in both supported fields, GF(2^8)
// and GF(2^64), they come out as the pair {1,73}); verification that the
// two symmetric functions actually pin down the permutation property is
// left to the test suite (sudoku/check0_constants_test.go), not this
// runtime path.
type Check0Validator struct {
	sumOfSquares uint64
	sumOfCubes   uint64
}

// NewCheck0Validator recomputes the sum-of-squares and sum-of-cubes
// constants for cfg and sanity-checks them against the known-good
// GF(2^8) values when cfg is GF(2^8), catching a broken field
// implementation at construction time rather than inside every proof.
func NewCheck0Validator(cfg *field.Config) *Check0Validator {
	sq, cube := symmetricConstants(cfg)
	if cfg.M() == 8 && (sq != 1 || cube != 73) {
		panic("sudoku: GF(2^8) Check0 constants do not match the known values (1, 73) — field arithmetic is broken")
	}
	return &Check0Validator{sumOfSquares: sq, sumOfCubes: cube}
}

// symmetricConstants computes sum_{i=1}^9 i^2 and sum_{i=1}^9 i^3 using
// cfg's own field arithmetic, not integer arithmetic — the two sums are
// themselves field elements.
func symmetricConstants(cfg *field.Config) (sumOfSquares, sumOfCubes uint64) {
	for i := uint64(1); i <= 9; i++ {
		square := cfg.Mul(i, i)
		sumOfSquares = cfg.Add(sumOfSquares, square)
		sumOfCubes = cfg.Add(sumOfCubes, cfg.Mul(square, i))
	}
	return sumOfSquares, sumOfCubes
}

// IsValid computes, for every one of the 27 groups, the residual pair
// (sum of squares - sumOfSquares, sum of cubes - sumOfCubes), feeds all
// 54 residuals into a single Check0Gate, and opens only that one wire —
// it is zero iff every group satisfies both symmetric identities.
func (cv *Check0Validator) IsValid(c *Circuit) (bool, error) {
	b := c.Builder()
	groups := c.groups()

	residuals := make([]gate.Wire, 0, len(groups)*2)
	for _, group := range groups {
		squares := make([]gate.Wire, len(group))
		cubes := make([]gate.Wire, len(group))
		for i, cell := range group {
			squares[i] = b.Pow(cell, 2)
			cubes[i] = b.Pow(cell, 3)
		}
		squareSum := b.Add(squares...)
		cubeSum := b.Add(cubes...)

		squareResidual := b.AddConstant(squareSum, cv.sumOfSquares)
		cubeResidual := b.AddConstant(cubeSum, cv.sumOfCubes)
		residuals = append(residuals, squareResidual, cubeResidual)
	}

	combined := b.Check0(residuals)
	value, ok := b.Open(combined)
	b.MarkDone()
	valid := b.Accepted() && ok && value == 0
	if !valid {
		check0Logger.Warn().Uint64("residual", value).Bool("opened", ok).Msg("Check0 validation failed")
	}
	return valid, nil
}
