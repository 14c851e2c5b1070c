// Command compare runs both Sudoku-validity strategies — PIT and Check0
// — over independently-seeded VOLE setups and reports how many tape
// slots each consumed, per spec §6's optional comparison driver.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/oblivexp/volesudoku/field"
	"github.com/oblivexp/volesudoku/gate"
	"github.com/oblivexp/volesudoku/internal/prng"
	"github.com/oblivexp/volesudoku/internal/xlog"
	"github.com/oblivexp/volesudoku/sudoku"
	"github.com/oblivexp/volesudoku/vole"
)

// solvedBoard is a fixed, known-valid Sudoku solution used as the
// comparison driver's workload — board generation itself is out of
// scope (spec §1 Non-goals).
var solvedBoard = sudoku.Board{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

type result struct {
	strategy   string
	valid      bool
	tapeSlots  int
	tapeLength int
}

func runStrategy(strategy string, m, length int, seed []byte, salt byte) (result, error) {
	cfg, err := field.NewConfig(m)
	if err != nil {
		return result{}, fmt.Errorf("field config: %w", err)
	}

	// salt keeps the two strategies' VOLE setups independent even when
	// the operator passes the same -seed flag for both (spec §5: proofs
	// run over distinct setups, never a shared Prover/Verifier pair).
	var seedArr [32]byte
	copy(seedArr[:], seed)
	seedArr[31] ^= salt
	rng := prng.NewDeterministicSource(seedArr)

	p, v, err := vole.Setup(cfg, length, rng)
	if err != nil {
		return result{}, fmt.Errorf("vole setup: %w", err)
	}
	b := gate.NewBuilder(p, v, cfg)
	circuit := sudoku.NewCircuit(b, cfg)
	circuit.CommitBoard(solvedBoard)

	var valid bool
	switch strategy {
	case "pit":
		validator := sudoku.NewPITValidator(rng)
		valid, err = validator.IsValid(circuit)
	case "check0":
		validator := sudoku.NewCheck0Validator(cfg)
		valid, err = validator.IsValid(circuit)
	default:
		return result{}, fmt.Errorf("unknown strategy %q", strategy)
	}
	if err != nil {
		return result{}, err
	}

	return result{
		strategy:   strategy,
		valid:      valid,
		tapeSlots:  p.Index(),
		tapeLength: length,
	}, nil
}

func main() {
	m := pflag.IntP("m", "m", 8, "GF(2^m) extension degree (8 or 64)")
	length := pflag.IntP("length", "l", 20000, "VOLE tape length")
	seedHex := pflag.StringP("seed", "s", "", "hex-encoded PRNG seed; random if empty")
	console := pflag.Bool("console", true, "use console (non-JSON) log output")
	logLevel := pflag.String("log-level", "info", "zerolog level (debug, info, warn, error)")
	pflag.Parse()

	xlog.Init(*logLevel, *console)

	var seed []byte
	if *seedHex == "" {
		seed = make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(os.Stderr, "compare: generating random seed: %v\n", err)
			os.Exit(1)
		}
	} else {
		var err error
		seed, err = hex.DecodeString(*seedHex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "compare: decoding --seed: %v\n", err)
			os.Exit(1)
		}
	}

	var g errgroup.Group
	results := make([]result, 2)

	g.Go(func() error {
		r, err := runStrategy("pit", *m, *length, seed, 0x01)
		if err != nil {
			return err
		}
		results[0] = r
		return nil
	})
	g.Go(func() error {
		r, err := runStrategy("check0", *m, *length, seed, 0x02)
		if err != nil {
			return err
		}
		results[1] = r
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "compare: %v\n", err)
		os.Exit(1)
	}

	for _, r := range results {
		fmt.Printf("%-8s valid=%-5v tape_slots_used=%d/%d\n", r.strategy, r.valid, r.tapeSlots, r.tapeLength)
	}
}
