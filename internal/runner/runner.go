// Package runner times benchmark programs in-process.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"perfbench/internal/logging"
	"perfbench/internal/printer"
)

// Result holds the samples of one Run call.
type Result struct {
	Program string
	Bound   int32
	Samples []float64 // seconds, one per run
}

// Header is the data file header line for the result, in the same
// "<program> <bound>" shape a shell harness would write.
func (r Result) Header() string {
	return fmt.Sprintf("%s %d", r.Program, r.Bound)
}

// Run executes the named program runs times against io.Discard and
// returns the wall time of each run. Runs are sequential; ctx is checked
// between runs.
func Run(ctx context.Context, program string, n int32, runs int) (*Result, error) {
	prog, ok := printer.Lookup(program)
	if !ok {
		return nil, fmt.Errorf("unknown program %q (valid: %v)", program, printer.Names())
	}
	if runs < 1 {
		return nil, fmt.Errorf("runs must be at least 1, got %d", runs)
	}

	log := logging.Get(logging.CategoryRunner)
	res := &Result{Program: prog.Name, Bound: n, Samples: make([]float64, 0, runs)}

	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run %d of %s canceled: %w", i+1, prog.Name, err)
		}

		start := time.Now()
		if err := prog.Run(io.Discard, n); err != nil {
			return nil, fmt.Errorf("run %d of %s failed: %w", i+1, prog.Name, err)
		}
		elapsed := time.Since(start)

		log.Debugw("run complete", "program", prog.Name, "bound", n, "run", i+1, "elapsed", elapsed)
		res.Samples = append(res.Samples, elapsed.Seconds())
	}

	return res, nil
}
