// Package bench is the comparison harness: it compiles and executes the
// same source under several engines, times both stages, and cross-checks
// that every engine produced the same output bytes.
package bench

import (
	"bytes"
	"io"
	"time"

	"github.com/funvibe/brainfuse/internal/engine"
	"github.com/funvibe/brainfuse/internal/vm"
)

// Result holds the measurements for one engine over one program.
type Result struct {
	Engine       string
	Instructions int
	CompileTime  time.Duration
	Runs         []time.Duration
	Output       []byte

	// Profile holds per-opcode counters from one extra, untimed
	// execution, when the engine supports profiling.
	Profile *vm.Profile

	// Mismatch is set when the output differs from the first engine in
	// the comparison, which callers place as the reference design.
	Mismatch bool

	// Err is the compile or runtime failure, if any. A failed engine has
	// no timings past the point of failure.
	Err error
}

// Best returns the fastest execution time, or 0 when nothing ran.
func (r *Result) Best() time.Duration {
	var best time.Duration
	for _, d := range r.Runs {
		if best == 0 || d < best {
			best = d
		}
	}
	return best
}

// Options configures a comparison.
type Options struct {
	// Runs is the number of timed executions per engine (minimum 1).
	Runs int
}

// Run benchmarks source under every engine in order. Output produced
// while benchmarking is captured in memory, never written through to the
// caller's stdout. The output of engines[0] is the reference all later
// engines are checked against.
func Run(engines []engine.Engine, source, input []byte, opts Options) []Result {
	runs := opts.Runs
	if runs < 1 {
		runs = 1
	}

	results := make([]Result, 0, len(engines))
	var reference []byte
	haveReference := false

	for _, e := range engines {
		res := Result{Engine: e.Name()}

		start := time.Now()
		program, err := e.Compile(source)
		res.CompileTime = time.Since(start)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		res.Instructions = program.Len()

		for i := 0; i < runs; i++ {
			var out bytes.Buffer
			start = time.Now()
			err = e.Execute(program, input, &out)
			elapsed := time.Since(start)
			if err != nil {
				res.Err = err
				break
			}
			res.Runs = append(res.Runs, elapsed)
			res.Output = out.Bytes()
		}
		if res.Err == nil {
			// Profiling is kept out of the timed runs so the counters
			// never skew the measurements.
			if prof, ok := e.(engine.Profiler); ok {
				res.Profile = &vm.Profile{}
				if err := prof.ExecuteProfiled(program, input, io.Discard, res.Profile); err != nil {
					res.Profile = nil
				}
			}
			if !haveReference {
				reference = res.Output
				haveReference = true
			} else if !bytes.Equal(reference, res.Output) {
				res.Mismatch = true
			}
		}
		results = append(results, res)
	}
	return results
}
