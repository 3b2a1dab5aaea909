package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/funvibe/brainfuse/internal/bench"
	"github.com/funvibe/brainfuse/internal/config"
	"github.com/funvibe/brainfuse/internal/engine"
	"github.com/funvibe/brainfuse/internal/vm"
)

const usage = `Usage:
  brainfuse [flags] <source-path> [input-text]
  brainfuse disasm [flags] <source-path>
  brainfuse bench [flags] <suite.yaml | source-path | directory>
  brainfuse help

Run flags:
  -engine=<name>   instruction-set variant: naive, coalesced, fused (default fused)
  -tape=<n>        tape length in cells
  -time            print compile and execute wall times to stderr
  -profile         print per-opcode execution counters to stderr

Bench flags:
  -runs=<n>        timed executions per engine
  -input=<text>    input bytes consumed by ',' commands
  -tape=<n>        tape length in cells
  -db=<path>       record results in a SQLite database
`

func main() {
	if handleHelp() {
		return
	}
	if handleDisasm() {
		return
	}
	if handleBench() {
		return
	}
	runProgram(os.Args[1:])
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if os.Args[1] != "help" && os.Args[1] != "-help" && os.Args[1] != "--help" {
		return false
	}
	fmt.Print(usage)
	return true
}

// runFlags holds the options shared by the run and disasm paths.
type runFlags struct {
	engineName string
	tape       int
	timed      bool
	profiled   bool
	args       []string
}

func parseRunFlags(args []string) (*runFlags, error) {
	f := &runFlags{engineName: "fused"}
	for len(args) > 0 && strings.HasPrefix(args[0], "-") {
		arg := args[0]
		args = args[1:]
		switch {
		case arg == "-time":
			f.timed = true
		case arg == "-profile":
			f.profiled = true
		case strings.HasPrefix(arg, "-engine="):
			f.engineName = strings.TrimPrefix(arg, "-engine=")
		case strings.HasPrefix(arg, "-tape="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "-tape="))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid tape length %q", strings.TrimPrefix(arg, "-tape="))
			}
			f.tape = n
		default:
			return nil, fmt.Errorf("unknown flag %s", arg)
		}
	}
	f.args = args
	return f, nil
}

func runProgram(args []string) {
	flags, err := parseRunFlags(args)
	if err != nil {
		fatal(err)
	}
	if len(flags.args) < 1 || len(flags.args) > 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	source, err := os.ReadFile(flags.args[0])
	if err != nil {
		fatal(fmt.Errorf("reading source: %w", err))
	}
	var input []byte
	if len(flags.args) == 2 {
		input = []byte(flags.args[1])
	}

	eng, err := engine.Lookup(flags.engineName, flags.tape)
	if err != nil {
		fatal(err)
	}

	start := time.Now()
	program, err := eng.Compile(source)
	compileTime := time.Since(start)
	if err != nil {
		fatal(err)
	}

	// Program output is an opaque byte stream; buffer it but never
	// transform it.
	out := bufio.NewWriter(os.Stdout)

	var prof *vm.Profile
	start = time.Now()
	if p, ok := eng.(engine.Profiler); ok && flags.profiled {
		prof = &vm.Profile{}
		err = p.ExecuteProfiled(program, input, out, prof)
	} else {
		err = eng.Execute(program, input, out)
	}
	execTime := time.Since(start)

	if flushErr := out.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		fatal(err)
	}

	if flags.timed {
		fmt.Fprintf(os.Stderr, "compile: %s (%d instructions)\nexecute: %s\n",
			compileTime, program.Len(), execTime)
	}
	if prof != nil {
		fmt.Fprint(os.Stderr, prof.String())
	}
}

func handleDisasm() bool {
	if len(os.Args) < 2 || os.Args[1] != "disasm" {
		return false
	}

	flags, err := parseRunFlags(os.Args[2:])
	if err != nil {
		fatal(err)
	}
	if len(flags.args) != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	source, err := os.ReadFile(flags.args[0])
	if err != nil {
		fatal(fmt.Errorf("reading source: %w", err))
	}
	eng, err := engine.Lookup(flags.engineName, flags.tape)
	if err != nil {
		fatal(err)
	}
	program, err := eng.Compile(source)
	if err != nil {
		fatal(err)
	}

	fmt.Print(vm.Disassemble(program, filepath.Base(flags.args[0])))
	return true
}

func handleBench() bool {
	if len(os.Args) < 2 || os.Args[1] != "bench" {
		return false
	}

	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	runs := fs.Int("runs", 0, "timed executions per engine")
	input := fs.String("input", "", "input bytes consumed by ',' commands")
	tape := fs.Int("tape", 0, "tape length in cells")
	dbPath := fs.String("db", "", "record results in a SQLite database")
	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	suite, err := loadBenchTarget(fs.Arg(0), *input, *runs)
	if err != nil {
		fatal(err)
	}

	var store *bench.Store
	if *dbPath != "" {
		store, err = bench.OpenStore(*dbPath)
		if err != nil {
			fatal(err)
		}
		defer store.Close()
	}

	engines := engine.All(*tape)
	mismatched := false
	for _, prog := range suite.Programs {
		source, err := os.ReadFile(prog.Source)
		if err != nil {
			fatal(fmt.Errorf("reading source: %w", err))
		}
		results := bench.Run(engines, source, []byte(prog.Input), bench.Options{Runs: prog.Runs})
		bench.WriteReport(os.Stdout, prog.Name, results)
		for i := range results {
			if results[i].Mismatch {
				mismatched = true
			}
			if store != nil {
				if err := store.Record(prog.Name, &results[i]); err != nil {
					fatal(err)
				}
			}
		}
	}
	if mismatched {
		os.Exit(1)
	}
	return true
}

// loadBenchTarget accepts a YAML suite, a directory of sources, or a
// single source file.
func loadBenchTarget(path, input string, runs int) (*bench.Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading bench target: %w", err)
	}

	var suite *bench.Suite
	switch {
	case info.IsDir():
		suite, err = bench.SuiteFromDir(path)
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		suite, err = bench.LoadSuite(path)
	default:
		suite = &bench.Suite{
			Name:     filepath.Base(path),
			Programs: []bench.SuiteProgram{{Name: filepath.Base(path), Source: path}},
		}
	}
	if err != nil {
		return nil, err
	}

	if runs <= 0 {
		runs = config.DefaultBenchRuns
	}
	for i := range suite.Programs {
		if suite.Programs[i].Input == "" {
			suite.Programs[i].Input = input
		}
		if suite.Programs[i].Runs <= 0 {
			suite.Programs[i].Runs = runs
		}
	}
	return suite, nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
