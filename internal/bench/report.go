package bench

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI sequences for the report. Empty when the destination is not a
// terminal.
const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

type palette struct {
	reset, bold, green, red string
}

// paletteFor enables color only when w is a real terminal.
func paletteFor(w io.Writer) palette {
	if f, ok := w.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return palette{reset: ansiReset, bold: ansiBold, green: ansiGreen, red: ansiRed}
		}
	}
	return palette{}
}

// WriteReport renders one comparison as a table. The fastest engine is
// highlighted; engines whose output diverged from the reference are
// flagged loudly, since differing output means a codegen bug, not a
// performance difference.
func WriteReport(w io.Writer, program string, results []Result) {
	pal := paletteFor(w)

	fastest := -1
	for i := range results {
		if results[i].Err != nil || len(results[i].Runs) == 0 {
			continue
		}
		if fastest < 0 || results[i].Best() < results[fastest].Best() {
			fastest = i
		}
	}

	fmt.Fprintf(w, "%s== %s ==%s\n", pal.bold, program, pal.reset)
	fmt.Fprintf(w, "%-12s %12s %14s %14s %8s\n", "engine", "instrs", "compile", "best exec", "output")

	for i := range results {
		res := &results[i]
		if res.Err != nil {
			fmt.Fprintf(w, "%-12s %serror: %s%s\n", res.Engine, pal.red, res.Err, pal.reset)
			continue
		}
		marker := ""
		if res.Mismatch {
			marker = " " + pal.red + "MISMATCH" + pal.reset
		} else if i == fastest {
			marker = " " + pal.green + "fastest" + pal.reset
		}
		fmt.Fprintf(w, "%-12s %12d %14s %14s %7dB%s\n",
			res.Engine, res.Instructions, res.CompileTime, res.Best(), len(res.Output), marker)
	}
}
