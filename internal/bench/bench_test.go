package bench

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/funvibe/brainfuse/internal/engine"
	"github.com/funvibe/brainfuse/internal/vm"
)

func TestRunComparesEngines(t *testing.T) {
	source := []byte("++[>+<-]>.")
	results := Run(engine.All(1024), source, nil, Options{Runs: 2})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			t.Fatalf("%s failed: %s", res.Engine, res.Err)
		}
		if res.Mismatch {
			t.Errorf("%s flagged as mismatch", res.Engine)
		}
		if len(res.Runs) != 2 {
			t.Errorf("%s has %d timed runs, want 2", res.Engine, len(res.Runs))
		}
		if res.Instructions == 0 {
			t.Errorf("%s reports no instructions", res.Engine)
		}
		if !bytes.Equal(res.Output, []byte{2}) {
			t.Errorf("%s output = %v, want [2]", res.Engine, res.Output)
		}
		if res.Profile == nil || res.Profile.Steps == 0 {
			t.Errorf("%s has no profile counters", res.Engine)
		}
		if res.Best() <= 0 {
			t.Errorf("%s Best() = %s", res.Engine, res.Best())
		}
	}
}

// liar is an engine that compiles honestly but prints the wrong bytes,
// so the harness must flag it.
type liar struct{ engine.Engine }

func (l *liar) Name() string { return "liar" }

func (l *liar) Execute(p *vm.Program, input []byte, out io.Writer) error {
	_, err := out.Write([]byte("wrong"))
	return err
}

// broken fails at compile time.
type broken struct{ engine.Engine }

func (b *broken) Name() string { return "broken" }

func (b *broken) Compile(src []byte) (*vm.Program, error) {
	return nil, errors.New("no thanks")
}

func TestMismatchDetection(t *testing.T) {
	honest, err := engine.Lookup("fused", 1024)
	if err != nil {
		t.Fatal(err)
	}
	engines := []engine.Engine{honest, &liar{honest}}

	results := Run(engines, []byte("+."), nil, Options{})
	if results[0].Mismatch {
		t.Error("reference engine flagged as mismatch")
	}
	if !results[1].Mismatch {
		t.Error("diverging engine not flagged")
	}
}

// TestFailedEngineDoesNotStopOthers: one engine's compile failure is
// recorded, and the comparison still covers the rest.
func TestFailedEngineDoesNotStopOthers(t *testing.T) {
	honest, err := engine.Lookup("fused", 1024)
	if err != nil {
		t.Fatal(err)
	}
	engines := []engine.Engine{&broken{honest}, honest}

	results := Run(engines, []byte("+."), nil, Options{})
	if results[0].Err == nil {
		t.Error("broken engine reported no error")
	}
	if results[1].Err != nil {
		t.Errorf("healthy engine failed: %s", results[1].Err)
	}
	if results[1].Mismatch {
		t.Error("healthy engine flagged against a failed reference")
	}
}

func TestWriteReportPlain(t *testing.T) {
	results := Run(engine.All(1024), []byte("+."), nil, Options{})

	var buf bytes.Buffer
	WriteReport(&buf, "plus", results)
	report := buf.String()

	for _, fragment := range []string{"== plus ==", "naive", "coalesced", "fused", "fastest"} {
		if !bytes.Contains(buf.Bytes(), []byte(fragment)) {
			t.Errorf("report missing %q:\n%s", fragment, report)
		}
	}
	if bytes.Contains(buf.Bytes(), []byte("\x1b[")) {
		t.Error("report contains ANSI sequences for a non-terminal writer")
	}
}
