package engine

import (
	"bytes"
	"testing"

	"github.com/funvibe/brainfuse/internal/vm"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		e, err := Lookup(name, 0)
		if err != nil {
			t.Fatalf("Lookup(%q): %s", name, err)
		}
		if e.Name() != name {
			t.Errorf("Name() = %q, want %q", e.Name(), name)
		}
	}

	if _, err := Lookup("turbo", 0); err == nil {
		t.Error("Lookup(\"turbo\") succeeded, want error")
	}
}

func TestAllOrder(t *testing.T) {
	engines := All(0)
	if len(engines) != len(Names()) {
		t.Fatalf("All() returned %d engines, want %d", len(engines), len(Names()))
	}
	// The reference design must come first: the harness checks every
	// other engine's output against it.
	if engines[0].Name() != "naive" {
		t.Errorf("All()[0] = %q, want %q", engines[0].Name(), "naive")
	}
}

func execute(t *testing.T, e Engine, src string, input []byte) []byte {
	t.Helper()
	p, err := e.Compile([]byte(src))
	if err != nil {
		t.Fatalf("%s: compile error: %s", e.Name(), err)
	}
	var out bytes.Buffer
	if err := e.Execute(p, input, &out); err != nil {
		t.Fatalf("%s: runtime error: %s", e.Name(), err)
	}
	return out.Bytes()
}

// TestEnginesAgree runs the same programs under every instruction-set
// design and demands byte-identical output, with the naive engine as the
// oracle.
func TestEnginesAgree(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input string
	}{
		{"hello", helloWorld, ""},
		{"countdown", ",[.-]", "\x05"},
		{"copy_chain", "++++[>++++<-]>[->+>+<<]>.>.", ""},
		{"non_idiomatic", "+++[>+.<-]", ""},
		{"seek_wraps", "+++>+>++>><<[<]>[.>]", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engines := All(0)
			reference := execute(t, engines[0], tt.src, []byte(tt.input))
			for _, e := range engines[1:] {
				got := execute(t, e, tt.src, []byte(tt.input))
				if !bytes.Equal(got, reference) {
					t.Errorf("%s output %q, naive output %q", e.Name(), got, reference)
				}
			}
		})
	}
}

func TestHelloWorldOutput(t *testing.T) {
	e := Default(0)
	got := execute(t, e, helloWorld, nil)
	if string(got) != "Hello World!\n" {
		t.Errorf("output = %q, want %q", got, "Hello World!\n")
	}
}

// TestFusedCompilesSmaller is a sanity check that the optimizing design
// actually shrinks real programs.
func TestFusedCompilesSmaller(t *testing.T) {
	naive, _ := Lookup("naive", 0)
	fused, _ := Lookup("fused", 0)

	np, err := naive.Compile([]byte(helloWorld))
	if err != nil {
		t.Fatal(err)
	}
	fp, err := fused.Compile([]byte(helloWorld))
	if err != nil {
		t.Fatal(err)
	}
	if fp.Len() >= np.Len() {
		t.Errorf("fused program has %d instructions, naive has %d", fp.Len(), np.Len())
	}
}

func TestProfilerSupport(t *testing.T) {
	e := Default(0)
	prof, ok := e.(Profiler)
	if !ok {
		t.Fatal("fused engine does not implement Profiler")
	}

	p, err := e.Compile([]byte("+++."))
	if err != nil {
		t.Fatal(err)
	}
	counters := &vm.Profile{}
	var out bytes.Buffer
	if err := prof.ExecuteProfiled(p, nil, &out, counters); err != nil {
		t.Fatal(err)
	}
	if counters.Steps == 0 {
		t.Error("profile recorded no steps")
	}
}
