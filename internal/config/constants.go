package config

// DefaultTapeSize is the number of cells on the machine tape. Cursor
// arithmetic wraps modulo this length in both directions.
const DefaultTapeSize = 1 << 16

// SourceFileExtensions are all recognized Brainfuck source file extensions
var SourceFileExtensions = []string{".b", ".bf"}

// DefaultBenchRuns is how many timed executions the harness performs per
// engine when the suite does not say otherwise.
const DefaultBenchRuns = 3
