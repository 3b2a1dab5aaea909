package bench

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store persists benchmark results in a SQLite database so runs can be
// compared across revisions. It is strictly opt-in: nothing in the run or
// bench path touches a database unless the caller opened one.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if necessary initializes) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		recorded_at TEXT NOT NULL,
		program TEXT NOT NULL,
		engine TEXT NOT NULL,
		instructions INTEGER NOT NULL,
		compile_ns INTEGER NOT NULL,
		best_exec_ns INTEGER NOT NULL,
		output_sha256 TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record persists one engine's result for the named program. Failed or
// mismatched results are not recorded; they are reported, not archived.
func (s *Store) Record(program string, res *Result) error {
	if res.Err != nil || res.Mismatch {
		return nil
	}

	sum := sha256.Sum256(res.Output)
	_, err := s.db.Exec(
		`INSERT INTO runs (id, recorded_at, program, engine, instructions, compile_ns, best_exec_ns, output_sha256)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339Nano),
		program,
		res.Engine,
		res.Instructions,
		res.CompileTime.Nanoseconds(),
		res.Best().Nanoseconds(),
		fmt.Sprintf("%x", sum),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Count returns the number of recorded runs for a program name, or all
// runs when program is empty.
func (s *Store) Count(program string) (int, error) {
	var n int
	var err error
	if program == "" {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE program = ?`, program).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
