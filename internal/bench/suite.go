package bench

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/brainfuse/internal/config"
)

// Suite is a YAML manifest naming the programs a comparison covers. It is
// always an explicit argument to the bench command; the plain run path
// reads nothing but the source file itself.
type Suite struct {
	Name     string         `yaml:"name"`
	Programs []SuiteProgram `yaml:"programs"`
}

// SuiteProgram is one benchmarked program.
type SuiteProgram struct {
	Name string `yaml:"name"`

	// Source is the program path, resolved relative to the manifest.
	Source string `yaml:"source"`

	// Input is the byte sequence consumed by ',' commands.
	Input string `yaml:"input"`

	// Runs overrides the suite-wide run count when positive.
	Runs int `yaml:"runs"`
}

// LoadSuite reads and validates a manifest, resolving each source path
// against the manifest's directory.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}
	if len(suite.Programs) == 0 {
		return nil, fmt.Errorf("suite %s lists no programs", path)
	}

	dir := filepath.Dir(path)
	for i := range suite.Programs {
		p := &suite.Programs[i]
		if p.Source == "" {
			return nil, fmt.Errorf("suite %s: program %d has no source", path, i)
		}
		if !filepath.IsAbs(p.Source) {
			p.Source = filepath.Join(dir, p.Source)
		}
		if p.Name == "" {
			p.Name = filepath.Base(p.Source)
		}
	}
	if suite.Name == "" {
		suite.Name = filepath.Base(path)
	}
	return &suite, nil
}

// SuiteFromDir builds a suite out of every recognized source file
// directly inside dir, in lexical order.
func SuiteFromDir(dir string) (*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	suite := &Suite{Name: filepath.Base(dir)}
	for _, entry := range entries {
		if entry.IsDir() || !isSourceFile(entry.Name()) {
			continue
		}
		suite.Programs = append(suite.Programs, SuiteProgram{
			Name:   entry.Name(),
			Source: filepath.Join(dir, entry.Name()),
		})
	}
	if len(suite.Programs) == 0 {
		return nil, fmt.Errorf("no source files in %s", dir)
	}
	return suite, nil
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range config.SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
