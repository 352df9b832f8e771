// Package layout reads a fuzz project's directory structure, the Go
// equivalent of cargo-fuzzcheck's project/read.rs: discover the fuzz
// targets, the build script, and the corpus directories under a project
// root, without assuming anything about how any individual target works.
package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/corefuzz/corefuzz/internal/ferrors"
)

// FuzzTarget is one discovered fuzz entry point: a Go test file whose name
// ends in _fuzz_test.go, the convention this package treats as the analogue of
// Rust's fuzz_targets/*.rs - a package containing a Fuzz* function cargo
// fuzzcheck's non_instrumented/fuzz_targets held as a standalone binary
// per target (go test -fuzz names the function directly instead).
type FuzzTarget struct {
	Name string // file name, e.g. "parse_fuzz_test.go"
	Path string
}

// Corpus is one discovered corpus directory under corpora/, named after
// the fuzz target it seeds.
type Corpus struct {
	TargetName string
	Path       string
}

// Root is a fuzz project's layout: its fuzz targets, an optional build
// script, and whatever corpus directories already exist. Corefuzz has no
// separate instrumented/non-instrumented compilation units the way
// cargo-fuzzcheck does (Go has one build graph), so Root collapses that
// split to a single BuildScript discovered alongside the targets.
type Root struct {
	ModulePath  string
	FuzzTargets []FuzzTarget
	BuildScript string // path to a build.go generator script, if present
	Corpora     []Corpus

	// Errors accumulates a structured, non-fatal error for every expected
	// subdirectory that was missing or unreadable. Read only fails
	// outright when no fuzz target could be parsed at all - everything
	// else is reported here for the caller to act on or ignore.
	Errors []*ferrors.Error
}

const (
	fuzzTargetsDir = "fuzz_targets"
	corporaDir     = "corpora"
	buildScript    = "build.go"
	fuzzTestSuffix = "_fuzz_test.go"
)

// Read discovers the fuzz project layout rooted at root: root/fuzz_targets
// for *_fuzz_test.go files, root/corpora for one subdirectory per target,
// and an optional root/build.go. It returns an error only when no fuzz
// target at all could be found; every other missing piece is reported via
// Root.Errors instead (spec.md's Non-goals place sandboxing and corpus
// ownership outside the core, but a missing corpora directory should never
// by itself stop a read, since world.NewCorpus creates its directory when
// it opens it).
func Read(root string) (*Root, error) {
	r := &Root{ModulePath: root}

	targets, err := readFuzzTargets(filepath.Join(root, fuzzTargetsDir))
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
	r.FuzzTargets = targets

	if len(r.FuzzTargets) == 0 {
		return nil, ferrors.WithPath(ferrors.KindNoFuzzTarget, root,
			"no fuzz targets found under "+fuzzTargetsDir, nil)
	}

	if path := filepath.Join(root, buildScript); fileExists(path) {
		r.BuildScript = path
	}

	corpora, err := readCorpora(filepath.Join(root, corporaDir))
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
	r.Corpora = corpora

	return r, nil
}

func readFuzzTargets(dir string) ([]FuzzTarget, *ferrors.Error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.WithPath(ferrors.KindMissingDir, dir, "read fuzz_targets directory", err)
	}

	var targets []FuzzTarget
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, fuzzTestSuffix) {
			continue
		}
		targets = append(targets, FuzzTarget{Name: name, Path: filepath.Join(dir, name)})
	}
	return targets, nil
}

func readCorpora(dir string) ([]Corpus, *ferrors.Error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ferrors.WithPath(ferrors.KindMissingDir, dir, "read corpora directory", err)
	}

	var corpora []Corpus
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		corpora = append(corpora, Corpus{TargetName: entry.Name(), Path: filepath.Join(dir, entry.Name())})
	}
	return corpora, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
