package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/world/layout"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("package fuzztargets\n"), 0o644))
}

func TestReadDiscoversFuzzTargetsAndCorpora(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "fuzz_targets", "parse_fuzz_test.go"))
	writeFile(t, filepath.Join(root, "fuzz_targets", "not_a_target.go"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "corpora", "parse"), 0o755))

	r, err := layout.Read(root)
	require.NoError(t, err)

	require.Len(t, r.FuzzTargets, 1)
	assert.Equal(t, "parse_fuzz_test.go", r.FuzzTargets[0].Name)

	require.Len(t, r.Corpora, 1)
	assert.Equal(t, "parse", r.Corpora[0].TargetName)
	assert.Empty(t, r.BuildScript)
}

func TestReadFailsWithNoFuzzTargets(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "fuzz_targets"), 0o755))

	_, err := layout.Read(root)
	assert.Error(t, err)
}

func TestReadReportsMissingCorporaNonFatally(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "fuzz_targets", "decode_fuzz_test.go"))

	r, err := layout.Read(root)
	require.NoError(t, err)
	assert.NotEmpty(t, r.Errors, "a missing corpora directory should be reported, not fatal")
}

func TestReadFindsBuildScript(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "fuzz_targets", "decode_fuzz_test.go"))
	writeFile(t, filepath.Join(root, "build.go"))

	r, err := layout.Read(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "build.go"), r.BuildScript)
}
