package world_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corefuzz/corefuzz/pool"
	"github.com/corefuzz/corefuzz/serialize"
	"github.com/corefuzz/corefuzz/world"
)

func TestCorpusApplyWritesAndLoadsBack(t *testing.T) {
	dir := t.TempDir()
	c, err := world.NewCorpus[string](dir, serialize.NewCBOR[string](".cbor"))
	require.NoError(t, err)

	deltas := []pool.CorpusDelta{{Path: "input-1", Add: true}}
	pending := map[pool.StorageIndex]string{1: "seed value"}
	require.NoError(t, c.Apply(context.Background(), deltas, pending))

	v, ok := c.Get(pool.StorageIndex(1))
	require.True(t, ok)
	assert.Equal(t, "seed value", v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCorpusApplyRemoveDeletesFile(t *testing.T) {
	dir := t.TempDir()
	c, err := world.NewCorpus[string](dir, serialize.NewCBOR[string](".cbor"))
	require.NoError(t, err)

	pending := map[pool.StorageIndex]string{5: "x"}
	require.NoError(t, c.Apply(context.Background(), []pool.CorpusDelta{{Path: "input-5", Add: true}}, pending))

	require.NoError(t, c.Apply(context.Background(), []pool.CorpusDelta{{Remove: []pool.StorageIndex{5}}}, nil))

	_, ok := c.Get(pool.StorageIndex(5))
	assert.False(t, ok)
	_, err = os.Stat(filepath.Join(dir, "input-5.cbor"))
	assert.True(t, os.IsNotExist(err))
}

func TestCorpusLoadSkipsUnparsableFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not-an-input.txt"), []byte("garbage"), 0o644))

	c, err := world.NewCorpus[string](dir, serialize.NewCBOR[string](".cbor"))
	require.NoError(t, err)

	values, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestCorpusLoadRecoversPriorlyWrittenInputs(t *testing.T) {
	dir := t.TempDir()
	ser := serialize.NewCBOR[string](".cbor")
	c, err := world.NewCorpus[string](dir, ser)
	require.NoError(t, err)

	pending := map[pool.StorageIndex]string{3: "persisted"}
	require.NoError(t, c.Apply(context.Background(), []pool.CorpusDelta{{Path: "input-3", Add: true}}, pending))

	reopened, err := world.NewCorpus[string](dir, ser)
	require.NoError(t, err)
	values, err := reopened.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", values[pool.StorageIndex(3)])
}
