// Package world persists pool.CorpusDelta values to disk and watches the
// corpus directory for externally-dropped seeds, the "world layer" spec.md
// §6 delegates corpus persistence to.
package world

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/corefuzz/corefuzz/internal/ferrors"
	"github.com/corefuzz/corefuzz/mutator"
	"github.com/corefuzz/corefuzz/pool"
)

// Corpus applies pool.CorpusDelta values to a directory tree, one file per
// stored input, named input-<StorageIndex><serializer extension>.
type Corpus[V any] struct {
	dir string
	ser mutator.Serializer[V]

	mu     sync.RWMutex
	values map[pool.StorageIndex]V
}

// NewCorpus opens (creating if necessary) a corpus directory at dir, using
// ser to encode and decode stored values.
func NewCorpus[V any](dir string, ser mutator.Serializer[V]) (*Corpus[V], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ferrors.WithPath(ferrors.KindMissingDir, dir, "create corpus directory", err)
	}
	return &Corpus[V]{dir: dir, ser: ser, values: make(map[pool.StorageIndex]V)}, nil
}

func (c *Corpus[V]) pathFor(id pool.StorageIndex) string {
	return filepath.Join(c.dir, fmt.Sprintf("input-%d%s", id, c.ser.Extension()))
}

// Load reads every input-<id> file already in the corpus directory into
// memory, returning the values keyed by the StorageIndex their filename
// encodes. Files that fail to parse (wrong extension, unparsable name, or a
// serializer rejection) are skipped, not fatal - a corpus directory
// accumulates files across versions of this tool and from hand-dropped
// seeds, and one bad file should never block startup.
func (c *Corpus[V]) Load() (map[pool.StorageIndex]V, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, ferrors.WithPath(ferrors.KindReadFile, c.dir, "list corpus directory", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		var id pool.StorageIndex
		name := entry.Name()
		if _, err := fmt.Sscanf(name, "input-%d"+c.ser.Extension(), &id); err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.dir, name))
		if err != nil {
			continue
		}
		value, ok := c.ser.FromData(data)
		if !ok {
			continue
		}
		c.values[id] = value
	}

	out := make(map[pool.StorageIndex]V, len(c.values))
	for id, v := range c.values {
		out[id] = v
	}
	return out, nil
}

// Get returns the in-memory value for id, if this Corpus has seen it either
// via Load or a prior Apply.
func (c *Corpus[V]) Get(id pool.StorageIndex) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[id]
	return v, ok
}

// Apply persists deltas to disk, looking up each Add delta's value in
// pending (the driver's view of values produced this round, keyed by the
// StorageIndex pool.CorpusDelta.Path encodes as "input-<id>"). Writes and
// removals run concurrently via errgroup, one goroutine each, with no
// limit on how many run at once.
func (c *Corpus[V]) Apply(ctx context.Context, deltas []pool.CorpusDelta, pending map[pool.StorageIndex]V) error {
	group, ctx := errgroup.WithContext(ctx)

	for _, delta := range deltas {
		delta := delta
		if delta.Add {
			var id pool.StorageIndex
			if _, err := fmt.Sscanf(delta.Path, "input-%d", &id); err != nil {
				continue
			}
			value, ok := pending[id]
			if !ok {
				continue
			}
			group.Go(func() error { return c.writeOne(ctx, id, value) })
		}
		for _, id := range delta.Remove {
			id := id
			group.Go(func() error { return c.removeOne(id) })
		}
	}

	return group.Wait()
}

func (c *Corpus[V]) writeOne(ctx context.Context, id pool.StorageIndex, value V) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	data := c.ser.ToData(value)
	path := c.pathFor(id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WithPath(ferrors.KindWriteFile, path, "write corpus input", err)
	}
	c.mu.Lock()
	c.values[id] = value
	c.mu.Unlock()
	return nil
}

func (c *Corpus[V]) removeOne(id pool.StorageIndex) error {
	path := c.pathFor(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return ferrors.WithPath(ferrors.KindWriteFile, path, "remove corpus input", err)
	}
	c.mu.Lock()
	delete(c.values, id)
	c.mu.Unlock()
	return nil
}

// Watch watches the corpus directory and invokes onSeed with the decoded
// value of every file created or written there. It does not tell files
// dropped in by another process (a user adding seeds while the fuzzer
// runs) apart from the ones this process's own Corpus.Apply writes. It
// blocks until ctx is canceled or the watcher errors.
func Watch[V any](ctx context.Context, dir string, ser mutator.Serializer[V], onSeed func(V)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.Wrap(ferrors.KindWatchCorpus, "create fsnotify watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return ferrors.WithPath(ferrors.KindWatchCorpus, dir, "watch corpus directory", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			data, err := os.ReadFile(event.Name)
			if err != nil {
				continue
			}
			if value, ok := ser.FromData(data); ok {
				onSeed(value)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return ferrors.Wrap(ferrors.KindWatchCorpus, "fsnotify watch error", err)
		}
	}
}
