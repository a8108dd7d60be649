package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xerr"
)

// FileStorage is the reference Storage implementation: one JSON file per
// unit under <root>/<benchmark_id>/results/, plus a config.json and a
// running.flag, all written via a temp file + rename so a crash mid-write
// never leaves a corrupt file for resume to trip over.
type FileStorage struct {
	root         string
	benchmarkID  string
	mu           sync.Mutex
}

// NewFileStorage returns a FileStorage rooted at filepath.Join(root, benchmarkID).
func NewFileStorage(root, benchmarkID string) *FileStorage {
	return &FileStorage{root: root, benchmarkID: benchmarkID}
}

func (f *FileStorage) dir() string {
	return filepath.Join(f.root, f.benchmarkID)
}

func (f *FileStorage) resultsDir() string {
	return filepath.Join(f.dir(), "results")
}

func (f *FileStorage) configPath() string {
	return filepath.Join(f.dir(), "config.json")
}

func (f *FileStorage) runningPath() string {
	return filepath.Join(f.dir(), "running.flag")
}

func (f *FileStorage) Initialize(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return os.MkdirAll(f.resultsDir(), 0o755)
}

// StoreConfig writes cfg the first time it's called; a later call with an
// equal config is a no-op, a later call with a different config fails
// (spec.md §4.I: "write-once ... configs are immutable").
func (f *FileStorage) StoreConfig(ctx context.Context, cfg config.ExpandedXentBenchmarkConfig) error {
	existing, err := f.GetConfig(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Equal(cfg) {
			return nil
		}
		return fmt.Errorf("stored config for benchmark %q differs from the config passed in: %w", f.benchmarkID, xerr.ErrConfiguration)
	}
	return writeJSONAtomic(f.configPath(), cfg)
}

func (f *FileStorage) GetConfig(_ context.Context) (*config.ExpandedXentBenchmarkConfig, error) {
	var cfg config.ExpandedXentBenchmarkConfig
	ok, err := readJSON(f.configPath(), &cfg)
	if err != nil || !ok {
		return nil, err
	}
	return &cfg, nil
}

func (f *FileStorage) GetGameMapResults(_ context.Context, key config.UnitKey) (*config.GameMapResults, error) {
	var results config.GameMapResults
	ok, err := readJSON(f.resultPath(key), &results)
	if err != nil || !ok {
		return nil, err
	}
	return &results, nil
}

// StoreGameMapResults writes results for the unit the first time it's
// called; a later call is only permitted if the serialized bytes are
// identical (spec.md §4.I), since a differing rewrite would silently
// invalidate an already-aggregated BenchmarkResult.
func (f *FileStorage) StoreGameMapResults(_ context.Context, results config.GameMapResults) error {
	path := f.resultPath(results.Key())
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	existing, err := os.ReadFile(path)
	if err == nil {
		if string(existing) != string(data) {
			return fmt.Errorf("stored results for unit %+v differ from the results passed in: %w", results.Key(), xerr.ErrConfiguration)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return writeFileAtomic(path, data)
}

func (f *FileStorage) GetBenchmarkResults(ctx context.Context) (*config.BenchmarkResult, error) {
	cfg, err := f.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}

	entries, err := os.ReadDir(f.resultsDir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &config.BenchmarkResult{ExpandedConfig: *cfg}, nil
		}
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	results := make([]config.GameMapResults, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var r config.GameMapResults
		path := filepath.Join(f.resultsDir(), entry.Name())
		ok, err := readJSON(path, &r)
		if err != nil {
			return nil, err
		}
		if ok {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Key(), results[j].Key()
		if a.GameName != b.GameName {
			return a.GameName < b.GameName
		}
		if a.MapSeed != b.MapSeed {
			return a.MapSeed < b.MapSeed
		}
		return a.PlayerID < b.PlayerID
	})

	return &config.BenchmarkResult{ExpandedConfig: *cfg, Results: results}, nil
}

func (f *FileStorage) GetRunningState(_ context.Context) (bool, error) {
	_, err := os.Stat(f.runningPath())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat running flag: %w", err)
}

func (f *FileStorage) SetRunningState(_ context.Context, running bool) error {
	if !running {
		err := os.Remove(f.runningPath())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove running flag: %w", err)
		}
		return nil
	}
	return writeFileAtomic(f.runningPath(), []byte("running\n"))
}

// resultPath names a unit's result file deterministically from its key,
// sanitizing path-unsafe characters out of each component.
func (f *FileStorage) resultPath(key config.UnitKey) string {
	name := fmt.Sprintf("%s__%s__%s.json", sanitize(key.GameName), sanitize(key.MapSeed), sanitize(key.PlayerID))
	return filepath.Join(f.resultsDir(), name)
}

var sanitizeReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")

func sanitize(s string) string {
	return sanitizeReplacer.Replace(s)
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes via a temp file in the same directory followed by
// a rename, so a concurrent reader (or a crash) never observes a partial
// file (spec.md §4.I: "atomic, resumable").
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// readJSON reports (false, nil) if path does not exist.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return true, nil
}
