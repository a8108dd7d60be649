// Package runnersettings loads the local process-tuning knobs the
// benchmark driver runs under: worker concurrency and per-unit timeout
// (spec.md §4.H, §7). It also loads a retry ceiling (max_retries), which
// is not passed on: the default player always uses its own fixed ceiling
// of 3 retries. This is distinct from the benchmark's
// own condensed/expanded config (a domain object this repo defines), the
// same way the teacher keeps its bot/table game-rules config separate
// from ServerSettings. Grounded on internal/server/config.go's HCL
// block-tag + gohcl.DecodeBody idiom.
package runnersettings

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// RunnerSettings tunes how the driver executes a benchmark locally.
type RunnerSettings struct {
	Runner RunnerBlock `hcl:"runner,block"`
}

// RunnerBlock is the single HCL `runner { ... }` block.
type RunnerBlock struct {
	Concurrency      int    `hcl:"concurrency,optional"`
	PerUnitTimeoutMs int    `hcl:"per_unit_timeout_ms,optional"`
	MaxRetries       int    `hcl:"max_retries,optional"`
	StorageRoot      string `hcl:"storage_root,optional"`
}

// PerUnitTimeout converts the millisecond field to a time.Duration.
func (r RunnerBlock) PerUnitTimeout() time.Duration {
	return time.Duration(r.PerUnitTimeoutMs) * time.Millisecond
}

const (
	defaultConcurrency      = 4
	defaultPerUnitTimeoutMs = 120_000
	defaultMaxRetries       = 3
	defaultStorageRoot      = "xent-data"
)

// Default returns the baseline settings used when no file is supplied.
func Default() *RunnerSettings {
	return &RunnerSettings{Runner: RunnerBlock{
		Concurrency:      defaultConcurrency,
		PerUnitTimeoutMs: defaultPerUnitTimeoutMs,
		MaxRetries:       defaultMaxRetries,
		StorageRoot:      defaultStorageRoot,
	}}
}

// Load reads RunnerSettings from an HCL file, falling back to Default()
// when the file doesn't exist, and filling any zero-valued field left
// unset in the file with its default (mirrors LoadServerConfig's
// exists-check + per-field default-fill pattern).
func Load(path string) (*RunnerSettings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse runner settings %s: %s", path, diags.Error())
	}

	var settings RunnerSettings
	diags = gohcl.DecodeBody(file.Body, nil, &settings)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode runner settings %s: %s", path, diags.Error())
	}

	applyDefaults(&settings)
	return &settings, nil
}

func applyDefaults(s *RunnerSettings) {
	if s.Runner.Concurrency == 0 {
		s.Runner.Concurrency = defaultConcurrency
	}
	if s.Runner.PerUnitTimeoutMs == 0 {
		s.Runner.PerUnitTimeoutMs = defaultPerUnitTimeoutMs
	}
	if s.Runner.MaxRetries == 0 {
		s.Runner.MaxRetries = defaultMaxRetries
	}
	if s.Runner.StorageRoot == "" {
		s.Runner.StorageRoot = defaultStorageRoot
	}
}
