package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/xentlabs/xent-sub001/internal/bench"
	"github.com/xentlabs/xent-sub001/internal/cliprogress"
	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/expansion"
	"github.com/xentlabs/xent-sub001/internal/runnersettings"
	"github.com/xentlabs/xent-sub001/internal/storage"
	"github.com/xentlabs/xent-sub001/internal/textgen"
)

// RunCmd expands and runs a condensed benchmark config, resuming any
// progress already present under --storage-root.
type RunCmd struct {
	ConfigFile  string `arg:"" name:"config" help:"Path to a condensed benchmark config JSON file"`
	StorageRoot string `help:"Root directory for durable results" default:"xent-data"`
	CorpusFile  string `help:"Path to a newline-delimited text corpus; a small bundled default is used if omitted"`
	Settings    string `help:"Path to an HCL runner-settings file" default:"runner.hcl"`
	Quiet       bool   `help:"Suppress per-unit progress dots"`
	Debug       bool   `help:"Enable debug logging"`
}

var defaultCorpus = textgen.StringsCorpus{
	"The quick brown fox jumps over the lazy dog.",
	"A benchmark measures how well a model predicts unseen text.",
	"Cross-entropy rewards confident, correct predictions.",
}

func (c *RunCmd) Run() error {
	raw, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", c.ConfigFile, err)
	}
	var condensed config.CondensedXentBenchmarkConfig
	if err := json.Unmarshal(raw, &condensed); err != nil {
		return fmt.Errorf("parse config file %s: %w", c.ConfigFile, err)
	}

	settings, err := runnersettings.Load(c.Settings)
	if err != nil {
		return fmt.Errorf("load runner settings: %w", err)
	}
	if c.StorageRoot != "" {
		settings.Runner.StorageRoot = c.StorageRoot
	}

	corpus, err := loadCorpus(c.CorpusFile)
	if err != nil {
		return err
	}

	expanded := expansion.Expand(condensed)

	level := zerolog.InfoLevel
	if c.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var sink bench.Sink
	if !c.Quiet {
		sink = cliprogress.New(os.Stdout)
	}

	log.Info("starting benchmark", "benchmark_id", expanded.Metadata.BenchmarkID, "units", len(expanded.Maps)*len(expanded.Players))

	driver := &bench.Driver{
		Storage:        storage.NewFileStorage(settings.Runner.StorageRoot, expanded.Metadata.BenchmarkID),
		Corpus:         corpus,
		TextGeneration: condensed.ExpansionConfig.TextGenerationConfig,
		Concurrency:    settings.Runner.Concurrency,
		PerUnitTimeout: settings.Runner.PerUnitTimeout(),
		Sink:           sink,
		Logger:         logger,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	result, err := driver.Run(ctx, expanded)
	if err != nil {
		return fmt.Errorf("run benchmark: %w", err)
	}

	log.Info("benchmark finished", "elapsed", time.Since(start).Round(time.Millisecond), "units_completed", len(result.Results))
	return printSummary(os.Stdout, result)
}

func loadCorpus(path string) (textgen.Corpus, error) {
	if path == "" {
		return defaultCorpus, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file %s: %w", path, err)
	}
	defer f.Close()

	var lines textgen.StringsCorpus
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus file %s: %w", path, err)
	}
	if len(lines) == 0 {
		return defaultCorpus, nil
	}
	return lines, nil
}
