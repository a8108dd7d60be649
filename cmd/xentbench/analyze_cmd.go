package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/storage"
)

// AnalyzeCmd prints a previously stored benchmark's results without
// running anything further.
type AnalyzeCmd struct {
	BenchmarkID string `arg:"" help:"Benchmark ID to analyze"`
	StorageRoot string `help:"Root directory results were stored under" default:"xent-data"`
}

func (c *AnalyzeCmd) Run() error {
	fs := storage.NewFileStorage(c.StorageRoot, c.BenchmarkID)
	result, err := fs.GetBenchmarkResults(context.Background())
	if err != nil {
		return fmt.Errorf("load benchmark results: %w", err)
	}
	if result == nil {
		return fmt.Errorf("no stored results found for benchmark %q under %s", c.BenchmarkID, c.StorageRoot)
	}
	return printSummary(os.Stdout, result)
}

// printSummary writes one line per unit: game, map seed, player, score.
func printSummary(w io.Writer, result *config.BenchmarkResult) error {
	fmt.Fprintf(w, "%-20s %-12s %-12s %10s\n", "GAME", "MAP_SEED", "PLAYER", "SCORE")
	for _, r := range result.Results {
		fmt.Fprintf(w, "%-20s %-12s %-12s %10.4f\n", r.GameMap.Name, r.GameMap.MapSeed, r.Player.ID, r.Score)
	}
	return nil
}
