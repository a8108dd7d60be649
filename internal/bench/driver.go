// Package bench implements the benchmark driver (spec.md §4.H): it
// enumerates work units as games×maps×players, resumes from storage,
// dispatches each unit to a bounded worker pool, and aggregates results.
// Grounded on internal/evaluator/equity.go's errgroup.WithContext +
// SetLimit worker-pool idiom from the teacher, generalized from Monte
// Carlo equity workers to game-map work units.
package bench

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/dsl"
	"github.com/xentlabs/xent-sub001/internal/judge"
	"github.com/xentlabs/xent-sub001/internal/player"
	"github.com/xentlabs/xent-sub001/internal/presentation"
	"github.com/xentlabs/xent-sub001/internal/runtime"
	"github.com/xentlabs/xent-sub001/internal/storage"
	"github.com/xentlabs/xent-sub001/internal/textgen"
	"github.com/xentlabs/xent-sub001/internal/xerr"
)

const defaultConcurrency = 4

// Driver runs an expanded benchmark config to completion against a
// storage backend, per spec.md §4.H.
type Driver struct {
	Storage        storage.Storage
	Corpus         textgen.Corpus
	TextGeneration config.TextGenerationConfig
	Concurrency    int
	PerUnitTimeout time.Duration
	Sink           Sink
	Logger         zerolog.Logger
}

// Run drives every (game_map, player) work unit the expanded config
// names, skipping any already present in storage, and returns the
// aggregated, zero-sum-adjusted result (spec.md §4.H.1-7).
func (d *Driver) Run(ctx context.Context, cfg config.ExpandedXentBenchmarkConfig) (*config.BenchmarkResult, error) {
	runID := uuid.New().String()
	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	if err := d.Storage.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}
	if err := d.Storage.StoreConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("store config: %w", err)
	}
	if err := d.Storage.SetRunningState(ctx, true); err != nil {
		return nil, fmt.Errorf("set running state: %w", err)
	}
	defer func() {
		if err := d.Storage.SetRunningState(ctx, false); err != nil {
			d.Logger.Error().Err(err).Msg("failed to clear running state")
		}
	}()

	d.emit(LifecycleEvent{Type: EventBenchmarkStarted, RunID: runID, BenchmarkID: cfg.Metadata.BenchmarkID})

	units := enumerateUnits(cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, unit := range units {
		unit := unit
		key := unit.Key()

		existing, err := d.Storage.GetGameMapResults(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("check prior results for %+v: %w", key, err)
		}
		if existing != nil {
			continue // spec.md §4.H.4: resume skips units already stored
		}

		g.Go(func() error {
			d.runWorker(gctx, runID, unit)
			return nil // per-unit failures are isolated; never cancels siblings
		})
	}

	_ = g.Wait() // runWorker never returns a non-nil error; this can't fail

	result, err := d.Storage.GetBenchmarkResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("assemble benchmark results: %w", err)
	}
	if result == nil {
		result = &config.BenchmarkResult{ExpandedConfig: cfg}
	}
	result.Results = applyZeroSum(result.Results)

	d.emit(LifecycleEvent{Type: EventBenchmarkFinished, RunID: runID, BenchmarkID: cfg.Metadata.BenchmarkID})
	return result, nil
}

func enumerateUnits(cfg config.ExpandedXentBenchmarkConfig) []config.ExecutableGameMap {
	units := make([]config.ExecutableGameMap, 0, len(cfg.Maps)*len(cfg.Players))
	for _, gm := range cfg.Maps {
		for _, p := range cfg.Players {
			units = append(units, config.ExecutableGameMap{GameMap: gm, Metadata: cfg.Metadata, Player: p})
		}
	}
	return units
}

// runWorker runs one unit to completion, storing its result. Errors are
// logged and reported via the sink rather than returned, so one unit's
// failure never aborts its siblings (spec.md §4.H.5).
func (d *Driver) runWorker(ctx context.Context, runID string, unit config.ExecutableGameMap) {
	key := unit.Key()
	d.emit(LifecycleEvent{Type: EventGameMapStarted, RunID: runID, BenchmarkID: unit.Metadata.BenchmarkID, Unit: &key})

	results, err := d.runUnit(ctx, unit)
	if err != nil {
		d.Logger.Error().Err(err).Interface("unit", key).Msg("game map unit failed")
		d.emit(LifecycleEvent{Type: EventGameMapFinished, RunID: runID, BenchmarkID: unit.Metadata.BenchmarkID, Unit: &key, Err: err})
		return
	}

	if err := d.Storage.StoreGameMapResults(ctx, results); err != nil {
		d.Logger.Error().Err(err).Interface("unit", key).Msg("failed to store game map results")
		d.emit(LifecycleEvent{Type: EventGameMapFinished, RunID: runID, BenchmarkID: unit.Metadata.BenchmarkID, Unit: &key, Err: err})
		return
	}

	d.emit(LifecycleEvent{Type: EventGameMapFinished, RunID: runID, BenchmarkID: unit.Metadata.BenchmarkID, Unit: &key})
}

func (d *Driver) runUnit(ctx context.Context, unit config.ExecutableGameMap) (config.GameMapResults, error) {
	if d.PerUnitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.PerUnitTimeout)
		defer cancel()
	}

	p, err := player.New(unit.Player)
	if err != nil {
		return config.GameMapResults{}, fmt.Errorf("instantiate player %q: %w", unit.Player.ID, err)
	}

	presentFn, ok := presentation.Lookup(unit.GameMap.PresentationFunction)
	if !ok {
		return config.GameMapResults{}, fmt.Errorf("unknown presentation function %q: %w", unit.GameMap.PresentationFunction, xerr.ErrConfiguration)
	}

	prog, err := dsl.Parse(unit.GameMap.Code)
	if err != nil {
		return config.GameMapResults{}, err
	}

	seed := seedFromMapSeed(unit.GameMap.MapSeed)
	corpus := d.Corpus
	if corpus == nil {
		corpus = textgen.StringsCorpus{""}
	}

	rt := &runtime.Runtime{
		Program:      prog,
		Judge:        judge.New(unit.Metadata.JudgeModel),
		Player:       p,
		PlayerName:   unit.Player.Name,
		Metadata:     unit.Metadata,
		Presentation: presentFn,
		Logger:       d.Logger,
		NewTextGen: func(roundIndex int) textgen.Generator {
			gen, genErr := textgen.New(d.TextGeneration, corpus, seed+int64(roundIndex))
			if genErr != nil {
				return textgen.NewSequential(textgen.StringsCorpus{""}, 0)
			}
			return gen
		},
	}

	rounds, err := rt.RunUnit(ctx)
	if err != nil {
		return config.GameMapResults{}, fmt.Errorf("run unit %+v: %w", unit.Key(), err)
	}

	scores := make([]float64, len(rounds))
	usage := config.TokenUsage{}
	for i, r := range rounds {
		scores[i] = r.Score
		usage = usage.Add(r.TokenUsage)
	}

	return config.GameMapResults{
		GameMap:      unit.GameMap,
		Metadata:     unit.Metadata,
		Player:       unit.Player,
		Score:        aggregateScore(scores, unit.GameMap.Aggregation),
		TokenUsage:   usage,
		RoundResults: rounds,
	}, nil
}

func (d *Driver) emit(event LifecycleEvent) {
	if d.Sink != nil {
		d.Sink.Emit(event)
	}
}

func seedFromMapSeed(mapSeed string) int64 {
	n, err := strconv.ParseUint(mapSeed, 16, 64)
	if err != nil {
		return 0
	}
	return int64(n)
}
