// Package expansion turns a CondensedXentBenchmarkConfig into an
// ExpandedXentBenchmarkConfig by materializing num_maps_per_game
// GameMapConfig entries per game (spec.md §4.G). Expansion is a pure
// function of its inputs: the same condensed config and metadata seed
// always produce the same expanded config.
package expansion

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"

	"github.com/xentlabs/xent-sub001/internal/config"
)

// Expand produces one GameMapConfig per (game, i) for i in
// [0, num_maps_per_game), with map_seed derived from
// hash(benchmark_seed, game_name, i).
func Expand(cfg config.CondensedXentBenchmarkConfig) config.ExpandedXentBenchmarkConfig {
	n := cfg.ExpansionConfig.NumMapsPerGame
	maps := make([]config.GameMapConfig, 0, len(cfg.Games)*n)
	for _, game := range cfg.Games {
		for i := 0; i < n; i++ {
			maps = append(maps, config.GameMapConfig{
				Name:                 game.Name,
				Code:                 game.Code,
				PresentationFunction: game.PresentationFunction,
				Aggregation:          game.Aggregation,
				MapSeed:              deriveMapSeed(cfg.Metadata.Seed, game.Name, i),
			})
		}
	}
	return config.ExpandedXentBenchmarkConfig{
		ConfigType: "expanded",
		Metadata:   cfg.Metadata,
		Players:    cfg.Players,
		Games:      cfg.Games,
		Maps:       maps,
	}
}

// deriveMapSeed computes hash(benchmark_seed, game_name, i) as a stable
// hex string, matching configuration_types.py's seed-derivation contract.
func deriveMapSeed(benchmarkSeed, gameName string, i int) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(benchmarkSeed))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(gameName))
	_, _ = h.Write([]byte{0})
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(i))
	_, _ = h.Write(buf[:])
	return strconv.FormatUint(h.Sum64(), 16)
}
