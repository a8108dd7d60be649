// Package config defines the wire-shaped configuration and result types
// shared across xentbench's components: condensed/expanded benchmark
// config, player/game/map config, metadata, and results (spec.md §3, §6).
package config


// PlayerName is one of the fixed participant names spec.md §3 allows.
type PlayerName string

const (
	PlayerBlack PlayerName = "black"
	PlayerWhite PlayerName = "white"
	PlayerAlice PlayerName = "alice"
	PlayerBob   PlayerName = "bob"
	PlayerCarol PlayerName = "carol"
	PlayerEnv   PlayerName = "env"
)

// ZeroSumPairs lists player-name pairs whose per-round scores sum to zero
// by construction (constants.py's ZERO_SUM_PLAYER_PAIRS).
var ZeroSumPairs = [][2]PlayerName{{PlayerBlack, PlayerWhite}}

// NoRewardPlayers lists players whose reward events never affect any
// player's score (constants.py's NO_REWARD_PLAYERS).
var NoRewardPlayers = []PlayerName{PlayerEnv}

// Counterparty returns the other half of p's zero-sum pair, if any.
func Counterparty(p PlayerName) (PlayerName, bool) {
	for _, pair := range ZeroSumPairs {
		if pair[0] == p {
			return pair[1], true
		}
		if pair[1] == p {
			return pair[0], true
		}
	}
	return "", false
}

// IsNoReward reports whether p's rewards are discarded rather than scored.
func IsNoReward(p PlayerName) bool {
	for _, np := range NoRewardPlayers {
		if np == p {
			return true
		}
	}
	return false
}

// PlayerOptions is a free-form bag of scalar player-type options.
type PlayerOptions map[string]any

// PlayerConfig names one concrete player instance within a benchmark.
type PlayerConfig struct {
	Name       PlayerName    `json:"name"`
	ID         string        `json:"id"`
	PlayerType string        `json:"player_type"`
	Options    PlayerOptions `json:"options,omitempty"`
}

// Aggregation selects how a unit's per-round scores combine into the
// unit score. "" (the zero value) means the default, best-of-N.
type Aggregation string

const (
	AggregationBest Aggregation = "best"
	AggregationLast Aggregation = "last"
	AggregationSum  Aggregation = "sum"
)

// GameConfig names a game program, its DSL source, its presentation
// function, and (supplemented) an optional round-aggregation override.
type GameConfig struct {
	Name                 string      `json:"name"`
	Code                 string      `json:"code"`
	PresentationFunction string      `json:"presentation_function"`
	Aggregation          Aggregation `json:"aggregation,omitempty"`
}

// GameMapConfig fixes one map_seed for a GameConfig; expansion produces
// NumMapsPerGame of these per game (spec.md §3, §4.G).
type GameMapConfig struct {
	Name                 string      `json:"name"`
	Code                 string      `json:"code"`
	PresentationFunction string      `json:"presentation_function"`
	Aggregation          Aggregation `json:"aggregation,omitempty"`
	MapSeed              string      `json:"map_seed"`
}

// TextGeneratorType selects a text generator implementation (spec.md §6).
type TextGeneratorType string

const (
	TextGeneratorJudge           TextGeneratorType = "JUDGE"
	TextGeneratorCommunityArchive TextGeneratorType = "COMMUNITY_ARCHIVE"
)

// TextGenerationConfig parameterizes a text generator.
type TextGenerationConfig struct {
	GeneratorType   TextGeneratorType `json:"generator_type"`
	GeneratorConfig map[string]any    `json:"generator_config,omitempty"`
	MaxLength       int               `json:"max_length"`
}

// ExpansionConfig is the condensed form of how many maps to generate per
// game, and from what text generator.
type ExpansionConfig struct {
	NumMapsPerGame       int                  `json:"num_maps_per_game"`
	TextGenerationConfig TextGenerationConfig `json:"text_generation_config"`
}

// XentMetadata carries benchmark-wide identity and run parameters
// (spec.md §3). Npcs (supplemented) names additional non-scored players
// configured alongside the benchmarked player, e.g. a fixed opponent.
type XentMetadata struct {
	BenchmarkID                string         `json:"benchmark_id"`
	XentVersion                string         `json:"xent_version"`
	JudgeModel                 string         `json:"judge_model"`
	NumRoundsPerGame           int            `json:"num_rounds_per_game"`
	Seed                       string         `json:"seed"`
	StoreFullPlayerInteractions bool          `json:"store_full_player_interactions,omitempty"`
	Npcs                       []PlayerConfig `json:"npcs,omitempty"`
}

// CondensedXentBenchmarkConfig is the user-authored benchmark description:
// a number of maps to generate per game, not yet enumerated.
type CondensedXentBenchmarkConfig struct {
	ConfigType      string          `json:"config_type"`
	Metadata        XentMetadata    `json:"metadata"`
	ExpansionConfig ExpansionConfig `json:"expansion_config"`
	Players         []PlayerConfig  `json:"players"`
	Games           []GameConfig    `json:"games"`
}

// ExpandedXentBenchmarkConfig replaces ExpansionConfig with an explicit
// list of GameMapConfig, one per (game, seed) pair (spec.md §6).
type ExpandedXentBenchmarkConfig struct {
	ConfigType string          `json:"config_type"`
	Metadata   XentMetadata    `json:"metadata"`
	Players    []PlayerConfig  `json:"players"`
	Games      []GameConfig    `json:"games"`
	Maps       []GameMapConfig `json:"maps"`
}

// Equal reports deep-equality of two expanded configs, used by the driver
// to verify an immutable config hasn't changed across runs (spec.md §4.H).
func (c ExpandedXentBenchmarkConfig) Equal(other ExpandedXentBenchmarkConfig) bool {
	return configsEqual(c, other)
}

// ExecutableGameMap is the atomic work unit: one game map, run under one
// benchmark's metadata, against one player.
type ExecutableGameMap struct {
	GameMap  GameMapConfig `json:"game_map"`
	Metadata XentMetadata  `json:"metadata"`
	Player   PlayerConfig  `json:"player"`
}

// Key uniquely identifies a work unit, per spec.md §4.H.3.
func (e ExecutableGameMap) Key() UnitKey {
	return UnitKey{GameName: e.GameMap.Name, MapSeed: e.GameMap.MapSeed, PlayerID: e.Player.ID}
}

// UnitKey is the (game_name, map_seed, player_id) identity of a work unit.
type UnitKey struct {
	GameName string
	MapSeed  string
	PlayerID string
}

// TokenUsage tallies input/output tokens spent on one or more model calls.
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add returns the elementwise sum of two TokenUsages.
func (t TokenUsage) Add(other TokenUsage) TokenUsage {
	return TokenUsage{
		InputTokens:  t.InputTokens + other.InputTokens,
		OutputTokens: t.OutputTokens + other.OutputTokens,
	}
}

// GameMapRoundResult is one round's outcome within a unit.
type GameMapRoundResult struct {
	Score      float64      `json:"score"`
	TokenUsage TokenUsage   `json:"token_usage"`
	History    []EventJSON  `json:"history"`
}

// GameMapResults is the full result of one work unit.
type GameMapResults struct {
	GameMap      GameMapConfig        `json:"game_map"`
	Metadata     XentMetadata         `json:"metadata"`
	Player       PlayerConfig         `json:"player"`
	Score        float64              `json:"score"`
	TokenUsage   TokenUsage           `json:"token_usage"`
	RoundResults []GameMapRoundResult `json:"round_results"`
}

// Key returns the unit key these results belong to.
func (r GameMapResults) Key() UnitKey {
	return UnitKey{GameName: r.GameMap.Name, MapSeed: r.GameMap.MapSeed, PlayerID: r.Player.ID}
}

// BenchmarkResult bundles the expanded config with every unit's results,
// ordered by unit key (spec.md §3, §4.H.7).
type BenchmarkResult struct {
	ExpandedConfig ExpandedXentBenchmarkConfig `json:"expanded_config"`
	Results        []GameMapResults            `json:"results"`
}
