// Package player implements the pluggable move-producer contract (spec.md
// §4.E): mock, default (external model), human, websocket, and halting
// variants behind one constructor registry, mirroring the tagged
// Agent/Bot construction idiom in sdk/bot.go and internal/bot's per-style
// bots.
package player

import (
	"context"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xtypes"
)

// HaltSentinel is the response value the halting variant returns; the
// runtime interprets it as a request to end the round cleanly rather than
// bind it to a register (spec.md §4.E).
const HaltSentinel = "__xent_halt__"

// MoveRequest is the runtime's prompt to a player: which register it is
// filling, the token budget, and a snapshot of the currently public
// registers the presentation function may draw on.
type MoveRequest struct {
	Line         int
	VarName      string
	MaxTokens    int
	Registers    map[string]xtypes.Value
	Presentation string
}

// MoveResult is a player's answer to a MoveRequest.
type MoveResult struct {
	Response     string
	TokenUsage   config.TokenUsage
	Prompts      []string
	FullResponse string
}

// Player is the move-producer contract every variant implements.
type Player interface {
	// ID returns the player instance's unique identity within a benchmark.
	ID() string

	// MakeMove returns a response (post-processed by the caller, e.g.
	// stripped of a <move>...</move> envelope) for the given request.
	MakeMove(ctx context.Context, req MoveRequest) (MoveResult, error)

	// Post delivers an event for this player's perspective so it can
	// update internal history (spec.md §4.E). Variants that keep no
	// history (mock, halting) may no-op.
	Post(ctx context.Context, event config.EventJSON) error
}

// Constructor builds a Player from its configuration.
type Constructor func(cfg config.PlayerConfig) (Player, error)

var registry = map[string]Constructor{}

// Register adds a named player-type constructor to the registry. Intended
// to be called from package init functions, mirroring players.py's
// player_constructors dict.
func Register(playerType string, ctor Constructor) {
	registry[playerType] = ctor
}

// New constructs a Player of the configured type.
func New(cfg config.PlayerConfig) (Player, error) {
	ctor, ok := registry[cfg.PlayerType]
	if !ok {
		return nil, unknownPlayerTypeError(cfg.PlayerType)
	}
	return ctor(cfg)
}

func init() {
	Register("mock", newMockPlayer)
	Register("default", newDefaultPlayer)
	Register("human", newHumanPlayer)
	Register("websocket", newWebsocketPlayer)
	Register("halting", newHaltingPlayer)
}
