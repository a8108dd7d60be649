package player

import (
	"context"

	"github.com/xentlabs/xent-sub001/internal/config"
)

// haltingPlayer always returns HaltSentinel, letting a game concede on
// demand (spec.md §4.E). Useful for regression-testing ensure/beacon and
// halt handling without a live model.
type haltingPlayer struct {
	id      string
	message string
}

func newHaltingPlayer(cfg config.PlayerConfig) (Player, error) {
	message := "halted by player"
	if m, ok := cfg.Options["message"].(string); ok && m != "" {
		message = m
	}
	return &haltingPlayer{id: cfg.ID, message: message}, nil
}

func (h *haltingPlayer) ID() string { return h.id }

func (h *haltingPlayer) MakeMove(_ context.Context, _ MoveRequest) (MoveResult, error) {
	return MoveResult{Response: HaltSentinel, FullResponse: h.message}, nil
}

func (h *haltingPlayer) Post(_ context.Context, _ config.EventJSON) error {
	return nil
}
