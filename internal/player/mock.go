package player

import (
	"context"

	"github.com/xentlabs/xent-sub001/internal/config"
)

// mockPlayer returns a deterministic response drawn from options.responses
// (consumed in order, the last one repeating once exhausted) or a fixed
// string, with zero token usage (spec.md §4.E).
type mockPlayer struct {
	id        string
	responses []string
	next      int
}

func newMockPlayer(cfg config.PlayerConfig) (Player, error) {
	responses := []string{"mock response"}
	if raw, ok := cfg.Options["responses"]; ok {
		if list, ok := raw.([]string); ok && len(list) > 0 {
			responses = list
		} else if list, ok := raw.([]any); ok && len(list) > 0 {
			strs := make([]string, 0, len(list))
			for _, v := range list {
				if s, ok := v.(string); ok {
					strs = append(strs, s)
				}
			}
			if len(strs) > 0 {
				responses = strs
			}
		}
	}
	return &mockPlayer{id: cfg.ID, responses: responses}, nil
}

func (m *mockPlayer) ID() string { return m.id }

func (m *mockPlayer) MakeMove(_ context.Context, _ MoveRequest) (MoveResult, error) {
	resp := m.responses[m.next]
	if m.next < len(m.responses)-1 {
		m.next++
	}
	return MoveResult{Response: resp, FullResponse: resp}, nil
}

func (m *mockPlayer) Post(_ context.Context, _ config.EventJSON) error {
	return nil
}
