package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xentlabs/xent-sub001/internal/config"
)

// humanPlayer prints the elicit prompt and reads one line from standard
// input, the simplest possible interactive variant (spec.md §4.E); no pack
// library wraps stdin prompting, so this follows human_player.py's plain
// input() call with Go's bufio.Scanner.
type humanPlayer struct {
	id     string
	in     *bufio.Scanner
	out    io.Writer
	prompt func(req MoveRequest) string
}

func newHumanPlayer(cfg config.PlayerConfig) (Player, error) {
	return &humanPlayer{
		id:  cfg.ID,
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
		prompt: func(req MoveRequest) string {
			return fmt.Sprintf("[%s] respond (max %d tokens): ", req.VarName, req.MaxTokens)
		},
	}, nil
}

func (h *humanPlayer) ID() string { return h.id }

func (h *humanPlayer) MakeMove(_ context.Context, req MoveRequest) (MoveResult, error) {
	fmt.Fprint(h.out, h.prompt(req))
	if !h.in.Scan() {
		return MoveResult{}, fmt.Errorf("human player: no input available: %w", h.in.Err())
	}
	line := h.in.Text()
	return MoveResult{Response: line, FullResponse: line}, nil
}

func (h *humanPlayer) Post(_ context.Context, _ config.EventJSON) error {
	return nil
}
