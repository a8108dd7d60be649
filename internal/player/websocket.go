package player

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/xentlabs/xent-sub001/internal/config"
	"github.com/xentlabs/xent-sub001/internal/xerr"
)

const defaultWebsocketTimeout = 30 * time.Second

// wsEnvelope is the wire message exchanged with a remote websocket player:
// an elicit-request out, a raw text response in.
type wsEnvelope struct {
	PlayerID  string `json:"player_id"`
	VarName   string `json:"var_name,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
	Response  string `json:"response,omitempty"`
}

// websocketPlayer publishes an elicit-request over a websocket session
// keyed by the player's id and awaits a response with a deadline (spec.md
// §4.E), following sdk/ws_client.go's dial-then-read-loop idiom.
type websocketPlayer struct {
	id      string
	url     string
	timeout time.Duration

	mu     sync.Mutex
	conn   *websocket.Conn
	dialer *websocket.Dialer
}

func newWebsocketPlayer(cfg config.PlayerConfig) (Player, error) {
	rawURL, ok := cfg.Options["url"].(string)
	if !ok || rawURL == "" {
		return nil, missingOptionError("websocket", "url")
	}
	timeout := defaultWebsocketTimeout
	if secs, ok := cfg.Options["timeout_seconds"].(float64); ok && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}
	return &websocketPlayer{
		id:      cfg.ID,
		url:     rawURL,
		timeout: timeout,
		dialer:  websocket.DefaultDialer,
	}, nil
}

func (w *websocketPlayer) ID() string { return w.id }

func (w *websocketPlayer) ensureConn() (*websocket.Conn, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		return w.conn, nil
	}
	u, err := url.Parse(w.url)
	if err != nil {
		return nil, fmt.Errorf("websocket player %q: invalid url: %w: %w", w.id, err, xerr.ErrConfiguration)
	}
	conn, _, err := w.dialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("websocket player %q: dial failed: %w: %w", w.id, err, xerr.ErrApi)
	}
	w.conn = conn
	return conn, nil
}

func (w *websocketPlayer) MakeMove(ctx context.Context, req MoveRequest) (MoveResult, error) {
	conn, err := w.ensureConn()
	if err != nil {
		return MoveResult{}, err
	}

	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > w.timeout {
		deadline = time.Now().Add(w.timeout)
	}
	_ = conn.SetWriteDeadline(deadline)

	out := wsEnvelope{PlayerID: w.id, VarName: req.VarName, MaxTokens: req.MaxTokens}
	if err := conn.WriteJSON(out); err != nil {
		return MoveResult{}, fmt.Errorf("websocket player %q: write failed: %w: %w", w.id, err, xerr.ErrApi)
	}

	_ = conn.SetReadDeadline(deadline)
	var in wsEnvelope
	if err := conn.ReadJSON(&in); err != nil {
		return MoveResult{}, fmt.Errorf("websocket player %q: read failed: %w: %w", w.id, err, xerr.ErrApi)
	}
	return MoveResult{Response: in.Response, FullResponse: in.Response}, nil
}

func (w *websocketPlayer) Post(_ context.Context, event config.EventJSON) error {
	conn, err := w.ensureConn()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("websocket player %q: marshal event: %w: %w", w.id, err, xerr.ErrInternal)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}
