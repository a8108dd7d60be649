package config

import "github.com/xentlabs/xent-sub001/internal/xtypes"

// EventType tags the kind of a stored event, mirroring xent_event.py's
// XentEvent union (spec.md §3).
type EventType string

const (
	EventElicitRequest  EventType = "elicit_request"
	EventElicitResponse EventType = "elicit_response"
	EventReveal         EventType = "reveal"
	EventReward         EventType = "reward"
	EventFailedEnsure   EventType = "failed_ensure"
	EventRoundStarted   EventType = "round_started"
	EventRoundFinished  EventType = "round_finished"
	EventHalt           EventType = "halt"
)

// EventJSON is the flat, storage-shaped representation of a single event,
// written into GameMapRoundResult.History (spec.md §6's result file
// shape). Only the fields relevant to Type are populated; this mirrors
// the original implementation's TypedDict union collapsed into one Go
// struct for a simple, lossless JSON shape.
type EventJSON struct {
	Type EventType `json:"type"`
	Line int       `json:"line_num"`
	Player string  `json:"player"`

	// elicit_request
	VarName   string                  `json:"var_name,omitempty"`
	MaxLen    int                     `json:"max_len,omitempty"`
	Registers map[string]xtypes.XString `json:"registers,omitempty"`

	// elicit_response
	Response   string     `json:"response,omitempty"`
	TokenUsage TokenUsage `json:"token_usage,omitempty"`

	// reveal
	Values map[string]xtypes.XString `json:"values,omitempty"`

	// reward
	Value *xtypes.TokenXentList `json:"value,omitempty"`

	// failed_ensure
	EnsureResults []bool `json:"ensure_results,omitempty"`
	Beacon        string `json:"beacon,omitempty"`

	// round_started / round_finished
	RoundIndex int      `json:"round_index,omitempty"`
	BestScore  *float64 `json:"best_score,omitempty"`

	// halt
	Message string `json:"message,omitempty"`
}
