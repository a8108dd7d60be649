package bench

import "github.com/xentlabs/xent-sub001/internal/config"

// LifecycleEventType names the four driver-level events spec.md §4.H.6
// emits to an optional sink.
type LifecycleEventType string

const (
	EventBenchmarkStarted LifecycleEventType = "benchmark_started"
	EventGameMapStarted   LifecycleEventType = "game_map_started"
	EventGameMapFinished  LifecycleEventType = "game_map_finished"
	EventBenchmarkFinished LifecycleEventType = "benchmark_finished"
)

// LifecycleEvent is one driver-level progress notification.
type LifecycleEvent struct {
	Type        LifecycleEventType
	RunID       string
	BenchmarkID string
	Unit        *config.UnitKey
	Err         error
}

// Sink receives lifecycle events; nil-safe (a Driver with no Sink simply
// does not notify). internal/cliprogress implements this to drive a
// lipgloss-rendered terminal view.
type Sink interface {
	Emit(event LifecycleEvent)
}
