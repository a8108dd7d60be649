package cliprogress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xentlabs/xent-sub001/internal/bench"
	"github.com/xentlabs/xent-sub001/internal/config"
)

func TestMonitorPrintsOneDotPerFinishedUnit(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := New(&buf)

	key := config.UnitKey{GameName: "g", MapSeed: "s", PlayerID: "p"}
	m.Emit(bench.LifecycleEvent{Type: bench.EventGameMapFinished, Unit: &key})
	m.Emit(bench.LifecycleEvent{Type: bench.EventGameMapFinished, Unit: &key, Err: assertError{}})

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "●"))
}

func TestMonitorPrintsStartAndFinishLines(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	m := New(&buf)

	m.Emit(bench.LifecycleEvent{Type: bench.EventBenchmarkStarted, BenchmarkID: "b1", RunID: "r1"})
	m.Emit(bench.LifecycleEvent{Type: bench.EventBenchmarkFinished, BenchmarkID: "b1", RunID: "r1"})

	out := buf.String()
	assert.Contains(t, out, "b1 started")
	assert.Contains(t, out, "b1 finished")
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
