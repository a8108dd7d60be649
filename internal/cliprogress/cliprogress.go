// Package cliprogress implements bench.Sink for cmd/xentbench: a
// minimal, colorized per-unit progress view, grounded on
// internal/server/dots_monitor.go's colored-dot-per-hand idiom from the
// teacher, reimplemented with lipgloss styles instead of raw ANSI escape
// sequences (dots_monitor.go hardcodes \033[32m etc. directly).
package cliprogress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/xentlabs/xent-sub001/internal/bench"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))  // green
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))  // red
	styleInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	dotOK     = styleOK.Render("●")
	dotFail   = styleFail.Render("●")
)

const lineWidth = 80

// Monitor prints one dot per finished work unit: green on success, red on
// failure, wrapping every lineWidth dots, plus a line for each benchmark
// lifecycle boundary.
type Monitor struct {
	writer io.Writer

	mu       sync.Mutex
	dotCount int
}

// New returns a Monitor writing to w (os.Stdout if w is nil).
func New(w io.Writer) *Monitor {
	if w == nil {
		w = os.Stdout
	}
	return &Monitor{writer: w}
}

var _ bench.Sink = (*Monitor)(nil)

// Emit implements bench.Sink.
func (m *Monitor) Emit(event bench.LifecycleEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch event.Type {
	case bench.EventBenchmarkStarted:
		fmt.Fprintln(m.writer, styleInfo.Render(fmt.Sprintf("benchmark %s started (run %s)", event.BenchmarkID, event.RunID)))
	case bench.EventGameMapFinished:
		dot := dotOK
		if event.Err != nil {
			dot = dotFail
		}
		fmt.Fprint(m.writer, dot)
		m.dotCount++
		if m.dotCount >= lineWidth {
			fmt.Fprintln(m.writer)
			m.dotCount = 0
		}
	case bench.EventBenchmarkFinished:
		if m.dotCount > 0 {
			fmt.Fprintln(m.writer)
			m.dotCount = 0
		}
		fmt.Fprintln(m.writer, styleInfo.Render(fmt.Sprintf("benchmark %s finished", event.BenchmarkID)))
	}
}
