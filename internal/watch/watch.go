// Package watch implements periodic re-materialization: it re-runs the
// loader→adjuster→normalizer→policy pipeline on a fixed interval and reports which test names
// changed since the previous tick. This is pure sugar over the synchronous core (spec §5): the
// core stays single-threaded and pure, watch just calls it repeatedly from one goroutine,
// grounded on the teacher's gocron-based periodic collector scheduling.
package watch

import (
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/fmf-tmt/tmtcore/internal/schema"
)

// MaterializeFunc runs the full pipeline once and returns every test, keyed by name.
type MaterializeFunc func() (map[string]*schema.Test, error)

// TickResult is emitted once per tick: either the names of tests whose outcome-relevant keys
// changed since the last tick, or an error if materialization itself failed.
type TickResult struct {
	Changed []string
	Err     error
}

// Watcher re-runs a MaterializeFunc on a fixed interval.
type Watcher struct {
	scheduler   *gocron.Scheduler
	interval    time.Duration
	materialize MaterializeFunc

	// Events emits one TickResult per completed tick.
	Events chan TickResult

	mu       sync.Mutex
	previous map[string]*schema.Test
}

// NewWatcher returns a Watcher that calls materialize every interval once Start is called.
func NewWatcher(interval time.Duration, materialize MaterializeFunc) *Watcher {
	return &Watcher{
		interval:    interval,
		materialize: materialize,
		Events:      make(chan TickResult, 1),
	}
}

// Start schedules the periodic tick and returns immediately; ticks run on the scheduler's own
// goroutine until Stop is called.
func (w *Watcher) Start() error {
	w.scheduler = gocron.NewScheduler(time.UTC)
	w.scheduler.TagsUnique()

	_, err := w.scheduler.Every(w.interval).Tag("materialize").Do(w.tick)
	if err != nil {
		return err
	}

	w.scheduler.StartAsync()
	return nil
}

// Stop halts the scheduler; no further ticks fire after it returns.
func (w *Watcher) Stop() {
	if w.scheduler != nil {
		w.scheduler.Stop()
	}
}

// Tick runs materialize once synchronously, outside the scheduler, and returns that pass's
// result from Events.
func (w *Watcher) Tick() TickResult {
	w.tick()
	return <-w.Events
}

func (w *Watcher) tick() {
	current, err := w.materialize()
	if err != nil {
		w.Events <- TickResult{Err: err}
		return
	}

	w.mu.Lock()
	changed := diff(w.previous, current)
	w.previous = current
	w.mu.Unlock()

	w.Events <- TickResult{Changed: changed}
}

func diff(prev, cur map[string]*schema.Test) []string {
	var changed []string
	for name, t := range cur {
		p, ok := prev[name]
		if !ok || !testsEqual(p, t) {
			changed = append(changed, name)
		}
	}
	for name := range prev {
		if _, ok := cur[name]; !ok {
			changed = append(changed, name)
		}
	}
	sort.Strings(changed)
	return changed
}

func testsEqual(a, b *schema.Test) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for k, v := range a.Values {
		bv, ok := b.Values[k]
		if !ok || !schema.Equal(v, bv) {
			return false
		}
	}
	return true
}
