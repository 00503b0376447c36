package application

import (
	"sync"
	"time"

	"github.com/bnema/contentkit-cli/internal/ports"
)

const DefaultDebounceWindow = 300 * time.Millisecond

// Debouncer runs only the last function triggered within a quiet window.
type Debouncer struct {
	window    time.Duration
	scheduler ports.Scheduler

	mu         sync.Mutex
	timer      ports.Timer
	generation uint64
}

func NewDebouncer(window time.Duration, scheduler ports.Scheduler) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	if scheduler == nil {
		scheduler = ports.SystemScheduler{}
	}

	return &Debouncer{window: window, scheduler: scheduler}
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Trigger resets the pending timer; fn runs once the window elapses without another trigger.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	generation := d.generation

	d.timer = d.scheduler.AfterFunc(d.window, func() {
		d.mu.Lock()
		if d.generation != generation {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		fn()
	})
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
