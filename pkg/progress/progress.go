// Package progress models the timed, non-cancelable progress counter used by
// the splash screen and by busy sequences around note mutations.
package progress

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
)

// Sequence is a fixed-step counter from 0 to 100
type Sequence struct {
	Step     int
	Interval time.Duration
	Settle   time.Duration
}

// FromConfig converts configuration into a sequence
func FromConfig(c config.SequenceConfig) Sequence {
	return Sequence{Step: c.Step, Interval: c.Interval(), Settle: c.Settle()}
}

// Steps is the number of ticks needed to reach 100
func (s Sequence) Steps() int {
	step := s.step()
	return (100 + step - 1) / step
}

// Duration is the total wall time of a timed run, settle included
func (s Sequence) Duration() time.Duration {
	return time.Duration(s.Steps())*s.Interval + s.Settle
}

func (s Sequence) step() int {
	if s.Step <= 0 || s.Step > 100 {
		return 100
	}
	return s.Step
}

// Counter is the pure state of a running sequence
type Counter struct {
	step    int
	percent int
}

// NewCounter starts a counter at 0
func NewCounter(seq Sequence) *Counter {
	return &Counter{step: seq.step()}
}

// Advance moves the counter one step, never past 100
func (c *Counter) Advance() (percent int, done bool) {
	if c.percent < 100 {
		c.percent += c.step
		if c.percent > 100 {
			c.percent = 100
		}
	}
	return c.percent, c.percent >= 100
}

// Percent returns the current value
func (c *Counter) Percent() int {
	return c.percent
}

// Done reports whether the counter reached 100
func (c *Counter) Done() bool {
	return c.percent >= 100
}

// Indicator plays a busy sequence, reporting each percentage. Run blocks
// until the sequence completes; there is no cancellation.
type Indicator interface {
	Run(report func(percent int))
}

// Timed drives a Counter from a ticker
type Timed struct {
	Sequence Sequence
}

// Run implements Indicator
func (t Timed) Run(report func(percent int)) {
	counter := NewCounter(t.Sequence)
	if report != nil {
		report(0)
	}

	ticker := time.NewTicker(maxDuration(t.Sequence.Interval, time.Millisecond))
	defer ticker.Stop()

	for !counter.Done() {
		<-ticker.C
		pct, _ := counter.Advance()
		if report != nil {
			report(pct)
		}
	}

	if t.Sequence.Settle > 0 {
		time.Sleep(t.Sequence.Settle)
	}
}

// Instant completes immediately
type Instant struct{}

// Run implements Indicator
func (Instant) Run(report func(percent int)) {
	if report != nil {
		report(100)
	}
}

// IndicatorFromConfig returns a Timed indicator for enabled sequences and
// Instant otherwise
func IndicatorFromConfig(c config.SequenceConfig) Indicator {
	if !c.Enabled {
		return Instant{}
	}
	return Timed{Sequence: FromConfig(c)}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// Gate lets at most one busy sequence run at a time
type Gate struct {
	busy    atomic.Bool
	percent atomic.Int32

	mu        sync.Mutex
	listeners []func(percent int)
}

// NewGate creates an idle gate
func NewGate() *Gate {
	return &Gate{}
}

// TryAcquire marks the gate busy, or reports false if it already is
func (g *Gate) TryAcquire() bool {
	if !g.busy.CompareAndSwap(false, true) {
		return false
	}
	g.percent.Store(0)
	return true
}

// Release marks the gate idle
func (g *Gate) Release() {
	g.percent.Store(0)
	g.busy.Store(false)
}

// Busy reports whether a sequence is running
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

// Percent returns the progress of the running sequence, 0 when idle
func (g *Gate) Percent() int {
	return int(g.percent.Load())
}

// OnProgress registers a listener called for every reported percentage
func (g *Gate) OnProgress(fn func(percent int)) {
	g.mu.Lock()
	g.listeners = append(g.listeners, fn)
	g.mu.Unlock()
}

func (g *Gate) report(percent int) {
	g.percent.Store(int32(percent))

	g.mu.Lock()
	listeners := append([]func(int){}, g.listeners...)
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(percent)
	}
}

// Do plays the indicator and then runs fn, holding the gate throughout.
// It returns ErrBusy without doing anything when another sequence runs.
func (g *Gate) Do(indicator Indicator, fn func() error) error {
	if !g.TryAcquire() {
		return apperrors.ErrBusy
	}
	defer g.Release()

	if indicator == nil {
		indicator = Instant{}
	}
	indicator.Run(g.report)
	return fn()
}
