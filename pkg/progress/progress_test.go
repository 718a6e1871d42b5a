package progress

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
)

func TestCounterAdvancesInFixedSteps(t *testing.T) {
	c := NewCounter(Sequence{Step: 2})
	ticks := 0
	for !c.Done() {
		pct, _ := c.Advance()
		ticks++
		assert.Equal(t, ticks*2, pct)
	}
	assert.Equal(t, 50, ticks)
	assert.Equal(t, 50, Sequence{Step: 2}.Steps())

	pct, done := c.Advance()
	assert.Equal(t, 100, pct)
	assert.True(t, done)
}

func TestCounterClampsUnevenSteps(t *testing.T) {
	c := NewCounter(Sequence{Step: 30})
	var got []int
	for !c.Done() {
		pct, _ := c.Advance()
		got = append(got, pct)
	}
	assert.Equal(t, []int{30, 60, 90, 100}, got)
	assert.Equal(t, 4, Sequence{Step: 30}.Steps())
}

func TestInvalidStepCompletesInOneTick(t *testing.T) {
	assert.Equal(t, 1, Sequence{Step: 0}.Steps())
	assert.Equal(t, 1, Sequence{Step: 500}.Steps())
}

func TestSplashDefaultsDuration(t *testing.T) {
	seq := FromConfig(config.Default().Splash)
	assert.Equal(t, 50*60*time.Millisecond+200*time.Millisecond, seq.Duration())
}

func TestTimedReportsEveryStep(t *testing.T) {
	var got []int
	Timed{Sequence: Sequence{Step: 25, Interval: time.Millisecond}}.Run(func(p int) {
		got = append(got, p)
	})
	assert.Equal(t, []int{0, 25, 50, 75, 100}, got)
}

func TestIndicatorFromConfig(t *testing.T) {
	assert.IsType(t, Instant{}, IndicatorFromConfig(config.SequenceConfig{Enabled: false}))
	assert.IsType(t, Timed{}, IndicatorFromConfig(config.SequenceConfig{Enabled: true, Step: 10}))
}

// blockingIndicator holds the gate until released so overlap can be observed
type blockingIndicator struct {
	started chan struct{}
	release chan struct{}
}

func (b blockingIndicator) Run(report func(int)) {
	report(50)
	close(b.started)
	<-b.release
	report(100)
}

func TestGateRejectsOverlap(t *testing.T) {
	g := NewGate()
	ind := blockingIndicator{started: make(chan struct{}), release: make(chan struct{})}

	var wg sync.WaitGroup
	ran := false
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := g.Do(ind, func() error {
			ran = true
			return nil
		})
		assert.NoError(t, err)
	}()

	<-ind.started
	assert.True(t, g.Busy())
	assert.Equal(t, 50, g.Percent())

	err := g.Do(Instant{}, func() error {
		t.Fatal("second sequence must not run")
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	close(ind.release)
	wg.Wait()
	assert.True(t, ran)
	assert.False(t, g.Busy())
	assert.Equal(t, 0, g.Percent())
}

func TestGateListenersAndMutationOrder(t *testing.T) {
	g := NewGate()
	var events []string
	g.OnProgress(func(p int) {
		events = append(events, "progress")
	})

	err := g.Do(Timed{Sequence: Sequence{Step: 50, Interval: time.Millisecond}}, func() error {
		events = append(events, "mutate")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"progress", "progress", "progress", "mutate"}, events)
}
