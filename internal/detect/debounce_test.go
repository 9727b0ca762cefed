package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

func TestSustainedSignal_FiresOnlyAfterThreshold(t *testing.T) {
	signal := NewSustainedSignal(domain.EventFaceAbsent, 10*time.Second, 0.9)
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	// ticks every 2s: the first active tick arms the timer, nothing fires
	// until the run exceeds 10s
	for i := 0; i <= 5; i++ {
		now := start.Add(time.Duration(i) * 2 * time.Second)
		event := signal.Observe(true, now)
		assert.Nil(t, event, "no event expected at %s elapsed", now.Sub(start))
	}

	event := signal.Observe(true, start.Add(12*time.Second))
	require.NotNil(t, event)
	assert.Equal(t, domain.EventFaceAbsent, event.EventType)
	assert.Equal(t, 0.9, event.Confidence)
	assert.Equal(t, 12, event.Duration)
	assert.Equal(t, start.Add(12*time.Second), event.Timestamp)
}

func TestSustainedSignal_ExactThresholdDoesNotFire(t *testing.T) {
	signal := NewSustainedSignal(domain.EventFocusLost, 5*time.Second, 0.7)
	start := time.Now()

	assert.Nil(t, signal.Observe(true, start))
	assert.Nil(t, signal.Observe(true, start.Add(5*time.Second)))
	assert.NotNil(t, signal.Observe(true, start.Add(5*time.Second+time.Millisecond)))
}

func TestSustainedSignal_NegativeTickClearsTimer(t *testing.T) {
	signal := NewSustainedSignal(domain.EventFaceAbsent, 10*time.Second, 0.9)
	start := time.Now()

	// a run of 9.9s broken by a single negative tick never fires
	assert.Nil(t, signal.Observe(true, start))
	assert.Nil(t, signal.Observe(true, start.Add(9900*time.Millisecond)))
	assert.Nil(t, signal.Observe(false, start.Add(10*time.Second)))

	// a fresh run must last the full threshold again
	restart := start.Add(12 * time.Second)
	assert.Nil(t, signal.Observe(true, restart))
	assert.Nil(t, signal.Observe(true, restart.Add(10*time.Second)))
	assert.NotNil(t, signal.Observe(true, restart.Add(10*time.Second+time.Millisecond)))
}

func TestSustainedSignal_RearmsAfterFiring(t *testing.T) {
	signal := NewSustainedSignal(domain.EventFocusLost, 5*time.Second, 0.7)
	start := time.Now()

	assert.Nil(t, signal.Observe(true, start))
	first := signal.Observe(true, start.Add(6*time.Second))
	require.NotNil(t, first)
	assert.Equal(t, 6, first.Duration)

	// anomaly never clears: the next full threshold produces another event
	rearm := start.Add(8 * time.Second)
	assert.Nil(t, signal.Observe(true, rearm))
	assert.Nil(t, signal.Observe(true, rearm.Add(4*time.Second)))
	second := signal.Observe(true, rearm.Add(6*time.Second))
	require.NotNil(t, second)
	assert.Equal(t, 6, second.Duration)
}

func TestSustainedSignal_Reset(t *testing.T) {
	signal := NewSustainedSignal(domain.EventFocusLost, 5*time.Second, 0.7)
	start := time.Now()

	assert.Nil(t, signal.Observe(true, start))
	signal.Reset()

	// after reset the earlier run does not count
	assert.Nil(t, signal.Observe(true, start.Add(6*time.Second)))
}
