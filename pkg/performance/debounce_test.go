package performance

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	// given
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()
	var runs atomic.Int32

	// when triggered repeatedly within the window
	for i := 0; i < 5; i++ {
		d.trigger(1, func() { runs.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	// then exactly one callback fires once the window settles
	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	// given
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()
	var runs atomic.Int32

	// when two workspaces trigger within the same window
	d.trigger(1, func() { runs.Add(1) })
	d.trigger(2, func() { runs.Add(1) })

	// then each fires its own callback
	assert.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	// given
	d := newDebouncer(50 * time.Millisecond)
	var runs atomic.Int32
	d.trigger(1, func() { runs.Add(1) })

	// when stopped before the window elapses
	d.stop()

	// then the pending callback never fires
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}
