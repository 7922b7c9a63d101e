package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTimer_Laps(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	timer := NewTimerWithClock(clock.now)

	clock.advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, timer.Mark("execute"))

	clock.advance(5 * time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, timer.Mark("routines"))

	assert.Equal(t, 15*time.Millisecond, timer.Elapsed())
	assert.Equal(t, []Lap{
		{Label: "execute", Split: 10 * time.Millisecond, Total: 10 * time.Millisecond},
		{Label: "routines", Split: 5 * time.Millisecond, Total: 15 * time.Millisecond},
	}, timer.Laps())

	d, ok := timer.Get("routines")
	assert.True(t, ok)
	assert.Equal(t, 5*time.Millisecond, d)

	_, ok = timer.Get("missing")
	assert.False(t, ok)
}

func TestTimer_Summary(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	timer := NewTimerWithClock(clock.now)
	assert.Equal(t, "Total: 0.000ms", timer.Summary())

	clock.advance(1500 * time.Microsecond)
	timer.Mark("session")
	clock.advance(250 * time.Microsecond)
	timer.Mark("execute")

	assert.Equal(t, "Total: 1.750ms (session: 1.500ms, execute: 0.250ms)", timer.Summary())
}

func TestTimer_Reset(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	timer := NewTimerWithClock(clock.now)

	clock.advance(time.Second)
	timer.Mark("x")
	timer.Reset()

	assert.Empty(t, timer.Laps())
	assert.Equal(t, time.Duration(0), timer.Elapsed())
}

func TestNewTimer_WallClock(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Mark("sleep"), time.Millisecond)
}
