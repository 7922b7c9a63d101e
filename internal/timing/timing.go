// Package timing measures how long console lines and their routines take.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Lap is one named checkpoint of a Timer
type Lap struct {
	Label string
	// Split is the time since the previous lap
	Split time.Duration
	// Total is the time since the timer started
	Total time.Duration
}

// Timer records labeled checkpoints
type Timer struct {
	now   func() time.Time
	start time.Time
	laps  []Lap
}

// NewTimer starts a timer on the wall clock
func NewTimer() *Timer {
	return NewTimerWithClock(time.Now)
}

// NewTimerWithClock starts a timer reading time from now
func NewTimerWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, start: now()}
}

// Mark records a checkpoint and returns the time since the previous one
func (t *Timer) Mark(label string) time.Duration {
	total := t.now().Sub(t.start)
	split := total
	if n := len(t.laps); n > 0 {
		split = total - t.laps[n-1].Total
	}
	t.laps = append(t.laps, Lap{Label: label, Split: split, Total: total})
	return split
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Get returns the split of the first lap named label
func (t *Timer) Get(label string) (time.Duration, bool) {
	for _, l := range t.laps {
		if l.Label == label {
			return l.Split, true
		}
	}
	return 0, false
}

// Laps returns the recorded checkpoints in order
func (t *Timer) Laps() []Lap {
	return append([]Lap(nil), t.laps...)
}

// Summary formats the total and every split in milliseconds
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s", ms(t.Elapsed()))
	if len(t.laps) == 0 {
		return b.String()
	}

	b.WriteString(" (")
	for i, l := range t.laps {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", l.Label, ms(l.Split))
	}
	b.WriteString(")")
	return b.String()
}

// Reset restarts the timer and forgets every lap
func (t *Timer) Reset() {
	t.start = t.now()
	t.laps = nil
}

func ms(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
