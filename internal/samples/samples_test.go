package samples

import (
	"testing"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/dispatch"
	"github.com/NikitaCOEUR/devconsole/internal/history"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/scheduler"
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clearCounter struct {
	out   *transcript.Buffer
	calls int
}

func (c *clearCounter) Clear() {
	c.calls++
	c.out.Clear()
}

func setup(t *testing.T) (*dispatch.Dispatcher, *transcript.Buffer, *scheduler.Scheduler, *clearCounter) {
	t.Helper()
	out := transcript.New(nil)
	clr := &clearCounter{out: out}
	sched := scheduler.New(nil)

	b := registry.NewBuilder(nil).Commands(Commands(clr)...)
	for _, p := range Providers() {
		b.Provider(p)
	}
	reg, err := b.Build()
	require.NoError(t, err)

	d := dispatch.New(dispatch.Options{Registry: reg, History: history.New(0), Output: out, Scheduler: sched})
	return d, out, sched, clr
}

func TestAdd(t *testing.T) {
	d, _, _, _ := setup(t)

	got := d.Execute("add 10 20")
	assert.Equal(t, dispatch.Printed, got.Kind)
	assert.Equal(t, "30", got.Message)
}

func TestColor(t *testing.T) {
	d, out, _, _ := setup(t)

	got := d.Execute("color Blue")
	require.Equal(t, dispatch.Void, got.Kind)

	entries := out.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "◄ Blue", entries[1].Text)
	assert.Equal(t, "#0000FF", entries[1].Color)

	assert.Equal(t, dispatch.Errored, d.Execute("color Purple").Kind)
}

func TestEcho(t *testing.T) {
	d, out, _, _ := setup(t)

	d.Execute(`echo "hello world" from  devconsole`)
	assert.Equal(t, []string{`► echo "hello world" from  devconsole`, "◄ hello world from devconsole"}, out.Lines())
}

func TestImage(t *testing.T) {
	d, out, _, _ := setup(t)

	d.Execute("image")
	entries := out.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Logo, entries[1].Element)
	assert.Equal(t, len(Logo), entries[1].Rows)
}

func TestHack(t *testing.T) {
	d, out, sched, clr := setup(t)

	got := d.Execute("hack")
	require.Equal(t, dispatch.Started, got.Kind)

	now := time.Now()
	sched.Tick(now)
	assert.Equal(t, []string{"► hack", "◄ initializing..."}, out.Lines())

	sawHacked := false
	for sched.Pending() > 0 {
		now = now.Add(3 * time.Second)
		sched.Tick(now)
		for _, line := range out.Lines() {
			if line == "   You've been hacked!" {
				sawHacked = true
			}
		}
	}

	assert.True(t, sawHacked)
	assert.Equal(t, 1, clr.calls)
	assert.Equal(t, 0, out.Len())
}

func TestEchoProvider(t *testing.T) {
	providers := Providers()
	require.Len(t, providers, 1)
	assert.Equal(t, "echo", providers[0].Command)
	assert.Equal(t, []string{"hello world", "hello devconsole", "testing"}, providers[0].Candidates())
}

func TestLogo(t *testing.T) {
	assert.Equal(t, len(Logo)-1, countNewlines(Logo.String()))
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
