package cli

import (
	"bytes"
	"context"
	"io"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikitaCOEUR/devconsole/internal/console"
	"github.com/NikitaCOEUR/devconsole/internal/dispatch"
	"github.com/NikitaCOEUR/devconsole/internal/registry"
	"github.com/NikitaCOEUR/devconsole/internal/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `log_level: warn
aliases:
  greet: echo hello {{ .Args | join " " }}
completions:
  - command: echo
    priority: 10
    values: [from-config]
`

// isolate points the default config location to an empty directory
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestOpenSession_Defaults(t *testing.T) {
	isolate(t)

	e, err := openSession(SessionParams{Logs: io.Discard})
	require.NoError(t, err)
	session := e.session
	defer session.Shutdown()

	assert.Equal(t, "> ", e.cfg.Prompt)
	assert.Equal(t, []string{"help", "clear", "color", "image", "echo", "add", "hack"}, session.Registry().Names())
	assert.True(t, session.Suggestions().Visible())
}

func TestOpenSession_ConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, testConfig)

	e, err := openSession(SessionParams{ConfigPath: path, Logs: io.Discard})
	require.NoError(t, err)
	session := e.session
	defer session.Shutdown()

	assert.Equal(t, "warn", e.cfg.LogLevel)
	_, ok := session.Registry().Lookup("greet")
	assert.True(t, ok)

	res := session.Complete("echo ")
	assert.Equal(t, []string{"from-config"}, res.Candidates)
}

func TestOpenSession_InvalidConfig(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "aliases:\n  help: echo\n")

	_, err := openSession(SessionParams{ConfigPath: path, Logs: io.Discard})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start console")

	// the failed attempt must not keep the session slot
	e, err := openSession(SessionParams{Logs: io.Discard})
	require.NoError(t, err)
	e.session.Shutdown()
}

func TestSessionClearer(t *testing.T) {
	(&sessionClearer{}).Clear()
}

func routineSession(t *testing.T, steps int, pause time.Duration) *console.Session {
	t.Helper()
	session, err := console.New(console.Options{
		Commands: []registry.Command{{
			Name: "tick",
			Handler: registry.Routine(func(c *registry.Call) (iter.Seq[time.Duration], error) {
				return func(yield func(time.Duration) bool) {
					for i := range steps {
						c.Printf(transcript.Output, "step %d", i)
						if !yield(pause) {
							return
						}
					}
				}, nil
			}),
		}},
	})
	require.NoError(t, err)
	t.Cleanup(session.Shutdown)
	return session
}

func TestDrain_RunsRoutinesToCompletion(t *testing.T) {
	session := routineSession(t, 3, time.Millisecond)

	out := session.Execute("tick")
	require.Equal(t, dispatch.Started, out.Kind)

	require.NoError(t, drain(context.Background(), session))
	assert.Equal(t, 0, session.Pending())
	assert.Equal(t, []string{"► tick", "◄ step 0", "   step 1", "   step 2"}, session.Transcript().Lines())
}

func TestDrain_StopsOnCancel(t *testing.T) {
	session := routineSession(t, 3, time.Hour)
	session.Execute("tick")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := drain(ctx, session)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, session.Pending())
}

func TestInfo(t *testing.T) {
	isolate(t)
	buf := &bytes.Buffer{}

	require.NoError(t, Info(buf, SessionParams{Logs: io.Discard}))
	assert.Contains(t, buf.String(), "built-in defaults")
	assert.Contains(t, buf.String(), "none")

	path := writeConfig(t, testConfig)
	buf.Reset()
	require.NoError(t, Info(buf, SessionParams{ConfigPath: path, Logs: io.Discard}))
	assert.Contains(t, buf.String(), path)
	assert.Contains(t, buf.String(), "greet")
	assert.Contains(t, buf.String(), "1 provider(s)")
}
