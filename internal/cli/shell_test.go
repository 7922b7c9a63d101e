package cli

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleter(t *testing.T) {
	isolate(t)
	e, err := openSession(SessionParams{Logs: io.Discard})
	require.NoError(t, err)
	defer e.session.Shutdown()

	complete := completer(e.session)

	assert.Equal(t, []string{"echo"}, complete("ec"))
	assert.Equal(t, []string{"color Green"}, complete("color G"))
	assert.Equal(t, []string{"color Red", "color Green", "color Blue"}, complete("color "))
	assert.Equal(t, []string{`echo "hello world"`, `echo "hello devconsole"`}, complete("echo hel"))
	assert.Empty(t, complete("nope "))
}
