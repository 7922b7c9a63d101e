package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/devconsole/internal/config"
	"github.com/NikitaCOEUR/devconsole/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	buf := &bytes.Buffer{}

	require.NoError(t, Validate(buf, writeConfig(t, testConfig)))
	assert.Contains(t, buf.String(), "Configuration is valid")
}

func TestValidate_InvalidConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	path := writeConfig(t, "aliases:\n  clear: echo\n  empty: \"\"\n")

	err := Validate(buf, path)
	require.Error(t, err)

	var ve *derrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "VALIDATION_ERROR", ve.Code())
	assert.Contains(t, buf.String(), "Configuration has errors")
	assert.Contains(t, buf.String(), "error(s)")
}

func TestValidate_SemanticErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	path := writeConfig(t, "aliases:\n  clear: echo\n")

	require.Error(t, Validate(buf, path))
	assert.Contains(t, buf.String(), "[aliases/clear]")
}

func TestValidate_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	err := Validate(&bytes.Buffer{}, "")
	var nf *derrors.NotFoundError
	require.ErrorAs(t, err, &nf)

	dir := filepath.Join(home, config.AppName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigName), []byte("log_level: debug\n"), 0644))

	buf := &bytes.Buffer{}
	require.NoError(t, Validate(buf, ""))
	assert.Contains(t, buf.String(), filepath.Join(dir, config.ConfigName))
}
