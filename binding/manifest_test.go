package binding_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/azshim/binding"
)

func writeManifest(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "function.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `{
		"bindings": [
			{"name": "req", "direction": "in", "type": "httpTrigger", "authLevel": "anonymous"},
			{"name": "res", "direction": "out", "type": "http"}
		],
		"disabled": false
	}`)

	s, err := binding.Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, s.Len())

	req, ok := s.Get("req")
	require.True(t, ok)
	assert.Equal(t, binding.In, req.Direction())
	assert.Equal(t, "anonymous", req["authLevel"])

	res, ok := s.Get("res")
	require.True(t, ok)
	assert.Equal(t, binding.Out, res.Direction())
	assert.Equal(t, "http", res.Type())
}

func TestLoad_EmptyBindings(t *testing.T) {
	path := writeManifest(t, `{"bindings": []}`)

	s, err := binding.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := binding.Load(path)

	var manifestErr *binding.ManifestError
	require.ErrorAs(t, err, &manifestErr)
	assert.Equal(t, path, manifestErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeManifest(t, `{"bindings": [`)

	_, err := binding.Load(path)

	var manifestErr *binding.ManifestError
	assert.ErrorAs(t, err, &manifestErr)
}

func TestLoad_MissingBindings(t *testing.T) {
	path := writeManifest(t, `{"scriptFile": "run.py"}`)

	_, err := binding.Load(path)

	var manifestErr *binding.ManifestError
	assert.ErrorAs(t, err, &manifestErr)
	assert.ErrorIs(t, err, binding.ErrInvalidManifest)
}

func TestLoad_BindingsNotAList(t *testing.T) {
	path := writeManifest(t, `{"bindings": {"name": "req"}}`)

	_, err := binding.Load(path)

	assert.ErrorIs(t, err, binding.ErrInvalidManifest)
}

func TestLoad_BindingWithoutName(t *testing.T) {
	path := writeManifest(t, `{"bindings": [{"direction": "in"}]}`)

	_, err := binding.Load(path)

	assert.ErrorIs(t, err, binding.ErrInvalidManifest)
}
