package request_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/azshim/binding"
	"github.com/lambda-feedback/azshim/request"
)

var input = binding.Descriptor{"name": "req", "direction": "in", "type": "httpTrigger"}

func TestReadPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload")
	require.NoError(t, os.WriteFile(path, []byte("line 1\nline 2\n"), 0o644))

	raw, err := request.ReadPayload(request.Environ{"req": path}, input)
	require.NoError(t, err)

	assert.Equal(t, "line 1\nline 2\n", raw)
}

func TestReadPayload_Unset(t *testing.T) {
	raw, err := request.ReadPayload(request.Environ{}, input)
	require.NoError(t, err)

	assert.Equal(t, "", raw)
}

func TestReadPayload_Empty(t *testing.T) {
	raw, err := request.ReadPayload(request.Environ{"req": ""}, input)
	require.NoError(t, err)

	assert.Equal(t, "", raw)
}

func TestReadPayload_NoInputBinding(t *testing.T) {
	raw, err := request.ReadPayload(request.Environ{"req": "/does/not/matter"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "", raw)
}

func TestReadPayload_Unreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")

	_, err := request.ReadPayload(request.Environ{"req": path}, input)

	var payloadErr *request.PayloadReadError
	require.ErrorAs(t, err, &payloadErr)
	assert.Equal(t, "req", payloadErr.Binding)
	assert.Equal(t, path, payloadErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
