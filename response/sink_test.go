package response_test

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/azshim/binding"
	"github.com/lambda-feedback/azshim/request"
	"github.com/lambda-feedback/azshim/response"
)

var output = binding.Descriptor{"name": "res", "direction": "out", "type": "http"}

func TestFileSink_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, os.WriteFile(path, []byte("previous content that is longer"), 0o644))

	sink := &response.FileSink{Path: path}
	err := sink.Write(response.FromParts(http.StatusOK, nil, "X").MarkRaw())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": 200, "headers": {}, "body": "X", "isRaw": true}`, string(data))
}

func TestFileSink_Write_InvalidPath(t *testing.T) {
	sink := &response.FileSink{Path: filepath.Join(t.TempDir(), "missing", "response.json")}

	err := sink.Write(response.FromParts(http.StatusOK, nil, "X"))
	assert.Error(t, err)
}

func TestConsoleSink_Write(t *testing.T) {
	var buf bytes.Buffer

	sink := &response.ConsoleSink{W: &buf}
	err := sink.Write(response.FromParts(http.StatusOK, map[string]string{}, "X").MarkRaw())
	require.NoError(t, err)

	assert.Equal(t, "X", buf.String())
}

func TestSelectSink(t *testing.T) {
	var buf bytes.Buffer

	env := request.Environ{"res": "/tmp/response.json"}
	sink := response.SelectSink(env.Lookup, output, &buf)
	assert.Equal(t, &response.FileSink{Path: "/tmp/response.json"}, sink)

	env = request.Environ{}
	sink = response.SelectSink(env.Lookup, output, &buf)
	assert.Equal(t, &response.ConsoleSink{W: &buf}, sink)
}
