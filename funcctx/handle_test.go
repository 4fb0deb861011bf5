package funcctx_test

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/request"
	"github.com/lambda-feedback/azshim/response"
)

func TestRun(t *testing.T) {
	f := newFixture(t, httpManifest)
	payload := f.file(t, "payload", "ping")
	out := filepath.Join(f.dir, "response.json")

	opts := funcctx.Options{
		ManifestPath: f.manifest,
		Env:          request.Environ{"req": payload, "res": out},
		Stdout:       f.stdout,
	}

	err := funcctx.Run(context.Background(), opts, func(ctx context.Context, fc *funcctx.Context) (*response.Envelope, error) {
		fc.Log("handling " + fc.Req.Raw)
		return response.FromParts(http.StatusOK, map[string]string{}, "pong"), nil
	})
	require.NoError(t, err)

	res := readResponse(t, out)
	assert.Equal(t, "pong", res["body"])
	assert.Equal(t, "handling ping\n", f.stdout.String())
}

func TestRun_HandlerError(t *testing.T) {
	f := newFixture(t, httpManifest)
	out := filepath.Join(f.dir, "response.json")

	opts := funcctx.Options{
		ManifestPath: f.manifest,
		Env:          request.Environ{"res": out},
		Stdout:       f.stdout,
	}

	err := funcctx.Run(context.Background(), opts, func(context.Context, *funcctx.Context) (*response.Envelope, error) {
		return nil, assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoFileExists(t, out)
}
