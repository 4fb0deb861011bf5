// Package funcctx provides the per-invocation function context: the
// bindings of the function, the request reassembled from the environment,
// a log call, and the terminal Done call writing the response.
package funcctx

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/lambda-feedback/azshim/binding"
	"github.com/lambda-feedback/azshim/request"
	"github.com/lambda-feedback/azshim/response"
	"github.com/lambda-feedback/azshim/util"
)

// ErrNoHTTPOutputBinding is returned by Done if the manifest declares no
// http output binding.
var ErrNoHTTPOutputBinding = errors.New("need at least one http output binding")

// DefaultManifest is the manifest file name used by the host.
const DefaultManifest = "function.json"

// Options configures a function context.
type Options struct {
	// ManifestPath is the path to the function manifest.
	ManifestPath string

	// Env is the environment snapshot of the invocation. Defaults to
	// the process environment.
	Env request.Environ

	// Stdout receives log messages and, without a response file, the
	// response body. Defaults to os.Stdout.
	Stdout io.Writer

	// Log is the logger for diagnostics of the shim itself.
	Log *zap.Logger
}

// Context is the context of a single function invocation.
type Context struct {
	// Bindings are the bindings declared in the manifest.
	Bindings *binding.Set

	// Req is the request of the invocation.
	Req *request.Request

	// Execution describes the invocation.
	Execution Execution

	env    request.Environ
	stdout io.Writer
	log    *zap.Logger
}

// New loads the manifest and builds the request of the invocation.
func New(opts Options) (*Context, error) {
	if opts.Env == nil {
		opts.Env = request.FromOS()
	}

	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	log := opts.Log.With(zap.String("manifest", opts.ManifestPath))

	bindings, err := binding.Load(opts.ManifestPath)
	if err != nil {
		log.Error("failed to load manifest", zap.Error(err))
		return nil, err
	}

	input := bindings.Find(binding.InputFilter)
	if input == nil {
		log.Debug("no input binding declared")
	}

	raw, err := request.ReadPayload(opts.Env, input)
	if err != nil {
		log.Error("failed to read payload", zap.Error(err))
		return nil, err
	}

	req := request.New(opts.Env, raw)

	execution := newExecution(opts.Env)

	log.Debug("function context ready",
		zap.String("invocation_id", execution.InvocationID),
		zap.Int("bindings", bindings.Len()),
		zap.Int("payload_bytes", len(raw)),
	)

	return &Context{
		Bindings:  bindings,
		Req:       req,
		Execution: execution,
		env:       opts.Env,
		stdout:    opts.Stdout,
		log:       opts.Log.With(zap.String("invocation_id", execution.InvocationID)),
	}, nil
}

// Env returns the environment snapshot of the invocation.
func (c *Context) Env() request.Environ {
	return c.env
}

// Log writes message to stdout, where the host picks up function logs.
// It panics if stdout cannot be written.
func (c *Context) Log(message any) {
	_ = util.Must(fmt.Fprintln(c.stdout, message))
}

// Logf is like Log, but formats the message.
func (c *Context) Logf(format string, args ...any) {
	c.Log(fmt.Sprintf(format, args...))
}

// Done writes the response of the invocation. A nil response is an
// empty 200 response. The isRaw flag is always set.
//
// The response goes to the file named by the environment variable of
// the first http output binding. If that variable is unset, only the
// body is written to stdout.
//
// Done is meant to be called once. Calling it again writes again.
func (c *Context) Done(res *response.Envelope) error {
	if res == nil {
		res = response.FromParts(http.StatusOK, nil, "")
	}

	res.MarkRaw()

	output := c.Bindings.Find(binding.HTTPOutputFilter)
	if output == nil {
		c.log.Error("no http output binding declared")
		return ErrNoHTTPOutputBinding
	}

	sink := response.SelectSink(c.env.Lookup, output, c.stdout)

	log := c.log.With(
		zap.String("binding", output.Name()),
		zap.Int("status", res.Status()),
	)

	if err := sink.Write(res); err != nil {
		log.Error("failed to write response", zap.Error(err))
		return err
	}

	if fs, ok := sink.(*response.FileSink); ok {
		log.Debug("wrote response file", zap.String("path", fs.Path))
	} else {
		log.Debug("wrote response body to stdout")
	}

	return nil
}
