package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/azshim/funcctx"
	"github.com/lambda-feedback/azshim/internal/worker"
	"github.com/lambda-feedback/azshim/response"
)

// ExitError is returned when the handler process exits unsuccessfully.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("handler process exited with %d", e.Code)
}

// ProcessConfig describes the handler process.
type ProcessConfig struct {
	// Cmd is the command to execute
	Cmd string `conf:"cmd"`

	// Args are the arguments to pass to the command
	Args []string `conf:"args"`

	// Cwd is the working directory of the command
	Cwd string `conf:"cwd"`

	// Timeout limits the run time of the process. Zero means no limit.
	Timeout time.Duration `conf:"timeout"`

	// Interface is the way the invocation is exchanged with the process.
	// Defaults to stdio.
	Interface Interface `conf:"interface" validate:"omitempty,oneof=stdio file"`
}

type ProcessParams struct {
	fx.In

	Config ProcessConfig
	Worker worker.Worker
	Log    *zap.Logger
}

// Process runs an external command as the handler. The command reads
// the invocation as JSON and writes its response, either a response
// object or a plain body. With the stdio interface, both go through
// stdin and stdout. With the file interface, they go through the files
// named by the last two arguments, and stdout lines are logged like
// stderr lines. Lines written to stderr are passed to the function log.
type Process struct {
	config ProcessConfig
	worker worker.Worker
	log    *zap.Logger
}

func NewProcess(params ProcessParams) *Process {
	return &Process{
		config: params.Config,
		worker: params.Worker,
		log:    params.Log.Named("process"),
	}
}

// Handle runs the process for the invocation of fc.
func (p *Process) Handle(ctx context.Context, fc *funcctx.Context) (*response.Envelope, error) {
	log := p.log.With(
		zap.String("command", p.config.Cmd),
		zap.String("invocation_id", fc.Execution.InvocationID),
	)

	input, err := json.Marshal(NewInvocation(fc))
	if err != nil {
		log.Error("failed to encode invocation", zap.Error(err))
		return nil, err
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	startConfig := worker.StartConfig{
		Cmd:  p.config.Cmd,
		Args: p.config.Args,
		Cwd:  p.config.Cwd,
		Env:  fc.Env(),
	}

	stdin := input

	var files *exchangeFiles
	if p.config.Interface == InterfaceFile {
		if files, err = newExchangeFiles(input, log); err != nil {
			return nil, err
		}
		defer files.remove()

		startConfig.Args = append(slices.Clone(startConfig.Args), files.request, files.response)

		startConfig.Env = maps.Clone(startConfig.Env)
		startConfig.Env[RequestFileVar] = files.request
		startConfig.Env[ResponseFileVar] = files.response

		stdin = nil
	}

	res, err := p.worker.Run(ctx, startConfig, stdin, func(line string) {
		fc.Log(line)
	})
	if err != nil {
		log.Error("handler process failed", zap.Error(err))
		return nil, err
	}

	if !res.Exit.Success() {
		log.Error("handler process exited unsuccessfully", zap.Int("code", res.Exit.ExitCode()))
		return nil, &ExitError{Code: res.Exit.ExitCode()}
	}

	if files == nil {
		return parseOutput(res.Stdout), nil
	}

	for _, line := range splitLines(res.Stdout) {
		fc.Log(line)
	}

	out, err := files.readResponse()
	if err != nil {
		log.Error("failed to read response file", zap.Error(err))
		return nil, err
	}

	return parseOutput(out), nil
}

func splitLines(out []byte) []string {
	trimmed := bytes.TrimRight(out, "\n")
	if len(trimmed) == 0 {
		return nil
	}

	return strings.Split(string(trimmed), "\n")
}

// parseOutput treats a JSON object as a complete response object, and
// anything else as the body of a 200 response.
func parseOutput(out []byte) *response.Envelope {
	trimmed := bytes.TrimSpace(out)

	if bytes.HasPrefix(trimmed, []byte("{")) {
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err == nil {
			return response.FromRaw(obj)
		}
	}

	return response.FromParts(http.StatusOK, map[string]string{}, string(out))
}
