package worker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Worker runs a command to completion.
type Worker interface {
	Run(ctx context.Context, config StartConfig, input []byte, stderr func(string)) (Result, error)
}

type ProcessWorker struct {
	log *zap.Logger
}

var _ Worker = (*ProcessWorker)(nil)

func NewProcessWorker(log *zap.Logger) *ProcessWorker {
	return &ProcessWorker{
		log: log.Named("worker"),
	}
}

// Run starts the process, writes input to its stdin and waits for it to
// exit. Every line the process writes to stderr is passed to stderr, if
// set. The process and its children are killed if ctx is cancelled.
func (w *ProcessWorker) Run(
	ctx context.Context,
	config StartConfig,
	input []byte,
	stderr func(string),
) (Result, error) {
	w.log.With(
		zap.String("command", config.Cmd),
		zap.Strings("args", config.Args),
		zap.String("cwd", config.Cwd),
	).Debug("starting worker process")

	if config.Cmd == "" {
		return Result{}, ErrMissingCommand
	}

	// exit early if the context is already cancelled
	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("failed to start process: %w", ctx.Err())
	}

	cmd := exec.Command(config.Cmd, config.Args...)

	if config.Env != nil {
		env := make([]string, 0, len(config.Env))
		for k, v := range config.Env {
			env = append(env, fmt.Sprintf("%s=%s", k, v))
		}
		cmd.Env = env
	}

	if config.Cwd != "" {
		cmd.Dir = config.Cwd
	}

	var stdout bytes.Buffer
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return Result{}, err
	}

	initCmd(cmd)

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("failed to start process: %w", err)
	}

	log := w.log.With(zap.Int("pid", cmd.Process.Pid))

	// kill the process group if the context is cancelled
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-done:
		case <-ctx.Done():
			log.Info("killing process", zap.Error(ctx.Err()))
			if err := killProcess(cmd, true); err != nil {
				log.Error("kill failed", zap.Error(err))
			}
		}
	}()

	// stderr must be drained before calling Wait
	var stderrWg sync.WaitGroup
	stderrWg.Add(1)
	go func() {
		defer stderrWg.Done()

		drainLines(stderrPipe, stderr, log)
	}()

	stderrWg.Wait()

	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return Result{}, fmt.Errorf("process did not finish: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return Result{}, waitErr
	}

	event := getExitEvent(waitErr)

	log.Debug("worker process exited", zap.Int("code", event.ExitCode()))

	return Result{
		Stdout: stdout.Bytes(),
		Exit:   event,
	}, nil
}

// drainLines passes every line read from r to fn until EOF. Lines are not
// limited in length. After a read error, the rest of r is discarded, so
// the writing process never blocks on a full pipe.
func drainLines(r io.Reader, fn func(string), log *zap.Logger) {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if line != "" && fn != nil {
			fn(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}

		if err == nil {
			continue
		}

		if !errors.Is(err, io.EOF) {
			log.Error("failed to read from stderr", zap.Error(err))
			io.Copy(io.Discard, r)
		}

		return
	}
}

func getExitEvent(err error) ExitEvent {
	var cell int
	var exitStatus *int
	var signo *int

	if err == nil {
		// the process exited successfully, set the exit code to 0
		exitStatus = &cell
	} else if exitError, ok := err.(*exec.ExitError); ok {
		if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
			if code := status.ExitStatus(); code >= 0 {
				cell = code
				exitStatus = &cell
			} else {
				// the process was terminated by a signal
				cell = int(status.Signal())
				signo = &cell
			}
		}
	}

	if signo == nil && exitStatus == nil {
		// could not determine the exit status or signal
		cell = 1
		exitStatus = &cell
	}

	return ExitEvent{
		Code:   exitStatus,
		Signal: signo,
	}
}
