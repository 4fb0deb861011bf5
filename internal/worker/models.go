package worker

import "errors"

var (
	ErrMissingCommand = errors.New("missing command")
)

type StartConfig struct {
	// Cmd is the path or name of the binary to execute
	Cmd string `conf:"cmd"`

	// Cwd is the working directory in which
	// the binary should be executed
	Cwd string `conf:"cwd"`

	// Args is the list of arguments to pass to the command
	Args []string `conf:"args"`

	// Env is a map of environment variables
	// to set when running the command
	Env map[string]string `conf:"env"`
}

type ExitEvent struct {
	// Code is the exit code of the process
	Code *int

	// Signal is the signal that caused the process to exit
	Signal *int
}

// Success reports whether the process exited with code 0.
func (e ExitEvent) Success() bool {
	return e.Code != nil && *e.Code == 0
}

// ExitCode returns the exit code, or -1 if the process was signalled.
func (e ExitEvent) ExitCode() int {
	if e.Code != nil {
		return *e.Code
	}

	return -1
}

type Result struct {
	// Stdout is everything the process wrote to stdout
	Stdout []byte

	// Exit describes how the process exited
	Exit ExitEvent
}
