package request

import (
	"fmt"
	"os"

	"github.com/lambda-feedback/azshim/binding"
)

// PayloadReadError is returned when the payload file of the input
// binding cannot be read.
type PayloadReadError struct {
	Binding string
	Path    string
	Err     error
}

func (e *PayloadReadError) Error() string {
	return fmt.Sprintf("failed to read payload of binding %q from %s: %v", e.Binding, e.Path, e.Err)
}

func (e *PayloadReadError) Unwrap() error {
	return e.Err
}

// ReadPayload returns the content of the file located by the input
// binding's environment variable. It returns the empty string if there
// is no input binding, or if the variable is unset or empty.
func ReadPayload(env Environ, input binding.Descriptor) (string, error) {
	if input == nil {
		return "", nil
	}

	path := env.Get(input.Name())
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &PayloadReadError{Binding: input.Name(), Path: path, Err: err}
	}

	return string(data), nil
}
