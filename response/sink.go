package response

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lambda-feedback/azshim/binding"
)

// Sink writes an envelope to an output channel.
type Sink interface {
	Write(*Envelope) error
}

// FileSink writes the JSON encoded envelope to a file, replacing any
// previous content.
type FileSink struct {
	Path string
}

var _ Sink = (*FileSink)(nil)

func (s *FileSink) Write(e *Envelope) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to open response file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write response file: %w", err)
	}

	return f.Close()
}

// ConsoleSink writes only the body of the envelope, for local debugging.
type ConsoleSink struct {
	W io.Writer
}

var _ Sink = (*ConsoleSink)(nil)

func (s *ConsoleSink) Write(e *Envelope) error {
	_, err := io.WriteString(s.W, e.Body())
	return err
}

// SelectSink returns a FileSink if the environment variable named after
// the output binding is set, and a ConsoleSink writing to stdout
// otherwise.
func SelectSink(lookup func(string) (string, bool), output binding.Descriptor, stdout io.Writer) Sink {
	if path, ok := lookup(output.Name()); ok && path != "" {
		return &FileSink{Path: path}
	}

	return &ConsoleSink{W: stdout}
}
