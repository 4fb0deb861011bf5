package binding

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrInvalidManifest is returned when the manifest does not match
	// the manifest schema.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// ManifestError is returned when a manifest cannot be loaded.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// schemaError describes the schema violations of a manifest.
type schemaError struct {
	errors []gojsonschema.ResultError
}

func (e *schemaError) Error() string {
	msgs := make([]string, 0, len(e.errors))
	for _, re := range e.errors {
		msgs = append(msgs, re.String())
	}

	return fmt.Sprintf("%v: %s", ErrInvalidManifest, strings.Join(msgs, "; "))
}

func (e *schemaError) Unwrap() error {
	return ErrInvalidManifest
}
