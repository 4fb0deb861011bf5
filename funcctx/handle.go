package funcctx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lambda-feedback/azshim/response"
)

// HandlerFunc handles a single invocation and returns its response.
type HandlerFunc func(context.Context, *Context) (*response.Envelope, error)

// Run builds the function context, calls fn and writes its response.
func Run(ctx context.Context, opts Options, fn HandlerFunc) error {
	fc, err := New(opts)
	if err != nil {
		return err
	}

	res, err := fn(ctx, fc)
	if err != nil {
		return err
	}

	return fc.Done(res)
}

// Handle runs fn against the process environment, with the manifest
// next to the executable, and exits non-zero on failure.
func Handle(fn HandlerFunc) {
	opts := Options{ManifestPath: manifestPath()}

	if err := Run(context.Background(), opts, fn); err != nil {
		fmt.Fprintf(os.Stderr, "function failed: %v\n", err)
		os.Exit(1)
	}
}

// manifestPath returns the manifest of the function directory announced
// by the host, falling back to the directory of the executable.
func manifestPath() string {
	if dir := os.Getenv(FunctionDirectoryVar); dir != "" {
		return filepath.Join(dir, DefaultManifest)
	}

	exe, err := os.Executable()
	if err != nil {
		return DefaultManifest
	}

	return filepath.Join(filepath.Dir(exe), DefaultManifest)
}
