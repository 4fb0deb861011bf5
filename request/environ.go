package request

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
)

// Environ is a snapshot of environment variables. The function context
// is built from an explicit snapshot instead of the process environment.
type Environ map[string]string

// FromOS returns a snapshot of the current process environment.
func FromOS() Environ {
	return ParseEnviron(os.Environ())
}

// ParseEnviron parses a list of "key=value" entries, as returned by
// os.Environ. Entries without a "=" are skipped.
func ParseEnviron(entries []string) Environ {
	env := make(Environ, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}

	return env
}

// LoadEnvFile reads a dotenv file into a snapshot.
func LoadEnvFile(path string) (Environ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values, err := dotenv.Parser().Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("env file %s: %w", path, err)
	}

	env := make(Environ, len(values))
	for key, value := range values {
		env[key] = fmt.Sprint(value)
	}

	return env, nil
}

// Lookup returns the value of key and whether it is set.
func (e Environ) Lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

// Get returns the value of key, or the empty string.
func (e Environ) Get(key string) string {
	return e[key]
}

// Merge returns a new snapshot with the entries of other applied on
// top of e.
func (e Environ) Merge(other Environ) Environ {
	merged := make(Environ, len(e)+len(other))
	for k, v := range e {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}

	return merged
}

// Slice returns the snapshot as "key=value" entries, e.g. for exec.Cmd.
func (e Environ) Slice() []string {
	entries := make([]string, 0, len(e))
	for k, v := range e {
		entries = append(entries, k+"="+v)
	}

	return entries
}
