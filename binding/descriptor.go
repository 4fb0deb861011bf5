package binding

// Direction is the direction of a binding, as declared in the manifest.
type Direction string

const (
	// In marks a binding the function reads from.
	In Direction = "in"

	// Out marks a binding the function writes to.
	Out Direction = "out"
)

// TypeHTTP is the binding type of http triggers and http outputs.
const TypeHTTP = "http"

// Descriptor is a single binding declared in the manifest. Well-known
// fields are exposed through accessors, all other fields are kept as-is.
type Descriptor map[string]any

var (
	// InputFilter matches the first input binding.
	InputFilter = Descriptor{"direction": string(In)}

	// HTTPOutputFilter matches the first http output binding.
	HTTPOutputFilter = Descriptor{"direction": string(Out), "type": TypeHTTP}
)

// Name returns the name of the binding. The name doubles as the key
// of the environment variable that locates the binding's channel.
func (d Descriptor) Name() string {
	return d.str("name")
}

// Direction returns the direction of the binding.
func (d Descriptor) Direction() Direction {
	return Direction(d.str("direction"))
}

// Type returns the binding type, e.g. "http" or "httpTrigger".
func (d Descriptor) Type() string {
	return d.str("type")
}

func (d Descriptor) str(key string) string {
	if s, ok := d[key].(string); ok {
		return s
	}

	return ""
}
