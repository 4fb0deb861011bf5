package binding

import (
	_ "embed"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed manifest.schema.json
var manifestSchema []byte

var manifestSchemaLoader = gojsonschema.NewBytesLoader(manifestSchema)

// Load reads the manifest at path and returns its bindings.
//
// The manifest is a JSON document with a "bindings" list:
//
//	{"bindings": [{"name": "req", "direction": "in", "type": "httpTrigger"}]}
func Load(path string) (*Set, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	if err := validate(k.Raw()); err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	entries := k.Slices("bindings")

	descriptors := make([]Descriptor, 0, len(entries))
	for _, entry := range entries {
		descriptors = append(descriptors, Descriptor(entry.Raw()))
	}

	return NewSet(descriptors...), nil
}

func validate(doc map[string]any) error {
	schema, err := gojsonschema.NewSchema(manifestSchemaLoader)
	if err != nil {
		return err
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return err
	}

	if !res.Valid() {
		return &schemaError{errors: res.Errors()}
	}

	return nil
}
