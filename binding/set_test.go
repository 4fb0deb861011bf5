package binding_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/azshim/binding"
)

func TestSet_PreservesOrder(t *testing.T) {
	s := binding.NewSet(
		binding.Descriptor{"name": "req", "direction": "in"},
		binding.Descriptor{"name": "res", "direction": "out", "type": "http"},
		binding.Descriptor{"name": "blob", "direction": "in"},
	)

	names := []string{}
	for _, d := range s.Values() {
		names = append(names, d.Name())
	}

	assert.Equal(t, []string{"req", "res", "blob"}, names)
	assert.Equal(t, 3, s.Len())
}

func TestSet_DuplicateNameLastWriteWins(t *testing.T) {
	s := binding.NewSet(
		binding.Descriptor{"name": "req", "direction": "in", "type": "old"},
		binding.Descriptor{"name": "res", "direction": "out", "type": "http"},
		binding.Descriptor{"name": "req", "direction": "in", "type": "new"},
	)

	require.Equal(t, 2, s.Len())

	d, ok := s.Get("req")
	require.True(t, ok)
	assert.Equal(t, "new", d.Type())

	// the replaced binding keeps its position
	assert.Equal(t, "req", s.Values()[0].Name())
}

func TestSet_Find(t *testing.T) {
	s := binding.NewSet(
		binding.Descriptor{"name": "queue", "direction": "out", "type": "queue"},
		binding.Descriptor{"name": "req", "direction": "in", "type": "httpTrigger"},
		binding.Descriptor{"name": "res", "direction": "out", "type": "http"},
	)

	assert.Equal(t, "req", s.Find(binding.InputFilter).Name())
	assert.Equal(t, "res", s.Find(binding.HTTPOutputFilter).Name())
	assert.Nil(t, s.Find(binding.Descriptor{"direction": "inout"}))
}

func TestSet_MarshalJSON(t *testing.T) {
	s := binding.NewSet(
		binding.Descriptor{"name": "req", "direction": "in"},
	)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{"req": {"name": "req", "direction": "in"}}`, string(data))
}

func TestDescriptor_Accessors(t *testing.T) {
	d := binding.Descriptor{
		"name":      "req",
		"direction": "in",
		"type":      "httpTrigger",
		"authLevel": "anonymous",
	}

	assert.Equal(t, "req", d.Name())
	assert.Equal(t, binding.In, d.Direction())
	assert.Equal(t, "httpTrigger", d.Type())
	assert.Equal(t, "anonymous", d["authLevel"])
}

func TestDescriptor_MissingFields(t *testing.T) {
	d := binding.Descriptor{"name": 42}

	assert.Equal(t, "", d.Name())
	assert.Equal(t, binding.Direction(""), d.Direction())
	assert.Equal(t, "", d.Type())
}
