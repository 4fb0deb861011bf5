package binding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambda-feedback/azshim/binding"
)

func TestFindFirstMatching_FirstMatchWins(t *testing.T) {
	items := []map[string]int{
		{"a": 1, "b": 2},
		{"a": 1, "b": 3},
	}

	actual := binding.FindFirstMatching(items, map[string]int{"a": 1}, nil)

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, actual)
}

func TestFindFirstMatching_ReturnsDefault(t *testing.T) {
	items := []binding.Descriptor{
		{"name": "req", "direction": "in"},
	}
	def := binding.Descriptor{"name": "fallback"}

	actual := binding.FindFirstMatching(items, binding.HTTPOutputFilter, def)

	assert.Equal(t, def, actual)
}

func TestFindFirstMatching_NoPrefixMatching(t *testing.T) {
	items := []binding.Descriptor{
		{"name": "res", "direction": "out", "type": "httpTrigger"},
	}

	actual := binding.FindFirstMatching(items, binding.HTTPOutputFilter, nil)

	assert.Nil(t, actual)
}

func TestFindFirstMatching_EmptyFilterMatchesFirst(t *testing.T) {
	items := []binding.Descriptor{
		{"name": "first"},
		{"name": "second"},
	}

	actual := binding.FindFirstMatching(items, binding.Descriptor{}, nil)

	assert.Equal(t, "first", actual.Name())
}

func TestIsSubsetOf(t *testing.T) {
	big := map[string]any{"a": "x", "b": []any{"1", "2"}}

	assert.True(t, binding.IsSubsetOf(map[string]any{}, big))
	assert.True(t, binding.IsSubsetOf(map[string]any{"a": "x"}, big))
	assert.True(t, binding.IsSubsetOf(map[string]any{"b": []any{"1", "2"}}, big))
	assert.False(t, binding.IsSubsetOf(map[string]any{"a": "y"}, big))
	assert.False(t, binding.IsSubsetOf(map[string]any{"c": "x"}, big))
}
