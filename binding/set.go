package binding

import "encoding/json"

// Set holds the bindings of one function, indexed by name.
type Set struct {
	names  []string
	byName map[string]Descriptor
}

// NewSet indexes the given descriptors by name. Manifest order is
// preserved. A duplicate name replaces the earlier descriptor in place.
func NewSet(descriptors ...Descriptor) *Set {
	s := &Set{
		names:  make([]string, 0, len(descriptors)),
		byName: make(map[string]Descriptor, len(descriptors)),
	}

	for _, d := range descriptors {
		name := d.Name()
		if _, ok := s.byName[name]; !ok {
			s.names = append(s.names, name)
		}
		s.byName[name] = d
	}

	return s
}

// Get returns the binding with the given name.
func (s *Set) Get(name string) (Descriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Len returns the number of distinct bindings.
func (s *Set) Len() int {
	return len(s.names)
}

// Values returns the bindings in manifest order.
func (s *Set) Values() []Descriptor {
	values := make([]Descriptor, 0, len(s.names))
	for _, name := range s.names {
		values = append(values, s.byName[name])
	}

	return values
}

// Find returns the first binding matching filter, or nil.
func (s *Set) Find(filter Descriptor) Descriptor {
	return FindFirstMatching(s.Values(), filter, nil)
}

// MarshalJSON encodes the set as a name -> descriptor object.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.byName)
}
