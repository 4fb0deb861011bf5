package binding

import "reflect"

// IsSubsetOf reports whether all key/value pairs of small are present
// in big. Values are compared with deep equality.
func IsSubsetOf[M ~map[string]V, V any](small, big M) bool {
	for k, v := range small {
		bv, ok := big[k]
		if !ok || !reflect.DeepEqual(v, bv) {
			return false
		}
	}

	return true
}

// FindFirstMatching returns the first item that contains filter,
// or def if there is none.
func FindFirstMatching[M ~map[string]V, V any](items []M, filter M, def M) M {
	for _, item := range items {
		if IsSubsetOf(filter, item) {
			return item
		}
	}

	return def
}
