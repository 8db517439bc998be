package domain

import "strings"

// FactMap is the flat, namespaced fact mapping the rules engine evaluates
// against. Keys are namespaced by domain (risk.*, scores.*, presentation.*,
// preferences.*) and values are nested maps of scalars and booleans.
//
// A FactMap is built fresh for every evaluation and must never be mutated
// after it is built.
type FactMap map[string]any

// Resolve walks the fact map one dot-segment at a time and returns the value
// at the path. The second return reports whether every segment was present.
func (f FactMap) Resolve(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var current any = map[string]any(f)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set places a value at a dot-separated path, creating intermediate maps as
// needed. It is used by the fact builder during construction only; built
// fact maps are immutable by convention.
func (f FactMap) Set(path string, value any) {
	segments := strings.Split(path, ".")
	node := map[string]any(f)
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
}
