// Package merge provides helpers for combining nested map[string]any values,
// such as decoded YAML documents and caller supplied overrides.
package merge

// Defaults returns a copy of base where every key of over that also exists in
// base is replaced by the value from over. Nested maps are merged recursively
// so a partial override keeps sibling defaults. Keys that base does not know
// about are dropped. Neither input is modified.
func Defaults(base, over map[string]any) map[string]any {
	out := clone(base)

	for k, v := range over {
		cur, ok := out[k]
		if !ok {
			continue
		}

		curMap, curIsMap := asMap(cur)
		overMap, overIsMap := asMap(v)
		if curIsMap && overIsMap {
			out[k] = Defaults(curMap, overMap)
			continue
		}

		out[k] = cloneValue(v)
	}

	return out
}

// Deep merges src into a copy of dst. Unlike Defaults, keys missing from dst
// are added.
func Deep(dst, src map[string]any) map[string]any {
	out := clone(dst)

	for k, v := range src {
		curMap, curIsMap := asMap(out[k])
		srcMap, srcIsMap := asMap(v)
		if curIsMap && srcIsMap {
			out[k] = Deep(curMap, srcMap)
			continue
		}

		out[k] = cloneValue(v)
	}

	return out
}

// Nest builds a nested map with value stored under the key path, e.g.
// Nest([]string{"screen", "class"}, "x") returns {"screen": {"class": "x"}}.
func Nest(keys []string, value any) map[string]any {
	if len(keys) == 0 {
		return map[string]any{}
	}

	if len(keys) == 1 {
		return map[string]any{keys[0]: value}
	}

	return map[string]any{keys[0]: Nest(keys[1:], value)}
}

// Lookup returns the value stored under the key path in m. Intermediate
// values must be maps.
func Lookup(m map[string]any, keys ...string) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}

	cur := m
	for i, k := range keys {
		v, ok := cur[k]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}

		next, ok := asMap(v)
		if !ok {
			return nil, false
		}
		cur = next
	}

	return nil, false
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	if m, ok := asMap(v); ok {
		return clone(m)
	}
	return v
}

// asMap accepts both map[string]any and map[any]any so documents decoded by
// different YAML libraries can be merged.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
