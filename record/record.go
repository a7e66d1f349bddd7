// Package record implements the value type DOHMANE records are built
// from: a plain, opaque, path-addressable mapping from field name to
// scalar, nested record, or list thereof.
package record

// Record is an immutable-by-convention mapping from field name to value.
// Callers never mutate a Record in place; GetIn/SetIn/Raise all return
// fresh values, sharing whatever substructure they did not touch.
type Record map[string]any

// Path locates a value inside a Record by walking successive field
// names, e.g. Path{"billing", "address", "zip"}.
type Path []string

// Raise normalizes v into the canonical Record form. It is idempotent:
// raising an already-canonical Record returns it unchanged. A bare
// map[string]any (as produced by, say, a JSON decode) is deep-raised
// recursively so every nested mapping is also a Record.
func Raise(v any) Record {
	switch t := v.(type) {
	case Record:
		return t
	case map[string]any:
		return raiseMap(t)
	case nil:
		return Record{}
	default:
		return Record{}
	}
}

func raiseMap(m map[string]any) Record {
	out := make(Record, len(m))
	for k, v := range m {
		out[k] = raiseValue(v)
	}
	return out
}

func raiseValue(v any) any {
	switch t := v.(type) {
	case Record:
		return t
	case map[string]any:
		return raiseMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = raiseValue(e)
		}
		return out
	default:
		return v
	}
}

func asRecord(v any) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, true
	case map[string]any:
		return Record(t), true
	default:
		return nil, false
	}
}

// GetIn reads the value at path inside r. An empty path returns r
// itself. It reports false if any segment is absent or if an
// intermediate value is not itself a mapping.
func GetIn(r Record, path Path) (any, bool) {
	if len(path) == 0 {
		return r, true
	}

	var cur any = r
	for i, seg := range path {
		m, ok := asRecord(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		cur = v
	}
	return nil, false
}

// SetIn returns a copy of r with value written at path, creating
// intermediate records as needed. r is never modified; only the spine
// along path is copied, everything else is shared.
func SetIn(r Record, path Path, value any) Record {
	if len(path) == 0 {
		return r
	}

	out := shallowClone(r)
	head := path[0]

	if len(path) == 1 {
		out[head] = value
		return out
	}

	var child Record
	if existing, ok := r[head]; ok {
		child = Raise(existing)
	} else {
		child = Record{}
	}
	out[head] = SetIn(child, path[1:], value)
	return out
}

func shallowClone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
