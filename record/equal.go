package record

import "github.com/google/go-cmp/cmp"

// Equal reports whether a and b are structurally equivalent: same fields,
// same values, recursing through nested records and lists. Go maps carry
// no iteration order to begin with, so two records built from the same
// fields in a different order already compare equal; cmp.Equal gives us
// this for free.
func Equal(a, b Record) bool {
	return cmp.Equal(map[string]any(a), map[string]any(b))
}

// ValuesEqual is Equal's single-value counterpart, used when comparing
// one field rather than a whole record.
func ValuesEqual(a, b any) bool {
	return cmp.Equal(a, b)
}

// Diff returns the subset of current's fields whose values differ from
// initial's (added or changed; fields removed in current are not
// reported, matching the "changed properties" semantics of a staged
// edit against a baseline).
func Diff(initial, current Record) Record {
	out := Record{}
	for k, v := range current {
		iv, ok := initial[k]
		if !ok || !ValuesEqual(iv, v) {
			out[k] = v
		}
	}
	return out
}
