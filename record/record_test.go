package record

import "testing"

func TestGetInSetIn(t *testing.T) {
	r := Record{"id": int64(1), "billing": Record{"zip": "94110"}}

	v, ok := GetIn(r, Path{"billing", "zip"})
	if !ok || v != "94110" {
		t.Fatalf("GetIn = %v, %v; want 94110, true", v, ok)
	}

	_, ok = GetIn(r, Path{"billing", "state"})
	if ok {
		t.Fatalf("GetIn missing segment should report false")
	}

	r2 := SetIn(r, Path{"billing", "zip"}, "94103")
	if got, _ := GetIn(r2, Path{"billing", "zip"}); got != "94103" {
		t.Fatalf("SetIn did not update nested value, got %v", got)
	}
	if got, _ := GetIn(r, Path{"billing", "zip"}); got != "94110" {
		t.Fatalf("SetIn mutated the original record, got %v", got)
	}
}

func TestSetInCreatesIntermediates(t *testing.T) {
	r := Record{}
	r2 := SetIn(r, Path{"a", "b", "c"}, 1)
	if got, ok := GetIn(r2, Path{"a", "b", "c"}); !ok || got != 1 {
		t.Fatalf("GetIn = %v, %v; want 1, true", got, ok)
	}
}

func TestRaiseIdempotent(t *testing.T) {
	r := Record{"name": "A"}
	if got := Raise(r); got["name"] != "A" {
		t.Fatalf("Raise(Record) changed value: %v", got)
	}

	plain := map[string]any{"name": "A", "nested": map[string]any{"x": 1}}
	raised := Raise(plain)
	nested, ok := raised["nested"].(Record)
	if !ok {
		t.Fatalf("Raise did not convert nested map to Record: %T", raised["nested"])
	}
	if nested["x"] != 1 {
		t.Fatalf("nested value lost: %v", nested)
	}
}

func TestEqualIgnoresFieldOrder(t *testing.T) {
	a := Record{"x": 1, "y": 2}
	b := Record{"y": 2, "x": 1}
	if !Equal(a, b) {
		t.Fatalf("Equal should ignore field order")
	}
	c := Record{"x": 1, "y": 3}
	if Equal(a, c) {
		t.Fatalf("Equal should detect differing values")
	}
}

func TestDiff(t *testing.T) {
	initial := Record{"id": int64(1), "name": "A", "tier": "free"}
	current := Record{"id": int64(1), "name": "A", "tier": "paid"}

	got := Diff(initial, current)
	want := Record{"tier": "paid"}
	if !Equal(got, want) {
		t.Fatalf("Diff = %v, want %v", got, want)
	}
}

func TestKeysEqualAcrossNumericTypes(t *testing.T) {
	if !KeysEqual(int(5), int64(5)) {
		t.Fatalf("KeysEqual(int, int64) should be true")
	}
	if !KeysEqual(float64(5), int64(5)) {
		t.Fatalf("KeysEqual(float64, int64) should be true for whole numbers")
	}
	if KeysEqual("5", int64(5)) {
		t.Fatalf("KeysEqual(string, int64) should be false")
	}
}
