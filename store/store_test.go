package store

import (
	"testing"

	"go.dohmane.dev/record"
)

func TestNewStoreIsEmpty(t *testing.T) {
	s := New()
	if s.NextKey != -1 {
		t.Fatalf("NextKey = %d, want -1", s.NextKey)
	}
	if got := AllRecords(s.Current, "Account"); len(got) != 0 {
		t.Fatalf("fresh store should have no Account records, got %v", got)
	}
}

func TestSetGetDeleteRecord(t *testing.T) {
	tb := New().Current
	rec := record.Record{"id": int64(1), "name": "A"}

	tb2 := SetRecord(tb, "Account", int64(1), rec)
	if _, ok := GetRecord(tb, "Account", int64(1)); ok {
		t.Fatalf("original tree should be untouched by SetRecord")
	}
	got, ok := GetRecord(tb2, "Account", int64(1))
	if !ok || !record.Equal(got, rec) {
		t.Fatalf("GetRecord = %v, %v; want %v, true", got, ok, rec)
	}

	tb3 := DeleteRecord(tb2, "Account", int64(1))
	if _, ok := GetRecord(tb3, "Account", int64(1)); ok {
		t.Fatalf("record should be gone after DeleteRecord")
	}
	if _, ok := GetRecord(tb2, "Account", int64(1)); !ok {
		t.Fatalf("DeleteRecord should not mutate its input tree")
	}
}

func TestAllRecordsOrderedByKey(t *testing.T) {
	tb := New().Current
	tb = SetRecord(tb, "Account", int64(3), record.Record{"id": int64(3)})
	tb = SetRecord(tb, "Account", int64(-1), record.Record{"id": int64(-1)})
	tb = SetRecord(tb, "Account", int64(2), record.Record{"id": int64(2)})

	got := AllRecords(tb, "Account")
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	order := []int64{got[0]["id"].(int64), got[1]["id"].(int64), got[2]["id"].(int64)}
	want := []int64{-1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestWithersShareUnrelatedFields(t *testing.T) {
	s := New()
	s2 := s.WithNextKey(-2)
	if s2.Initial != s.Initial || s2.Current != s.Current || s2.Deleted != s.Deleted {
		t.Fatalf("WithNextKey should not replace unrelated bucket trees")
	}
	if s.NextKey != -1 {
		t.Fatalf("original store mutated by WithNextKey")
	}
}
