package store

import (
	iradix "github.com/hashicorp/go-immutable-radix"

	"go.dohmane.dev/record"
)

// bucketFor returns the per-type tree nested inside a top-level bucket
// (initial/current/deleted), or a fresh empty tree if the type has no
// records yet. It never mutates tb.
func bucketFor(tb *iradix.Tree, typeName string) *iradix.Tree {
	if v, ok := tb.Get([]byte(typeName)); ok {
		return v.(*iradix.Tree)
	}
	return iradix.New()
}

func withBucket(tb *iradix.Tree, typeName string, b *iradix.Tree) *iradix.Tree {
	newTb, _, _ := tb.Insert([]byte(typeName), b)
	return newTb
}

// GetRecord reads the record for (typeName, pk) out of the top-level
// bucket tb.
func GetRecord(tb *iradix.Tree, typeName string, pk any) (record.Record, bool) {
	b := bucketFor(tb, typeName)
	v, ok := b.Get(encodeKey(pk))
	if !ok {
		return nil, false
	}
	return v.(record.Record), true
}

// SetRecord returns a new top-level bucket tree with rec written at
// (typeName, pk).
func SetRecord(tb *iradix.Tree, typeName string, pk any, rec record.Record) *iradix.Tree {
	b := bucketFor(tb, typeName)
	newB, _, _ := b.Insert(encodeKey(pk), rec)
	return withBucket(tb, typeName, newB)
}

// DeleteRecord returns a new top-level bucket tree with (typeName, pk)
// removed. It is a no-op (returns tb unchanged) if the key was absent.
func DeleteRecord(tb *iradix.Tree, typeName string, pk any) *iradix.Tree {
	b := bucketFor(tb, typeName)
	newB, _, ok := b.Delete(encodeKey(pk))
	if !ok {
		return tb
	}
	return withBucket(tb, typeName, newB)
}

// AllRecords returns every record of typeName in tb, in ascending
// encoded-key order. The order is deterministic for a given set of keys
// (see encodeKey) but carries no other significance.
func AllRecords(tb *iradix.Tree, typeName string) []record.Record {
	b := bucketFor(tb, typeName)
	it := b.Root().Iterator()
	out := make([]record.Record, 0, b.Len())
	for {
		_, v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v.(record.Record))
	}
	return out
}
