// Package store implements DOHMANE's immutable aggregate and the
// primitive persistent-map operations its three buckets are built from.
// Everything here is a pure function of its arguments: operations return
// a new *Store rather than mutating the one they were given.
package store

import iradix "github.com/hashicorp/go-immutable-radix"

// Store is the single immutable aggregate the whole library revolves
// around: three bucket-of-buckets (type name -> primary key -> record)
// plus the auto-key counter. Each bucket is itself a persistent radix
// tree, so replacing one type's records is an O(log n) top-level
// operation that shares every other type's data untouched.
type Store struct {
	Initial *iradix.Tree
	Current *iradix.Tree
	Deleted *iradix.Tree
	NextKey int64
}

// New returns the empty store: three empty bucket trees and a next-key
// counter starting at -1, per the auto-keying contract (auto-assigned
// keys are always negative, distinguishing local-only records from ones
// a remote system has assigned a key to).
func New() *Store {
	empty := iradix.New()
	return &Store{
		Initial: empty,
		Current: empty,
		Deleted: empty,
		NextKey: -1,
	}
}

func (s *Store) WithInitial(t *iradix.Tree) *Store {
	c := *s
	c.Initial = t
	return &c
}

func (s *Store) WithCurrent(t *iradix.Tree) *Store {
	c := *s
	c.Current = t
	return &c
}

func (s *Store) WithDeleted(t *iradix.Tree) *Store {
	c := *s
	c.Deleted = t
	return &c
}

func (s *Store) WithNextKey(k int64) *Store {
	c := *s
	c.NextKey = k
	return &c
}
