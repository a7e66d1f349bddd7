package registry

import (
	"fmt"

	"go.dohmane.dev/record"
	"go.dohmane.dev/store"
)

// FKAccessor reads and writes the foreign-key field on a record given a
// relation name.
type FKAccessor struct {
	f *Facade
}

// Get returns the value at this type's foreign-key path for relName.
func (a *FKAccessor) Get(rec record.Record, relName string) (any, error) {
	path, ok := a.f.td.ForeignKeyPath(relName)
	if !ok {
		return nil, fmt.Errorf("%s has no foreign key to %s: %w", a.f.td.Name, relName, store.ErrUnregisteredType)
	}
	v, _ := record.GetIn(rec, path)
	return v, nil
}

// Set writes value at this type's foreign-key path for relName, then
// writes the resulting record into current under its own primary key.
// It returns both the new store and the new record, for callers chaining
// further cascade steps.
func (a *FKAccessor) Set(s *store.Store, relName string, rec record.Record, value any) (*store.Store, record.Record, error) {
	path, ok := a.f.td.ForeignKeyPath(relName)
	if !ok {
		return nil, nil, fmt.Errorf("%s has no foreign key to %s: %w", a.f.td.Name, relName, store.ErrUnregisteredType)
	}

	newRec := record.SetIn(rec, path, value)
	pk, err := a.f.KeyFor(newRec)
	if err != nil {
		return nil, nil, err
	}

	next := s.WithCurrent(store.SetRecord(s.Current, a.f.td.Name, pk, newRec))
	return next, newRec, nil
}
