package registry

import (
	"fmt"
	"log/slog"

	"go.dohmane.dev/record"
	"go.dohmane.dev/store"
)

// Facade bundles one entity type's three bucket accessors, the
// relational helpers parents/children, and the state classifier. It
// holds a back-reference to the owning registry so cascades can reach
// sibling types by name.
type Facade struct {
	td  *Typedef
	reg *Registry
	log *slog.Logger

	Initial *InitialAccessor
	Current *CurrentAccessor
	Deleted *DeletedAccessor
	FK      *FKAccessor
}

func newFacade(td *Typedef, reg *Registry, logger *slog.Logger) *Facade {
	f := &Facade{td: td, reg: reg, log: logger}
	f.Initial = &InitialAccessor{f: f}
	f.Current = &CurrentAccessor{f: f}
	f.Deleted = &DeletedAccessor{f: f}
	f.FK = &FKAccessor{f: f}
	return f
}

// Name returns the entity type name this facade was built for.
func (f *Facade) Name() string { return f.td.Name }

// Raise normalizes a plain record or an already-raised Record to the
// canonical form. Idempotent.
func (f *Facade) Raise(v any) record.Record { return record.Raise(v) }

// KeyFor reads the primary key out of rec at this type's key path.
func (f *Facade) KeyFor(rec record.Record) (any, error) {
	v, ok := record.GetIn(rec, f.td.Key)
	if !ok || v == nil {
		return nil, fmt.Errorf("%s: %w", f.td.Name, store.ErrMissingKey)
	}
	return v, nil
}

// State classifies rec against s per the lifecycle rules: NEW (current
// only), MODIFIED (current differs from initial, not deleted), DELETED
// (present in the deleted bucket), or UNCHANGED. It fails with
// ErrUnknownState if rec's primary key is absent from both buckets.
func (f *Facade) State(s *store.Store, rec record.Record) (store.State, error) {
	pk, err := f.KeyFor(rec)
	if err != nil {
		return "", err
	}

	name := f.td.Name
	_, inCurrent := store.GetRecord(s.Current, name, pk)
	initRec, inInitial := store.GetRecord(s.Initial, name, pk)
	_, inDeleted := store.GetRecord(s.Deleted, name, pk)

	if !inCurrent && !inInitial {
		f.log.Warn("unknown state", "type", name, "pk", pk)
		return "", fmt.Errorf("%s[%v]: %w", name, pk, store.ErrUnknownState)
	}
	if inDeleted {
		return store.StateDeleted, nil
	}
	if inCurrent && !inInitial {
		return store.StateNew, nil
	}
	if !inCurrent {
		// Present only in initial: never reachable through the documented
		// operations (deleted.accept scrubs all three buckets together),
		// but classify conservatively rather than erroring.
		return store.StateUnchanged, nil
	}

	curRec, _ := store.GetRecord(s.Current, name, pk)
	if record.Equal(initRec, curRec) {
		return store.StateUnchanged, nil
	}
	return store.StateModified, nil
}

// Parents returns the records of type relName whose primary key equals
// rec's foreign key for relName. Reads from current.
func (f *Facade) Parents(s *store.Store, relName string, rec record.Record) (map[any]record.Record, error) {
	path, ok := f.td.ForeignKeyPath(relName)
	if !ok {
		return nil, fmt.Errorf("%s has no foreign key to %s: %w", f.td.Name, relName, store.ErrUnregisteredType)
	}
	relFacade, err := f.reg.Type(relName)
	if err != nil {
		return nil, err
	}

	fkVal, _ := record.GetIn(rec, path)
	out := map[any]record.Record{}
	for _, r := range store.AllRecords(s.Current, relName) {
		pk, err := relFacade.KeyFor(r)
		if err != nil {
			continue
		}
		if record.KeysEqual(pk, fkVal) {
			out[pk] = r
		}
	}
	return out, nil
}

// Children returns the records of type relName whose foreign key for
// this type equals rec's primary key. Reads from current.
func (f *Facade) Children(s *store.Store, relName string, rec record.Record) (map[any]record.Record, error) {
	ordered, relFacade, err := f.childrenOrdered(s, relName, rec)
	if err != nil {
		return nil, err
	}
	out := make(map[any]record.Record, len(ordered))
	for _, r := range ordered {
		pk, err := relFacade.KeyFor(r)
		if err != nil {
			continue
		}
		out[pk] = r
	}
	return out, nil
}

// childrenOrdered is Children's internal counterpart: it returns the
// same records as a slice in deterministic ascending-key order, which is
// what cascades (accept's PK remap, delete, deleted.accept) iterate over
// -- a map would make traversal order a Go runtime accident instead of a
// documented property.
func (f *Facade) childrenOrdered(s *store.Store, relName string, rec record.Record) ([]record.Record, *Facade, error) {
	relFacade, err := f.reg.Type(relName)
	if err != nil {
		return nil, nil, err
	}
	path, ok := relFacade.td.ForeignKeyPath(f.td.Name)
	if !ok {
		return nil, relFacade, nil
	}
	pk, err := f.KeyFor(rec)
	if err != nil {
		return nil, nil, err
	}

	var out []record.Record
	for _, r := range store.AllRecords(s.Current, relName) {
		fkVal, _ := record.GetIn(r, path)
		if record.KeysEqual(fkVal, pk) {
			out = append(out, r)
		}
	}
	return out, relFacade, nil
}
