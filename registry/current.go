package registry

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"go.dohmane.dev/record"
	"go.dohmane.dev/store"
)

// CurrentAccessor reads and writes the being-edited bucket for one
// entity type, and hosts the operations (create, accept, reject,
// delete) that move a record through its lifecycle.
type CurrentAccessor struct {
	f *Facade
}

func (a *CurrentAccessor) Get(s *store.Store, pk any) (record.Record, bool) {
	return store.GetRecord(s.Current, a.f.td.Name, pk)
}

func (a *CurrentAccessor) Set(s *store.Store, pk any, rec record.Record) *store.Store {
	return s.WithCurrent(store.SetRecord(s.Current, a.f.td.Name, pk, rec))
}

func (a *CurrentAccessor) GetAll(s *store.Store) []record.Record {
	return store.AllRecords(s.Current, a.f.td.Name)
}

// Create raises seed (an empty record if seed is nil), allocates a
// primary key from the store's next-key counter if seed doesn't already
// carry one, and writes the result into current. It never touches
// initial, so the resulting record is NEW.
func (a *CurrentAccessor) Create(s *store.Store, seed any) (*store.Store, record.Record, any) {
	if seed == nil {
		seed = record.Record{}
	}
	rec := a.f.Raise(seed)
	name := a.f.td.Name

	pk, hasKey := record.GetIn(rec, a.f.td.Key)
	nextKey := s.NextKey
	if !hasKey || pk == nil {
		pk = s.NextKey
		nextKey = s.NextKey - 1
		rec = record.SetIn(rec, a.f.td.Key, pk)
	}

	next := s.WithCurrent(store.SetRecord(s.Current, name, pk, rec)).WithNextKey(nextKey)
	a.f.log.Debug("create", "type", name, "pk", pk)
	return next, rec, pk
}

// GetAllNew returns current records of this type with no initial entry.
func (a *CurrentAccessor) GetAllNew(s *store.Store) []record.Record {
	name := a.f.td.Name
	var out []record.Record
	for _, rec := range store.AllRecords(s.Current, name) {
		pk, err := a.f.KeyFor(rec)
		if err != nil {
			continue
		}
		if _, ok := store.GetRecord(s.Initial, name, pk); !ok {
			out = append(out, rec)
		}
	}
	return out
}

// GetAllChanged returns current records that have an initial baseline,
// differ from it, and are not marked deleted.
func (a *CurrentAccessor) GetAllChanged(s *store.Store) []record.Record {
	name := a.f.td.Name
	var out []record.Record
	for _, rec := range store.AllRecords(s.Current, name) {
		pk, err := a.f.KeyFor(rec)
		if err != nil {
			continue
		}
		initRec, ok := store.GetRecord(s.Initial, name, pk)
		if !ok {
			continue
		}
		if record.Equal(initRec, rec) {
			continue
		}
		if _, deleted := store.GetRecord(s.Deleted, name, pk); deleted {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// GetChangedProperties returns the subset of the current record's
// fields that differ from the initial record's. With no baseline, the
// whole current record is returned -- everything is "changed" when there
// is nothing to compare against.
func (a *CurrentAccessor) GetChangedProperties(s *store.Store, pk any) (record.Record, error) {
	name := a.f.td.Name
	curRec, ok := store.GetRecord(s.Current, name, pk)
	if !ok {
		return nil, fmt.Errorf("%s[%v]: %w", name, pk, store.ErrUnknownState)
	}
	initRec, ok := store.GetRecord(s.Initial, name, pk)
	if !ok {
		return curRec, nil
	}
	return record.Diff(initRec, curRec), nil
}

// Accept promotes a pending edit to the baseline. recordKey is the old
// primary key (possibly a local negative one); newRecord carries the
// authoritative value, possibly under a new primary key. When the key
// changes, every child record along every inverse-FK relation has its
// foreign key rewritten from recordKey to the new key before the old
// key is retired from all three buckets.
func (a *CurrentAccessor) Accept(s *store.Store, recordKey any, newRecord record.Record) (*store.Store, error) {
	name := a.f.td.Name
	newRecord = a.f.Raise(newRecord)

	newPK, err := a.f.KeyFor(newRecord)
	if err != nil {
		return nil, err
	}

	cur, ok := store.GetRecord(s.Current, name, recordKey)
	if !ok {
		cur = newRecord
	}

	next := s
	if !record.KeysEqual(newPK, recordKey) {
		var errs *multierror.Error
		for _, spec := range a.f.td.InverseForeignKeys() {
			children, relFacade, err := a.f.childrenOrdered(next, spec.RelatedType, cur)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			for _, child := range children {
				var serr error
				next, _, serr = relFacade.FK.Set(next, name, child, newPK)
				if serr != nil {
					errs = multierror.Append(errs, serr)
				}
			}
		}
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
		next = next.WithInitial(store.DeleteRecord(next.Initial, name, recordKey))
		next = next.WithCurrent(store.DeleteRecord(next.Current, name, recordKey))
		next = next.WithDeleted(store.DeleteRecord(next.Deleted, name, recordKey))
		a.f.log.Debug("accept remapped key", "type", name, "from", recordKey, "to", newPK)
	}

	next = a.f.Initial.Set(next, newPK, newRecord)
	return next, nil
}

// Reject discards any pending edit at pk, returning to the last accepted
// value (or removing the record outright if it was never accepted). It
// does not cascade: rejection is a local rollback only.
func (a *CurrentAccessor) Reject(s *store.Store, pk any) *store.Store {
	name := a.f.td.Name
	if initRec, ok := store.GetRecord(s.Initial, name, pk); ok {
		next := a.f.Deleted.Reject(s, pk)
		return next.WithCurrent(store.SetRecord(next.Current, name, pk, initRec))
	}
	return s.WithCurrent(store.DeleteRecord(s.Current, name, pk))
}

// Delete stages pk for deletion. It first recurses into every
// inverse-FK relation's children and deletes each of them too (cascading
// down the relation graph). If pk has a baseline, the current value is
// copied into deleted (current keeps showing it as a tombstone, per the
// open design question in the spec: filtering tombstones out of "current"
// is left to the consumer); with no baseline, the record is removed from
// current outright.
func (a *CurrentAccessor) Delete(s *store.Store, pk any) (*store.Store, error) {
	name := a.f.td.Name
	cur, ok := store.GetRecord(s.Current, name, pk)
	if !ok {
		return s, nil
	}

	next := s
	var errs *multierror.Error
	for _, spec := range a.f.td.InverseForeignKeys() {
		children, relFacade, err := a.f.childrenOrdered(next, spec.RelatedType, cur)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		for _, child := range children {
			childPK, err := relFacade.KeyFor(child)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			var derr error
			next, derr = relFacade.Current.Delete(next, childPK)
			if derr != nil {
				errs = multierror.Append(errs, derr)
			}
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	if _, hasInitial := store.GetRecord(next.Initial, name, pk); hasInitial {
		next = next.WithDeleted(store.SetRecord(next.Deleted, name, pk, cur))
	} else {
		next = next.WithCurrent(store.DeleteRecord(next.Current, name, pk))
	}
	a.f.log.Debug("delete", "type", name, "pk", pk)
	return next, nil
}
