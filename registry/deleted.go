package registry

import (
	multierror "github.com/hashicorp/go-multierror"

	"go.dohmane.dev/record"
	"go.dohmane.dev/store"
)

// DeletedAccessor reads and writes the tombstone bucket for one entity
// type, and hosts Accept/Reject for confirming or undoing a staged
// deletion.
type DeletedAccessor struct {
	f *Facade
}

func (a *DeletedAccessor) Get(s *store.Store, pk any) (record.Record, bool) {
	return store.GetRecord(s.Deleted, a.f.td.Name, pk)
}

func (a *DeletedAccessor) GetAll(s *store.Store) []record.Record {
	return store.AllRecords(s.Deleted, a.f.td.Name)
}

func (a *DeletedAccessor) Set(s *store.Store, pk any, rec record.Record) *store.Store {
	return s.WithDeleted(store.SetRecord(s.Deleted, a.f.td.Name, pk, rec))
}

// Accept confirms a staged deletion: it cascades first -- recursively
// calling Deleted.Accept on every child along every inverse-FK relation
// -- then scrubs pk from all three buckets for this type. After it
// returns, no trace of the record (or anything it cascaded to) remains.
func (a *DeletedAccessor) Accept(s *store.Store, pk any) (*store.Store, error) {
	name := a.f.td.Name

	cur, ok := store.GetRecord(s.Current, name, pk)
	if !ok {
		cur, ok = store.GetRecord(s.Deleted, name, pk)
	}

	next := s
	if ok {
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
				next, derr = relFacade.Deleted.Accept(next, childPK)
				if derr != nil {
					errs = multierror.Append(errs, derr)
				}
			}
		}
		if err := errs.ErrorOrNil(); err != nil {
			return nil, err
		}
	}

	next = next.WithInitial(store.DeleteRecord(next.Initial, name, pk))
	next = next.WithCurrent(store.DeleteRecord(next.Current, name, pk))
	next = next.WithDeleted(store.DeleteRecord(next.Deleted, name, pk))
	a.f.log.Debug("deleted.accept", "type", name, "pk", pk)
	return next, nil
}

// Reject removes pk from the deleted bucket only; the current value
// (left in place by Current.Delete) is untouched. Current.Reject calls
// this as part of its own recovery path.
func (a *DeletedAccessor) Reject(s *store.Store, pk any) *store.Store {
	return s.WithDeleted(store.DeleteRecord(s.Deleted, a.f.td.Name, pk))
}
