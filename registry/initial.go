package registry

import (
	"go.dohmane.dev/record"
	"go.dohmane.dev/store"
)

// InitialAccessor reads and writes the accepted-baseline bucket for one
// entity type.
type InitialAccessor struct {
	f *Facade
}

// Get returns the baseline record at pk, if any.
func (a *InitialAccessor) Get(s *store.Store, pk any) (record.Record, bool) {
	return store.GetRecord(s.Initial, a.f.td.Name, pk)
}

// GetAll returns every baseline record of this type.
func (a *InitialAccessor) GetAll(s *store.Store) []record.Record {
	return store.AllRecords(s.Initial, a.f.td.Name)
}

// Set writes rec as the new baseline at pk, then rejects any pending
// current-side edit for pk -- writing to initial means "this is the new
// baseline", so current is reset to match it (clearing any deleted mark
// along the way). The net effect at pk is UNCHANGED.
func (a *InitialAccessor) Set(s *store.Store, pk any, rec record.Record) *store.Store {
	name := a.f.td.Name
	next := s.WithInitial(store.SetRecord(s.Initial, name, pk, rec))
	return a.f.Current.Reject(next, pk)
}

// Load raises each of records, reads its primary key, and applies Set.
// After Load, every loaded record is UNCHANGED: its initial and current
// values are identical and it carries no deleted mark. This is how
// externally obtained data enters the store.
func (a *InitialAccessor) Load(s *store.Store, records []any) (*store.Store, error) {
	next := s
	for _, raw := range records {
		rec := a.f.Raise(raw)
		pk, err := a.f.KeyFor(rec)
		if err != nil {
			return nil, err
		}
		next = a.Set(next, pk, rec)
	}
	return next, nil
}
