package store

// State classifies a record's relationship to its accepted baseline, per
// the lifecycle table in the data model. It is always derived, never
// stored.
type State string

const (
	StateUnchanged State = "UNCHANGED"
	StateModified  State = "MODIFIED"
	StateNew       State = "NEW"
	StateDeleted   State = "DELETED"
)

func (s State) String() string { return string(s) }
