package registry

import "go.dohmane.dev/record"

// FKSpec names one foreign-key relation: the related entity type, and
// the path where the key lives.
type FKSpec struct {
	RelatedType string
	Path        record.Path
}

// Typedef is the static, declarative description of one entity type: a
// name, where its primary key lives, and its foreign/inverse-foreign key
// relations. Typedefs are built once and never mutated.
type Typedef struct {
	Name string
	Key  record.Path

	foreignKeys        []FKSpec
	foreignKeyIndex    map[string]record.Path
	inverseForeignKeys []FKSpec
	inverseKeyIndex    map[string]record.Path
}

// NewTypedef builds a Typedef from a name, its key path, and its
// relation lists. The order of foreignKeys and inverseForeignKeys is
// preserved; the inverseForeignKeys order drives cascade traversal order
// -- it is never reordered or iterated as a map, so two runs built from
// the same typedef always cascade in the same order.
func NewTypedef(name string, key record.Path, foreignKeys, inverseForeignKeys []FKSpec) *Typedef {
	td := &Typedef{
		Name:               name,
		Key:                key,
		foreignKeys:        foreignKeys,
		inverseForeignKeys: inverseForeignKeys,
		foreignKeyIndex:    make(map[string]record.Path, len(foreignKeys)),
		inverseKeyIndex:    make(map[string]record.Path, len(inverseForeignKeys)),
	}
	for _, fk := range foreignKeys {
		td.foreignKeyIndex[fk.RelatedType] = fk.Path
	}
	for _, ifk := range inverseForeignKeys {
		td.inverseKeyIndex[ifk.RelatedType] = ifk.Path
	}
	return td
}

// ForeignKeyPath returns the path, on records of this type, holding the
// foreign key to relName.
func (t *Typedef) ForeignKeyPath(relName string) (record.Path, bool) {
	p, ok := t.foreignKeyIndex[relName]
	return p, ok
}

// InverseForeignKeyPath returns the path, on records of relName, holding
// the foreign key back to this type.
func (t *Typedef) InverseForeignKeyPath(relName string) (record.Path, bool) {
	p, ok := t.inverseKeyIndex[relName]
	return p, ok
}

// InverseForeignKeys returns the inverse-FK relations in declaration
// order -- the order cascades (accept's PK remap, delete, deleted.accept)
// traverse them in.
func (t *Typedef) InverseForeignKeys() []FKSpec {
	return t.inverseForeignKeys
}
