package registry

import (
	"fmt"
	"log/slog"

	dohlog "go.dohmane.dev/log"
	"go.dohmane.dev/store"
)

// Registry is the static, post-construction-immutable collection of
// entity-type facades. It is built once from a set of typedefs; cascade
// code inside a facade dispatches into sibling facades by name through
// the registry, so facades never hold pointers to one another even
// though the relations between types run both ways (Account <-> Campaign
// <-> Ad). Each facade does hold a back-pointer to the registry.
type Registry struct {
	facades map[string]*Facade
	log     *slog.Logger
}

// New instantiates one Facade per typedef and wires each facade's
// back-reference to the registry so it can reach sibling types during
// parents/children/cascades. logger may be nil, in which case a default
// logger is built.
func New(logger *slog.Logger, typedefs ...*Typedef) *Registry {
	if logger == nil {
		logger = dohlog.New("store")
	}

	r := &Registry{
		facades: make(map[string]*Facade, len(typedefs)),
		log:     logger,
	}
	for _, td := range typedefs {
		r.facades[td.Name] = newFacade(td, r, dohlog.SubLogger(logger, td.Name))
	}
	return r
}

// Type returns the facade for name, or ErrUnregisteredType if no typedef
// by that name was registered.
func (r *Registry) Type(name string) (*Facade, error) {
	f, ok := r.facades[name]
	if !ok {
		return nil, fmt.Errorf("registry: %w: %s", store.ErrUnregisteredType, name)
	}
	return f, nil
}
