package param

// Registry is an identity-keyed index of every parameter Definition in a
// loaded project, so that any part of the entity graph can resolve a
// parameter by identity rather than by containment.
//
// A Registry is not shared process state: a Resolver owns one and is passed
// explicitly through the decoding and composition call chains. Loading a new
// project gets a fresh Registry, which makes stale entries from a previously
// opened project impossible by construction.
type Registry struct {
	defs map[UUID]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[UUID]*Definition),
	}
}

// Register inserts or overwrites the mapping for the definition's identity.
// Last writer wins; the unregister-then-register reload pattern used by the
// decode paths relies on this.
func (r *Registry) Register(def *Definition) {
	r.defs[def.UUID] = def
}

// Unregister removes the mapping for the definition's identity if present.
// Unregistering twice, or unregistering a definition that was never
// registered, is a no-op.
func (r *Registry) Unregister(def *Definition) {
	delete(r.defs, def.UUID)
}

// Find returns the definition registered under the given identity, or nil if
// none is. Callers must handle nil.
func (r *Registry) Find(id UUID) *Definition {
	return r.defs[id]
}

// Clear removes every registered definition.
func (r *Registry) Clear() {
	clear(r.defs)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}
