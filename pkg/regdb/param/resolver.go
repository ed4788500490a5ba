package param

import "github.com/dallingham/regenerate-sub000/pkg/utils"

// maxResolveDepth bounds how many parameter references the resolver follows
// before reporting a cycle.
const maxResolveDepth = 8

// Resolver computes the effective integer value of a parameter Definition,
// honoring per-instance overrides. It owns the Registry used for identity
// lookup and the two override tables, one scoped to register-set instances
// and one scoped to block instances.
//
// Before a batch of resolutions (flattening one block instance's address
// map, for example) the caller sets the ambient instance context with
// SetRegInst and SetBlockInst; the context stays in place for the duration
// of the batch.
//
// Precedence is register-set-instance override, then block-instance
// override, then the definition's default: the more specific scope wins,
// mirroring the instantiation hierarchy from leaf to root.
type Resolver struct {
	finder          *Registry
	regsetOverrides map[UUID]map[UUID]*Value
	blockOverrides  map[UUID]map[UUID]*Value
	regInstID       UUID
	blkInstID       UUID
}

// NewResolver creates a resolver around the given registry. A nil registry
// gets a fresh empty one.
func NewResolver(finder *Registry) *Resolver {
	if finder == nil {
		finder = NewRegistry()
	}
	return &Resolver{
		finder:          finder,
		regsetOverrides: make(map[UUID]map[UUID]*Value),
		blockOverrides:  make(map[UUID]map[UUID]*Value),
	}
}

// Finder returns the registry the resolver looks definitions up in.
func (r *Resolver) Finder() *Registry {
	return r.finder
}

// SetRegInst sets the ambient register-set instance context. Pass "" to
// clear it.
func (r *Resolver) SetRegInst(id UUID) {
	r.regInstID = id
}

// SetBlockInst sets the ambient block instance context. Pass "" to clear it.
func (r *Resolver) SetBlockInst(id UUID) {
	r.blkInstID = id
}

// AddRegsetOverride records an override for a parameter at a specific
// register-set instance.
func (r *Resolver) AddRegsetOverride(regInstID UUID, paramID UUID, value *Value) {
	table := r.regsetOverrides[regInstID]
	if table == nil {
		table = make(map[UUID]*Value)
		r.regsetOverrides[regInstID] = table
	}
	table[paramID] = value
}

// AddBlockInstOverride records an override for a parameter at a specific
// block instance.
func (r *Resolver) AddBlockInstOverride(blkInstID UUID, paramID UUID, value *Value) {
	table := r.blockOverrides[blkInstID]
	if table == nil {
		table = make(map[UUID]*Value)
		r.blockOverrides[blkInstID] = table
	}
	table[paramID] = value
}

// Clear empties both override tables, the registry, and the ambient
// context. Must run before populating a newly opened project when a resolver
// is reused, so nothing from the previous project leaks into resolution for
// the new one.
func (r *Resolver) Clear() {
	clear(r.regsetOverrides)
	clear(r.blockOverrides)
	r.finder.Clear()
	r.regInstID = ""
	r.blkInstID = ""
}

// Resolve returns the effective value of the definition under the current
// instance context.
func (r *Resolver) Resolve(def *Definition) (int64, error) {
	return r.resolve(def, 0)
}

func (r *Resolver) resolve(def *Definition, depth int) (int64, error) {
	if depth >= maxResolveDepth {
		return 0, utils.MakeError(ErrParameterCycle, "resolving %q", def.Name)
	}

	if r.regInstID != "" {
		if override, ok := r.regsetOverrides[r.regInstID][def.UUID]; ok {
			return r.unwrapRegset(override, depth)
		}
	}
	if r.blkInstID != "" {
		if override, ok := r.blockOverrides[r.blkInstID][def.UUID]; ok {
			return r.unwrapReference(override, depth)
		}
	}
	return def.Default, nil
}

// unwrapRegset evaluates a register-set-level override. A literal is final.
// A reference defers to the block level: a block-instance override for the
// referenced parameter wins, otherwise the referenced definition is resolved
// itself.
func (r *Resolver) unwrapRegset(override *Value, depth int) (int64, error) {
	if !override.IsParameter {
		return override.Int, nil
	}
	if r.blkInstID != "" {
		if blockOverride, ok := r.blockOverrides[r.blkInstID][override.ParamRef]; ok {
			resolved, err := r.unwrapReference(blockOverride, depth+1)
			if err != nil {
				return 0, err
			}
			return resolved + override.Offset, nil
		}
	}
	return r.follow(override, depth)
}

// unwrapReference evaluates a block-level override: a literal is final, a
// reference resolves the parameter it names.
func (r *Resolver) unwrapReference(override *Value, depth int) (int64, error) {
	if !override.IsParameter {
		return override.Int, nil
	}
	return r.follow(override, depth)
}

func (r *Resolver) follow(override *Value, depth int) (int64, error) {
	def := r.finder.Find(override.ParamRef)
	if def == nil {
		return 0, utils.MakeError(ErrUnresolvedParameter, "%q", override.ParamRef)
	}
	resolved, err := r.resolve(def, depth+1)
	if err != nil {
		return 0, err
	}
	return resolved + override.Offset, nil
}
