package structure

import (
	"fmt"
	"sync"
)

// Registry is the authoritative store of structure and implements
// declarations. It is populated once at load time and read-only during
// verification, so it can be shared across solver sessions.
type Registry struct {
	mu         sync.RWMutex
	structures map[string]*Def
	implements map[string][]*ImplementsDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		structures: make(map[string]*Def),
		implements: make(map[string][]*ImplementsDef),
	}
}

// RegisterStructure adds a structure declaration. It fails with
// DuplicateNameError if the name is taken or a member name repeats
// within its scope. Nested sub-structures are registered under the
// qualified name "Parent.Child" so the resolver can address them.
func (r *Registry) RegisterStructure(def *Def) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(def.Name, def)
}

func (r *Registry) registerLocked(name string, def *Def) error {
	if _, exists := r.structures[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	seen := make(map[string]bool, len(def.Members))
	for _, m := range def.Members {
		if seen[m.MemberName()] {
			return &DuplicateNameError{Name: name + "." + m.MemberName()}
		}
		seen[m.MemberName()] = true
	}
	r.structures[name] = def
	for _, n := range def.Nested() {
		if err := r.registerLocked(name+"."+n.Name, n.Def); err != nil {
			return err
		}
	}
	return nil
}

// RegisterImplements adds an implements block. It fails with
// UnknownStructureError if the implemented structure or any
// where-constraint target is absent. This is a structural sanity check,
// not type checking: full instantiation checking happens upstream.
func (r *Registry) RegisterImplements(def *ImplementsDef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.structures[def.StructureName]; !ok {
		return &UnknownStructureError{Name: def.StructureName}
	}
	for _, wc := range def.Where {
		if _, ok := r.structures[wc.StructureName]; !ok {
			return fmt.Errorf("where constraint: %w", &UnknownStructureError{Name: wc.StructureName})
		}
	}
	r.implements[def.StructureName] = append(r.implements[def.StructureName], def)
	return nil
}

// Get returns a structure definition by name.
func (r *Registry) Get(name string) (*Def, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.structures[name]
	return def, ok
}

// Has reports whether the registry contains the named structure.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Extends returns the parent reference of the named structure, or nil.
func (r *Registry) Extends(name string) *Ref {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if def, ok := r.structures[name]; ok {
		return def.Extends
	}
	return nil
}

// Over returns the parametrizing reference of the named structure, or nil.
func (r *Registry) Over(name string) *Ref {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if def, ok := r.structures[name]; ok {
		return def.Over
	}
	return nil
}

// NestedNames returns the qualified names of the named structure's
// nested sub-structures.
func (r *Registry) NestedNames(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.structures[name]
	if !ok {
		return nil
	}
	var out []string
	for _, n := range def.Nested() {
		out = append(out, name+"."+n.Name)
	}
	return out
}

// Implements returns all implements blocks registered for a structure.
func (r *Registry) Implements(name string) []*ImplementsDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.implements[name]
}

// WhereConstraints returns every where-constraint appearing on the
// named structure's implements blocks.
func (r *Registry) WhereConstraints(name string) []WhereConstraint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []WhereConstraint
	for _, impl := range r.implements[name] {
		out = append(out, impl.Where...)
	}
	return out
}

// Names returns all registered structure names, including qualified
// nested names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.structures))
	for n := range r.structures {
		names = append(names, n)
	}
	return names
}
