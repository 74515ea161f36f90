package structure

// Resolver computes, for a structure name, the transitive closure of
// axiom-bearing structures that must be loaded before verification:
// parents (extends), parametrizing structures (over), where-constraint
// targets of implements blocks, and nested sub-structures.
//
// Results are memoized, so a resolver is meant to live for one solver
// session. Cycle detection uses an explicit in-progress stack rather
// than relying on call-stack limits: revisiting a structure
// mid-resolution fails with CircularDependencyError.
type Resolver struct {
	registry *Registry
	memo     map[string][]string
	visiting map[string]bool
	stack    []string
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{
		registry: registry,
		memo:     make(map[string][]string),
		visiting: make(map[string]bool),
	}
}

// Resolve returns the load set for the named structure in dependency
// order: every dependency precedes its dependents and the requested
// structure comes last. Assertions are conjunctive, so any topological
// order is sound; this one is deterministic for a given registry.
func (r *Resolver) Resolve(name string) ([]string, error) {
	if cached, ok := r.memo[name]; ok {
		return cached, nil
	}
	var order []string
	seen := make(map[string]bool)
	if err := r.visit(name, seen, &order); err != nil {
		return nil, err
	}
	r.memo[name] = order
	return order, nil
}

func (r *Resolver) visit(name string, seen map[string]bool, order *[]string) error {
	if seen[name] {
		return nil
	}
	if r.visiting[name] {
		path := append(append([]string(nil), r.stack...), name)
		return &CircularDependencyError{Path: path}
	}
	if cached, ok := r.memo[name]; ok {
		for _, dep := range cached {
			if !seen[dep] {
				seen[dep] = true
				*order = append(*order, dep)
			}
		}
		return nil
	}
	def, ok := r.registry.Get(name)
	if !ok {
		return &UnknownStructureError{Name: name}
	}

	r.visiting[name] = true
	r.stack = append(r.stack, name)
	defer func() {
		delete(r.visiting, name)
		r.stack = r.stack[:len(r.stack)-1]
	}()

	for _, dep := range r.edges(def, name) {
		if err := r.visit(dep, seen, order); err != nil {
			return err
		}
	}
	seen[name] = true
	*order = append(*order, name)
	return nil
}

// edges lists a structure's direct dependencies in a fixed order:
// extends, over, where targets, then nested children.
func (r *Resolver) edges(def *Def, name string) []string {
	var deps []string
	if def.Extends != nil {
		deps = append(deps, def.Extends.Name)
	}
	if def.Over != nil {
		deps = append(deps, def.Over.Name)
	}
	for _, wc := range r.registry.WhereConstraints(name) {
		deps = append(deps, wc.StructureName)
	}
	deps = append(deps, r.registry.NestedNames(name)...)
	return deps
}
