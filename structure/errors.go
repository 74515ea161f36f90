package structure

import (
	"fmt"
	"strings"
)

// DuplicateNameError is returned when registering a structure whose
// name, or one of whose member names, collides with an existing entry.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate name: %s", e.Name)
}

// UnknownStructureError is returned when a referenced structure is not
// present in the registry.
type UnknownStructureError struct {
	Name string
}

func (e *UnknownStructureError) Error() string {
	return fmt.Sprintf("unknown structure: %s", e.Name)
}

// CircularDependencyError is returned when the dependency graph over
// extends/over/where/nested edges contains a cycle. Path lists the
// structures along the cycle, ending with the repeated name.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular structure dependency: %s", strings.Join(e.Path, " -> "))
}
