package solver

import "fmt"

// UnsupportedError reports a construct the backend cannot express. The
// offending member fails to translate; independent structures and
// queries remain usable.
type UnsupportedError struct {
	Backend   string
	Construct string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: unsupported construct: %s", e.Backend, e.Construct)
}

// ArityError reports an operation applied to the wrong number of
// arguments.
type ArityError struct {
	Op   string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("operation %s expects %d arguments, got %d", e.Op, e.Want, e.Got)
}

// EngineError wraps a failure inside the underlying engine, e.g. a
// crashed process or a protocol error. It surfaces at the orchestrator
// boundary as an Error result, never a crash.
type EngineError struct {
	Backend string
	Message string
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Backend, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *EngineError) Unwrap() error { return e.Err }
