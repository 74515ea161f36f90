// Package verify composes the structure registry, dependency resolver,
// operation translator, and a solver backend into the axiom
// verification session, the module's top-level entry point.
package verify

import (
	"fmt"
	"strings"

	"github.com/c360studio/algebra/expr"
)

// Outcome classifies a verification result.
type Outcome int

const (
	// OutcomeValid means the axiom holds: its negation is
	// unsatisfiable under the loaded background theory.
	OutcomeValid Outcome = iota
	// OutcomeInvalid means a counterexample exists.
	OutcomeInvalid
	// OutcomeUnknown means the solver gave up, usually on timeout.
	OutcomeUnknown
	// OutcomeError means verification could not be attempted.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeUnknown:
		return "unknown"
	default:
		return "error"
	}
}

// Binding names a counterexample value. Values are language
// expressions: solver-native types never reach callers.
type Binding struct {
	Name  string
	Value expr.Expr
}

// Result is the ephemeral outcome of one verification call.
type Result struct {
	Outcome Outcome

	// Counterexample is set for OutcomeInvalid.
	Counterexample []Binding

	// Reason is set for OutcomeUnknown.
	Reason string

	// Err is set for OutcomeError.
	Err error
}

func (r Result) String() string {
	switch r.Outcome {
	case OutcomeInvalid:
		parts := make([]string, len(r.Counterexample))
		for i, b := range r.Counterexample {
			parts[i] = fmt.Sprintf("%s = %s", b.Name, b.Value)
		}
		return "invalid: counterexample " + strings.Join(parts, ", ")
	case OutcomeUnknown:
		return "unknown: " + r.Reason
	case OutcomeError:
		return "error: " + r.Err.Error()
	}
	return "valid"
}

func valid() Result { return Result{Outcome: OutcomeValid} }

func invalid(ce []Binding) Result {
	return Result{Outcome: OutcomeInvalid, Counterexample: ce}
}

func unknown(reason string) Result {
	return Result{Outcome: OutcomeUnknown, Reason: reason}
}

func errored(err error) Result {
	return Result{Outcome: OutcomeError, Err: err}
}
