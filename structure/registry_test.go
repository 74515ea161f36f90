package structure

import (
	"errors"
	"testing"

	"github.com/c360studio/algebra/expr"
)

func semigroup() *Def {
	return &Def{
		Name:       "Semigroup",
		TypeParams: []string{"S"},
		Members: []Member{
			OperationDecl{Name: "•", Params: []string{"S", "S"}, Result: "S"},
			AxiomDecl{Name: "assoc", Proposition: expr.Forall(
				[]expr.BoundVar{expr.Elem("x"), expr.Elem("y"), expr.Elem("z")},
				expr.Eq(
					expr.Op("•", expr.Op("•", expr.Var("x"), expr.Var("y")), expr.Var("z")),
					expr.Op("•", expr.Var("x"), expr.Op("•", expr.Var("y"), expr.Var("z"))),
				))},
		},
	}
}

func monoid() *Def {
	return &Def{
		Name:       "Monoid",
		TypeParams: []string{"M"},
		Extends:    &Ref{Name: "Semigroup", TypeArgs: []string{"M"}},
		Members: []Member{
			ElementDecl{Name: "e", Type: "M"},
			AxiomDecl{Name: "left_id", Proposition: expr.Forall(
				[]expr.BoundVar{expr.Elem("x")},
				expr.Eq(expr.Op("•", expr.Var("e"), expr.Var("x")), expr.Var("x")))},
		},
	}
}

func TestRegisterStructure(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterStructure(semigroup()); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}
	if !r.Has("Semigroup") {
		t.Error("expected Semigroup to be registered")
	}
}

func TestRegisterStructureDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterStructure(semigroup()); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}
	err := r.RegisterStructure(semigroup())
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dup.Name != "Semigroup" {
		t.Errorf("duplicate name = %q, want Semigroup", dup.Name)
	}
}

func TestRegisterStructureDuplicateMember(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterStructure(&Def{
		Name: "Broken",
		Members: []Member{
			ElementDecl{Name: "e", Type: "T"},
			ElementDecl{Name: "e", Type: "T"},
		},
	})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
}

func TestRegisterStructureNested(t *testing.T) {
	r := NewRegistry()
	ring := &Def{
		Name: "Ring",
		Members: []Member{
			NestedStructure{Name: "Multiplicative", Def: &Def{
				Name: "Multiplicative",
				Members: []Member{
					OperationDecl{Name: "*", Params: []string{"R", "R"}, Result: "R"},
				},
			}},
		},
	}
	if err := r.RegisterStructure(ring); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}
	if !r.Has("Ring.Multiplicative") {
		t.Error("expected nested structure under qualified name")
	}
	nested := r.NestedNames("Ring")
	if len(nested) != 1 || nested[0] != "Ring.Multiplicative" {
		t.Errorf("NestedNames = %v", nested)
	}
}

func TestRegisterImplements(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterStructure(semigroup()); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}
	if err := r.RegisterStructure(monoid()); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}

	t.Run("unknown structure", func(t *testing.T) {
		err := r.RegisterImplements(&ImplementsDef{StructureName: "Group", TypeArgs: []string{"Int"}})
		var unknown *UnknownStructureError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownStructureError, got %v", err)
		}
	})

	t.Run("unknown where target", func(t *testing.T) {
		err := r.RegisterImplements(&ImplementsDef{
			StructureName: "Monoid",
			TypeArgs:      []string{"T"},
			Where:         []WhereConstraint{{StructureName: "Ordered", TypeArgs: []string{"T"}}},
		})
		var unknown *UnknownStructureError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownStructureError, got %v", err)
		}
	})

	t.Run("valid", func(t *testing.T) {
		err := r.RegisterImplements(&ImplementsDef{
			StructureName: "Monoid",
			TypeArgs:      []string{"T"},
			Where:         []WhereConstraint{{StructureName: "Semigroup", TypeArgs: []string{"T"}}},
		})
		if err != nil {
			t.Fatalf("RegisterImplements: %v", err)
		}
		wcs := r.WhereConstraints("Monoid")
		if len(wcs) != 1 || wcs[0].StructureName != "Semigroup" {
			t.Errorf("WhereConstraints = %v", wcs)
		}
	})
}

func TestAccessors(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterStructure(semigroup()); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}
	if err := r.RegisterStructure(monoid()); err != nil {
		t.Fatalf("RegisterStructure: %v", err)
	}

	if ext := r.Extends("Monoid"); ext == nil || ext.Name != "Semigroup" {
		t.Errorf("Extends(Monoid) = %v", ext)
	}
	if ext := r.Extends("Semigroup"); ext != nil {
		t.Errorf("Extends(Semigroup) = %v, want nil", ext)
	}
	if over := r.Over("Monoid"); over != nil {
		t.Errorf("Over(Monoid) = %v, want nil", over)
	}

	def, _ := r.Get("Monoid")
	if got := len(def.Axioms()); got != 1 {
		t.Errorf("Axioms() returned %d, want 1", got)
	}
	if got := len(def.Elements()); got != 1 {
		t.Errorf("Elements() returned %d, want 1", got)
	}
}
