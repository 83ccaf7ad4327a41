package search

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddArmKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		arm      Arm
		wantKind string
		wantErr  error
	}{
		{
			name:     "query makes a free-text arm",
			arm:      Arm{Query: "climate"},
			wantKind: KindFreeText,
		},
		{
			name:     "values make a selection arm",
			arm:      Arm{Parent: "Animals", Values: []string{"Cats"}},
			wantKind: KindSelection,
		},
		{
			name:     "query wins over selection",
			arm:      Arm{Query: "climate", Parent: "Animals", Values: []string{"Cats"}},
			wantKind: KindFreeText,
		},
		{
			name:    "empty arm rejected",
			arm:     Arm{Parent: "Animals"},
			wantErr: ErrEmptyArm,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			err := s.AddArm(OpNone, tc.arm)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("AddArm error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				if s.State != StateEmpty || len(s.Arms) != 0 {
					t.Fatalf("rejected arm mutated the search: %+v", s)
				}
				return
			}
			if s.Arms[0].Kind != tc.wantKind {
				t.Fatalf("arm kind = %q, want %q", s.Arms[0].Kind, tc.wantKind)
			}
		})
	}
}

func TestAddArmQueryDropsSelection(t *testing.T) {
	t.Parallel()

	s := New()
	if err := s.AddArm(OpNone, Arm{Query: "climate", Parent: "Animals", Values: []string{"Cats"}}); err != nil {
		t.Fatalf("AddArm returned error: %v", err)
	}
	arm := s.Arms[0]
	if arm.Parent != "" || arm.Values != nil {
		t.Fatalf("free-text arm kept selection fields: %+v", arm)
	}
}

func TestAddArmOperators(t *testing.T) {
	t.Parallel()

	s := New()
	// First arm always carries no operator, whatever was passed.
	if err := s.AddArm(OpAnd, Arm{Query: "a"}); err != nil {
		t.Fatalf("AddArm returned error: %v", err)
	}
	if err := s.AddArm(OpAnd, Arm{Query: "b"}); err != nil {
		t.Fatalf("AddArm returned error: %v", err)
	}
	// An unrecognized operator falls back to OR.
	if err := s.AddArm(Operator("NOR"), Arm{Query: "c"}); err != nil {
		t.Fatalf("AddArm returned error: %v", err)
	}

	want := []Operator{OpNone, OpAnd, OpOr}
	if !reflect.DeepEqual(s.Operators, want) {
		t.Fatalf("Operators = %v, want %v", s.Operators, want)
	}
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	s := New()
	if s.State != StateEmpty {
		t.Fatalf("new search state = %q, want %q", s.State, StateEmpty)
	}

	if err := s.Submit(); !errors.Is(err, ErrNoArms) {
		t.Fatalf("Submit on empty search error = %v, want %v", err, ErrNoArms)
	}

	if err := s.AddArm(OpNone, Arm{Query: "a"}); err != nil {
		t.Fatalf("AddArm returned error: %v", err)
	}
	if s.State != StateBuilding {
		t.Fatalf("state after AddArm = %q, want %q", s.State, StateBuilding)
	}

	if err := s.Submit(); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if s.State != StateSubmitted {
		t.Fatalf("state after Submit = %q, want %q", s.State, StateSubmitted)
	}

	// Adding another arm resumes building.
	if err := s.AddArm(OpOr, Arm{Query: "b"}); err != nil {
		t.Fatalf("AddArm returned error: %v", err)
	}
	if s.State != StateBuilding {
		t.Fatalf("state after resumed AddArm = %q, want %q", s.State, StateBuilding)
	}

	s.Reset()
	if s.State != StateEmpty || s.Arms != nil || s.Operators != nil {
		t.Fatalf("Reset left state behind: %+v", s)
	}
}
