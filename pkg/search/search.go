// Package search implements the boolean search builder: an ordered sequence
// of free-text or attribute-selection arms joined by AND/OR operators,
// evaluated strictly left to right against the review database.
package search

import (
	"errors"
	"fmt"
)

// State of a search under construction.
type State string

const (
	StateEmpty     State = "empty"
	StateBuilding  State = "building"
	StateSubmitted State = "submitted"
)

// Operator joins an arm with the accumulated result of the arms before it.
// The first arm carries OpNone.
type Operator string

const (
	OpNone Operator = ""
	OpAnd  Operator = "AND"
	OpOr   Operator = "OR"
)

// Arm kinds.
const (
	KindFreeText  = "freetext"
	KindSelection = "selection"
)

// Arm is one clause of the search. A non-empty Query makes it a free-text
// arm regardless of any selection; otherwise Parent names the parent
// attribute and Values the selected child codes (OR'ed within the arm).
type Arm struct {
	Kind   string   `json:"kind"`
	Query  string   `json:"query,omitempty"`
	Parent string   `json:"parent,omitempty"`
	Values []string `json:"values,omitempty"`
}

// ErrEmptyArm is returned when an arm carries neither a query nor any
// selected values. Callers are expected to apply the select-all-under-parent
// default before adding.
var ErrEmptyArm = errors.New("search: arm has no query and no selected values")

// ErrNoArms is returned when submitting a search without arms.
var ErrNoArms = errors.New("search: nothing to submit")

// ResolutionError reports a display name that could not be mapped back to a
// known attribute. It is surfaced as a warning in the search documentation
// rather than silently dropping the name.
type ResolutionError struct {
	Name   string
	Parent string
}

func (e *ResolutionError) Error() string {
	if e.Parent == "" {
		return fmt.Sprintf("search: unknown parent attribute %q", e.Name)
	}
	return fmt.Sprintf("search: no attribute named %q under %q", e.Name, e.Parent)
}

// Search is the builder state: arms plus the operator sequence aligned with
// them (Operators[0] is always OpNone). It is not safe for concurrent use;
// the owning session serializes access.
type Search struct {
	State     State      `json:"state"`
	Arms      []Arm      `json:"arms"`
	Operators []Operator `json:"operators"`
}

// New returns an empty search.
func New() *Search {
	return &Search{State: StateEmpty}
}

// AddArm appends an arm joined by op. A non-empty query takes precedence
// over any selection. Adding to a submitted search resumes building.
func (s *Search) AddArm(op Operator, arm Arm) error {
	if arm.Query != "" {
		arm.Kind = KindFreeText
		arm.Parent = ""
		arm.Values = nil
	} else if len(arm.Values) > 0 {
		arm.Kind = KindSelection
	} else {
		return ErrEmptyArm
	}

	if len(s.Arms) == 0 {
		op = OpNone
	} else if op != OpAnd && op != OpOr {
		op = OpOr
	}

	s.Arms = append(s.Arms, arm)
	s.Operators = append(s.Operators, op)
	s.State = StateBuilding
	return nil
}

// Submit marks the search ready for execution.
func (s *Search) Submit() error {
	if len(s.Arms) == 0 {
		return ErrNoArms
	}
	s.State = StateSubmitted
	return nil
}

// Reset discards all arms and operators.
func (s *Search) Reset() {
	s.Arms = nil
	s.Operators = nil
	s.State = StateEmpty
}
