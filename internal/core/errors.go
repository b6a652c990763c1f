package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReferentialIntegrity matches any *ReferentialIntegrityError.
	ErrReferentialIntegrity = errors.New("referential integrity violated")

	// ErrPivotConflict matches any *PivotConflictError.
	ErrPivotConflict = errors.New("pivot conflict")
)

// ReferentialIntegrityError reports event codes that the code dictionary
// cannot resolve. Both lists are sorted and free of duplicates.
type ReferentialIntegrityError struct {
	Missing     []string // used codes absent from the dictionary
	Undescribed []string // used codes whose dictionary description is null
}

func (e *ReferentialIntegrityError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("codes missing from code dictionary: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Undescribed) > 0 {
		parts = append(parts, fmt.Sprintf("codes without description in code dictionary: %s", strings.Join(e.Undescribed, ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrReferentialIntegrity, strings.Join(parts, "; "))
}

func (e *ReferentialIntegrityError) Is(target error) bool {
	return target == ErrReferentialIntegrity
}

// PivotConflict is a subject/code pair holding more than one static value.
type PivotConflict struct {
	SubjectID string
	Code      string
	Values    []Value // in first-seen order
}

// PivotConflictError reports every ambiguous cell of the static pivot.
type PivotConflictError struct {
	Conflicts []PivotConflict
}

// maxReportedConflicts bounds how many conflicts Error() spells out.
const maxReportedConflicts = 5

func (e *PivotConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d subject/code pair(s) with multiple static values", ErrPivotConflict, len(e.Conflicts))
	for i, c := range e.Conflicts {
		if i == maxReportedConflicts {
			fmt.Fprintf(&b, "; and %d more", len(e.Conflicts)-i)
			break
		}
		vals := make([]string, len(c.Values))
		for j, v := range c.Values {
			if v.IsNull() {
				vals[j] = "<null>"
			} else {
				vals[j] = fmt.Sprintf("%q", v.String())
			}
		}
		fmt.Fprintf(&b, "; subject %q code %q: %s", c.SubjectID, c.Code, strings.Join(vals, ", "))
	}
	return b.String()
}

func (e *PivotConflictError) Is(target error) bool {
	return target == ErrPivotConflict
}
