package core

import "sort"

// staticFact is one resolved (subject, code, value) triple of the static partition.
type staticFact struct {
	subject string
	code    string
	value   Value
}

// SplitStatic builds the wide static table from events without a timestamp.
//
// Each static event is resolved with ResolveValue, exact duplicate
// (subject, code, value) triples are dropped, and the rest is pivoted to one
// row per subject and one column per code. Codes are ordered by name and
// subjects by key. Split columns are then left-joined on the subject key;
// a split column that shares its name with a code is emitted as name_y and
// the code column as name_x.
//
// A subject/code pair left with more than one value returns a
// *PivotConflictError. Subjects only present in the split table do not
// produce a row.
func SplitStatic(events []KeyedEvent, split KeyedSplit, preferText bool) (StaticTable, error) {
	facts := staticFacts(events, preferText)

	cells := make(map[string]map[string]Value)
	codeSet := make(map[string]bool)
	conflicts := make(map[[2]string][]Value)
	var conflictOrder [][2]string

	for _, f := range facts {
		codeSet[f.code] = true
		row, ok := cells[f.subject]
		if !ok {
			row = make(map[string]Value)
			cells[f.subject] = row
		}
		prev, taken := row[f.code]
		if !taken {
			row[f.code] = f.value
			continue
		}
		// facts are distinct, so a second value for the pair always differs
		key := [2]string{f.subject, f.code}
		if _, recorded := conflicts[key]; !recorded {
			conflicts[key] = []Value{prev}
			conflictOrder = append(conflictOrder, key)
		}
		conflicts[key] = append(conflicts[key], f.value)
	}

	if len(conflictOrder) > 0 {
		perr := &PivotConflictError{Conflicts: make([]PivotConflict, len(conflictOrder))}
		for i, key := range conflictOrder {
			perr.Conflicts[i] = PivotConflict{SubjectID: key[0], Code: key[1], Values: conflicts[key]}
		}
		return StaticTable{}, perr
	}

	subjects := make([]string, 0, len(cells))
	for s := range cells {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	codes := sortedKeys(codeSet)

	columns := staticColumns(codes, split.Columns)

	splitIdx := make(map[string][]int, len(split.Rows))
	for i, r := range split.Rows {
		splitIdx[r.SubjectKey] = append(splitIdx[r.SubjectKey], i)
	}

	rows := make([][]Value, 0, len(subjects))
	for _, s := range subjects {
		base := make([]Value, 0, 1+len(codes))
		base = append(base, TextValue(s))
		for _, c := range codes {
			base = append(base, cells[s][c])
		}

		matches := splitIdx[s]
		if len(matches) == 0 {
			rows = append(rows, joinRow(base, nil, len(split.Columns)))
			continue
		}
		// a subject listed twice in the split table yields one row per listing
		for _, m := range matches {
			rows = append(rows, joinRow(base, split.Rows[m].Values, len(split.Columns)))
		}
	}

	return StaticTable{Columns: columns, Rows: rows}, nil
}

// staticFacts resolves the events without a timestamp and drops exact
// duplicates, keeping first-seen order.
func staticFacts(events []KeyedEvent, preferText bool) []staticFact {
	seen := make(map[staticFact]bool)
	var facts []staticFact
	for _, e := range events {
		if !e.IsStatic() {
			continue
		}
		f := staticFact{
			subject: e.SubjectKey,
			code:    e.Code,
			value:   ResolveValue(e.TextValue, e.NumericValue, preferText),
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		facts = append(facts, f)
	}
	return facts
}

// staticColumns lays out patientid, the pivoted codes, then the split columns.
func staticColumns(codes, splitCols []string) []string {
	codeSet := make(map[string]bool, len(codes))
	for _, c := range codes {
		codeSet[c] = true
	}

	columns := make([]string, 0, 1+len(codes)+len(splitCols))
	columns = append(columns, ColPatientID)
	clash := make(map[string]bool)
	for _, c := range splitCols {
		if codeSet[c] {
			clash[c] = true
		}
	}
	for _, c := range codes {
		if clash[c] {
			c += "_x"
		}
		columns = append(columns, c)
	}
	for _, c := range splitCols {
		if clash[c] {
			c += "_y"
		}
		columns = append(columns, c)
	}
	return columns
}

// joinRow appends width split values to a copy of base, padding with nulls.
func joinRow(base, splitVals []Value, width int) []Value {
	row := make([]Value, len(base), len(base)+width)
	copy(row, base)
	for i := 0; i < width; i++ {
		if i < len(splitVals) {
			row = append(row, splitVals[i])
		} else {
			row = append(row, NullValue())
		}
	}
	return row
}

// UnmatchedSplitSubjects returns the split-table subjects without any
// static fact, sorted. These subjects are absent from the static table.
func UnmatchedSplitSubjects(events []KeyedEvent, split KeyedSplit) []string {
	static := make(map[string]bool)
	for _, e := range events {
		if e.IsStatic() {
			static[e.SubjectKey] = true
		}
	}

	unmatched := make(map[string]bool)
	for _, r := range split.Rows {
		if !static[r.SubjectKey] {
			unmatched[r.SubjectKey] = true
		}
	}
	return sortedKeys(unmatched)
}
