package core

import "sort"

// codeIndex maps a code to its first dictionary row.
type codeIndex map[string]Code

func indexCodes(codes []Code) codeIndex {
	idx := make(codeIndex, len(codes))
	for _, c := range codes {
		if _, seen := idx[c.Code]; !seen {
			idx[c.Code] = c
		}
	}
	return idx
}

// description returns the description of a code and whether it is usable.
func (idx codeIndex) description(code string) (string, bool) {
	c, ok := idx[code]
	if !ok || !c.Description.Valid {
		return "", false
	}
	return c.Description.String, true
}

// ValidateCodes checks that every code used by the events is in the code
// dictionary and that every dictionary row for a used code has a
// description. It returns a *ReferentialIntegrityError listing all offenders.
func ValidateCodes(codes []Code, events []KeyedEvent) error {
	used := make(map[string]bool)
	for _, e := range events {
		used[e.Code] = true
	}

	known := make(map[string]bool, len(codes))
	undescribed := make(map[string]bool)
	for _, c := range codes {
		known[c.Code] = true
		if used[c.Code] && !c.Description.Valid {
			undescribed[c.Code] = true
		}
	}

	missing := make(map[string]bool)
	for code := range used {
		if !known[code] {
			missing[code] = true
		}
	}

	if len(missing) == 0 && len(undescribed) == 0 {
		return nil
	}

	return &ReferentialIntegrityError{
		Missing:     sortedKeys(missing),
		Undescribed: sortedKeys(undescribed),
	}
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
