package core

import "github.com/jackc/pgx/v5/pgtype"

// FormatEvents builds the long-format event table from events that carry a
// timestamp, in input order.
//
// event_value is resolved with ResolveValue and falls back to
// opts.NoValueDefault. event_category comes from opts.EventCategoryMapping,
// or opts.DefaultCategory when the mapping is nil or lacks the event name.
// event_descriptive_name is the dictionary description of the code.
func FormatEvents(events []KeyedEvent, codes []Code, opts Options) []EventRow {
	idx := indexCodes(codes)

	rows := make([]EventRow, 0, len(events))
	for _, e := range events {
		if e.IsStatic() {
			continue
		}

		value := ResolveValue(e.TextValue, e.NumericValue, opts.PreferTextValueOverNumeric)
		if value.IsNull() {
			value = TextValue(opts.NoValueDefault)
		}

		category, ok := opts.EventCategoryMapping[e.Code]
		if !ok {
			category = opts.DefaultCategory
		}

		// ValidateCodes guarantees a description for every used code
		descriptive, _ := idx.description(e.Code)

		rows = append(rows, EventRow{
			PatientID:            e.SubjectKey,
			Date:                 e.Time.Time,
			EventName:            e.Code,
			EventValue:           value.String(),
			EventCategory:        category,
			EventDescriptiveName: descriptive,
			MetaData:             pgtype.Text{},
		})
	}
	return rows
}

// eventKey identifies an event for duplicate detection.
type eventKey struct {
	patientID string
	date      int64
	name      string
	value     string
}

func keyOf(r EventRow) eventKey {
	return eventKey{
		patientID: r.PatientID,
		date:      r.Date.UnixNano(),
		name:      r.EventName,
		value:     r.EventValue,
	}
}

// FindDuplicateEvents returns every row that shares (patientid, date,
// event_name, event_value) with another row, all occurrences included,
// in table order. Returns nil when the table has no duplicates.
func FindDuplicateEvents(rows []EventRow) []EventRow {
	counts := make(map[eventKey]int, len(rows))
	for _, r := range rows {
		counts[keyOf(r)]++
	}

	var dups []EventRow
	for _, r := range rows {
		if counts[keyOf(r)] > 1 {
			dups = append(dups, r)
		}
	}
	return dups
}
