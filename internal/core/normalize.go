package core

import (
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// KeyedEvent is an Event whose subject has been reduced to a string key.
type KeyedEvent struct {
	SubjectKey string
	Event
}

// KeyedSplitRow is a SplitRow whose subject has been reduced to a string key.
type KeyedSplitRow struct {
	SubjectKey string
	Values     []Value
}

// KeyedSplit is a SplitTable with string subject keys.
type KeyedSplit struct {
	Columns []string
	Rows    []KeyedSplitRow
}

// SubjectKey renders a subject identifier as the canonical string used for
// joins and pivots. Integers print in base 10 and floats in their shortest
// form, so 1, int64(1), uint8(1), 1.0 and "1" all become "1".
func SubjectKey(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case pgtype.Text:
		return v.String
	case pgtype.Int8:
		if !v.Valid {
			return ""
		}
		return strconv.FormatInt(v.Int64, 10)
	case Value:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// NormalizeSubjectIDs keys every event and split row by its canonical
// subject string. The inputs are not modified; value slices of split rows
// are copied.
func NormalizeSubjectIDs(events []Event, split SplitTable) ([]KeyedEvent, KeyedSplit) {
	keyed := make([]KeyedEvent, len(events))
	for i, e := range events {
		keyed[i] = KeyedEvent{SubjectKey: SubjectKey(e.SubjectID), Event: e}
	}

	ks := KeyedSplit{
		Columns: append([]string(nil), split.Columns...),
		Rows:    make([]KeyedSplitRow, len(split.Rows)),
	}
	for i, r := range split.Rows {
		ks.Rows[i] = KeyedSplitRow{
			SubjectKey: SubjectKey(r.SubjectID),
			Values:     append([]Value(nil), r.Values...),
		}
	}

	return keyed, ks
}
