package core

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Column names of the output tables.
const (
	ColPatientID            = "patientid"
	ColDate                 = "date"
	ColEventName            = "event_name"
	ColEventValue           = "event_value"
	ColEventCategory        = "event_category"
	ColEventDescriptiveName = "event_descriptive_name"
	ColMetaData             = "meta_data"
	ColVariable             = "variable"
	ColComment              = "comment"
)

// EventColumns lists the event table columns in output order.
var EventColumns = []string{
	ColPatientID,
	ColDate,
	ColEventName,
	ColEventValue,
	ColEventCategory,
	ColEventDescriptiveName,
	ColMetaData,
}

// FieldType represents the expected data type for an input column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldKey
	FieldDate
	FieldNumeric
)

// FieldSpec defines validation rules for a single input column.
type FieldSpec struct {
	Name       string    // Column header name (matched case-insensitively)
	Type       FieldType // Expected data type
	Required   bool      // Column must exist in the header
	AllowEmpty bool      // If true, empty values are allowed even when Required
}

// TableInfo contains display information about an input table.
type TableInfo struct {
	Key     string   // Unique identifier: "codes", "data", "split"
	Label   string   // Display name: "Code dictionary"
	Columns []string // Known column names, populated from FieldSpecs
	Open    bool     // Columns not named by FieldSpecs are carried through
}

// HeaderIndex maps column names (lowercase) to their position in a row.
type HeaderIndex map[string]int

// BuildRowFunc builds a typed row (Code, Event or SplitRow) from a raw input row.
// header is the raw header row, for tables that carry extra columns.
type BuildRowFunc func(row []string, header []string, idx HeaderIndex) (any, error)

// TableDefinition contains everything needed to read one input table.
type TableDefinition struct {
	Info       TableInfo
	FieldSpecs []FieldSpec
	BuildRow   BuildRowFunc
}

// Code is one row of the code dictionary.
type Code struct {
	Code        string
	Description pgtype.Text
}

// Event is one row of the event log. A row whose Time is not valid is a
// static fact about the subject rather than a time-series event.
type Event struct {
	SubjectID    any // string or any integer/float type
	Code         string
	Time         pgtype.Timestamp
	TextValue    pgtype.Text
	NumericValue pgtype.Float8
}

// IsStatic reports whether the event carries no timestamp.
func (e Event) IsStatic() bool {
	return !e.Time.Valid
}

// SplitRow is one row of the split table. Values are aligned with the
// Columns of the owning SplitTable.
type SplitRow struct {
	SubjectID any
	Values    []Value
}

// SplitTable carries per-subject labels. Columns never include the subject key.
type SplitTable struct {
	Columns []string
	Rows    []SplitRow
}

// Inputs groups the three input tables of a conversion.
type Inputs struct {
	Codes  []Code
	Events []Event
	Split  SplitTable
}

// ValueKind tells which member of a Value is set.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindText
	KindNumeric
)

// Value is a resolved cell value: null, text or numeric.
// Values without NaN are comparable and usable as map keys; ResolveValue
// and ParseValue never produce NaN.
type Value struct {
	Kind ValueKind
	Text string
	Num  float64
}

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// TextValue returns a text Value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumericValue returns a numeric Value.
func NumericValue(f float64) Value { return Value{Kind: KindNumeric, Num: f} }

// IsNull reports whether v holds no value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders v as text. Numbers use the shortest representation that
// round-trips ("70", "70.5"); null renders as "".
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumeric:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// StaticTable is the wide static-features table. The first column is
// patientid; every row has len(Columns) cells.
type StaticTable struct {
	Columns []string
	Rows    [][]Value
}

// ColumnIndex returns the position of a column, or -1.
func (t StaticTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Lookup returns the cell for a patient and column. The first matching row wins.
func (t StaticTable) Lookup(patientID, column string) (Value, bool) {
	col := t.ColumnIndex(column)
	if col < 0 {
		return Value{}, false
	}
	for _, row := range t.Rows {
		if row[0].Text == patientID {
			return row[col], true
		}
	}
	return Value{}, false
}

// DescriptionRow describes one column of the static table.
type DescriptionRow struct {
	Variable string
	Comment  string
}

// EventRow is one row of the long-format event table.
type EventRow struct {
	PatientID            string
	Date                 time.Time
	EventName            string
	EventValue           string
	EventCategory        string
	EventDescriptiveName string
	MetaData             pgtype.Text // always null, filled by downstream enrichment
}

// DiagnosticKind classifies a non-fatal data quality finding.
type DiagnosticKind string

const (
	DiagDuplicateEvents        DiagnosticKind = "duplicate_events"
	DiagUnmatchedSplitSubjects DiagnosticKind = "unmatched_split_subjects"
)

// Diagnostic is a non-fatal finding reported alongside a successful conversion.
type Diagnostic struct {
	Kind     DiagnosticKind
	Message  string
	Rows     []EventRow // offending event rows, for DiagDuplicateEvents
	Subjects []string   // subject keys, for DiagUnmatchedSplitSubjects
}

// LogValue implements slog.LogValuer so a diagnostic logs as a group.
func (d Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("kind", string(d.Kind))}
	if len(d.Rows) > 0 {
		attrs = append(attrs, slog.Int("rows", len(d.Rows)))
	}
	if len(d.Subjects) > 0 {
		attrs = append(attrs, slog.Any("subjects", d.Subjects))
	}
	return slog.GroupValue(attrs...)
}

// Options configures a conversion. Use DefaultOptions as the starting point;
// the zero value prefers numeric values and has empty defaults.
type Options struct {
	// PreferTextValueOverNumeric picks text_value over numeric_value when both are set.
	PreferTextValueOverNumeric bool

	// NoValueDefault is the event_value of a timestamped event without any value.
	NoValueDefault string

	// EventCategoryMapping maps event names to categories. nil means no mapping.
	EventCategoryMapping map[string]string

	// DefaultCategory is used for events the mapping does not cover.
	DefaultCategory string
}

// DefaultOptions returns the standard conversion options.
func DefaultOptions() Options {
	return Options{
		PreferTextValueOverNumeric: true,
		NoValueDefault:             "occurred",
		DefaultCategory:            "generic_event",
	}
}

// Result holds the three output tables of a conversion.
type Result struct {
	RunID        string
	Static       StaticTable
	Descriptions []DescriptionRow
	Events       []EventRow
	Diagnostics  []Diagnostic
}

// HasDiagnostic reports whether the result carries a diagnostic of the given kind.
func (r *Result) HasDiagnostic(kind DiagnosticKind) bool {
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
