// Package core converts MEDS-style medical record tables into the three
// tables consumed by the digital twin pipeline.
//
// The package holds all domain logic and has no file or UI dependencies.
// The ingest package and the meds2dtc command feed it with rows read from
// disk, but tests and other callers can build the inputs directly.
//
// # Inputs
//
//   - []Code: the code dictionary (code, description).
//   - []Event: the event log. An event without a timestamp is a static fact
//     about the subject; an event with a timestamp is a time-series event.
//   - SplitTable: per-subject labels such as the train/test split.
//
// # Conversion
//
// [Converter.Convert] runs five stages in order:
//
//  1. [NormalizeSubjectIDs] turns every subject identifier into a string key.
//  2. [ValidateCodes] checks every used code against the dictionary.
//  3. [SplitStatic] pivots static facts into one row per subject and joins
//     the split table.
//  4. [DescribeColumns] builds the column description lookup.
//  5. [FormatEvents] builds the long-format event table.
//
// Static and event values are chosen by the same policy, [ResolveValue].
//
// # Errors
//
// A code missing from the dictionary (or lacking a description) aborts the
// conversion with a [*ReferentialIntegrityError]. A subject/code pair that
// still maps to two values after deduplication aborts it with a
// [*PivotConflictError]. Duplicate events are not fatal: they are reported
// as a [Diagnostic] on the [Result] and logged at warn level.
//
// Technical errors are mapped to user-facing messages with [MapError]:
//
//   - REF001-REF002: code dictionary errors
//   - PIV001: static pivot conflicts
//   - VAL001-VAL004: input validation errors
//   - FILE001-FILE006: input file errors
//
// # Input tables
//
// The accepted columns of each input file are described by a
// [TableDefinition] registered with [Register]. The core/tables package
// registers the codes, data and split tables at init time.
package core
