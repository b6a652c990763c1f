package core

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DuplicateEventsMessage is the message of the duplicate events diagnostic.
const DuplicateEventsMessage = "duplicates found in converted events data, please make sure to handle them appropriately"

// UnmatchedSplitMessage is the message of the unmatched split subjects diagnostic.
const UnmatchedSplitMessage = "split table subjects without static facts are not in the static table"

// Converter runs conversions with fixed options. It holds no per-run state
// and is safe for concurrent use.
type Converter struct {
	opts   Options
	logger *slog.Logger
}

// NewConverter creates a Converter. A nil logger uses slog.Default().
func NewConverter(opts Options, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{opts: opts, logger: logger}
}

// Options returns the converter's options.
func (c *Converter) Options() Options {
	return c.opts
}

// Convert runs all stages over the three input tables. Inputs are never
// modified. On error no tables are returned.
func (c *Converter) Convert(codes []Code, events []Event, split SplitTable) (*Result, error) {
	return c.run(uuid.NewString(), codes, events, split)
}

// ConvertRun converts in under a caller-chosen run id, so the conversion's
// log entries correlate with the caller's. An empty runID generates one.
func (c *Converter) ConvertRun(runID string, in Inputs) (*Result, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	return c.run(runID, in.Codes, in.Events, in.Split)
}

func (c *Converter) run(runID string, codes []Code, events []Event, split SplitTable) (*Result, error) {
	logger := c.logger.With("run_id", runID)
	start := time.Now()

	keyed, keyedSplit := NormalizeSubjectIDs(events, split)
	logger.Debug("subject ids normalized", "events", len(keyed), "split_rows", len(keyedSplit.Rows))

	if err := ValidateCodes(codes, keyed); err != nil {
		logger.Error("code validation failed", "error", err)
		return nil, fmt.Errorf("validate codes: %w", err)
	}
	logger.Debug("codes validated", "dictionary_size", len(codes))

	static, err := SplitStatic(keyed, keyedSplit, c.opts.PreferTextValueOverNumeric)
	if err != nil {
		logger.Error("static pivot failed", "error", err)
		return nil, fmt.Errorf("build static table: %w", err)
	}
	descriptions := DescribeColumns(static.Columns, codes)
	logger.Debug("static table built", "rows", len(static.Rows), "columns", len(static.Columns))

	eventRows := FormatEvents(keyed, codes, c.opts)
	logger.Debug("event table built", "rows", len(eventRows))

	res := &Result{
		RunID:        runID,
		Static:       static,
		Descriptions: descriptions,
		Events:       eventRows,
	}

	if dups := FindDuplicateEvents(eventRows); len(dups) > 0 {
		d := Diagnostic{Kind: DiagDuplicateEvents, Message: DuplicateEventsMessage, Rows: dups}
		res.Diagnostics = append(res.Diagnostics, d)
		logger.Warn(d.Message, "diagnostic", d)
		for _, r := range dups {
			logger.Warn("duplicate event",
				"patientid", r.PatientID,
				"date", r.Date,
				"event_name", r.EventName,
				"event_value", r.EventValue,
			)
		}
	}

	if unmatched := UnmatchedSplitSubjects(keyed, keyedSplit); len(unmatched) > 0 {
		d := Diagnostic{Kind: DiagUnmatchedSplitSubjects, Message: UnmatchedSplitMessage, Subjects: unmatched}
		res.Diagnostics = append(res.Diagnostics, d)
		logger.Warn(d.Message, "diagnostic", d)
	}

	logger.Info("conversion complete",
		"subjects", len(static.Rows),
		"static_columns", len(static.Columns),
		"events", len(eventRows),
		"diagnostics", len(res.Diagnostics),
		"duration", time.Since(start),
	)

	return res, nil
}

// Convert runs a conversion with the given options and the default logger.
func Convert(codes []Code, events []Event, split SplitTable, opts Options) (*Result, error) {
	return NewConverter(opts, nil).Convert(codes, events, split)
}
