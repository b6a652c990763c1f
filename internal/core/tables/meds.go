package tables

import (
	"github.com/JonMunkholm/meds2dtc/internal/core"
)

func init() {
	registerCodes()
	registerData()
	registerSplit()
}

func registerCodes() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyCodes,
			Label: "Code dictionary",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "code", Type: core.FieldKey, Required: true},
			// nulls are only fatal for codes the event log uses
			{Name: "description", Type: core.FieldText, Required: true, AllowEmpty: true},
		},
		BuildRow: func(row []string, _ []string, idx core.HeaderIndex) (any, error) {
			return core.Code{
				Code:        core.Cell(row, idx, "code"),
				Description: core.ToPgText(core.Cell(row, idx, "description")),
			}, nil
		},
	})
}

func registerData() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeyData,
			Label: "Event log",
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "subject_id", Type: core.FieldKey, Required: true},
			{Name: "code", Type: core.FieldKey, Required: true},
			{Name: "time", Type: core.FieldDate, Required: true, AllowEmpty: true},
			{Name: "text_value", Type: core.FieldText},
			{Name: "numeric_value", Type: core.FieldNumeric},
		},
		BuildRow: func(row []string, _ []string, idx core.HeaderIndex) (any, error) {
			return core.Event{
				SubjectID:    core.Cell(row, idx, "subject_id"),
				Code:         core.Cell(row, idx, "code"),
				Time:         core.ToPgTimestamp(core.Cell(row, idx, "time")),
				TextValue:    core.ToPgText(core.Cell(row, idx, "text_value")),
				NumericValue: core.ToPgFloat8(core.Cell(row, idx, "numeric_value")),
			}, nil
		},
	})
}

var splitSpecs = []core.FieldSpec{
	{Name: "subject_id", Type: core.FieldKey, Required: true},
}

func registerSplit() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   KeySplit,
			Label: "Split and labels",
			Open:  true,
		},
		FieldSpecs: splitSpecs,
		BuildRow: func(row []string, header []string, idx core.HeaderIndex) (any, error) {
			extra := core.ExtraColumns(header, splitSpecs)
			values := make([]core.Value, len(extra))
			for i, col := range extra {
				values[i] = core.ParseValue(core.Cell(row, idx, col))
			}
			return core.SplitRow{
				SubjectID: core.Cell(row, idx, "subject_id"),
				Values:    values,
			}, nil
		},
	})
}

// SplitColumns returns the label columns a split file header carries.
func SplitColumns(header []string) []string {
	return core.ExtraColumns(header, splitSpecs)
}
