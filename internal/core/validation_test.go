package core

import (
	"strings"
	"testing"
)

var eventSpecs = []FieldSpec{
	{Name: "subject_id", Type: FieldKey, Required: true},
	{Name: "code", Type: FieldKey, Required: true},
	{Name: "time", Type: FieldDate, Required: true, AllowEmpty: true},
	{Name: "text_value", Type: FieldText},
	{Name: "numeric_value", Type: FieldNumeric},
}

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		wantErr     bool
		wantMissing string
	}{
		{
			name:    "all columns",
			headers: []string{"subject_id", "code", "time", "text_value", "numeric_value"},
		},
		{
			name:    "optional value columns absent",
			headers: []string{"subject_id", "code", "time"},
		},
		{
			name:    "case insensitive",
			headers: []string{"Subject_ID", "CODE", "Time"},
		},
		{
			name:        "missing code and time",
			headers:     []string{"subject_id", "numeric_value"},
			wantErr:     true,
			wantMissing: "code, time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := ValidateHeaders(tt.headers, eventSpecs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateHeaders() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !strings.Contains(err.Error(), tt.wantMissing) {
					t.Errorf("error %q should list %q", err, tt.wantMissing)
				}
				return
			}
			if _, ok := idx["subject_id"]; !ok {
				t.Error("index should contain subject_id")
			}
		})
	}
}

func TestRowValidator(t *testing.T) {
	header := []string{"subject_id", "code", "time", "text_value", "numeric_value"}
	v := NewRowValidator(eventSpecs, MakeHeaderIndex(header))

	tests := []struct {
		name      string
		row       []string
		wantValid bool
		wantField string
		wantMsg   string
	}{
		{name: "timed event", row: []string{"1", "hr", "2020-01-01", "", "80"}, wantValid: true},
		{name: "static event", row: []string{"1", "wt", "", "", "70"}, wantValid: true},
		{name: "no values", row: []string{"1", "adm", "2020-01-01", "", ""}, wantValid: true},
		{name: "short row", row: []string{"1", "wt"}, wantValid: true},
		{name: "empty code", row: []string{"1", "", "", "", ""}, wantField: "code", wantMsg: "required field is empty"},
		{name: "bad number", row: []string{"1", "wt", "", "", "heavy"}, wantField: "numeric_value", wantMsg: "invalid number"},
		{name: "bad date", row: []string{"1", "wt", "someday", "", ""}, wantField: "time", wantMsg: "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateRow(tt.row)
			if res.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors %v)", res.Valid, tt.wantValid, res.Errors)
			}
			if tt.wantValid {
				if err := v.ValidateRowFirst(tt.row); err != nil {
					t.Errorf("ValidateRowFirst() = %v, want nil", err)
				}
				return
			}
			if res.Errors[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", res.Errors[0].Field, tt.wantField)
			}
			if !strings.Contains(res.Errors[0].Message, tt.wantMsg) {
				t.Errorf("Message = %q, want %q", res.Errors[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestRowValidator_MissingColumn(t *testing.T) {
	v := NewRowValidator(eventSpecs, MakeHeaderIndex([]string{"subject_id", "time"}))

	err := v.ValidateRowFirst([]string{"1", ""})
	if err == nil || !strings.Contains(err.Error(), "missing required column") {
		t.Errorf("ValidateRowFirst() = %v, want missing required column", err)
	}
}

func TestExtraColumns(t *testing.T) {
	specs := []FieldSpec{{Name: "subject_id", Type: FieldKey, Required: true}}

	got := ExtraColumns([]string{"split", "Subject_ID", "", " label "}, specs)
	if len(got) != 2 || got[0] != "split" || got[1] != "label" {
		t.Errorf("ExtraColumns() = %v, want [split label]", got)
	}
	if ExtraColumns([]string{"subject_id"}, specs) != nil {
		t.Error("no extra columns should return nil")
	}
}
