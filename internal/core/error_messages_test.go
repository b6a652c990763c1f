package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{
			name:     "missing code",
			err:      &ReferentialIntegrityError{Missing: []string{"LAB//X"}},
			wantCode: "REF001",
		},
		{
			name:     "undescribed code",
			err:      &ReferentialIntegrityError{Undescribed: []string{"LAB//X"}},
			wantCode: "REF002",
		},
		{
			name:     "missing wins over undescribed",
			err:      &ReferentialIntegrityError{Missing: []string{"A"}, Undescribed: []string{"B"}},
			wantCode: "REF001",
		},
		{
			name:     "wrapped referential error",
			err:      fmt.Errorf("validate codes: %w", &ReferentialIntegrityError{Missing: []string{"A"}}),
			wantCode: "REF001",
		},
		{
			name: "wrapped pivot conflict",
			err: fmt.Errorf("build static table: %w", &PivotConflictError{Conflicts: []PivotConflict{
				{SubjectID: "1", Code: "wt", Values: []Value{NumericValue(70), NumericValue(71)}},
			}}),
			wantCode: "PIV001",
		},
		{name: "invalid date", err: ValidationError{Field: "time", Message: `invalid date "x"`}, wantCode: "VAL001"},
		{name: "invalid number", err: ValidationError{Field: "numeric_value", Message: `invalid number "x"`}, wantCode: "VAL002"},
		{name: "required field", err: ValidationError{Field: "code", Message: "required field is empty"}, wantCode: "VAL003"},
		{name: "missing columns", err: errors.New("missing required columns: code"), wantCode: "VAL004"},
		{name: "file not found", err: errors.New("open data.csv: no such file or directory"), wantCode: "FILE001"},
		{name: "csv parse error", err: errors.New(`parse error on line 3, column 4: bare " in non-quoted-field`), wantCode: "FILE002"},
		{name: "unsupported file", err: errors.New(`unsupported file type ".parquet" for x.parquet`), wantCode: "FILE004"},
		{name: "empty file", err: errors.New("empty file: codes.csv"), wantCode: "FILE005"},
		{name: "missing sheet", err: errors.New(`sheet "Data" not found in workbook in.xlsx`), wantCode: "FILE006"},
		{name: "bad mapping", err: errors.New("category mapping map.yaml: invalid yaml"), wantCode: "CFG001"},
		{name: "unknown error", err: errors.New("something odd"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(&ReferentialIntegrityError{Missing: []string{"X"}})
	if !strings.Contains(got, "(Code: REF001)") {
		t.Errorf("FormatUserError() = %q, want code REF001", got)
	}
	if !strings.HasSuffix(got, msgUnknownCode.Action) {
		t.Errorf("FormatUserError() = %q, want action suffix", got)
	}
}
