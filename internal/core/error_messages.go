package core

// error_messages.go maps technical errors to user-facing messages with a
// code that can be quoted when reporting a failed conversion.
//
// # Code dictionary errors (REF001-REF099)
//
//	REF001 - Unknown code: the event log uses codes missing from the code dictionary
//	         Action: Add the listed codes to the code dictionary
//	REF002 - Missing description: a used code has no description
//	         Action: Fill in the description column for the listed codes
//
// # Pivot errors (PIV001-PIV099)
//
//	PIV001 - Conflicting static values: a subject has two values for one static code
//	         Action: Keep a single value per subject and code for rows without a time
//
// # Validation errors (VAL001-VAL099)
//
//	VAL001 - Invalid date, VAL002 - Invalid number,
//	VAL003 - Required field empty, VAL004 - Missing column
//
// # File errors (FILE001-FILE099)
//
//	FILE001 - File not found, FILE002 - Invalid CSV, FILE003 - Invalid workbook,
//	FILE004 - Unsupported file type, FILE005 - Empty file, FILE006 - Missing sheet
//
// # Configuration errors (CFG001-CFG099)
//
//	CFG001 - Invalid category mapping file

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage contains a user-friendly error message with an action and support code.
type UserMessage struct {
	Message string // What went wrong
	Action  string // What the user can do about it
	Code    string // Support reference, e.g. "REF001"
}

// errorPattern maps a lowercase substring of an error to a message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgUnknownCode = UserMessage{
		Message: "The event log uses codes that are not in the code dictionary",
		Action:  "Add the listed codes to the code dictionary",
		Code:    "REF001",
	}
	msgUndescribedCode = UserMessage{
		Message: "Some used codes have no description",
		Action:  "Fill in the description column for the listed codes",
		Code:    "REF002",
	}
	msgPivotConflict = UserMessage{
		Message: "A subject has conflicting values for a static code",
		Action:  "Keep a single value per subject and code for rows without a time",
		Code:    "PIV001",
	}
	msgMissingSheet = UserMessage{
		Message: "Worksheet not found",
		Action:  "Check MEDS_SHEET or leave it empty to use the first sheet",
		Code:    "FILE006",
	}
)

// errorPatterns is checked in order; the first match wins.
var errorPatterns = []errorPattern{
	{pattern: "codes missing from code dictionary", msg: msgUnknownCode},
	{pattern: "without description", msg: msgUndescribedCode},
	{pattern: "pivot conflict", msg: msgPivotConflict},

	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use ISO dates such as 2024-01-15 or 2024-01-15 08:30:00",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Use a plain decimal number in numeric_value",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Ensure every row has a subject_id and a code",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing",
			Action:  "Check the header row of the input file",
			Code:    "VAL004",
		},
	},

	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "Input file not found",
			Action:  "Check the configured input paths",
			Code:    "FILE001",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with quoted fields where needed",
			Code:    "FILE002",
		},
	},
	{
		pattern: "wrong number of fields",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure every row has the same number of columns as the header",
			Code:    "FILE002",
		},
	},
	{
		pattern: "zip: not a valid zip file",
		msg: UserMessage{
			Message: "File is not a valid Excel workbook",
			Action:  "Save the file as .xlsx or export it to CSV",
			Code:    "FILE003",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Unsupported input file type",
			Action:  "Use .csv, .tsv or .xlsx files",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The input file is empty",
			Action:  "Provide a file with a header row",
			Code:    "FILE005",
		},
	},
	{pattern: "not found in workbook", msg: msgMissingSheet},
	{pattern: "has no sheets", msg: msgMissingSheet},

	{
		pattern: "category mapping",
		msg: UserMessage{
			Message: "The category mapping file could not be read",
			Action:  "Use a YAML map of event name to category",
			Code:    "CFG001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for the technical error",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Typed conversion errors are recognized through the error chain; everything
// else is matched against known substrings (case-insensitive).
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var refErr *ReferentialIntegrityError
	if errors.As(err, &refErr) {
		if len(refErr.Missing) > 0 {
			return msgUnknownCode
		}
		return msgUndescribedCode
	}
	if errors.Is(err, ErrPivotConflict) {
		return msgPivotConflict
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
