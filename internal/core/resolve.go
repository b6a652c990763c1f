package core

import (
	"math"

	"github.com/jackc/pgx/v5/pgtype"
)

// ResolveValue picks the single value of a row from its text and numeric
// fields. The preferred field wins when set; otherwise the other field is
// used; with both null the result is null. A NaN numeric counts as null. Static and event rows both go
// through this function so the two tables never disagree on the policy.
func ResolveValue(text pgtype.Text, num pgtype.Float8, preferText bool) Value {
	textVal, numVal := NullValue(), NullValue()
	if text.Valid {
		textVal = TextValue(text.String)
	}
	if num.Valid && !math.IsNaN(num.Float64) {
		numVal = NumericValue(num.Float64)
	}

	first, second := numVal, textVal
	if preferText {
		first, second = textVal, numVal
	}
	if !first.IsNull() {
		return first
	}
	return second
}
