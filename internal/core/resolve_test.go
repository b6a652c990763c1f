package core

import (
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
)

func text(s string) pgtype.Text    { return pgtype.Text{String: s, Valid: true} }
func num(f float64) pgtype.Float8  { return pgtype.Float8{Float64: f, Valid: true} }
func ts(t string) pgtype.Timestamp { return ToPgTimestamp(t) }

var (
	noText = pgtype.Text{}
	noNum  = pgtype.Float8{}
)

func TestResolveValue(t *testing.T) {
	tests := []struct {
		name       string
		text       pgtype.Text
		num        pgtype.Float8
		preferText bool
		want       Value
	}{
		{"both set, prefer text", text("high"), num(7), true, TextValue("high")},
		{"both set, prefer numeric", text("high"), num(7), false, NumericValue(7)},
		{"only text, prefer text", text("high"), noNum, true, TextValue("high")},
		{"only text, prefer numeric", text("high"), noNum, false, TextValue("high")},
		{"only numeric, prefer text", noText, num(7), true, NumericValue(7)},
		{"only numeric, prefer numeric", noText, num(7), false, NumericValue(7)},
		{"both null, prefer text", noText, noNum, true, NullValue()},
		{"both null, prefer numeric", noText, noNum, false, NullValue()},
		{"zero is a value", noText, num(0), true, NumericValue(0)},
		{"NaN yields to text, prefer numeric", text("x"), num(math.NaN()), false, TextValue("x")},
		{"NaN yields to text, prefer text", text("x"), num(math.NaN()), true, TextValue("x")},
		{"NaN alone is null", noText, num(math.NaN()), true, NullValue()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveValue(tt.text, tt.num, tt.preferText)
			if got != tt.want {
				t.Errorf("ResolveValue() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{NumericValue(70), "70"},
		{NumericValue(70.5), "70.5"},
		{NumericValue(-0.001), "-0.001"},
		{TextValue("occurred"), "occurred"},
		{NullValue(), ""},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}
