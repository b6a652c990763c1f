package tables

import (
	"testing"

	"github.com/JonMunkholm/meds2dtc/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, key string, header, row []string) any {
	t.Helper()
	def := core.MustGet(key)
	idx, err := core.ValidateHeaders(header, def.FieldSpecs)
	require.NoError(t, err)
	require.NoError(t, core.NewRowValidator(def.FieldSpecs, idx).ValidateRowFirst(row))

	out, err := def.BuildRow(row, header, idx)
	require.NoError(t, err)
	return out
}

func TestTablesRegistered(t *testing.T) {
	for _, key := range []string{KeyCodes, KeyData, KeySplit} {
		def, ok := core.Get(key)
		require.True(t, ok, key)
		assert.NotEmpty(t, def.Info.Label)
		assert.NotEmpty(t, def.Info.Columns)
	}
	assert.True(t, core.MustGet(KeySplit).Info.Open)
}

func TestCodesBuildRow(t *testing.T) {
	header := []string{"code", "description"}

	got := build(t, KeyCodes, header, []string{"LAB//HR", "Heart rate"})
	assert.Equal(t, core.Code{Code: "LAB//HR", Description: core.ToPgText("Heart rate")}, got)

	got = build(t, KeyCodes, header, []string{"LAB//X", ""})
	assert.False(t, got.(core.Code).Description.Valid, "empty description is null")
}

func TestDataBuildRow(t *testing.T) {
	header := []string{"subject_id", "time", "code", "numeric_value", "text_value", "extra"}

	got := build(t, KeyData, header, []string{"17", "2021-05-01 10:00:00", "hr", "72", "", "ignored"})
	e, ok := got.(core.Event)
	require.True(t, ok)
	assert.Equal(t, "17", e.SubjectID)
	assert.Equal(t, "hr", e.Code)
	assert.True(t, e.Time.Valid)
	assert.False(t, e.IsStatic())
	assert.Equal(t, 72.0, e.NumericValue.Float64)
	assert.False(t, e.TextValue.Valid)

	static := build(t, KeyData, header, []string{"17", "", "sex", "", "F", ""}).(core.Event)
	assert.True(t, static.IsStatic())
	assert.Equal(t, "F", static.TextValue.String)
}

func TestDataBuildRow_ValueColumnsOptional(t *testing.T) {
	got := build(t, KeyData, []string{"subject_id", "code", "time"}, []string{"1", "adm", "2020-01-01"}).(core.Event)
	assert.False(t, got.TextValue.Valid)
	assert.False(t, got.NumericValue.Valid)
}

func TestSplitBuildRow(t *testing.T) {
	header := []string{"split", "subject_id", "label"}
	assert.Equal(t, []string{"split", "label"}, SplitColumns(header))

	got := build(t, KeySplit, header, []string{"train", "4", "1"}).(core.SplitRow)
	assert.Equal(t, "4", got.SubjectID)
	assert.Equal(t, []core.Value{core.TextValue("train"), core.NumericValue(1)}, got.Values)

	got = build(t, KeySplit, header, []string{"", "5", "NA"}).(core.SplitRow)
	assert.Equal(t, []core.Value{core.NullValue(), core.NullValue()}, got.Values)
}
