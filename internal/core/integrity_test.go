package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCodes(t *testing.T) {
	dict := []Code{
		{Code: "wt", Description: text("Weight")},
		{Code: "hr", Description: text("Heart rate")},
		{Code: "unused", Description: noText},
	}

	t.Run("all codes described", func(t *testing.T) {
		events := []KeyedEvent{
			staticEvent("1", "wt", noText, num(70)),
			timedEvent("1", "hr", "2020-01-01", noText, num(80)),
		}
		assert.NoError(t, ValidateCodes(dict, events))
	})

	t.Run("unused code without description is fine", func(t *testing.T) {
		assert.NoError(t, ValidateCodes(dict, nil))
	})

	t.Run("missing codes are listed sorted", func(t *testing.T) {
		events := []KeyedEvent{
			staticEvent("1", "zz", noText, noNum),
			staticEvent("1", "aa", noText, noNum),
			staticEvent("2", "zz", noText, noNum),
			staticEvent("1", "wt", noText, num(70)),
		}

		err := ValidateCodes(dict, events)
		require.ErrorIs(t, err, ErrReferentialIntegrity)

		var rerr *ReferentialIntegrityError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, []string{"aa", "zz"}, rerr.Missing)
		assert.Empty(t, rerr.Undescribed)
		assert.Contains(t, err.Error(), "aa, zz")
	})

	t.Run("used code without description", func(t *testing.T) {
		events := []KeyedEvent{staticEvent("1", "unused", noText, noNum)}

		var rerr *ReferentialIntegrityError
		require.ErrorAs(t, ValidateCodes(dict, events), &rerr)
		assert.Empty(t, rerr.Missing)
		assert.Equal(t, []string{"unused"}, rerr.Undescribed)
	})

	t.Run("duplicate dictionary row without description", func(t *testing.T) {
		withDup := append(append([]Code(nil), dict...), Code{Code: "wt", Description: noText})
		events := []KeyedEvent{staticEvent("1", "wt", noText, num(70))}

		var rerr *ReferentialIntegrityError
		require.ErrorAs(t, ValidateCodes(withDup, events), &rerr)
		assert.Equal(t, []string{"wt"}, rerr.Undescribed)
	})
}

func TestIndexCodes_FirstRowWins(t *testing.T) {
	idx := indexCodes([]Code{
		{Code: "wt", Description: text("Weight")},
		{Code: "wt", Description: text("Body weight")},
	})

	got, ok := idx.description("wt")
	require.True(t, ok)
	assert.Equal(t, "Weight", got)

	_, ok = idx.description("missing")
	assert.False(t, ok)
}
