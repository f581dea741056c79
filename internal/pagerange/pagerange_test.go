package pagerange

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		total int
		want  []int
	}{
		{"open end", "3-", 5, []int{2, 3, 4}},
		{"open start", "-3", 5, []int{0, 1, 2}},
		{"mixed", "1,3-5,8-", 7, []int{0, 2, 3, 4, 5, 6}},
		{"single", "2", 5, []int{1}},
		{"whitespace", " 1 , 2 - 3 ", 5, []int{0, 1, 2}},
		{"empty parts", ",1,,3,", 5, []int{0, 2}},
		{"duplicates collapse", "1-3,2,3-4", 5, []int{0, 1, 2, 3}},
		{"dash only", "-", 3, []int{0, 1, 2}},
		{"empty expression on empty deck", "", 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr, tt.total, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		total int
		want  error
	}{
		{"not a number", "abc", 5, ErrMalformed},
		{"bad range start", "x-3", 5, ErrMalformed},
		{"bad range end", "1-y", 5, ErrMalformed},
		{"double dash", "1-2-3", 5, ErrMalformed},
		{"zero start", "0-2", 5, ErrNonPositive},
		{"zero end", "-0", 5, ErrNonPositive},
		{"inverted", "4-2", 5, ErrInverted},
		{"single too large", "99", 5, ErrOutOfRange},
		{"single zero", "0", 5, ErrOutOfRange},
		{"range on empty deck", "1-2", 0, ErrEmptyDeck},
		{"blank expression", "   ", 5, ErrEmptyExpression},
		{"empty expression", "", 5, ErrEmptyExpression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.expr, tt.total, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestParseMalformedNamesPart(t *testing.T) {
	_, err := Parse("1,zz", 5, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zz")
}

func TestParseWarnings(t *testing.T) {
	t.Run("start beyond total selects nothing", func(t *testing.T) {
		var warn bytes.Buffer
		got, err := Parse("10-", 5, &warn)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Contains(t, warn.String(), "Start page 10")
	})

	t.Run("end beyond total is capped", func(t *testing.T) {
		var warn bytes.Buffer
		got, err := Parse("4-9", 5, &warn)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4}, got.Sorted())
		assert.Contains(t, warn.String(), "capped at 5")
	})

	t.Run("open end does not warn", func(t *testing.T) {
		var warn bytes.Buffer
		_, err := Parse("2-", 5, &warn)
		require.NoError(t, err)
		assert.Empty(t, warn.String())
	})
}

func TestAllAndContains(t *testing.T) {
	s := All(3)
	assert.Equal(t, []int{0, 1, 2}, s.Sorted())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(3))
	assert.Empty(t, All(0))
}
