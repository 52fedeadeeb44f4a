package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDateLayouts(t *testing.T) {
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-03-05",
		"05/03/2024",
		"05-03-2024",
		"5/3/2024",
		"05.03.2024",
		"5 Mar 2024",
		"05 March 2024",
		"Mar 5, 2024",
		"2024/03/05",
	} {
		got, err := ParseFlexibleDate(raw)
		require.NoError(t, err, "input %q", raw)
		assert.True(t, got.Equal(want), "input %q parsed to %s", raw, got)
	}
}

func TestParseFlexibleDateIsDayFirst(t *testing.T) {
	got, err := ParseFlexibleDate("04/03/2024")
	require.NoError(t, err)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 4, got.Day())
}

func TestParseFlexibleDateExcelSerial(t *testing.T) {
	got, err := ParseFlexibleDate("45292")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.Format(DateOnly))
}

func TestParseFlexibleDateRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "soon", "99999999", "123"} {
		_, err := ParseFlexibleDate(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))

	d := time.Date(2024, time.July, 9, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, "2024-07-09", FormatDate(&d))
}
