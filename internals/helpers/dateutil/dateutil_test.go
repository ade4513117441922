// file: internals/helpers/dateutil/dateutil_test.go
package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestISOWeekday(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(d("2024-01-08"))) // Monday
	assert.Equal(t, 3, ISOWeekday(d("2024-01-10"))) // Wednesday
	assert.Equal(t, 7, ISOWeekday(d("2024-01-14"))) // Sunday
}

func TestClockRoundTrip(t *testing.T) {
	min, err := ParseClock("16:00")
	require.NoError(t, err)
	assert.Equal(t, 960, min)
	assert.Equal(t, "16:00", FormatClock(min))
	assert.Equal(t, "17:30", FormatClock(min+90))
	assert.Equal(t, "00:05", FormatClock(5))

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("4pm")
	assert.Error(t, err)
}

func TestDateRangeContainsDate(t *testing.T) {
	end := d("2024-06-30")
	closed := DateRange{Start: d("2024-01-01"), End: &end}

	assert.True(t, closed.ContainsDate(d("2024-01-01")), "start boundary inklusif")
	assert.True(t, closed.ContainsDate(d("2024-06-30")), "end boundary inklusif")
	assert.True(t, closed.ContainsDate(d("2024-03-15")))
	assert.False(t, closed.ContainsDate(d("2023-12-31")))
	assert.False(t, closed.ContainsDate(d("2024-07-01")))

	open := DateRange{Start: d("2024-01-01")}
	assert.True(t, open.ContainsDate(d("2030-01-01")))
	assert.False(t, open.ContainsDate(d("2023-12-31")))
}

func TestDateRangeClampTo(t *testing.T) {
	end := d("2024-01-20")
	r := DateRange{Start: d("2024-01-10"), End: &end}

	lo, hi, ok := r.ClampTo(d("2024-01-01"), d("2024-01-31"))
	require.True(t, ok)
	assert.Equal(t, d("2024-01-10"), lo)
	assert.Equal(t, d("2024-01-20"), hi)

	// window seluruhnya di luar range
	_, _, ok = r.ClampTo(d("2024-02-01"), d("2024-02-28"))
	assert.False(t, ok)

	// open-ended: hi mengikuti window
	openEnd := DateRange{Start: d("2024-01-10")}
	lo, hi, ok = openEnd.ClampTo(d("2024-01-01"), d("2024-03-01"))
	require.True(t, ok)
	assert.Equal(t, d("2024-01-10"), lo)
	assert.Equal(t, d("2024-03-01"), hi)
}
