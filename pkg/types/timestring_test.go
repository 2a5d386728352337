package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"16:50": 1010,
		"18:00": 1080,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := TimeToMinutes(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestTimeToMinutes_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "ab:cd", "12-00", "12:00:00"} {
		_, err := TimeToMinutes(in)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, in)
	}
}

func TestMinutesToTime_RoundTripsEveryMinute(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		ts, err := MinutesToTime(m)
		require.NoError(t, err)

		back, err := TimeToMinutes(ts.String())
		require.NoError(t, err)
		require.Equal(t, m, back)
	}
}

func TestMinutesToTime_OutOfRange(t *testing.T) {
	_, err := MinutesToTime(-1)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)

	_, err = MinutesToTime(MinutesPerDay)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestNewTimeString(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	instant := time.Date(2026, 3, 2, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, TimeString("09:05"), NewTimeString(instant.In(tokyo)))
}
