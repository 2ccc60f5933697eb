package grace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpmetest/internal/duration"
	"helpmetest/internal/helpmetest"
)

func TestResolveLiteralMatchesDurationParser(t *testing.T) {
	for _, literal := range []string{"30s", "5m", "2h", "25h", "1d", "1.5h"} {
		want, err := duration.Parse(literal)
		require.NoError(t, err)

		got := Resolve(literal, nil, DefaultBuffer)
		require.True(t, got.IsValid, "literal %q: %s", literal, got.Message)
		assert.Equal(t, want, got.Seconds, "literal %q", literal)
		assert.Equal(t, literal, got.Period, "literal input is echoed back unchanged")
	}
}

func TestResolveFromDailyTimerAppliesBuffer(t *testing.T) {
	tc := &helpmetest.TimerConfig{FilePath: "/etc/systemd/system/backup.timer", OnCalendar: "daily"}

	got := Resolve("", tc, DefaultBuffer)
	require.True(t, got.IsValid, got.Message)
	assert.Equal(t, int64(103680), got.Seconds) // 86400 * 1.2
	assert.Equal(t, "29h", got.Period)          // ceil to hour granularity
}

func TestResolveFromTimerWithoutOnCalendar(t *testing.T) {
	tc := &helpmetest.TimerConfig{FilePath: "/tmp/broken.timer"}

	got := Resolve("", tc, DefaultBuffer)
	assert.False(t, got.IsValid)
	assert.Contains(t, got.Message, "OnCalendar")
}

func TestResolveFromTimerUnresolvableExpression(t *testing.T) {
	tc := &helpmetest.TimerConfig{FilePath: "/tmp/x.timer", OnCalendar: "whenever"}

	got := Resolve("", tc, DefaultBuffer)
	assert.False(t, got.IsValid)
	assert.Contains(t, got.Message, "whenever")
}

func TestResolveBounds(t *testing.T) {
	tooShort := Resolve("5s", nil, DefaultBuffer)
	assert.False(t, tooShort.IsValid)
	assert.Contains(t, tooShort.Message, "at least 10 seconds")

	tooLong := Resolve("31d", nil, DefaultBuffer)
	assert.False(t, tooLong.IsValid)
	assert.Contains(t, tooLong.Message, "must not exceed 30 days")

	exactMax := Resolve("30d", nil, DefaultBuffer)
	assert.True(t, exactMax.IsValid, exactMax.Message)

	exactMin := Resolve("10s", nil, DefaultBuffer)
	assert.True(t, exactMin.IsValid, exactMin.Message)
}

func TestResolveRequiresSomeInput(t *testing.T) {
	got := Resolve("", nil, DefaultBuffer)
	assert.False(t, got.IsValid)
	assert.Contains(t, got.Message, "grace period required")
}

func TestResolveMalformedLiteral(t *testing.T) {
	got := Resolve("sometime", nil, DefaultBuffer)
	assert.False(t, got.IsValid)
	assert.Contains(t, got.Message, "invalid duration")
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{45, "45s"},
		{60, "1m"},
		{90, "2m"},
		{3600, "1h"},
		{103680, "29h"},
		{172799, "48h"},
		{172800, "2d"},
		{2592000, "30d"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSeconds(tc.seconds), "seconds=%d", tc.seconds)
	}
}
