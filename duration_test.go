package jwt

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToSeconds(t *testing.T) {
	tests := []struct {
		in       any
		expected int64
	}{
		{"10s", 10},
		{"5m", 300},
		{"2h", 7200},
		{"1d", 86400},
		{"0s", 0},
		{42, 42},
		{int64(7), 7},
		{uint16(3), 3},
		{1.9, 1},
		{json.Number("30"), 30},
		{Seconds(5), 5},
		{Literal("1m"), 60},
	}

	for _, tt := range tests {
		got, err := ToSeconds(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.expected, got, "%v", tt.in)
	}
}

func TestToSecondsTimeFormat(t *testing.T) {
	for _, in := range []any{"10x", "abc", "", "1.5h", "-1s", "10 s", "1h30m", true, nil, []int{1}} {
		_, err := ToSeconds(in)
		require.ErrorIs(t, err, ErrTimeFormat, "%#v", in)
		assert.NotErrorIs(t, err, ErrTimeUnit)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, DefaultStatusCode, cfgErr.StatusCode())
	}
}

func TestToSecondsOutOfRange(t *testing.T) {
	tests := []any{
		"999999999999999d",
		"9223372036854775807m",
		"99999999999999999999s",
		uint64(math.MaxUint64),
		1e19,
		-1e19,
		math.NaN(),
		json.Number("1e30"),
	}

	for _, in := range tests {
		secs, err := ToSeconds(in)
		require.ErrorIs(t, err, ErrTimeFormat, "%#v", in)
		assert.Zero(t, secs)
	}

	secs, err := ToSeconds("106751991167300d")
	require.NoError(t, err)
	assert.Equal(t, int64(106751991167300*86400), secs)

	secs, err = ToSeconds(uint64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), secs)
}

func TestDurationIsZero(t *testing.T) {
	assert.True(t, Duration{}.IsZero())
	assert.True(t, Literal("").IsZero())
	assert.True(t, Seconds(0).IsZero())
	assert.True(t, DurationOf(0.0).IsZero())
	assert.False(t, Literal("0s").IsZero())
	assert.False(t, Seconds(1).IsZero())
	assert.False(t, DurationOf(true).IsZero())
}

func TestDurationDecode(t *testing.T) {
	var opts VerifyOptions

	require.NoError(t, json.Unmarshal([]byte(`{"maxAge":"5m"}`), &opts))
	secs, err := opts.MaxAge.Seconds()
	require.NoError(t, err)
	assert.Equal(t, int64(300), secs)

	require.NoError(t, json.Unmarshal([]byte(`{"maxAge":60}`), &opts))
	secs, err = opts.MaxAge.Seconds()
	require.NoError(t, err)
	assert.Equal(t, int64(60), secs)

	require.NoError(t, yaml.Unmarshal([]byte("maxAge: 2h\n"), &opts))
	secs, err = opts.MaxAge.Seconds()
	require.NoError(t, err)
	assert.Equal(t, int64(7200), secs)

	// kept as-is, rejected by the option validation.
	require.NoError(t, json.Unmarshal([]byte(`{"maxAge":true}`), &opts))
	assert.Equal(t, KindMaxAgeType, opts.validate())
}

func TestDurationEncode(t *testing.T) {
	b, err := json.Marshal(SignOptions{ExpiresIn: Literal("15m"), NotBefore: Seconds(10)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"expiresIn":"15m","notBefore":10}`, string(b))

	b, err = json.Marshal(SignOptions{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}
