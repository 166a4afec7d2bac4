package jwt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMerge(t *testing.T) {
	dst := Map{"foo": "bar", "iat": 1}
	got := Merge(dst, Map{"iat": 2, "exp": 3})

	assert.Equal(t, Map{"foo": "bar", "iat": 2, "exp": 3}, got)
	assert.Equal(t, got, dst)

	assert.Equal(t, Map{"a": 1}, Merge(nil, Map{"a": 1}))
}

func TestClone(t *testing.T) {
	src := Map{"foo": "bar"}
	c := Clone(src)
	c["foo"] = "baz"

	assert.Equal(t, "bar", src["foo"])
	assert.NotNil(t, Clone(nil))
}

func TestNumericClaim(t *testing.T) {
	claims := Map{
		"f":    float64(10),
		"i":    int64(11),
		"n":    json.Number("12"),
		"zero": float64(0),
		"s":    "13",
	}

	v, ok := numericClaim(claims, "f")
	assert.True(t, ok)
	assert.Equal(t, float64(10), v)

	v, ok = numericClaim(claims, "i")
	assert.True(t, ok)
	assert.Equal(t, float64(11), v)

	v, ok = numericClaim(claims, "n")
	assert.True(t, ok)
	assert.Equal(t, float64(12), v)

	for _, key := range []string{"zero", "s", "missing"} {
		_, ok = numericClaim(claims, key)
		assert.False(t, ok, key)
	}
}

func TestValidateAudience(t *testing.T) {
	tests := []struct {
		name     string
		token    any
		required Audience
		expected bool
	}{
		{"string equal", "a", Audience{"a"}, true},
		{"string differs", "x", Audience{"a"}, false},
		{"token list contains required", []any{"a", "b"}, Audience{"b"}, true},
		{"required list contains token", "a", Audience{"b", "a"}, true},
		{"lists share one", []string{"a", "b"}, Audience{"c", "b"}, true},
		{"lists disjoint", []any{"a", "b"}, Audience{"c", "d"}, false},
		{"non-string entries ignored", []any{1, "a"}, Audience{"a"}, true},
		{"only non-string entries", []any{1, true}, Audience{"a"}, false},
		{"missing", nil, Audience{"a"}, false},
		{"wrong type", 42, Audience{"a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateAudience(tt.token, tt.required))
		})
	}
}

func TestAudienceJSON(t *testing.T) {
	b, err := json.Marshal(Audience{"a"})
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(b))

	b, err = json.Marshal(Audience{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(b))

	var aud Audience
	require.NoError(t, json.Unmarshal([]byte(`"a"`), &aud))
	assert.Equal(t, Audience{"a"}, aud)

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &aud))
	assert.Equal(t, Audience{"a", "b"}, aud)

	require.Error(t, json.Unmarshal([]byte(`["a",1]`), &aud))
}

func TestAudienceYAML(t *testing.T) {
	var aud Audience
	require.NoError(t, yaml.Unmarshal([]byte("a"), &aud))
	assert.Equal(t, Audience{"a"}, aud)

	require.NoError(t, yaml.Unmarshal([]byte("[a, b]"), &aud))
	assert.Equal(t, Audience{"a", "b"}, aud)

	b, err := yaml.Marshal(Audience{"a"})
	require.NoError(t, err)
	assert.Equal(t, "a\n", string(b))
}
