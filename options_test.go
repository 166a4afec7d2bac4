package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestReservedClaims(t *testing.T) {
	ts := testNow.Unix()

	claims, err := SignOptions{}.ReservedClaims(testNow)
	require.NoError(t, err)
	assert.Equal(t, Map{"iat": ts}, claims)

	claims, err = SignOptions{NoTimestamp: true}.ReservedClaims(testNow)
	require.NoError(t, err)
	assert.Empty(t, claims)

	claims, err = SignOptions{
		ExpiresIn: Literal("15m"),
		NotBefore: Seconds(5),
		Audience:  Audience{"aud"},
		Subject:   "sub",
		Issuer:    "iss",
		JWTID:     "jti",
	}.ReservedClaims(testNow)
	require.NoError(t, err)
	assert.Equal(t, Map{
		"exp": ts + 900,
		"nbf": ts + 5,
		"aud": Audience{"aud"},
		"sub": "sub",
		"iss": "iss",
		"jti": "jti",
		"iat": ts,
	}, claims)

	_, err = SignOptions{ExpiresIn: Literal("15 minutes")}.ReservedClaims(testNow)
	require.ErrorIs(t, err, ErrTimeFormat)
}

func TestVerifyOptionsValidate(t *testing.T) {
	tests := []struct {
		name     string
		opts     VerifyOptions
		expected Kind
	}{
		{"empty", VerifyOptions{}, KindNone},
		{"all set", VerifyOptions{Algorithm: HS256, Audience: Audience{"a"}, Subject: "s", MaxAge: Literal("1h"), ClockTolerance: 5}, KindNone},
		{"unregistered algorithm", VerifyOptions{Algorithm: "HS999"}, KindNone},
		{"empty audience entry", VerifyOptions{Audience: Audience{"a", ""}}, KindNone},
		{"negative clock tolerance", VerifyOptions{ClockTolerance: -1}, KindNone},
		{"negative clock timestamp", VerifyOptions{ClockTimestamp: -1}, KindNone},
		{"algorithm not utf-8", VerifyOptions{Algorithm: "\xff"}, KindAlgorithmType},
		{"algorithm before audience", VerifyOptions{Algorithm: "\xff", Audience: Audience{"\xff"}}, KindAlgorithmType},
		{"audience not utf-8", VerifyOptions{Audience: Audience{"a", "\xff"}}, KindAudienceType},
		{"subject not utf-8", VerifyOptions{Subject: "\xff"}, KindSubjectType},
		{"issuer not utf-8", VerifyOptions{Issuer: "\xff"}, KindIssuerType},
		{"jwt id not utf-8", VerifyOptions{JWTID: "\xff"}, KindJWTIDType},
		{"max age of wrong type", VerifyOptions{MaxAge: DurationOf([]string{"1h"})}, KindMaxAgeType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.opts.validate())
		})
	}
}

func TestVerifyOptionsFromMap(t *testing.T) {
	var m map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(`
algorithm: HS256
audience: [a, b]
subject: user
issuer: my-issuer
jwtId: "42"
maxAge: 1h
clockTolerance: 10
encoding: hex
`), &m))

	opts, err := VerifyOptionsFromMap(m)
	require.NoError(t, err)
	assert.Equal(t, HS256, opts.Algorithm)
	assert.Equal(t, Audience{"a", "b"}, opts.Audience)
	assert.Equal(t, "user", opts.Subject)
	assert.Equal(t, "my-issuer", opts.Issuer)
	assert.Equal(t, "42", opts.JWTID)
	assert.Equal(t, int64(10), opts.ClockTolerance)
	assert.Equal(t, EncodingHex, opts.Encoding)

	secs, err := opts.MaxAge.Seconds()
	require.NoError(t, err)
	assert.Equal(t, int64(3600), secs)
}

func TestVerifyOptionsFromMapTypeErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       map[string]any
		field    string
		expected Kind
	}{
		{"algorithm", map[string]any{"algorithm": 256}, "algorithm", KindAlgorithmType},
		{"first failure wins", map[string]any{"algorithm": 256, "audience": 1}, "algorithm", KindAlgorithmType},
		{"audience", map[string]any{"audience": 1}, "audience", KindAudienceType},
		{"audience entry", map[string]any{"audience": []any{"a", 1}}, "audience", KindAudienceType},
		{"subject", map[string]any{"subject": 1}, "subject", KindSubjectType},
		{"issuer", map[string]any{"issuer": false}, "issuer", KindIssuerType},
		{"jwt id", map[string]any{"jwtId": 42}, "jwtId", KindJWTIDType},
		{"max age", map[string]any{"maxAge": true}, "maxAge", KindMaxAgeType},
		{"clock tolerance", map[string]any{"clockTolerance": "5"}, "clockTolerance", KindClockToleranceType},
		{"clock timestamp", map[string]any{"clockTimestamp": "now"}, "clockTimestamp", KindClockTimestampType},
		{"insecure key sizes", map[string]any{"allowInsecureKeySizes": "yes"}, "allowInsecureKeySizes", KindAllowInsecureKeySizesType},
		{"asymmetric key types", map[string]any{"allowInvalidAsymmetricKeyTypes": 1}, "allowInvalidAsymmetricKeyTypes", KindAllowInvalidAsymmetricKeyTypesType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyOptionsFromMap(tt.in)

			var optErr *OptionError
			require.ErrorAs(t, err, &optErr)
			assert.Equal(t, tt.expected, optErr.Kind)
			assert.Equal(t, tt.field, optErr.Field)
		})
	}
}

func TestSignOptionsFromMap(t *testing.T) {
	opts, err := SignOptionsFromMap(map[string]any{
		"expiresIn":   "15m",
		"notBefore":   5,
		"audience":    "aud",
		"noTimestamp": true,
		"header":      map[string]any{"kid": "my-kid"},
		"ignored":     struct{}{},
	})
	require.NoError(t, err)
	assert.Equal(t, Literal("15m"), opts.ExpiresIn)
	assert.Equal(t, Audience{"aud"}, opts.Audience)
	assert.True(t, opts.NoTimestamp)
	require.NotNil(t, opts.Header)
	assert.Equal(t, "my-kid", opts.Header.KeyID)

	secs, err := opts.NotBefore.Seconds()
	require.NoError(t, err)
	assert.Equal(t, int64(5), secs)

	_, err = SignOptionsFromMap(map[string]any{"mutatePayload": "true"})
	var optErr *OptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, KindMutatePayloadType, optErr.Kind)

	_, err = SignOptionsFromMap(map[string]any{"header": "kid"})
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, KindHeaderType, optErr.Kind)
}
