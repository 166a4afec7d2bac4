package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var interopAlgorithms = []struct {
	alg    string
	hash   Hash
	method gojwt.SigningMethod
}{
	{HS256, SHA256, gojwt.SigningMethodHS256},
	{HS384, SHA384, gojwt.SigningMethodHS384},
	{HS512, SHA512, gojwt.SigningMethodHS512},
}

func TestInteropParsedByGolangJWT(t *testing.T) {
	for _, tt := range interopAlgorithms {
		t.Run(tt.alg, func(t *testing.T) {
			token, err := Sign(Map{"foo": "bar"}, testSecret, tt.alg, tt.hash, SignOptions{
				ExpiresIn: Literal("15m"),
				Issuer:    "my-issuer",
				Audience:  Audience{"a", "b"},
			})
			require.NoError(t, err)

			parsed, err := gojwt.Parse(token, func(*gojwt.Token) (any, error) {
				return testSecret, nil
			},
				gojwt.WithValidMethods([]string{tt.alg}),
				gojwt.WithIssuer("my-issuer"),
				gojwt.WithAudience("b"),
				gojwt.WithExpirationRequired(),
				gojwt.WithIssuedAt(),
			)
			require.NoError(t, err)
			require.True(t, parsed.Valid)

			claims, ok := parsed.Claims.(gojwt.MapClaims)
			require.True(t, ok)
			assert.Equal(t, "bar", claims["foo"])
		})
	}
}

func TestInteropVerifyGolangJWT(t *testing.T) {
	for _, tt := range interopAlgorithms {
		t.Run(tt.alg, func(t *testing.T) {
			now := time.Now()
			token, err := gojwt.NewWithClaims(tt.method, gojwt.MapClaims{
				"foo": "bar",
				"sub": "user",
				"iat": now.Unix(),
				"exp": now.Add(time.Hour).Unix(),
			}).SignedString(testSecret)
			require.NoError(t, err)

			result, err := Verify(token, testSecret, tt.hash, VerifyOptions{Algorithm: tt.alg, Subject: "user"})
			require.NoError(t, err)
			require.True(t, result.Valid(), result.Message)
			assert.Equal(t, "bar", result.Payload["foo"])
		})
	}
}

func TestInteropExpiredForBoth(t *testing.T) {
	advance := setClock(t, testNow)

	token := mustSign(t, Map{}, SignOptions{ExpiresIn: Literal("1s")})
	advance(time.Minute)

	_, err := gojwt.Parse(token, func(*gojwt.Token) (any, error) {
		return testSecret, nil
	}, gojwt.WithTimeFunc(Clock))
	require.ErrorIs(t, err, gojwt.ErrTokenExpired)

	assert.True(t, mustVerify(t, token, VerifyOptions{}).Expired())
}
