package jwt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshValidToken(t *testing.T) {
	setClock(t, testNow)

	token := mustSign(t, Map{"foo": "bar"}, SignOptions{ExpiresIn: Literal("1h")})

	newToken, err := Refresh(token, testSecret, testSecret, testAlg, testHash, SignOptions{}, VerifyOptions{}, 0)
	require.NoError(t, err)
	assert.Empty(t, newToken)
}

func TestRefreshInvalidToken(t *testing.T) {
	advance := setClock(t, testNow)

	token := mustSign(t, Map{"foo": "bar"}, SignOptions{ExpiresIn: Literal("1s")})
	advance(time.Minute)

	newToken, err := Refresh(token, testSecret, []byte("other"), testAlg, testHash, SignOptions{}, VerifyOptions{}, 0)
	require.NoError(t, err)
	assert.Empty(t, newToken)

	newToken, err = Refresh("not.a.token", testSecret, testSecret, testAlg, testHash, SignOptions{}, VerifyOptions{}, 0)
	require.NoError(t, err)
	assert.Empty(t, newToken)
}

func TestRefreshExpiredToken(t *testing.T) {
	advance := setClock(t, testNow)

	token := mustSign(t, Map{"role": "admin"}, SignOptions{
		ExpiresIn: Literal("1s"),
		Subject:   "user",
		Audience:  Audience{"a", "b"},
	})
	advance(10 * time.Second)
	now := Clock().Unix()

	// ExpiresIn is ignored, the default lifetime applies.
	newToken, err := Refresh(token, testSecret, testSecret, testAlg, testHash,
		SignOptions{ExpiresIn: Literal("5m")}, VerifyOptions{}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, newToken)

	result := mustVerify(t, newToken, VerifyOptions{Subject: "user", Audience: Audience{"b"}})
	require.True(t, result.Valid())
	assert.Equal(t, Map{
		"role": "admin",
		"sub":  "user",
		"aud":  []any{"a", "b"},
		"iat":  number(now),
		"exp":  number(now + 3600),
	}, result.Payload)

	advance(time.Hour)
	assert.True(t, mustVerify(t, newToken, VerifyOptions{}).Expired())
}

func TestRefreshExplicitExpiry(t *testing.T) {
	advance := setClock(t, testNow)

	token := mustSign(t, Map{"foo": "bar"}, SignOptions{ExpiresIn: Literal("1s"), NoTimestamp: true})
	advance(time.Minute)
	expiresAt := Clock().Add(24 * time.Hour).Unix()

	newToken, err := Refresh(token, testSecret, testSecret, testAlg, testHash,
		SignOptions{NoTimestamp: true}, VerifyOptions{}, expiresAt)
	require.NoError(t, err)

	result := mustVerify(t, newToken, VerifyOptions{})
	require.True(t, result.Valid())
	assert.Equal(t, Map{"foo": "bar", "exp": number(expiresAt)}, result.Payload)
}

func TestRefreshKeepsLargeIntegers(t *testing.T) {
	advance := setClock(t, testNow)

	token := forgeToken(t, `{"alg":"HS256","typ":"JWT"}`,
		fmt.Sprintf(`{"id":9007199254740993,"ratio":0.1,"exp":%d}`, testNow.Unix()+1))
	advance(time.Minute)

	newToken, err := Refresh(token, testSecret, testSecret, testAlg, testHash,
		SignOptions{NoTimestamp: true}, VerifyOptions{}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, newToken)

	parts := strings.Split(newToken, ".")
	require.Len(t, parts, 3)
	payload, err := Base64Decode(parts[1])
	require.NoError(t, err)
	assert.Contains(t, payload, `"id":9007199254740993`)
	assert.Contains(t, payload, `"ratio":0.1`)

	result := mustVerify(t, newToken, VerifyOptions{})
	require.True(t, result.Valid())
	assert.Equal(t, number(9007199254740993), result.Payload["id"])
}

func TestRefreshSecrets(t *testing.T) {
	advance := setClock(t, testNow)

	oldSecret, newSecret := []byte("old-secret"), []byte("new-secret")
	token, err := Sign(Map{"foo": "bar"}, oldSecret, testAlg, testHash, SignOptions{ExpiresIn: Literal("1s")})
	require.NoError(t, err)
	advance(time.Minute)

	newToken, err := Refresh(token, newSecret, oldSecret, testAlg, testHash, SignOptions{}, VerifyOptions{}, 0)
	require.NoError(t, err)
	require.NotEmpty(t, newToken)

	result, err := Verify(newToken, newSecret, testHash, VerifyOptions{})
	require.NoError(t, err)
	assert.True(t, result.Valid())

	result, err = Verify(newToken, oldSecret, testHash, VerifyOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindSignature, result.Kind)
}

func TestRefreshConfigErrors(t *testing.T) {
	advance := setClock(t, testNow)

	token := mustSign(t, Map{}, SignOptions{ExpiresIn: Literal("1s")})
	advance(time.Minute)

	_, err := Refresh(token, testSecret, testSecret, testAlg, testHash,
		SignOptions{}, VerifyOptions{MaxAge: Literal("forever")}, 0)
	require.ErrorIs(t, err, ErrTimeFormat)

	_, err = Refresh(token, testSecret, testSecret, testAlg, testHash,
		SignOptions{NotBefore: Literal("soon")}, VerifyOptions{}, 0)
	require.ErrorIs(t, err, ErrTimeFormat)
}
