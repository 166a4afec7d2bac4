package jwt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitToken(t *testing.T) {
	h, p, s, err := splitToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{h, p, s})

	_, _, _, err = splitToken("a.b")
	require.ErrorIs(t, err, ErrTokenForm)

	_, _, _, err = splitToken("a.b.c.d")
	require.ErrorIs(t, err, ErrTokenForm)
}

func TestDecode(t *testing.T) {
	setClock(t, testNow)

	token := mustSign(t, Map{"foo": "bar"}, SignOptions{Header: &Header{KeyID: "kid"}})

	header, claims, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, Header{Algorithm: HS256, Type: TypeJWT, KeyID: "kid"}, header)
	assert.Equal(t, Map{"foo": "bar", "iat": number(testNow.Unix())}, claims)

	// Decode does not check the signature.
	_, claims, err = Decode(token[:len(token)-3] + "xyz")
	require.NoError(t, err)
	assert.Equal(t, "bar", claims["foo"])
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := Decode("a.b")
	require.ErrorIs(t, err, ErrTokenForm)

	_, _, err = Decode("!!!.e30.sig")
	require.ErrorIs(t, err, ErrDecode)

	_, _, err = Decode(Base64Encode(`{"alg":"HS256"}`) + "." + Base64Encode("null") + ".sig")
	require.ErrorIs(t, err, ErrPayloadNotObject)

	_, _, err = Decode(Base64Encode(`{"alg":"HS256"}`) + "." + Base64Encode(`{"a":1} {}`) + ".sig")
	require.ErrorIs(t, err, ErrPayloadTrailingData)

	_, claims, err := Decode(Base64Encode(`{"alg":"HS256"}`) + "." + Base64Encode(`{"a":1} `) + ".sig")
	require.NoError(t, err)
	assert.Equal(t, number(1), claims["a"])
}

func TestDecodeLargeIntegers(t *testing.T) {
	token := mustSign(t, Map{"id": uint64(9007199254740993)}, SignOptions{NoTimestamp: true})

	_, claims, err := Decode(token)
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), claims["id"])
}
