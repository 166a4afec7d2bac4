package jwt

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	testAlg, testSecret = HS256, []byte("sercrethatmaycontainch@r$")
	testHash            = SHA256
	testNow             = time.Unix(1700000000, 0)
)

// setClock freezes Clock at "at" for the rest of the test and returns
// a function that moves it forward.
func setClock(t *testing.T, at time.Time) (advance func(time.Duration)) {
	t.Helper()

	now := at
	Clock = func() time.Time { return now }
	t.Cleanup(func() { Clock = time.Now })

	return func(d time.Duration) { now = now.Add(d) }
}

func mustSign(t *testing.T, payload Map, opts SignOptions) string {
	t.Helper()

	token, err := Sign(payload, testSecret, testAlg, testHash, opts)
	require.NoError(t, err)
	return token
}

func mustVerify(t *testing.T, token string, opts VerifyOptions) *VerifyResult {
	t.Helper()

	result, err := Verify(token, testSecret, testHash, opts)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// number is a payload number as Verify and Decode return it.
func number(n int64) json.Number {
	return json.Number(strconv.FormatInt(n, 10))
}
