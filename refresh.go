package jwt

// Refresh rotates an expired token.
//
// The token is verified with "verifySecret" and "verifyOpts". Only a
// StatusExpired outcome is refreshed: for a token that is still valid, or
// one that is invalid, Refresh returns an empty string and a nil error.
//
// The new token carries every claim of the expired one except "exp",
// which becomes "expiresAt" (unix seconds) when positive and
// now + DefaultRefreshTTL otherwise. It is signed with "signSecret",
// "alg", "hash" and "signOpts"; signOpts.ExpiresIn is ignored so that the
// expiration computed here is kept, the other options apply as in Sign
// (e.g. a fresh "iat" unless NoTimestamp).
//
// The error is non-nil only on misconfiguration, see Sign and Verify.
//
// Example Code:
//
//	newToken, err := jwt.Refresh(token, secret, secret, jwt.HS256, jwt.SHA256,
//	    jwt.SignOptions{}, jwt.VerifyOptions{Issuer: "my-issuer"}, 0)
//	if err != nil {
//	    return err
//	}
//	if newToken == "" {
//	    // not expired, or not trusted.
//	}
func Refresh(
	token string,
	signSecret, verifySecret []byte,
	alg string,
	hash Hash,
	signOpts SignOptions,
	verifyOpts VerifyOptions,
	expiresAt int64,
) (string, error) {
	result, err := Verify(token, verifySecret, hash, verifyOpts)
	if err != nil {
		return "", err
	}

	if result.Status != StatusExpired {
		return "", nil
	}

	claims := result.Payload
	delete(claims, ClaimExpiry)
	if expiresAt > 0 {
		claims[ClaimExpiry] = expiresAt
	} else {
		claims[ClaimExpiry] = Clock().Add(DefaultRefreshTTL).Unix()
	}

	signOpts.ExpiresIn = Duration{}
	signOpts.MutatePayload = false

	newToken, err := Sign(claims, signSecret, alg, hash, signOpts)
	if err != nil {
		return "", err
	}

	logger().WithField("sub", claims[ClaimSubject]).Debug("token refreshed")
	return newToken, nil
}
