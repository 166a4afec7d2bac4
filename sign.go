package jwt

// Sign signs and generates a new token.
//
// The payload is the body of the token, it should contain information
// about a specific authorized client. Note that the payload part is not
// encrypted, therefore it should NOT contain any private information.
//
// The header is {"alg": alg, "typ": "JWT"} overlaid by opts.Header.
// The reserved claims computed from "opts" (see SignOptions.ReservedClaims)
// are merged over a copy of "payload", so the caller's map is left untouched
// unless opts.MutatePayload is set.
//
// The signature is the HMAC of "<header>.<payload>" keyed with "secret",
// rendered with opts.Encoding (base64 by default) and made url-safe.
//
// An empty "alg" is taken from opts.Algorithm, otherwise opts.Algorithm
// is left to the verifying side and never compared here.
//
// Sign only fails on misconfiguration: a malformed duration literal,
// an unknown encoding or a nil hash. Such errors are *ConfigError values.
//
// Example Code:
//
//	token, err := jwt.Sign(jwt.Map{"foo": "bar"}, []byte("secret"), jwt.HS256, jwt.SHA256, jwt.SignOptions{
//	    ExpiresIn: jwt.Literal("15m"),
//	    Issuer:    "my-issuer",
//	})
//
// See `Verify` to decode and verify the result token.
func Sign(payload Map, secret []byte, alg string, hash Hash, opts SignOptions) (string, error) {
	if hash == nil {
		return "", newConfigError(KindUnknownHash, nil)
	}

	if alg == "" {
		alg = opts.Algorithm
	}

	reserved, err := opts.ReservedClaims(Clock())
	if err != nil {
		return "", err
	}

	claims := Merge(Clone(payload), reserved)
	if opts.MutatePayload {
		ApplyClaims(payload, reserved)
	}

	return encodeToken(newHeader(alg, opts.Header), claims, secret, hash, opts.Encoding)
}

// ApplyClaims merges "claims" into the caller-owned "payload" in place,
// the claims win on collision. It is what Sign does when
// SignOptions.MutatePayload is set. A nil payload is left as is.
func ApplyClaims(payload, claims Map) {
	if payload == nil {
		return
	}

	Merge(payload, claims)
}
