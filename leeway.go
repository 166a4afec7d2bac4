package jwt

// validateTime checks the time-based claims at opts.ClockTimestamp,
// in this order: "exp" (KindExpired), "nbf" (KindNotActive) and
// opts.MaxAge against "iat" (KindMaxAge).
//
// ClockTolerance widens "exp" and "nbf"; zero and unset are the same.
// A zero or missing claim is not checked, so a token signed without
// "iat" always satisfies MaxAge. A malformed MaxAge fails before any
// claim is looked at, whatever the state of the token.
func validateTime(claims Map, opts VerifyOptions) (Kind, error) {
	var maxAge int64
	if !opts.MaxAge.IsZero() {
		secs, err := opts.MaxAge.Seconds()
		if err != nil {
			return KindNone, err
		}
		maxAge = secs
	}

	now := float64(opts.ClockTimestamp)
	leeway := float64(opts.ClockTolerance)

	if exp, ok := numericClaim(claims, ClaimExpiry); ok {
		if now >= exp+leeway {
			return KindExpired, nil
		}
	}

	if nbf, ok := numericClaim(claims, ClaimNotBefore); ok {
		if now < nbf-leeway {
			return KindNotActive, nil
		}
	}

	if !opts.MaxAge.IsZero() {
		if iat, ok := numericClaim(claims, ClaimIssuedAt); ok {
			if now-iat > float64(maxAge) {
				return KindMaxAge, nil
			}
		}
	}

	return KindNone, nil
}
