package jwt

// validateIdentity performs exact-match validation of the identity claims
// against the non-empty options, in this order: audience, subject,
// issuer and jwt id. Unset options are skipped.
//
// The audience uses ValidateAudience (any shared entry), the other claims
// must be strings equal to the option.
func validateIdentity(claims Map, opts VerifyOptions) Kind {
	if len(opts.Audience) > 0 {
		if !ValidateAudience(claims[ClaimAudience], opts.Audience) {
			return KindAudience
		}
	}

	if v := opts.Subject; v != "" {
		if !claimEquals(claims, ClaimSubject, v) {
			return KindSubject
		}
	}

	if v := opts.Issuer; v != "" {
		if !claimEquals(claims, ClaimIssuer, v) {
			return KindIssuer
		}
	}

	if v := opts.JWTID; v != "" {
		if !claimEquals(claims, ClaimID, v) {
			return KindJWTID
		}
	}

	return KindNone
}

func claimEquals(claims Map, key, expected string) bool {
	got, ok := claims[key].(string)
	return ok && got == expected
}
