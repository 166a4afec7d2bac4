package jwt

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is a type shortcut for the token payload: application claims
// plus the reserved ones listed below.
type Map = map[string]any

// Reserved claim names.
const (
	ClaimExpiry    = "exp"
	ClaimNotBefore = "nbf"
	ClaimAudience  = "aud"
	ClaimSubject   = "sub"
	ClaimIssuer    = "iss"
	ClaimID        = "jti"
	ClaimIssuedAt  = "iat"
)

// Merge copies every entry of "overlay" into "dst" (overlay wins on collision)
// and returns "dst". A nil "dst" is allocated.
func Merge(dst, overlay Map) Map {
	if dst == nil {
		dst = make(Map, len(overlay))
	}

	for k, v := range overlay {
		dst[k] = v
	}

	return dst
}

// Clone returns a shallow copy of "m".
func Clone(m Map) Map {
	return Merge(make(Map, len(m)), m)
}

// numericClaim returns the value of a numeric claim.
// A missing, non-numeric or zero claim is reported as absent.
func numericClaim(claims Map, key string) (float64, bool) {
	var f float64
	switch v := claims[key].(type) {
	case float64:
		f = v
	case json.Number:
		var err error
		if f, err = v.Float64(); err != nil {
			return 0, false
		}
	default:
		n, ok := toInt64(v)
		if !ok {
			return 0, false
		}
		f = float64(n)
	}

	return f, f != 0
}

// Audience represents the "aud" claim: one or more recipients.
// It is encoded as a single string when it holds one entry
// and as an array otherwise; both forms decode.
type Audience []string

// MarshalJSON implements json.Marshaler.
func (a Audience) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Audience) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	aud, ok := audienceOf(v)
	if !ok {
		return fmt.Errorf("jwt: aud: %s", KindAudienceType.Message())
	}

	*a = aud
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a Audience) MarshalYAML() (any, error) {
	if len(a) == 1 {
		return a[0], nil
	}
	return []string(a), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Audience) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}

	aud, ok := audienceOf(v)
	if !ok {
		return fmt.Errorf("jwt: aud: %s", KindAudienceType.Message())
	}

	*a = aud
	return nil
}

// audienceOf converts a loosely typed audience: a string,
// a []string or a []any holding only strings.
func audienceOf(v any) (Audience, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string:
		return Audience{t}, true
	case []string:
		return Audience(t), true
	case Audience:
		return t, true
	case []any:
		aud := make(Audience, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			aud = append(aud, s)
		}
		return aud, true
	default:
		return nil, false
	}
}

// ValidateAudience reports whether the token audience and the required one
// share at least one entry.
//
// Both sides may be singular or a sequence: a required sequence matches
// when any of its entries is found in the token audience, a required
// string matches when the token audience equals or contains it.
// Non-string entries of the token audience are ignored and a missing
// token audience never matches.
func ValidateAudience(tokenAudience any, required Audience) bool {
	var have []string
	switch t := tokenAudience.(type) {
	case string:
		have = []string{t}
	case []string:
		have = t
	case Audience:
		have = t
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				have = append(have, s)
			}
		}
	}

	for _, want := range required {
		for _, got := range have {
			if got == want {
				return true
			}
		}
	}

	return false
}
