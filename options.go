package jwt

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// SignOptions configures Sign.
//
// The JSON and YAML field names follow the option names of the wire
// contract ("expiresIn", "jwtId", ...), see SignOptionsFromMap.
type SignOptions struct {
	// Algorithm is the header algorithm expected by the verifying side.
	// Sign only reads it when its "alg" argument is empty.
	Algorithm string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	// ExpiresIn sets "exp" to now + ExpiresIn.
	ExpiresIn Duration `json:"expiresIn,omitzero" yaml:"expiresIn,omitempty"`
	// NotBefore sets "nbf" to now + NotBefore.
	NotBefore Duration `json:"notBefore,omitzero" yaml:"notBefore,omitempty"`
	Audience  Audience `json:"audience,omitempty" yaml:"audience,omitempty"`
	Subject   string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Issuer    string   `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	JWTID     string   `json:"jwtId,omitempty" yaml:"jwtId,omitempty"`
	// MutatePayload applies the reserved claims computed by Sign
	// to the caller's payload map too.
	MutatePayload bool `json:"mutatePayload,omitempty" yaml:"mutatePayload,omitempty"`
	// NoTimestamp omits the "iat" claim.
	NoTimestamp bool `json:"noTimestamp,omitempty" yaml:"noTimestamp,omitempty"`
	// Header fields overlay the default {alg, typ} header, see Header.
	Header *Header `json:"header,omitempty" yaml:"header,omitempty"`
	// Encoding of the raw signature bytes, defaults to EncodingBase64.
	Encoding Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// Reserved for asymmetric algorithms, unused by the HMAC signer.
	AllowInsecureKeySizes          bool `json:"allowInsecureKeySizes,omitempty" yaml:"allowInsecureKeySizes,omitempty"`
	AllowInvalidAsymmetricKeyTypes bool `json:"allowInvalidAsymmetricKeyTypes,omitempty" yaml:"allowInvalidAsymmetricKeyTypes,omitempty"`
}

// ReservedClaims returns the claims Sign adds to the payload at "now":
// "exp" and "nbf" only when ExpiresIn and NotBefore are set,
// "aud", "sub", "iss" and "jti" only when their options are set
// and "iat" unless NoTimestamp.
//
// A malformed duration literal fails with a *ConfigError.
func (o SignOptions) ReservedClaims(now time.Time) (Map, error) {
	ts := now.Unix()
	claims := make(Map, 7)

	if !o.ExpiresIn.IsZero() {
		secs, err := o.ExpiresIn.Seconds()
		if err != nil {
			return nil, err
		}
		if claims[ClaimExpiry], err = addSeconds(ts, secs); err != nil {
			return nil, err
		}
	}

	if !o.NotBefore.IsZero() {
		secs, err := o.NotBefore.Seconds()
		if err != nil {
			return nil, err
		}
		if claims[ClaimNotBefore], err = addSeconds(ts, secs); err != nil {
			return nil, err
		}
	}

	if len(o.Audience) > 0 {
		claims[ClaimAudience] = o.Audience
	}

	if v := o.Subject; v != "" {
		claims[ClaimSubject] = v
	}

	if v := o.Issuer; v != "" {
		claims[ClaimIssuer] = v
	}

	if v := o.JWTID; v != "" {
		claims[ClaimID] = v
	}

	if !o.NoTimestamp {
		claims[ClaimIssuedAt] = ts
	}

	return claims, nil
}

func addSeconds(ts, secs int64) (int64, error) {
	if (secs > 0 && ts > math.MaxInt64-secs) || (secs < 0 && ts < math.MinInt64-secs) {
		return 0, newConfigError(KindTimeFormat, fmt.Errorf("%d seconds out of range", secs))
	}
	return ts + secs, nil
}

// VerifyOptions configures Verify.
// Every field is optional: an unset identity option skips its check.
type VerifyOptions struct {
	// Algorithm, when set, must equal the token header "alg".
	Algorithm string   `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Audience  Audience `json:"audience,omitempty" yaml:"audience,omitempty"`
	Subject   string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Issuer    string   `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	JWTID     string   `json:"jwtId,omitempty" yaml:"jwtId,omitempty"`
	// MaxAge rejects tokens whose "iat" is older than MaxAge.
	// Tokens without "iat" are not checked.
	MaxAge Duration `json:"maxAge,omitzero" yaml:"maxAge,omitempty"`
	// ClockTolerance is the slack, in seconds, applied to "exp" and "nbf".
	ClockTolerance int64 `json:"clockTolerance,omitempty" yaml:"clockTolerance,omitempty"`
	// ClockTimestamp is overwritten with the verification time by Verify.
	ClockTimestamp int64 `json:"clockTimestamp,omitempty" yaml:"clockTimestamp,omitempty"`
	// Encoding the signature was rendered with by Sign, defaults to EncodingBase64.
	Encoding Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// Reserved for asymmetric algorithms.
	AllowInsecureKeySizes          bool `json:"allowInsecureKeySizes,omitempty" yaml:"allowInsecureKeySizes,omitempty"`
	AllowInvalidAsymmetricKeyTypes bool `json:"allowInvalidAsymmetricKeyTypes,omitempty" yaml:"allowInvalidAsymmetricKeyTypes,omitempty"`
}

// validate runs the ordered option checks, the first failure wins.
// Only the form of the values is checked: any algorithm name, audience
// entry or tolerance is accepted as long as it is representable.
func (o VerifyOptions) validate() Kind {
	switch {
	case !utf8.ValidString(o.Algorithm):
		return KindAlgorithmType
	case !validAudienceOption(o.Audience):
		return KindAudienceType
	case !utf8.ValidString(o.Subject):
		return KindSubjectType
	case !utf8.ValidString(o.Issuer):
		return KindIssuerType
	case !utf8.ValidString(o.JWTID):
		return KindJWTIDType
	case !o.MaxAge.typeOK():
		return KindMaxAgeType
	}

	return KindNone
}

func validAudienceOption(aud Audience) bool {
	for _, a := range aud {
		if !utf8.ValidString(a) {
			return false
		}
	}
	return true
}

// SignOptionsFromMap builds SignOptions from loosely typed input,
// e.g. a decoded JSON or YAML document. Keys use the option names
// ("expiresIn", "jwtId", ...); unknown keys and nil values are ignored.
//
// The first value of the wrong type fails with an *OptionError.
func SignOptionsFromMap(m map[string]any) (SignOptions, error) {
	r := optionReader{m: m}
	o := SignOptions{
		Algorithm:                      r.str("algorithm", KindAlgorithmType),
		ExpiresIn:                      r.duration("expiresIn", KindTimeFormat),
		NotBefore:                      r.duration("notBefore", KindTimeFormat),
		Audience:                       r.audience("audience", KindAudienceType),
		Subject:                        r.str("subject", KindSubjectType),
		Issuer:                         r.str("issuer", KindIssuerType),
		JWTID:                          r.str("jwtId", KindJWTIDType),
		MutatePayload:                  r.boolean("mutatePayload", KindMutatePayloadType),
		NoTimestamp:                    r.boolean("noTimestamp", KindNoTimestampType),
		Header:                         r.header("header", KindHeaderType),
		Encoding:                       Encoding(r.str("encoding", KindEncoding)),
		AllowInsecureKeySizes:          r.boolean("allowInsecureKeySizes", KindAllowInsecureKeySizesType),
		AllowInvalidAsymmetricKeyTypes: r.boolean("allowInvalidAsymmetricKeyTypes", KindAllowInvalidAsymmetricKeyTypesType),
	}
	if r.err != nil {
		return SignOptions{}, r.err
	}

	return o, nil
}

// VerifyOptionsFromMap builds VerifyOptions from loosely typed input.
// The values are checked in this order, the first failure wins:
// algorithm must be a string, audience a string or a sequence of strings,
// subject, issuer and jwtId strings, maxAge a string or a number,
// clockTolerance and clockTimestamp numbers and the reserved flags booleans.
func VerifyOptionsFromMap(m map[string]any) (VerifyOptions, error) {
	r := optionReader{m: m}
	o := VerifyOptions{
		Algorithm:                      r.str("algorithm", KindAlgorithmType),
		Audience:                       r.audience("audience", KindAudienceType),
		Subject:                        r.str("subject", KindSubjectType),
		Issuer:                         r.str("issuer", KindIssuerType),
		JWTID:                          r.str("jwtId", KindJWTIDType),
		MaxAge:                         r.duration("maxAge", KindMaxAgeType),
		ClockTolerance:                 r.number("clockTolerance", KindClockToleranceType),
		ClockTimestamp:                 r.number("clockTimestamp", KindClockTimestampType),
		AllowInsecureKeySizes:          r.boolean("allowInsecureKeySizes", KindAllowInsecureKeySizesType),
		AllowInvalidAsymmetricKeyTypes: r.boolean("allowInvalidAsymmetricKeyTypes", KindAllowInvalidAsymmetricKeyTypesType),
		Encoding:                       Encoding(r.str("encoding", KindEncoding)),
	}
	if r.err != nil {
		return VerifyOptions{}, r.err
	}

	return o, nil
}

// optionReader reads typed values out of a map and keeps the first type error.
type optionReader struct {
	m   map[string]any
	err error
}

func (r *optionReader) get(key string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.m[key]
	return v, ok && v != nil
}

func (r *optionReader) fail(key string, kind Kind, v any) {
	r.err = &OptionError{Kind: kind, Field: key, Value: v}
}

func (r *optionReader) str(key string, kind Kind) string {
	v, ok := r.get(key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(key, kind, v)
	}
	return s
}

func (r *optionReader) boolean(key string, kind Kind) bool {
	v, ok := r.get(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(key, kind, v)
	}
	return b
}

func (r *optionReader) number(key string, kind Kind) int64 {
	v, ok := r.get(key)
	if !ok {
		return 0
	}
	n, ok := toInt64(v)
	if !ok {
		r.fail(key, kind, v)
	}
	return n
}

func (r *optionReader) duration(key string, kind Kind) Duration {
	v, ok := r.get(key)
	if !ok {
		return Duration{}
	}
	d := DurationOf(v)
	if !d.typeOK() {
		r.fail(key, kind, v)
	}
	return d
}

func (r *optionReader) audience(key string, kind Kind) Audience {
	v, ok := r.get(key)
	if !ok {
		return nil
	}
	aud, ok := audienceOf(v)
	if !ok {
		r.fail(key, kind, v)
	}
	return aud
}

func (r *optionReader) header(key string, kind Kind) *Header {
	v, ok := r.get(key)
	if !ok {
		return nil
	}

	var h Header
	b, err := json.Marshal(v)
	if err == nil {
		err = h.UnmarshalJSON(b)
	}
	if err != nil {
		r.fail(key, kind, v)
		return nil
	}

	return &h
}
