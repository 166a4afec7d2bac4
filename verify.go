package jwt

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Status is the outcome of Verify.
type Status uint8

const (
	// StatusInvalid means the token must not be trusted.
	StatusInvalid Status = iota
	// StatusValid means every check passed.
	StatusValid
	// StatusExpired means the token is authentic but its "exp" has passed.
	// It is the only status Refresh acts on.
	StatusExpired
)

var statusNames = [...]string{
	StatusInvalid: "invalid",
	StatusValid:   "valid",
	StatusExpired: "expired",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("jwt: unknown status %q", string(b))
}

// VerifyResult holds the outcome of Verify.
//
// Payload is set on StatusValid and StatusExpired, never on StatusInvalid.
// Message and Kind describe why the token is not valid.
type VerifyResult struct {
	Status  Status `json:"status" yaml:"status"`
	Payload Map    `json:"payload,omitempty" yaml:"payload,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Kind    Kind   `json:"-" yaml:"-"`
}

// Valid reports whether the token passed every check.
func (r *VerifyResult) Valid() bool { return r != nil && r.Status == StatusValid }

// Expired reports whether the token is authentic but expired.
func (r *VerifyResult) Expired() bool { return r != nil && r.Status == StatusExpired }

func reject(kind Kind) *VerifyResult {
	logger().WithFields(logrus.Fields{
		"kind":   kind.String(),
		"status": StatusInvalid.String(),
	}).Debug(kind.Message())

	return &VerifyResult{Status: StatusInvalid, Message: kind.Message(), Kind: kind}
}

func expired(payload Map) *VerifyResult {
	logger().WithField("status", StatusExpired.String()).Debug(KindExpired.Message())

	return &VerifyResult{Status: StatusExpired, Payload: payload, Message: KindExpired.Message(), Kind: KindExpired}
}

// Verify decodes and verifies "token" with the "secret" and "hash" it was signed with.
//
// The checks run in this order and the first failure is returned:
//  1. the token is made of three dot-separated segments;
//  2. the header decodes and, if opts.Algorithm is set, its "alg" matches;
//  3. the options themselves are well-formed;
//  4. the signature matches (constant-time comparison);
//  5. the payload decodes to a JSON object;
//  6. "exp" (StatusExpired), "nbf" and opts.MaxAge against "iat",
//     all with opts.ClockTolerance seconds of slack on "exp" and "nbf";
//  7. opts.Audience, opts.Subject, opts.Issuer and opts.JWTID,
//     each only when set.
//
// Any token, however malformed, produces a *VerifyResult and a nil error.
// The error is reserved to misconfiguration, e.g. a malformed opts.MaxAge
// literal, and is then a *ConfigError.
//
// Example Code:
//
//	result, err := jwt.Verify(token, []byte("secret"), jwt.SHA256, jwt.VerifyOptions{Issuer: "my-issuer"})
//	if err != nil {
//	    return err // fix the options.
//	}
//	switch result.Status {
//	case jwt.StatusValid:
//	    userID := result.Payload["user_id"]
//	case jwt.StatusExpired:
//	    // ask for a refresh, see Refresh.
//	default:
//	    log.Printf("rejected: %s", result.Message)
//	}
func Verify(token string, secret []byte, hash Hash, opts VerifyOptions) (*VerifyResult, error) {
	if hash == nil {
		return nil, newConfigError(KindUnknownHash, nil)
	}

	headerSeg, payloadSeg, signature, err := splitToken(token)
	if err != nil {
		return reject(KindMalformedToken), nil
	}

	header, err := decodeHeader(headerSeg)
	if err != nil {
		return reject(KindMalformedHeader), nil
	}

	// We could omit the "alg" because the token contains it
	// BUT, for security reason the algorithm MUST explicitly match
	// when the caller asks for it.
	if opts.Algorithm != "" && header.Algorithm != opts.Algorithm {
		return reject(KindAlgorithmMismatch), nil
	}

	if kind := opts.validate(); kind != KindNone {
		return reject(kind), nil
	}

	expectedSignature, err := keyedHash(hash, secret, joinParts(headerSeg, payloadSeg), opts.Encoding)
	if err != nil {
		return nil, err
	}

	if !equalSignatures(signature, expectedSignature) {
		return reject(KindSignature), nil
	}

	payload, err := decodePayload(payloadSeg)
	if err != nil {
		return reject(KindMalformedPayload), nil
	}

	opts.ClockTimestamp = Clock().Unix()

	kind, err := validateTime(payload, opts)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindNone:
	case KindExpired:
		return expired(payload), nil
	default:
		return reject(kind), nil
	}

	if kind = validateIdentity(payload, opts); kind != KindNone {
		return reject(kind), nil
	}

	return &VerifyResult{Status: StatusValid, Payload: payload}, nil
}
