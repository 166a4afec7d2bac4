package jwt

import "net/http"

// DefaultStatusCode is the HTTP-like status attached to every diagnostic.
const DefaultStatusCode = http.StatusNotAcceptable

// Kind identifies a diagnostic: why a token was rejected or
// why an option could not be used.
type Kind uint8

// The diagnostics reported by Sign, Verify and Refresh.
const (
	KindNone Kind = iota
	KindAlgorithmMismatch
	KindAlgorithmType
	KindAudienceType
	KindAudience
	KindSubjectType
	KindSubject
	KindIssuerType
	KindIssuer
	KindJWTIDType
	KindJWTID
	KindMaxAgeType
	KindMaxAge
	KindClockToleranceType
	KindClockTimestampType
	KindAllowInsecureKeySizesType
	KindAllowInvalidAsymmetricKeyTypesType
	KindSignature
	KindExpired
	KindNotActive
	KindTimeFormat
	KindTimeUnit
	KindMalformedToken
	KindMalformedHeader
	KindMalformedPayload
	KindEncoding
	KindUnknownHash
	KindMutatePayloadType
	KindNoTimestampType
	KindHeaderType
)

// Description is the human readable form of a Kind.
type Description struct {
	Title      string `json:"title" yaml:"title"`
	Name       string `json:"name" yaml:"name"`
	Message    string `json:"message" yaml:"message"`
	StatusCode int    `json:"statusCode" yaml:"statusCode"`
}

var descriptions = map[Kind]Description{
	KindAlgorithmMismatch: {
		Title:   "Algorithm type error",
		Name:    "algorithm mismatch",
		Message: "The algorithm type provided do not correspond to algorithm header",
	},
	KindAlgorithmType: {
		Title:   "Algorithm error",
		Name:    "algorithm error",
		Message: "The algorithm type provided is not allow.",
	},
	KindAudienceType: {
		Title:   "Audience type error",
		Name:    "audience error",
		Message: "The audience type provided is invalid",
	},
	KindAudience: {
		Title:   "Audience error",
		Name:    "audience error occur",
		Message: "The audience provided is invalid",
	},
	KindSubjectType: {
		Title:   "Subject type error",
		Name:    "subject error",
		Message: "The subject type provided is invalid",
	},
	KindSubject: {
		Title:   "Subject error",
		Name:    "subject invalid",
		Message: "The subject provided is invalid",
	},
	KindIssuerType: {
		Title:   "Issuer type error",
		Name:    "issuer error",
		Message: "The issuer type provided is invalid",
	},
	KindIssuer: {
		Title:   "Issuer error",
		Name:    "issuer invalid",
		Message: "The issuer provided is invalid",
	},
	KindJWTIDType: {
		Title:   "JWT ID type Error",
		Name:    "JWT ID error",
		Message: "The JWT ID type provided is invalid",
	},
	KindJWTID: {
		Title:   "JWT ID error",
		Name:    "Invalid JWT ID",
		Message: "The JWT ID provided is invalid",
	},
	KindMaxAgeType: {
		Title:   "Max age type error",
		Name:    "maxAge error",
		Message: "The maxAge type provided is invalid",
	},
	KindMaxAge: {
		Title:   "Token max age error",
		Name:    "token max age exceeded",
		Message: "The Token max age provided is exceeded",
	},
	KindClockToleranceType: {
		Title:   "ClockTolerance type error",
		Name:    "clockTolerance error",
		Message: "The clockTolerance type provided is invalid",
	},
	KindClockTimestampType: {
		Title:   "ClockTimestamp type error",
		Name:    "clockTimestamp error",
		Message: "The clockTimestamp type provided is invalid",
	},
	KindAllowInsecureKeySizesType: {
		Title:   "AllowInsecureKeySizes type error",
		Name:    "allowInsecureKeySizes error",
		Message: "The allowInsecureKeySizes type provided is invalid",
	},
	KindAllowInvalidAsymmetricKeyTypesType: {
		Title:   "AllowInvalidAsymmetricKeyTypes type error",
		Name:    "allowInvalidAsymmetricKeyTypes error",
		Message: "The allowInvalidAsymmetricKeyTypes type provided is invalid",
	},
	KindSignature: {
		Title:   "Signature error",
		Name:    "Invalid signature",
		Message: "The signature provided is not valid",
	},
	KindExpired: {
		Title:   "Token expired",
		Name:    "expired",
		Message: "The token provided is expired",
	},
	KindNotActive: {
		Title:   "Token Inactivated",
		Name:    "inactivated",
		Message: "The token provided is not yet active",
	},
	KindTimeFormat: {
		Title:   "Time format error",
		Name:    "time format invalid",
		Message: "The time format provided is invalid",
	},
	KindTimeUnit: {
		Title:   "Time unit error",
		Name:    "time unit invalid",
		Message: "The time unit provided is invalid",
	},
	KindMalformedToken: {
		Title:   "Token format error",
		Name:    "token malformed",
		Message: "The token provided is not made of three segments",
	},
	KindMalformedHeader: {
		Title:   "Header error",
		Name:    "header malformed",
		Message: "The token header provided cannot be decoded",
	},
	KindMalformedPayload: {
		Title:   "Payload error",
		Name:    "payload malformed",
		Message: "The token payload provided cannot be decoded",
	},
	KindEncoding: {
		Title:   "Encoding error",
		Name:    "encoding invalid",
		Message: "The signature encoding provided is not supported",
	},
	KindUnknownHash: {
		Title:   "Hash algorithm error",
		Name:    "hash algorithm invalid",
		Message: "The hash algorithm provided is not supported",
	},
	KindMutatePayloadType: {
		Title:   "MutatePayload type error",
		Name:    "mutatePayload error",
		Message: "The mutatePayload type provided is invalid",
	},
	KindNoTimestampType: {
		Title:   "NoTimestamp type error",
		Name:    "noTimestamp error",
		Message: "The noTimestamp type provided is invalid",
	},
	KindHeaderType: {
		Title:   "Header type error",
		Name:    "header error",
		Message: "The header type provided is invalid",
	},
}

// Describe returns the title, name, message and status code of "kind".
// KindNone and unknown kinds produce an empty description with the default status.
func Describe(kind Kind) Description {
	d := descriptions[kind]
	d.StatusCode = DefaultStatusCode
	return d
}

// Message is a shortcut of Describe(kind).Message.
func (k Kind) Message() string {
	return descriptions[k].Message
}

// String returns the short name of the kind.
func (k Kind) String() string {
	if k == KindNone {
		return "none"
	}

	if d, ok := descriptions[k]; ok {
		return d.Name
	}

	return "unknown"
}
