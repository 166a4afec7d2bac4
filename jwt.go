package jwt

import (
	"encoding/json"
	"time"
)

// Clock is used to compute "now" for the time-based claims ("exp", "nbf", "iat")
// on both Sign and Verify.
// It can be overridden to use any other time value, useful for testing.
//
// Usage: now := Clock()
var Clock = time.Now

var (
	// Marshal is the JSON encoder used for the header and payload segments.
	// Defaults to encoding/json, which sorts map keys, so the same
	// logical payload always produces the same segment.
	Marshal = json.Marshal
	// Unmarshal is the JSON decoder used for the header segment.
	// Payloads are always decoded with encoding/json numbers kept as
	// json.Number, so claim values round-trip exactly.
	Unmarshal = json.Unmarshal
)

// DefaultRefreshTTL is the lifetime given to a refreshed token
// when no explicit expiration is passed to `Refresh`.
const DefaultRefreshTTL = time.Hour
