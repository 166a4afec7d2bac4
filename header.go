package jwt

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TypeJWT is the default "typ" header value.
const TypeJWT = "JWT"

// Header is the first token segment.
//
// Fields not listed here are kept in Extra and survive a
// decode/encode round trip.
type Header struct {
	// Algorithm ("alg") names the signing algorithm, e.g. "HS256".
	Algorithm string
	// Type ("typ") is "JWT" unless overridden.
	Type string
	// ContentType ("cty") is used when the payload is itself a token.
	ContentType string
	// KeyID ("kid") hints which key secured the token.
	KeyID string
	// JWKSetURL ("jku").
	JWKSetURL string
	// X509URL ("x5u"), one or more URLs.
	X509URL []string
	// X509Thumbprint ("x5t"), SHA-1 certificate thumbprint.
	X509Thumbprint string
	// X509ThumbprintS256 ("x5t#S256"), SHA-256 certificate thumbprint.
	X509ThumbprintS256 string
	// X509Chain ("x5c"), one or more certificates.
	X509Chain []string
	// Critical ("crit") lists extensions the recipient must understand.
	Critical []string

	// Extra holds the other header parameters.
	// Keys naming a field above are ignored by Map and MarshalJSON:
	// set the field instead.
	Extra map[string]any
}

// registeredHeaders are the header names backed by a Header field.
var registeredHeaders = map[string]struct{}{
	"alg": {}, "typ": {}, "cty": {}, "kid": {}, "jku": {},
	"x5u": {}, "x5t": {}, "x5t#S256": {}, "x5c": {}, "crit": {},
}

// newHeader returns {alg, typ: "JWT"} overlaid by every non-zero field of "partial".
// The caller's fields win, including "alg" and "typ".
func newHeader(alg string, partial *Header) Header {
	h := Header{Algorithm: alg, Type: TypeJWT}
	if partial == nil {
		return h
	}

	if v := partial.Algorithm; v != "" {
		h.Algorithm = v
	}
	if v := partial.Type; v != "" {
		h.Type = v
	}
	h.ContentType = partial.ContentType
	h.KeyID = partial.KeyID
	h.JWKSetURL = partial.JWKSetURL
	h.X509URL = partial.X509URL
	h.X509Thumbprint = partial.X509Thumbprint
	h.X509ThumbprintS256 = partial.X509ThumbprintS256
	h.X509Chain = partial.X509Chain
	h.Critical = partial.Critical
	if len(partial.Extra) > 0 {
		h.Extra = Clone(partial.Extra)
	}

	return h
}

// Map returns the header as a JSON-ready map, omitting empty fields.
// Extra entries never replace "alg", "typ" or the other registered names.
func (h Header) Map() map[string]any {
	m := make(map[string]any, 4+len(h.Extra))
	for k, v := range h.Extra {
		if _, ok := registeredHeaders[k]; ok {
			continue
		}
		m[k] = v
	}

	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	setList := func(key string, values []string) {
		switch len(values) {
		case 0:
		case 1:
			m[key] = values[0]
		default:
			m[key] = values
		}
	}

	set("alg", h.Algorithm)
	set("typ", h.Type)
	set("cty", h.ContentType)
	set("kid", h.KeyID)
	set("jku", h.JWKSetURL)
	setList("x5u", h.X509URL)
	set("x5t", h.X509Thumbprint)
	set("x5t#S256", h.X509ThumbprintS256)
	setList("x5c", h.X509Chain)
	if len(h.Critical) > 0 {
		m["crit"] = h.Critical
	}

	return m
}

// MarshalJSON implements json.Marshaler.
func (h Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *Header) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("jwt: header is not a JSON object")
	}

	var err error
	str := func(key string) string {
		v, ok := m[key]
		if !ok {
			return ""
		}
		delete(m, key)
		s, ok := v.(string)
		if !ok && err == nil {
			err = fmt.Errorf("jwt: header %q: expected string, got %T", key, v)
		}
		return s
	}
	list := func(key string) []string {
		v, ok := m[key]
		if !ok {
			return nil
		}
		delete(m, key)
		l, ok := audienceOf(v)
		if !ok && err == nil {
			err = fmt.Errorf("jwt: header %q: expected string or array of strings, got %T", key, v)
		}
		return l
	}

	*h = Header{
		Algorithm:          str("alg"),
		Type:               str("typ"),
		ContentType:        str("cty"),
		KeyID:              str("kid"),
		JWKSetURL:          str("jku"),
		X509URL:            list("x5u"),
		X509Thumbprint:     str("x5t"),
		X509ThumbprintS256: str("x5t#S256"),
		X509Chain:          list("x5c"),
		Critical:           list("crit"),
	}
	if len(m) > 0 {
		h.Extra = m
	}

	return err
}

// MarshalYAML implements yaml.Marshaler.
func (h Header) MarshalYAML() (any, error) {
	return h.Map(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, with the same rules as UnmarshalJSON.
func (h *Header) UnmarshalYAML(node *yaml.Node) error {
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}

	b, err := json.Marshal(m)
	if err != nil {
		return err
	}

	return h.UnmarshalJSON(b)
}
