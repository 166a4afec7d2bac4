package jwt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrDecode indicates that a token segment is not valid base64url text.
// Use errors.Is(err, ErrDecode) to match any *DecodeError.
var ErrDecode = errors.New("jwt: segment decode failure")

// DecodeError is returned by Base64Decode when the segment is not
// well-formed base64 or its bytes are not valid UTF-8.
type DecodeError struct {
	Segment string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrDecode, e.Segment, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

var errNotUTF8 = errors.New("invalid utf-8 sequence")

var urlReplacer = strings.NewReplacer("+", "-", "/", "_")

// Sanitize converts standard base64 text into its unpadded url-safe form:
// trailing '=' removed, '+' to '-' and '/' to '_'.
// Text that is not base64 (e.g. hex) passes through unchanged
// except for those characters.
func Sanitize(s string) string {
	return urlReplacer.Replace(strings.TrimRight(s, "="))
}

// Base64Encode encodes "text" to the jwt base64 url format (no padding).
func Base64Encode(text string) string {
	return Sanitize(base64.StdEncoding.EncodeToString([]byte(text)))
}

// Base64Decode decodes a jwt base64 url "segment" back to its text.
// It fails with a *DecodeError on malformed base64 or invalid UTF-8.
func Base64Decode(segment string) (string, error) {
	s := strings.NewReplacer("-", "+", "_", "/").Replace(segment)
	if n := len(s) % 4; n > 0 {
		// JWT: Because of no trailing '=' let's suffix it
		// with the correct number of those '=' before decoding.
		s += strings.Repeat("=", 4-n)
	}

	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", &DecodeError{Segment: segment, Err: err}
	}

	if !utf8.Valid(b) {
		return "", &DecodeError{Segment: segment, Err: errNotUTF8}
	}

	return string(b), nil
}
