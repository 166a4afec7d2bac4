package jwt

import (
	"crypto/hmac"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoding is the text form of the raw HMAC bytes before they are
// sanitized into the signature segment.
type Encoding string

const (
	// EncodingBase64 is the default: standard base64, then sanitized to base64url.
	EncodingBase64 Encoding = "base64"
	// EncodingBase64URL produces the same segment as EncodingBase64.
	EncodingBase64URL Encoding = "base64url"
	// EncodingHex renders the digest as lowercase hexadecimal.
	EncodingHex Encoding = "hex"
	// EncodingLatin1 maps every byte to the rune of the same value.
	EncodingLatin1 Encoding = "latin1"
	// EncodingBinary is an alias of EncodingLatin1.
	EncodingBinary Encoding = "binary"
)

func (e Encoding) encode(sum []byte) (string, error) {
	switch Encoding(strings.ToLower(string(e))) {
	case "", EncodingBase64:
		return base64.StdEncoding.EncodeToString(sum), nil
	case EncodingBase64URL:
		return base64.RawURLEncoding.EncodeToString(sum), nil
	case EncodingHex:
		return hex.EncodeToString(sum), nil
	case EncodingLatin1, EncodingBinary:
		r := make([]rune, len(sum))
		for i, b := range sum {
			r[i] = rune(b)
		}
		return string(r), nil
	default:
		return "", newConfigError(KindEncoding, fmt.Errorf("%q", string(e)))
	}
}

// keyedHash computes the sanitized signature segment of "headerAndPayload".
func keyedHash(h Hash, secret []byte, headerAndPayload string, enc Encoding) (string, error) {
	if h == nil {
		return "", newConfigError(KindUnknownHash, nil)
	}

	// We can improve its performance (if we store the secret on the same structure)
	// by using a pool and its Reset method.
	mac := hmac.New(h.New, secret)
	// header.payload
	mac.Write([]byte(headerAndPayload))

	text, err := enc.encode(mac.Sum(nil))
	if err != nil {
		return "", err
	}

	return Sanitize(text), nil
}

// equalSignatures compares two signature segments in constant time.
func equalSignatures(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
