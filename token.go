package jwt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrTokenForm indicates that the token has not the expected form (it's not a JWT).
	ErrTokenForm = errors.New("jwt: invalid token form")
	// ErrPayloadNotObject indicates that the payload segment is not a JSON object.
	ErrPayloadNotObject = errors.New("jwt: payload is not a JSON object")
	// ErrPayloadTrailingData indicates that the payload object is followed by more data.
	ErrPayloadTrailingData = errors.New("jwt: payload has data after the JSON object")
)

const sep = "."

func joinParts(parts ...string) string {
	return strings.Join(parts, sep)
}

// splitToken returns the three raw segments of "token".
func splitToken(token string) (header, payload, signature string, err error) {
	parts := strings.Split(token, sep)
	if len(parts) != 3 {
		err = fmt.Errorf("%w: expected 3 segments, found %d", ErrTokenForm, len(parts))
		return
	}

	return parts[0], parts[1], parts[2], nil
}

func encodeToken(header Header, claims Map, secret []byte, hash Hash, enc Encoding) (string, error) {
	h, err := Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encodeToken: header: %w", err)
	}

	p, err := Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encodeToken: payload: %w", err)
	}

	headerPayload := joinParts(Base64Encode(string(h)), Base64Encode(string(p)))

	signature, err := keyedHash(hash, secret, headerPayload, enc)
	if err != nil {
		return "", err
	}

	// header.payload.signature
	return joinParts(headerPayload, signature), nil
}

func decodeHeader(segment string) (Header, error) {
	var h Header

	text, err := Base64Decode(segment)
	if err != nil {
		return h, err
	}

	err = Unmarshal([]byte(text), &h)
	return h, err
}

func decodePayload(segment string) (Map, error) {
	text, err := Base64Decode(segment)
	if err != nil {
		return nil, err
	}

	// Numbers are kept as json.Number so integers above 2^53 survive a refresh.
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var claims Map
	if err = dec.Decode(&claims); err != nil {
		return nil, err
	}

	if _, err = dec.Token(); err != io.EOF {
		return nil, ErrPayloadTrailingData
	}

	if claims == nil {
		return nil, ErrPayloadNotObject
	}

	return claims, nil
}

// Decode returns the header and payload of "token" WITHOUT verifying
// its signature or claims. Use it to inspect a token, never to trust one.
func Decode(token string) (Header, Map, error) {
	h, p, _, err := splitToken(token)
	if err != nil {
		return Header{}, nil, err
	}

	header, err := decodeHeader(h)
	if err != nil {
		return Header{}, nil, fmt.Errorf("jwt: header: %w", err)
	}

	claims, err := decodePayload(p)
	if err != nil {
		return Header{}, nil, fmt.Errorf("jwt: payload: %w", err)
	}

	return header, claims, nil
}
