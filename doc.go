/*
Package jwt signs, verifies and refreshes HMAC JSON Web Tokens
in the compact serialization of RFC 7515 ("header.payload.signature").

# Overview

A token is made of three base64url segments: the JSON header,
the JSON object payload and the HMAC signature of "header.payload".
The header algorithm ("alg") is a label only: the digest is selected
by the Hash passed to Sign and Verify, which lets a token labeled HS256
be keyed with SHA3-256 or BLAKE2b when both sides agree.

# Key Features

  - Sign, Verify, Refresh and Decode over plain strings.
  - Fifteen HMAC digests: sha1, sha224, sha256, sha384, sha512,
    sha512-224, sha512-256, sha3-224, sha3-256, sha3-384, sha3-512,
    ripemd160, blake2b512, blake2s256 and md5, see ParseHash.
  - Signature encodings: base64 (default), base64url, hex, latin1 and binary.
  - Reserved claims from options: "exp", "nbf", "iat", "aud", "sub", "iss" and "jti".
  - Clock tolerance, maximum age and expected audience, subject, issuer and token id.
  - Expired but authentic tokens are reported as such, with their payload,
    so they can be refreshed.

# Quick Start

	package main

	import (
	    "fmt"

	    "github.com/opticore/jwt"
	)

	func main() {
	    secret := []byte("your-256-bit-secret-key-here")

	    token, err := jwt.Sign(jwt.Map{"user_id": 42}, secret, jwt.HS256, jwt.SHA256, jwt.SignOptions{
	        ExpiresIn: jwt.Literal("15m"),
	        Issuer:    "myapp.com",
	    })
	    if err != nil {
	        panic(err)
	    }

	    result, err := jwt.Verify(token, secret, jwt.SHA256, jwt.VerifyOptions{
	        Algorithm: jwt.HS256,
	        Issuer:    "myapp.com",
	    })
	    if err != nil {
	        panic(err) // misconfiguration, e.g. a malformed maxAge literal.
	    }

	    switch result.Status {
	    case jwt.StatusValid:
	        fmt.Println("User ID:", result.Payload["user_id"]) // a json.Number.
	    case jwt.StatusExpired:
	        fmt.Println("expired, refresh it")
	    default:
	        fmt.Println(result.Message)
	    }
	}

# Durations

ExpiresIn, NotBefore and MaxAge accept a number of seconds or a literal
made of digits and one unit: "30s", "15m", "2h" or "7d".

	jwt.Seconds(900)
	jwt.Literal("15m")

A literal of another form fails with a *ConfigError of KindTimeFormat.

# Verification

Verify checks, in order: the token form, the header, the expected
algorithm, the options, the signature (in constant time), the payload
and then the claims. The first failure is reported through
VerifyResult.Status, Kind and Message. Time claims are checked against
VerifyOptions.ClockTimestamp, the current Clock by default:

  - "exp": expired once now >= exp + ClockTolerance.
  - "nbf": not active while now < nbf - ClockTolerance.
  - "iat": too old once now - iat > MaxAge.

Audience matching succeeds when any expected audience equals any token audience.

# Refresh

Refresh signs a new token out of an expired one, keeping its payload
and setting a new "exp". Tokens that are still valid or that fail
verification for another reason are not refreshed:

	newToken, err := jwt.Refresh(token, newSecret, oldSecret, jwt.HS256, jwt.SHA256,
	    jwt.SignOptions{}, jwt.VerifyOptions{}, 0) // 0: one hour from now.

# Error Handling

Token failures are never Go errors: they are reported through VerifyResult.
Errors are reserved for caller misconfiguration and are *ConfigError values:

	_, err := jwt.Sign(payload, secret, jwt.HS256, jwt.SHA256, jwt.SignOptions{
	    ExpiresIn: jwt.Literal("1 week"),
	})
	if errors.Is(err, jwt.ErrTimeFormat) {
	    // malformed duration literal.
	}

Options read from a configuration document with SignOptionsFromMap
or VerifyOptionsFromMap fail with an *OptionError on a value of the wrong type.

# Logging

Diagnostics go through logrus: configuration faults at error level,
rejections and refreshes at debug level. See SetLogger.

# Middleware

The middleware subpackage verifies the tokens of net/http requests,
refreshes expired ones and exports Prometheus metrics.
*/
package jwt
