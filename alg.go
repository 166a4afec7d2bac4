package jwt

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // still a valid HMAC digest choice
	"golang.org/x/crypto/sha3"
)

// Hash represents the digest function of a keyed-hash (HMAC) signature.
//
// The header "alg" value and the Hash used to compute the signature are
// chosen independently by the caller: the engine never derives one from
// the other. Verify must be called with the Hash that signed the token.
//
// Built-in values are named after the digest identifiers of common
// crypto libraries ("sha256", "sha3-512", "blake2b512", ...), see ParseHash.
type Hash interface {
	// Name returns the digest identifier, e.g. "sha256".
	Name() string
	// New returns a fresh digest state for the HMAC construction.
	New() hash.Hash
}

type hashAlg struct {
	name string
	new  func() hash.Hash
}

func (h *hashAlg) Name() string   { return h.name }
func (h *hashAlg) New() hash.Hash { return h.new() }

// String returns the digest identifier.
func (h *hashAlg) String() string { return h.name }

var (
	MD5        Hash = &hashAlg{"md5", md5.New}
	SHA1       Hash = &hashAlg{"sha1", sha1.New}
	SHA224     Hash = &hashAlg{"sha224", sha256.New224}
	SHA256     Hash = &hashAlg{"sha256", sha256.New}
	SHA384     Hash = &hashAlg{"sha384", sha512.New384}
	SHA512     Hash = &hashAlg{"sha512", sha512.New}
	SHA512_224 Hash = &hashAlg{"sha512-224", sha512.New512_224}
	SHA512_256 Hash = &hashAlg{"sha512-256", sha512.New512_256}
	SHA3_224   Hash = &hashAlg{"sha3-224", sha3.New224}
	SHA3_256   Hash = &hashAlg{"sha3-256", sha3.New256}
	SHA3_384   Hash = &hashAlg{"sha3-384", sha3.New384}
	SHA3_512   Hash = &hashAlg{"sha3-512", sha3.New512}
	RIPEMD160  Hash = &hashAlg{"ripemd160", ripemd160.New}
	BLAKE2b512 Hash = &hashAlg{"blake2b512", func() hash.Hash {
		h, _ := blake2b.New512(nil) // unkeyed, cannot fail.
		return h
	}}
	BLAKE2s256 Hash = &hashAlg{"blake2s256", func() hash.Hash {
		h, _ := blake2s.New256(nil) // unkeyed, cannot fail.
		return h
	}}
)

var allHashes = []Hash{
	MD5, SHA1, SHA224, SHA256, SHA384, SHA512, SHA512_224, SHA512_256,
	SHA3_224, SHA3_256, SHA3_384, SHA3_512, RIPEMD160, BLAKE2b512, BLAKE2s256,
}

var hashAliases = map[string]string{
	"sha-1":   "sha1",
	"sha-224": "sha224",
	"sha-256": "sha256",
	"sha-384": "sha384",
	"sha-512": "sha512",
	"rmd160":  "ripemd160",
}

// Hashes returns the names of the built-in digests.
func Hashes() []string {
	names := make([]string, 0, len(allHashes))
	for _, h := range allHashes {
		names = append(names, h.Name())
	}
	return names
}

// ParseHash returns the built-in Hash of "name" (case-insensitive).
// It fails with a *ConfigError matching ErrUnknownHash.
func ParseHash(name string) (Hash, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if alias, ok := hashAliases[name]; ok {
		name = alias
	}

	for _, h := range allHashes {
		if h.Name() == name {
			return h, nil
		}
	}

	return nil, newConfigError(KindUnknownHash, fmt.Errorf("%q", name))
}

// Header "alg" values registered by RFC 7518.
// Only the name is used by this package: the signature is always an HMAC
// computed with the Hash given to Sign and Verify.
const (
	HS256 = "HS256"
	HS384 = "HS384"
	HS512 = "HS512"
	RS256 = "RS256"
	RS384 = "RS384"
	RS512 = "RS512"
	PS256 = "PS256"
	PS384 = "PS384"
	PS512 = "PS512"
	ES256 = "ES256"
	ES384 = "ES384"
	ES512 = "ES512"
	NONE  = "none"
)

var knownAlgorithms = map[string]struct{}{
	HS256: {}, HS384: {}, HS512: {},
	RS256: {}, RS384: {}, RS512: {},
	PS256: {}, PS384: {}, PS512: {},
	ES256: {}, ES384: {}, ES512: {},
	NONE: {},
}

// KnownAlgorithm reports whether "name" is a registered header "alg" value.
func KnownAlgorithm(name string) bool {
	_, ok := knownAlgorithms[name]
	return ok
}
