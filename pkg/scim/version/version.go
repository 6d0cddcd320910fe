// Package version implements the Versioning / Conditional-Operation Engine
// (spec.md §2 L4): deterministic content-addressed versions and
// HTTP-compatible weak-ETag token encoding.
package version

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/xraph/scimcore/internal/errs"
)

// tokenBytes is how many leading bytes of the SHA-256 digest are encoded
// into the token (spec.md §4.4: "first 16 bytes base64url"). 16 bytes of a
// cryptographic digest give low enough collision probability for an
// optimistic-concurrency token while keeping the wire form short.
const tokenBytes = 16

// Version is a content-derived fingerprint (spec.md §3). Equality is
// fingerprint equality; Weak distinguishes structural equivalence (the
// core uses this exclusively) from byte equivalence.
type Version struct {
	Token string
	Weak  bool
}

// FromContent computes a Version over bytes using SHA-256, truncated to
// tokenBytes and base64url-encoded (spec.md §4.4). The result is always
// weak: this core never claims byte-identical serialization across format
// upgrades.
func FromContent(content []byte) Version {
	sum := sha256.Sum256(content)
	token := base64.RawURLEncoding.EncodeToString(sum[:tokenBytes])
	return Version{Token: token, Weak: true}
}

// Matches reports token equality plus weak-flag equality (spec.md §4.4).
func (v Version) Matches(other Version) bool {
	return v.Token == other.Token && v.Weak == other.Weak
}

// IsZero reports whether v carries no token at all.
func (v Version) IsZero() bool {
	return v.Token == ""
}

// ToHTTPHeader renders v as an RFC 7232 ETag. Weak versions render with the
// W/ prefix; this core only ever produces weak versions, but the encoding
// supports strong tokens for forward compatibility with a backend that
// chooses to persist a byte-exact form.
func (v Version) ToHTTPHeader() string {
	if v.Weak {
		return `W/"` + v.Token + `"`
	}
	return `"` + v.Token + `"`
}

// ParseHTTPHeader accepts `W/"..."` and bare `"..."` forms (spec.md §4.4).
// The weak flag is set iff the W/ prefix is present.
func ParseHTTPHeader(s string) (Version, error) {
	weak := false
	rest := s

	if strings.HasPrefix(rest, "W/") {
		weak = true
		rest = rest[2:]
	}

	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return Version{}, errs.ParseError(s, nil)
	}

	token := rest[1 : len(rest)-1]
	if token == "" {
		return Version{}, errs.ParseError(s, nil)
	}

	return Version{Token: token, Weak: weak}, nil
}
