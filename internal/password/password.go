// Package password hashes and verifies user passwords. Digests are
// self-describing strings, so verification picks the scheme from the
// digest itself and only the accepted schemes are ever trusted.
package password

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Scheme names.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

// Config selects accepted schemes and their parameters.
type Config struct {
	Schemes       []string
	DefaultScheme string
	BcryptCost    int
	Argon2        Argon2Params
}

type scheme interface {
	name() string
	hash(plain string) (string, error)
	verify(plain, digest string) (bool, error)
	matches(digest string) bool
}

// Hasher hashes new passwords with the default scheme and verifies
// digests produced by any accepted scheme.
type Hasher struct {
	schemes []scheme
	def     scheme
}

// NewHasher builds a Hasher. An empty scheme list or a default scheme
// outside the list is a configuration error.
func NewHasher(cfg Config) (*Hasher, error) {
	if len(cfg.Schemes) == 0 {
		return nil, errors.New("no password schemes configured")
	}
	if !slices.Contains(cfg.Schemes, cfg.DefaultScheme) {
		return nil, fmt.Errorf("default scheme %q is not accepted", cfg.DefaultScheme)
	}

	h := &Hasher{}
	for _, name := range cfg.Schemes {
		var s scheme
		switch name {
		case SchemeBcrypt:
			b, err := newBcrypt(cfg.BcryptCost)
			if err != nil {
				return nil, err
			}
			s = b
		case SchemeArgon2id:
			a, err := newArgon2(cfg.Argon2)
			if err != nil {
				return nil, err
			}
			s = a
		default:
			return nil, fmt.Errorf("unsupported password scheme %q", name)
		}
		h.schemes = append(h.schemes, s)
		if name == cfg.DefaultScheme {
			h.def = s
		}
	}

	return h, nil
}

// Hash returns a salted digest of plain in the default scheme.
func (h *Hasher) Hash(plain string) (string, error) {
	digest, err := h.def.hash(plain)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return digest, nil
}

// Verify reports whether plain matches digest. Unknown, non-accepted or
// malformed digests never match.
func (h *Hasher) Verify(plain, digest string) bool {
	s := h.schemeFor(digest)
	if s == nil {
		return false
	}
	ok, err := s.verify(plain, digest)
	if err != nil {
		return false
	}
	return ok
}

// NeedsRehash reports whether digest was produced by a scheme other than the default.
func (h *Hasher) NeedsRehash(digest string) bool {
	s := h.schemeFor(digest)
	return s == nil || s.name() != h.def.name()
}

func (h *Hasher) schemeFor(digest string) scheme {
	if !strings.HasPrefix(digest, "$") {
		return nil
	}
	for _, s := range h.schemes {
		if s.matches(digest) {
			return s
		}
	}
	return nil
}
