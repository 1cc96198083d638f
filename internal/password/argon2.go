package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	argonPrefix        = "$argon2id$"
	minArgonMemKiB     = 8 * 1024
	minArgonSaltLength = 16
	minArgonKeyLength  = 16
)

// Argon2Params are the argon2id cost parameters used for new digests.
type Argon2Params struct {
	Time       uint32
	MemKiB     uint32
	Par        uint8
	SaltLength uint32
	KeyLength  uint32
}

type argon2Scheme struct {
	params Argon2Params
}

func newArgon2(p Argon2Params) (*argon2Scheme, error) {
	if p.SaltLength == 0 {
		p.SaltLength = minArgonSaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = 32
	}
	switch {
	case p.Time < 1:
		return nil, errors.New("argon2 time must be at least 1")
	case p.MemKiB < minArgonMemKiB:
		return nil, fmt.Errorf("argon2 memory must be at least %d KiB", minArgonMemKiB)
	case p.Par < 1:
		return nil, errors.New("argon2 parallelism must be at least 1")
	case p.SaltLength < minArgonSaltLength:
		return nil, errors.New("argon2 salt too short")
	case p.KeyLength < minArgonKeyLength:
		return nil, errors.New("argon2 key too short")
	}
	return &argon2Scheme{params: p}, nil
}

func (a *argon2Scheme) name() string { return SchemeArgon2id }

func (a *argon2Scheme) matches(digest string) bool {
	return strings.HasPrefix(digest, argonPrefix)
}

func (a *argon2Scheme) hash(plain string) (string, error) {
	salt := make([]byte, a.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(plain), salt, a.params.Time, a.params.MemKiB, a.params.Par, a.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.params.MemKiB,
		a.params.Time,
		a.params.Par,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (a *argon2Scheme) verify(plain, digest string) (bool, error) {
	p, salt, key, err := parseArgon2(digest)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plain), salt, p.Time, p.MemKiB, p.Par, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

// parseArgon2 decodes a PHC formatted argon2id digest.
func parseArgon2(digest string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != SchemeArgon2id {
		return Argon2Params{}, nil, nil, errors.New("invalid argon2id digest")
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, errors.New("unsupported argon2 version")
	}

	var p Argon2Params
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return Argon2Params{}, nil, nil, errors.New("invalid argon2 parameters")
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Argon2Params{}, nil, nil, errors.New("invalid argon2 parameters")
		}
		switch k {
		case "m":
			p.MemKiB = uint32(n)
		case "t":
			p.Time = uint32(n)
		case "p":
			if n > 255 {
				return Argon2Params{}, nil, nil, errors.New("invalid argon2 parallelism")
			}
			p.Par = uint8(n)
		default:
			return Argon2Params{}, nil, nil, fmt.Errorf("unknown argon2 parameter %q", k)
		}
	}
	if p.MemKiB == 0 || p.Time == 0 || p.Par == 0 {
		return Argon2Params{}, nil, nil, errors.New("missing argon2 parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < minArgonSaltLength {
		return Argon2Params{}, nil, nil, errors.New("invalid argon2 salt")
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Argon2Params{}, nil, nil, errors.New("invalid argon2 key")
	}

	return p, salt, key, nil
}
