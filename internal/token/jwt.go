package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/contacts-server/internal/model"
)

// Claims represents JWT claims with subject email and token purpose.
type Claims struct {
	jwt.RegisteredClaims
	TokenType model.TokenPurpose `json:"type,omitempty"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	now        func() time.Time
}

// NewJWT creates a new JWT token manager. The algorithm must be one of
// HS256, HS384 or HS512 and the secret must not be empty.
func NewJWT(secretKey, algorithm string, defaultTTL time.Duration) (*JWT, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("invalid default token ttl %s", defaultTTL)
	}

	var method *jwt.SigningMethodHMAC
	switch strings.ToUpper(algorithm) {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &JWT{
		secretKey:  []byte(secretKey),
		method:     method,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// Issue creates a signed token for subject. A non-positive ttl uses the default.
func (j *JWT) Issue(subject string, purpose model.TokenPurpose, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is empty")
	}
	if ttl <= 0 {
		ttl = j.defaultTTL
	}

	now := j.now()
	token := jwt.NewWithClaims(j.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: purpose,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", purpose, err)
	}

	return tokenString, nil
}

// Validate verifies signature and expiry and returns the token's claims.
// It does not check the purpose; callers that expect one must compare it.
func (j *JWT) Validate(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
		}
		return model.TokenClaims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, model.ErrInvalidToken
	}
	if claims.Subject == "" {
		return model.TokenClaims{}, fmt.Errorf("%w: missing subject", model.ErrInvalidToken)
	}

	return model.TokenClaims{
		Subject:   claims.Subject,
		Purpose:   claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
