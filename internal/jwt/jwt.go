package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMissingSubject   = errors.New("token has no subject")
)

// fallbackTTL applies when a caller asks for a token without a positive TTL.
// The authentication flow always passes the configured lifetime explicitly.
const fallbackTTL = 15 * time.Minute

// Claims is the payload carried by an access token
type Claims struct {
	jwt.RegisteredClaims
}

// JWTService issues and validates HMAC-signed access tokens
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a new JWT service. ttl is the default token lifetime
// used by IssueToken.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// IssueToken generates a token for subject using the service's configured TTL.
func (s *JWTService) IssueToken(subject string) (string, error) {
	return s.GenerateToken(subject, s.ttl)
}

// GenerateToken builds and signs a token whose subject claim is subject and
// which expires ttl from now. A non-positive ttl falls back to 15 minutes.
func (s *JWTService) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = fallbackTTL
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies the signature and expiry of tokenString and returns
// its claims. The signing method is pinned to HS256; tokens signed any other
// way are rejected before the key is consulted.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrInvalidSignature):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	// Re-check expiry explicitly; a missing exp claim passes the library's
	// validation but must not pass ours.
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// DecodeUnverified parses the claims of tokenString without checking the
// signature or expiry. Diagnostic use only; never authorize with its result.
func (s *JWTService) DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}
