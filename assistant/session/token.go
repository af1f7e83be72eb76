package session

import (
	"time"

	"github.com/Abraxas-365/resumegpt/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "resumegpt"

// TokenService issues and validates HS256 session tokens. The subject is the
// session id.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the session and returns it with its expiry
func (t *TokenService) Issue(id kernel.SessionID) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, ErrRegistry.NewWithCause(CodeTokenFailed, err)
	}
	return signed, expiresAt, nil
}

// Validate returns the session id carried by a valid token
func (t *TokenService) Validate(token string) (kernel.SessionID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrRegistry.NewWithCause(CodeInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken().WithDetail("reason", "missing subject")
	}
	return kernel.NewSessionID(claims.Subject), nil
}
