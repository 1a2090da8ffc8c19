package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/doctor-portal/internal/domain"
)

// SessionCodec turns a session claim set into an opaque cookie value and back.
type SessionCodec interface {
	Encode(session domain.Session) (string, time.Time, error)
	// Decode returns nil for any token that is not a valid, unexpired session.
	Decode(token string) *domain.Session
}

// JWTCodec signs sessions as HS256 JWTs.
type JWTCodec struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTCodec builds a codec. A non-positive ttl falls back to 24 hours.
func NewJWTCodec(secret, issuer string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTCodec{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// TTL returns the lifetime attached to issued sessions.
func (c *JWTCodec) TTL() time.Duration {
	return c.ttl
}

type sessionClaims struct {
	domain.Session
	jwt.RegisteredClaims
}

// Encode signs the session with an expiry of now+ttl.
func (c *JWTCodec) Encode(session domain.Session) (string, time.Time, error) {
	if !session.Role.Valid() {
		return "", time.Time{}, errors.New("session role is invalid")
	}
	now := c.now()
	expiresAt := now.Add(c.ttl)
	claims := &sessionClaims{
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode validates signature, algorithm, issuer and expiry.
func (c *JWTCodec) Decode(tokenStr string) *domain.Session {
	if tokenStr == "" {
		return nil
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !claims.Session.Consistent() {
		return nil
	}
	session := claims.Session
	return &session
}
