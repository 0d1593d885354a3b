package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/imclatam/imc-backend/internal/domain"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies the HS256 bearer tokens used by the API.
// The payload is always {sub: user id, email}; the TTL is a process-wide
// policy set at construction.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

func (i *Issuer) Sign(userID int64, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify decodes and validates a bearer token string, returning the
// identity it carries. Any failure (bad signature, wrong method, expiry,
// malformed subject) comes back as ErrInvalidToken.
func (i *Issuer) Verify(tokenStr string) (domain.AuthUser, error) {
	var claims Claims
	t, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !t.Valid {
		return domain.AuthUser{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return domain.AuthUser{}, ErrInvalidToken
	}

	return domain.AuthUser{ID: userID, Email: claims.Email}, nil
}
