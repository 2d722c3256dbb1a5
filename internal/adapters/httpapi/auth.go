package httpapi

import (
	"errors"
	"fmt"
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Claims carried by a bearer token. Subject holds the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator signs and verifies HS256 bearer tokens
type Authenticator struct {
	secret []byte
	issuer string
}

func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for the actor valid for ttl
func (a *Authenticator) Issue(actor shared.Actor, ttl time.Duration) (string, error) {
	if !actor.Role.Valid() {
		return "", fmt.Errorf("unknown role %q", actor.Role)
	}
	now := time.Now()
	claims := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Parse verifies the token and returns the actor it identifies
func (a *Authenticator) Parse(tokenString string) (shared.Actor, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return shared.Actor{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return shared.Actor{}, fmt.Errorf("%w: subject is not a user id", ErrUnauthenticated)
	}
	role := shared.Role(claims.Role)
	if !role.Valid() {
		return shared.Actor{}, fmt.Errorf("%w: unknown role %q", ErrUnauthenticated, claims.Role)
	}
	return shared.Actor{ID: id, Role: role}, nil
}
