package httpapi

import (
	"testing"
	"time"

	"marketplace-bidding-service/internal/domain/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	auth := NewAuthenticator("test-secret", "marketplace-test")
	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleContractor}

	token, err := auth.Issue(actor, time.Hour)
	require.NoError(t, err)

	parsed, err := auth.Parse(token)
	require.NoError(t, err)
	require.Equal(t, actor, parsed)
}

func TestParseRejectsBadTokens(t *testing.T) {
	auth := NewAuthenticator("test-secret", "marketplace-test")
	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleProjectPoster}

	expired, err := auth.Issue(actor, -time.Minute)
	require.NoError(t, err)

	otherSecret, err := NewAuthenticator("other-secret", "marketplace-test").Issue(actor, time.Hour)
	require.NoError(t, err)

	otherIssuer, err := NewAuthenticator("test-secret", "someone-else").Issue(actor, time.Hour)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: string(shared.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-a-uuid",
			Issuer:    "marketplace-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "marketplace-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             string(shared.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString(), Issuer: "marketplace-test"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"expired":      expired,
		"other_secret": otherSecret,
		"other_issuer": otherIssuer,
		"bad_subject":  badSubject,
		"unknown_role": unknownRole,
		"no_expiry":    noExpiry,
		"garbage":      "abc.def.ghi",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Parse(token)
			require.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	_, err := NewAuthenticator("s", "").Issue(shared.Actor{ID: uuid.New(), Role: "guest"}, time.Hour)
	require.Error(t, err)
}
