package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSignOptions(t *testing.T) {
	now := time.Unix(1700000000, 0)
	freezeClock(t, now)

	c := BuildClaims([]SignOption{
		MaxAge(15 * time.Minute),
		WithIssuer("auth-svc"),
		WithSubject("alice"),
		WithAudience("api", "web"),
		WithNotBefore(now),
		WithJWTID("token-1"),
	})

	require.Equal(t, "auth-svc", c.Issuer)
	require.Equal(t, "alice", c.Subject)
	require.Equal(t, Audience{"api", "web"}, c.Audience)
	require.Equal(t, now.Unix(), c.IssuedAt.Unix())
	require.Equal(t, now.Add(15*time.Minute).Unix(), c.ExpiresAt.Unix())
	require.Equal(t, now.Unix(), c.NotBefore.Unix())
	require.Equal(t, "token-1", c.ID)
}

func TestMaxAgeIgnoresTinyDurations(t *testing.T) {
	c := BuildClaims([]SignOption{MaxAge(time.Second)})
	require.Nil(t, c.ExpiresAt)
	require.Nil(t, c.IssuedAt)
}

func TestWithGeneratedID(t *testing.T) {
	a := BuildClaims([]SignOption{WithGeneratedID()})
	b := BuildClaims([]SignOption{WithGeneratedID()})

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
}

func TestSignOptionsMergeIntoPayload(t *testing.T) {
	now := time.Unix(1700000000, 0)
	freezeClock(t, now)

	token, err := Sign(SignerHS256(testSecret), MapClaims{"scope": "read"},
		MaxAge(time.Hour), WithIssuer("auth-svc"))
	require.NoError(t, err)

	got, err := Decode[MapClaims](VerifierHS256(testSecret), token)
	require.NoError(t, err)
	require.Equal(t, "read", got.Claims["scope"])
	require.Equal(t, "auth-svc", got.Claims["iss"])
	require.Equal(t, float64(now.Add(time.Hour).Unix()), got.Claims["exp"])
}
