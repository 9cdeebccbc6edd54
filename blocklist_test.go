package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBlocklist(t *testing.T) {
	now := time.Unix(1700000000, 0)
	freezeClock(t, now)

	b := NewBlocklist(0)
	token := []byte("h.p.s")

	require.False(t, b.Has(token))
	require.Zero(t, b.Count())

	b.InvalidateToken(token, RegisteredClaims{ExpiresAt: NewNumericDate(now.Add(time.Hour))})
	require.True(t, b.Has(token))
	require.Equal(t, 1, b.Count())

	b.Del(token)
	require.False(t, b.Has(token))
	require.Zero(t, b.Count())
}

func TestBlocklistGC(t *testing.T) {
	now := time.Unix(1700000000, 0)
	freezeClock(t, now)

	b := NewBlocklist(0)
	b.InvalidateToken([]byte("expired.soon"), RegisteredClaims{ExpiresAt: NewNumericDate(now.Add(time.Minute))})
	b.InvalidateToken([]byte("expires.later"), RegisteredClaims{ExpiresAt: NewNumericDate(now.Add(time.Hour))})

	freezeClock(t, now.Add(10*time.Minute))
	require.Equal(t, 1, b.GC())
	require.False(t, b.Has([]byte("expired.soon")))
	require.True(t, b.Has([]byte("expires.later")))
}

func TestBlocklistNoExpiry(t *testing.T) {
	freezeClock(t, time.Unix(1700000000, 0))

	// Tokens without exp still get a bounded entry.
	b := NewBlocklist(0)
	b.InvalidateToken([]byte("h.p.s"), RegisteredClaims{})
	require.True(t, b.Has([]byte("h.p.s")))

	freezeClock(t, time.Unix(1700000000, 0).Add(2*time.Hour))
	require.Equal(t, 1, b.GC())
	require.False(t, b.Has([]byte("h.p.s")))
}

func TestBlocklistIgnoresEmptyToken(t *testing.T) {
	b := NewBlocklist(0)
	b.InvalidateToken(nil, RegisteredClaims{})
	require.Zero(t, b.Count())
	require.False(t, b.Has(nil))
}
