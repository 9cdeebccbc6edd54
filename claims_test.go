package jwt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNumericDateJSON(t *testing.T) {
	t.Run("whole seconds", func(t *testing.T) {
		b, err := json.Marshal(NewNumericDate(time.Unix(1516239022, 0)))
		require.NoError(t, err)
		require.Equal(t, "1516239022", string(b))
	})

	t.Run("fractional seconds", func(t *testing.T) {
		b, err := json.Marshal(NewNumericDate(time.Unix(1516239022, 500000000)))
		require.NoError(t, err)
		require.Equal(t, "1516239022.5", string(b))
	})

	t.Run("unmarshal integer", func(t *testing.T) {
		var d NumericDate
		require.NoError(t, json.Unmarshal([]byte("1516239022"), &d))
		require.Equal(t, int64(1516239022), d.Unix())
	})

	t.Run("unmarshal fraction", func(t *testing.T) {
		var d NumericDate
		require.NoError(t, json.Unmarshal([]byte("1516239022.25"), &d))
		require.Equal(t, int64(1516239022), d.Unix())
		require.Equal(t, 250*time.Millisecond, time.Duration(d.Nanosecond()))
	})

	t.Run("unmarshal garbage", func(t *testing.T) {
		var d NumericDate
		require.Error(t, json.Unmarshal([]byte(`"not a date"`), &d))
	})

	t.Run("zero time means absent", func(t *testing.T) {
		require.Nil(t, NewNumericDate(time.Time{}))
	})
}

func TestAudienceJSON(t *testing.T) {
	t.Run("single keeps string form", func(t *testing.T) {
		b, err := json.Marshal(Audience{"api"})
		require.NoError(t, err)
		require.Equal(t, `"api"`, string(b))
	})

	t.Run("multiple uses array form", func(t *testing.T) {
		b, err := json.Marshal(Audience{"api", "web"})
		require.NoError(t, err)
		require.Equal(t, `["api","web"]`, string(b))
	})

	t.Run("unmarshal accepts both", func(t *testing.T) {
		var a Audience
		require.NoError(t, json.Unmarshal([]byte(`"api"`), &a))
		require.Equal(t, Audience{"api"}, a)

		require.NoError(t, json.Unmarshal([]byte(`["api","web"]`), &a))
		require.Equal(t, Audience{"api", "web"}, a)
	})
}

func TestRegisteredClaimsOmitEmpty(t *testing.T) {
	b, err := json.Marshal(RegisteredClaims{Subject: "x"})
	require.NoError(t, err)
	require.Equal(t, `{"sub":"x"}`, string(b))
}

func TestMapClaimsAccessors(t *testing.T) {
	m := MapClaims{
		"iss": "issuer",
		"aud": []any{"api", "web"},
		"exp": float64(1516239022),
	}

	require.Equal(t, "issuer", m.GetIssuer())
	require.Equal(t, Audience{"api", "web"}, m.GetAudience())
	require.Equal(t, int64(1516239022), m.GetExpirationTime().Unix())
	require.Nil(t, m.GetNotBefore())

	require.Equal(t, Audience{"single"}, MapClaims{"aud": "single"}.GetAudience())
}

func TestMerge(t *testing.T) {
	t.Run("two objects", func(t *testing.T) {
		b, err := Merge(MapClaims{"sub": "x"}, RegisteredClaims{Issuer: "me"})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		require.Equal(t, "x", got["sub"])
		require.Equal(t, "me", got["iss"])
	})

	t.Run("empty extra is a no-op", func(t *testing.T) {
		b, err := Merge(MapClaims{"sub": "x"}, RegisteredClaims{})
		require.NoError(t, err)
		require.JSONEq(t, `{"sub":"x"}`, string(b))
	})

	t.Run("empty claims yields extra", func(t *testing.T) {
		b, err := Merge(MapClaims{}, RegisteredClaims{Issuer: "me"})
		require.NoError(t, err)
		require.JSONEq(t, `{"iss":"me"}`, string(b))
	})

	t.Run("non-object input", func(t *testing.T) {
		_, err := Merge([]int{1, 2}, RegisteredClaims{Issuer: "me"})
		require.ErrorIs(t, err, ErrClaimsNotObject)
	})
}
