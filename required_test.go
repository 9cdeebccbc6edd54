package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type strictClaims struct {
	Username string `json:"username,required"`
	Role     string `json:"role,omitempty"`
}

func TestUnmarshalRequired(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		var c strictClaims
		require.NoError(t, Unmarshal([]byte(`{"username":"alice","role":"admin"}`), &c))
		require.Equal(t, "alice", c.Username)
	})

	t.Run("missing", func(t *testing.T) {
		var c strictClaims
		require.ErrorIs(t, Unmarshal([]byte(`{"role":"admin"}`), &c), ErrMissingKey)
	})

	t.Run("present but zero", func(t *testing.T) {
		var c strictClaims
		require.ErrorIs(t, Unmarshal([]byte(`{"username":""}`), &c), ErrMissingKey)
	})

	t.Run("untagged types skip the check", func(t *testing.T) {
		var c struct {
			Username string `json:"username"`
		}
		require.NoError(t, Unmarshal([]byte(`{}`), &c))

		var m MapClaims
		require.NoError(t, Unmarshal([]byte(`{}`), &m))
	})
}

func TestUnmarshalRequiredEmbedded(t *testing.T) {
	type inner struct {
		Tenant string `json:"tenant,required"`
	}
	type outer struct {
		RegisteredClaims
		Inner inner  `json:"inner"`
		Name  string `json:"name"`
	}

	var ok outer
	require.NoError(t, Unmarshal([]byte(`{"sub":"x","inner":{"tenant":"acme"}}`), &ok))

	var missing outer
	require.ErrorIs(t, Unmarshal([]byte(`{"sub":"x","inner":{}}`), &missing), ErrMissingKey)
}

// Mutually recursive destination types must not blow the stack while
// the tag walk looks for required fields.
func TestUnmarshalRequiredRecursiveTypes(t *testing.T) {
	var c replyNode
	require.NoError(t, Unmarshal([]byte(`{"author":"alice"}`), &c))
	require.Equal(t, "alice", c.Author)

	require.ErrorIs(t, Unmarshal([]byte(`{}`), &c), ErrMissingKey)

	// A nested node through the cycle is checked too.
	var threaded replyNode
	err := Unmarshal([]byte(`{"author":"alice","parent":{"root":{}}}`), &threaded)
	require.ErrorIs(t, err, ErrMissingKey)
}

type replyNode struct {
	Author string      `json:"author,required"`
	Parent *replyChain `json:"parent,omitempty"`
}

type replyChain struct {
	Replies []replyNode `json:"replies,omitempty"`
	Root    *replyNode  `json:"root,omitempty"`
}

func TestDecoderHonorsRequiredTags(t *testing.T) {
	token, err := Sign(SignerHS256(testSecret), MapClaims{"role": "admin"})
	require.NoError(t, err)

	var c strictClaims
	err = NewDecoder(VerifierHS256(testSecret)).Decode(token, &c)
	require.ErrorIs(t, err, ErrMissingKey)
}
