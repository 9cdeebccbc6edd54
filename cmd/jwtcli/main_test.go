package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/josekit/jwt"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSignAndVerifyCommands(t *testing.T) {
	out, err := runCLI(t,
		"sign",
		"--alg", "HS256",
		"--secret", "cli test secret",
		"--claims", `{"sub":"alice"}`,
		"--max-age", "15m",
		"--iss", "cli",
	)
	require.NoError(t, err)

	token := strings.TrimSpace(out)
	require.Equal(t, 2, strings.Count(token, "."))

	out, err = runCLI(t,
		"verify", token,
		"--alg", "HS256",
		"--secret", "cli test secret",
	)
	require.NoError(t, err)
	require.Contains(t, out, `"sub": "alice"`)
	require.Contains(t, out, `"iss": "cli"`)

	_, err = runCLI(t,
		"verify", token,
		"--alg", "HS256",
		"--secret", "a different secret",
	)
	require.ErrorIs(t, err, jwt.ErrTokenSignature)
}

func TestDecodeCommand(t *testing.T) {
	token, err := jwt.Sign(jwt.SignerHS256([]byte("whatever")), jwt.MapClaims{"sub": "alice"})
	require.NoError(t, err)

	out, err := runCLI(t, "decode", string(token))
	require.NoError(t, err)
	require.Contains(t, out, `"sub": "alice"`)
	require.Contains(t, out, `"alg": "HS256"`)
}

func TestSignRejectsUnknownAlg(t *testing.T) {
	_, err := runCLI(t, "sign", "--alg", "HS128", "--secret", "x", "--claims", "{}")
	require.Error(t, err)
}
