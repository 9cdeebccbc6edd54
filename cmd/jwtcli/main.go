// Command jwtcli signs, verifies and inspects JSON Web Tokens from the
// command line. It is a thin wrapper over the library, handy for
// debugging tokens during development.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/josekit/jwt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jwtcli",
		Short:         "Sign, verify and inspect JSON Web Tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSignCmd(), newVerifyCmd(), newDecodeCmd())
	return root
}

type keyFlags struct {
	alg     string
	secret  string
	keyFile string
}

func (f *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.alg, "alg", "HS256", "signing algorithm (HS256..HS512, RS256..RS512, PS256..PS512, ES256..ES512, EdDSA, none)")
	cmd.Flags().StringVar(&f.secret, "secret", "", "shared secret for the HMAC family")
	cmd.Flags().StringVar(&f.keyFile, "key", "", "path to a PEM key file (private for sign, public for verify)")
}

func (f *keyFlags) signer() (*jwt.Signer, error) {
	alg, err := resolveAlg(f.alg)
	if err != nil {
		return nil, err
	}

	switch f.alg {
	case "none":
		return jwt.SignerNone(), nil
	case "HS256", "HS384", "HS512":
		if f.secret == "" {
			return nil, fmt.Errorf("--secret is required for %s", f.alg)
		}
		return jwt.NewSigner(alg, []byte(f.secret)), nil
	}

	pemBytes, err := f.readKey()
	if err != nil {
		return nil, err
	}

	key, err := parsePrivateKey(f.alg, pemBytes)
	if err != nil {
		return nil, err
	}

	return jwt.NewSigner(alg, key), nil
}

func (f *keyFlags) verifier() (*jwt.Verifier, error) {
	alg, err := resolveAlg(f.alg)
	if err != nil {
		return nil, err
	}

	switch f.alg {
	case "none":
		return jwt.VerifierNone(), nil
	case "HS256", "HS384", "HS512":
		if f.secret == "" {
			return nil, fmt.Errorf("--secret is required for %s", f.alg)
		}
		return jwt.NewVerifier(alg, []byte(f.secret)), nil
	}

	pemBytes, err := f.readKey()
	if err != nil {
		return nil, err
	}

	key, err := parsePublicKey(f.alg, pemBytes)
	if err != nil {
		return nil, err
	}

	return jwt.NewVerifier(alg, key), nil
}

func (f *keyFlags) readKey() ([]byte, error) {
	if f.keyFile == "" {
		return nil, fmt.Errorf("--key is required for %s", f.alg)
	}

	return os.ReadFile(f.keyFile)
}

func resolveAlg(name string) (jwt.Alg, error) {
	alg, err := jwt.ParseAlg(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported algorithm %q", name)
	}

	return alg, nil
}

func parsePrivateKey(alg string, pemBytes []byte) (jwt.PrivateKey, error) {
	switch alg {
	case "RS256", "RS384", "RS512", "PS256", "PS384", "PS512":
		return jwt.ParsePrivateKeyRSA(pemBytes)
	case "ES256", "ES384", "ES512":
		return jwt.ParsePrivateKeyECDSA(pemBytes)
	case "EdDSA":
		return jwt.ParsePrivateKeyEdDSA(pemBytes)
	}

	return nil, fmt.Errorf("unsupported algorithm %q", alg)
}

func parsePublicKey(alg string, pemBytes []byte) (jwt.PublicKey, error) {
	switch alg {
	case "RS256", "RS384", "RS512", "PS256", "PS384", "PS512":
		return jwt.ParsePublicKeyRSA(pemBytes)
	case "ES256", "ES384", "ES512":
		return jwt.ParsePublicKeyECDSA(pemBytes)
	case "EdDSA":
		return jwt.ParsePublicKeyEdDSA(pemBytes)
	}

	return nil, fmt.Errorf("unsupported algorithm %q", alg)
}

func newSignCmd() *cobra.Command {
	var (
		keys     keyFlags
		claims   string
		maxAge   time.Duration
		issuer   string
		subject  string
		audience []string
		withID   bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a JSON claims document into a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := keys.signer()
			if err != nil {
				return err
			}

			var payload jwt.MapClaims
			if err := json.Unmarshal([]byte(claims), &payload); err != nil {
				return fmt.Errorf("invalid --claims json: %w", err)
			}

			var opts []jwt.SignOption
			if maxAge > 0 {
				opts = append(opts, jwt.MaxAge(maxAge))
			}
			if issuer != "" {
				opts = append(opts, jwt.WithIssuer(issuer))
			}
			if subject != "" {
				opts = append(opts, jwt.WithSubject(subject))
			}
			if len(audience) > 0 {
				opts = append(opts, jwt.WithAudience(audience...))
			}
			if withID {
				opts = append(opts, jwt.WithGeneratedID())
			}

			token, err := jwt.Sign(signer, payload, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(token))
			return nil
		},
	}

	keys.register(cmd)
	cmd.Flags().StringVar(&claims, "claims", "{}", "claims payload as a JSON object")
	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "token lifetime, sets iat and exp")
	cmd.Flags().StringVar(&issuer, "iss", "", "issuer claim")
	cmd.Flags().StringVar(&subject, "sub", "", "subject claim")
	cmd.Flags().StringSliceVar(&audience, "aud", nil, "audience claim, repeatable")
	cmd.Flags().BoolVar(&withID, "jti", false, "stamp a generated uuid as the jti claim")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var (
		keys   keyFlags
		leeway time.Duration
	)

	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify a token's signature and time claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verifier, err := keys.verifier()
			if err != nil {
				return err
			}

			var claims jwt.MapClaims
			decoder := jwt.NewDecoder(verifier, jwt.WithLeeway(leeway))
			if err := decoder.Decode([]byte(args[0]), &claims); err != nil {
				return err
			}

			out, err := json.MarshalIndent(claims, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	keys.register(cmd)
	cmd.Flags().DurationVar(&leeway, "leeway", 0, "clock skew tolerance for time claims")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a token without verifying it (inspection only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := jwt.DecodeUnverified[jwt.MapClaims]([]byte(args[0]))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(map[string]any{
				"header": tok.Header,
				"claims": tok.Claims,
			}, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	return cmd
}
