package jwt

// OpenIDClaims is an OpenID Connect Core 1.0 ID-token payload: the
// registered claims plus the standard OIDC additions. Unused fields
// stay out of the JSON.
type OpenIDClaims struct {
	RegisteredClaims

	// AuthorizedParty is the party the token was issued to ("azp").
	AuthorizedParty string `json:"azp,omitempty"`
	// Nonce binds the token to the client session that requested it.
	Nonce string `json:"nonce,omitempty"`
	// AuthTime is when the end user authenticated ("auth_time").
	AuthTime *NumericDate `json:"auth_time,omitempty"`
	// ACR and AMR describe how the end user authenticated.
	ACR string   `json:"acr,omitempty"`
	AMR []string `json:"amr,omitempty"`
	// AccessTokenHash and CodeHash bind the ID token to its sibling
	// access token and authorization code.
	AccessTokenHash string `json:"at_hash,omitempty"`
	CodeHash        string `json:"c_hash,omitempty"`

	// Standard profile scope claims.
	Name              string       `json:"name,omitempty"`
	GivenName         string       `json:"given_name,omitempty"`
	FamilyName        string       `json:"family_name,omitempty"`
	MiddleName        string       `json:"middle_name,omitempty"`
	Nickname          string       `json:"nickname,omitempty"`
	PreferredUsername string       `json:"preferred_username,omitempty"`
	Profile           string       `json:"profile,omitempty"`
	Picture           string       `json:"picture,omitempty"`
	Website           string       `json:"website,omitempty"`
	Email             string       `json:"email,omitempty"`
	EmailVerified     bool         `json:"email_verified,omitempty"`
	Gender            string       `json:"gender,omitempty"`
	Birthdate         string       `json:"birthdate,omitempty"`
	Zoneinfo          string       `json:"zoneinfo,omitempty"`
	Locale            string       `json:"locale,omitempty"`
	PhoneNumber       string       `json:"phone_number,omitempty"`
	PhoneVerified     bool         `json:"phone_number_verified,omitempty"`
	UpdatedAt         *NumericDate `json:"updated_at,omitempty"`
}

// MicroProfileClaims is an Eclipse MicroProfile JWT payload: the
// registered claims plus the caller principal and its groups.
type MicroProfileClaims struct {
	RegisteredClaims

	// UserPrincipalName is the caller principal ("upn"); "sub" is the
	// fallback when absent.
	UserPrincipalName string `json:"upn,omitempty"`
	// Groups carries the caller's role/group memberships.
	Groups []string `json:"groups,omitempty"`
}
