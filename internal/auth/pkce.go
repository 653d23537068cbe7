package auth

import "golang.org/x/oauth2"

// NewCodeVerifier returns a fresh 43 character PKCE verifier (RFC 7636 4.1).
func NewCodeVerifier() string {
	return oauth2.GenerateVerifier()
}

// CodeChallenge computes the S256 challenge: BASE64URL(SHA256(verifier)), unpadded.
func CodeChallenge(verifier string) string {
	return oauth2.S256ChallengeFromVerifier(verifier)
}
