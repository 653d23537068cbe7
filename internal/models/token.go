package models

import (
	"time"

	"golang.org/x/oauth2"
)

// AuthToken is the credential returned by the token endpoint.
//
// Expiry is an absolute timestamp. A refresh replaces the whole token.
type AuthToken struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	Expiry       time.Time `json:"expiry"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// HasExpiry reports whether the token carries an expiry timestamp.
func (t *AuthToken) HasExpiry() bool {
	return t != nil && !t.Expiry.IsZero()
}

// Clone returns a copy so callers never share the store's instance.
func (t *AuthToken) Clone() *AuthToken {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// OAuth2 converts the token into an [oauth2.Token].
func (t *AuthToken) OAuth2() *oauth2.Token {
	if t == nil {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
	}
}

// AuthHeader returns the Authorization header value, e.g. "Bearer abc".
func (t *AuthToken) AuthHeader() string {
	tok := t.OAuth2()
	if tok == nil || tok.AccessToken == "" {
		return ""
	}
	return tok.Type() + " " + tok.AccessToken
}
