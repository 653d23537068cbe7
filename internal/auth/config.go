package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

// AuthMode is the credential flow used against the token endpoint.
type AuthMode int

const (
	ModePKCE AuthMode = iota
	ModeSecret
	ModeThirdParty
)

func (m AuthMode) String() string {
	switch m {
	case ModePKCE:
		return "pkce"
	case ModeSecret:
		return "secret"
	case ModeThirdParty:
		return "third-party"
	default:
		return ""
	}
}

const (
	CallbackPath  = "/callback"
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Config holds the client credentials and endpoints. It is not modified after construction.
type Config struct {
	ClientID        string
	ClientSecret    string
	TokenURL        string
	Scopes          []string
	ForcePKCE       bool
	ShowDialog      bool
	ExpiryThreshold time.Duration
	Domain          string
	APIURL          string
	AccountsURL     string
}

// NewConfig converts the loaded application config.
func NewConfig(c shared.SpotifyConfig) Config {
	return Config{
		ClientID:        c.ClientID,
		ClientSecret:    c.ClientSecret,
		TokenURL:        c.TokenURL,
		Scopes:          append([]string(nil), c.Scopes...),
		ForcePKCE:       c.ForcePKCE,
		ShowDialog:      c.ShowDialog,
		ExpiryThreshold: c.ExpiryThreshold(),
		Domain:          strings.TrimRight(c.Domain, "/"),
		APIURL:          strings.TrimRight(c.APIURL, "/"),
		AccountsURL:     strings.TrimRight(c.AccountsURL, "/"),
	}
}

// Mode derives the credential flow.
//
// PKCE wins when forced or when neither a token URL nor a client secret is configured.
// A token URL selects the broker, otherwise the secret is used.
func (c Config) Mode() AuthMode {
	switch {
	case c.ForcePKCE || (c.TokenURL == "" && c.ClientSecret == ""):
		return ModePKCE
	case c.TokenURL != "":
		return ModeThirdParty
	default:
		return ModeSecret
	}
}

// RedirectURI is the callback registered with Spotify.
func (c Config) RedirectURI() string {
	return c.Domain + CallbackPath
}

// Endpoint returns the token endpoint for the configured mode.
func (c Config) Endpoint() string {
	if c.Mode() == ModeThirdParty {
		return c.TokenURL
	}
	return c.AccountsURL + "/api/token"
}

// Validate reports the first missing required value.
func (c Config) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("%w: client id is required", shared.ErrInvalidConfig)
	case c.APIURL == "":
		return fmt.Errorf("%w: api url is required", shared.ErrInvalidConfig)
	case c.AccountsURL == "":
		return fmt.Errorf("%w: accounts url is required", shared.ErrInvalidConfig)
	case c.Domain == "":
		return fmt.Errorf("%w: domain is required", shared.ErrInvalidConfig)
	}
	return nil
}
