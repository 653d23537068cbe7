package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"github.com/zembrodt/showtunes-sub000/internal/storage"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -destination=mock_navigator_test.go -package=auth . Navigator

// Navigator moves the user to another entry point, e.g. [LoginPath] after a session ends.
type Navigator interface {
	Navigate(path string)
}

// PlayerStateSetter receives the Refreshing state while a 401 is being recovered.
type PlayerStateSetter interface {
	SetPlayerState(models.PlayerState)
}

// AuthResult is the outcome of an engine decision about one request.
type AuthResult int

const (
	// Success means nothing had to be done.
	Success AuthResult = iota
	// ReAuthenticated means the token was refreshed and the request should be rebuilt.
	ReAuthenticated
	// Restricted means the account is still valid but the action is not allowed.
	Restricted
	// Failed means the request cannot proceed; the accompanying error says why.
	Failed
)

func (r AuthResult) String() string {
	switch r {
	case Success:
		return "success"
	case ReAuthenticated:
		return "reauthenticated"
	case Restricted:
		return "restricted"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// EngineOpts configures a new [Engine]
type EngineOpts struct {
	Config      Config
	Tokens      *TokenStore
	Storage     storage.SecureStorage
	Navigator   Navigator
	PlayerState PlayerStateSetter // optional
	HTTPClient  *http.Client      // defaults to [http.DefaultClient]
	Logger      *log.Logger
	Now         func() time.Time // defaults to [time.Now]
}

// Engine makes every credential decision for a session.
type Engine struct {
	config      Config
	mode        AuthMode
	tokens      *TokenStore
	storage     storage.SecureStorage
	nav         Navigator
	playerState PlayerStateSetter
	client      *http.Client
	logger      *log.Logger
	now         func() time.Time

	initialized atomic.Bool
	refreshes   singleflight.Group

	// mu guards generation. Logout bumps it so token responses for an ended session are dropped.
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an [Engine]. The credential mode is derived here, once.
func NewEngine(opts EngineOpts) *Engine {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewTokenStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Engine{
		config:      opts.Config,
		mode:        opts.Config.Mode(),
		tokens:      tokens,
		storage:     opts.Storage,
		nav:         opts.Navigator,
		playerState: opts.PlayerState,
		client:      client,
		logger:      shared.WithLogger(logger, "component", "auth"),
		now:         now,
	}
}

// Initialize validates the configuration. An engine that fails here refuses every later operation.
func (e *Engine) Initialize() error {
	if err := e.config.Validate(); err != nil {
		e.logger.Error("failed to initialize auth engine", "error", err)
		e.initialized.Store(false)
		return err
	}

	e.initialized.Store(true)
	e.logger.Debug("auth engine initialized", "mode", e.mode, "redirect_uri", e.config.RedirectURI())
	return nil
}

// Initialized reports whether [Engine.Initialize] succeeded.
func (e *Engine) Initialized() bool {
	return e.initialized.Load()
}

// SetPlayerStateSetter sets the hook notified while a 401 is being recovered.
func (e *Engine) SetPlayerStateSetter(p PlayerStateSetter) {
	e.playerState = p
}

func (e *Engine) Mode() AuthMode      { return e.mode }
func (e *Engine) Config() Config      { return e.config }
func (e *Engine) Tokens() *TokenStore { return e.tokens }

// Authenticated reports whether an access token is held.
func (e *Engine) Authenticated() bool {
	tok := e.tokens.Get()
	return tok != nil && tok.AccessToken != ""
}

// AuthHeader returns the Authorization header for the current token.
func (e *Engine) AuthHeader() (string, bool) {
	header := e.tokens.Get().AuthHeader()
	return header, header != ""
}

func (e *Engine) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:    e.config.ClientID,
		RedirectURL: e.config.RedirectURI(),
		Scopes:      e.config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  e.config.AccountsURL + "/authorize",
			TokenURL: e.config.Endpoint(),
		},
	}
}

// loadOrCreate returns the persisted value of key, generating and saving one when missing.
func (e *Engine) loadOrCreate(key string, generate func() string) (string, error) {
	value, err := e.storage.Get(key)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}

	value = generate()
	if err := e.storage.Set(key, value); err != nil {
		return "", err
	}
	return value, nil
}

// BuildAuthorizeURL returns the Spotify authorize URL for a login attempt.
//
// The state (and in PKCE mode the verifier) is reused when a previous attempt left one in storage,
// so the callback of an interrupted round trip still validates.
func (e *Engine) BuildAuthorizeURL() (string, error) {
	if !e.Initialized() {
		return "", shared.ErrEngineNotInitialized
	}

	state, err := e.loadOrCreate(storage.KeyState, shared.GenerateID)
	if err != nil {
		return "", fmt.Errorf("failed to prepare oauth state: %w", err)
	}

	opts := []oauth2.AuthCodeOption{
		oauth2.SetAuthURLParam("show_dialog", strconv.FormatBool(e.config.ShowDialog)),
	}

	if e.mode == ModePKCE {
		verifier, err := e.loadOrCreate(storage.KeyCodeVerifier, NewCodeVerifier)
		if err != nil {
			return "", fmt.Errorf("failed to prepare code verifier: %w", err)
		}
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	return e.oauthConfig().AuthCodeURL(state, opts...), nil
}

// HandleCallback completes a login attempt from the redirect's query values.
func (e *Engine) HandleCallback(ctx context.Context, state, code, errParam string) error {
	if !e.Initialized() {
		return shared.ErrEngineNotInitialized
	}

	if errParam != "" {
		e.clearLoginAttempt()
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed, errParam)
	}

	expected, err := e.storage.Get(storage.KeyState)
	if err != nil {
		return fmt.Errorf("failed to load oauth state: %w", err)
	}
	if expected == "" || state != expected {
		e.logger.Warn("callback state mismatch")
		return shared.ErrInvalidState
	}

	if code == "" {
		return fmt.Errorf("%w: missing authorization code", shared.ErrAuthFailed)
	}

	if err := e.Exchange(ctx, code); err != nil {
		return err
	}

	e.clearLoginAttempt()
	e.navigate(DashboardPath)
	return nil
}

// Exchange trades an authorization code for a token.
func (e *Engine) Exchange(ctx context.Context, code string) error {
	return e.exchangeOrRefresh(ctx, code, false)
}

// Refresh replaces the current token using its refresh token. Concurrent calls share one request.
//
// The shared request is detached from the caller's cancellation; a caller whose ctx ends stops
// waiting without failing the others.
func (e *Engine) Refresh(ctx context.Context) error {
	tok := e.tokens.Get()
	if tok == nil || tok.RefreshToken == "" {
		return shared.ErrNoRefreshToken
	}

	detached := context.WithoutCancel(ctx)
	ch := e.refreshes.DoChan("refresh", func() (any, error) {
		return nil, e.exchangeOrRefresh(detached, "", true)
	})

	select {
	case res := <-ch:
		if res.Shared {
			e.logger.Debug("joined in-flight token refresh")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) exchangeOrRefresh(ctx context.Context, code string, isRefresh bool) error {
	if !e.Initialized() {
		return shared.ErrEngineNotInitialized
	}

	e.mu.Lock()
	generation := e.generation
	e.mu.Unlock()

	form := url.Values{}
	form.Set("client_id", e.config.ClientID)

	previous := e.tokens.Get()
	if isRefresh {
		if previous == nil || previous.RefreshToken == "" {
			return shared.ErrNoRefreshToken
		}
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", previous.RefreshToken)
	} else {
		form.Set("grant_type", "authorization_code")
		form.Set("code", code)
		form.Set("redirect_uri", e.config.RedirectURI())

		verifier, err := e.storage.Get(storage.KeyCodeVerifier)
		if err != nil {
			return fmt.Errorf("failed to load code verifier: %w", err)
		}
		if verifier != "" {
			form.Set("code_verifier", verifier)
		}
	}

	token, err := e.requestToken(ctx, form)
	if err != nil {
		e.logger.Error("token request failed", "refresh", isRefresh, "mode", e.mode, "error", err)
		return err
	}

	if isRefresh && token.RefreshToken == "" && previous != nil {
		token.RefreshToken = previous.RefreshToken
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.generation != generation {
		e.logger.Debug("discarding token for ended session")
		return fmt.Errorf("%w: logged out during token request", shared.ErrSession)
	}
	e.tokens.Set(token)

	return nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (e *Engine) requestToken(ctx context.Context, form url.Values) (*models.AuthToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.Endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create token request: %v", shared.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if e.mode == ModeSecret {
		req.SetBasicAuth(e.config.ClientID, e.config.ClientSecret)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token response: %v", shared.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: token endpoint returned %d: %s", shared.ErrTransport, resp.StatusCode,
			gjson.GetBytes(body, "error_description").String())
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", shared.ErrTransport, err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access_token", shared.ErrTransport)
	}

	return &models.AuthToken{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		Scope:        tr.Scope,
		RefreshToken: tr.RefreshToken,
		Expiry:       e.expiry(body, tr.ExpiresIn),
	}, nil
}

// expiry prefers a broker's absolute "expiry" (RFC 3339 string or unix milliseconds) over expires_in.
func (e *Engine) expiry(body []byte, expiresIn int64) time.Time {
	if e.mode == ModeThirdParty {
		switch v := gjson.GetBytes(body, "expiry"); v.Type {
		case gjson.Number:
			return time.UnixMilli(v.Int())
		case gjson.String:
			if t, err := time.Parse(time.RFC3339, v.Str); err == nil {
				return t
			}
			e.logger.Warn("unparseable token expiry, using expires_in", "expiry", v.Str)
		}
	}

	return e.now().Add(time.Duration(expiresIn) * time.Second)
}

// CheckExpiryThreshold refreshes the token when it expires within the configured threshold.
func (e *Engine) CheckExpiryThreshold(ctx context.Context) (AuthResult, error) {
	tok := e.tokens.Get()
	if tok == nil {
		return Success, nil
	}
	if !tok.HasExpiry() {
		return Failed, shared.ErrMissingExpiry
	}

	if tok.Expiry.Sub(e.now()) > e.config.ExpiryThreshold {
		return Success, nil
	}

	e.logger.Debug("token within expiry threshold, refreshing", "expiry", tok.Expiry)
	if err := e.Refresh(ctx); err != nil {
		return Failed, fmt.Errorf("%w: %w", shared.ErrTokenExpired, err)
	}
	return ReAuthenticated, nil
}

// ClassifyError decides what a failed API response means for the session.
//
//	401: refresh and retry, or end the session when the refresh fails
//	403: restricted if the account still answers /me, otherwise end the session
//	429 and anything else: end the session
//
// A 401 without a refresh token fails without ending the session.
func (e *Engine) ClassifyError(ctx context.Context, status int) (AuthResult, error) {
	switch status {
	case http.StatusUnauthorized:
		if e.playerState != nil {
			e.playerState.SetPlayerState(models.Refreshing)
		}

		if tok := e.tokens.Get(); tok == nil || tok.RefreshToken == "" {
			e.logger.Warn("unauthorized and no refresh token", "status", status)
			return Failed, fmt.Errorf("%w: %w", shared.ErrTokenExpired, shared.ErrNoRefreshToken)
		}

		if err := e.Refresh(ctx); err != nil {
			switch {
			case errors.Is(err, shared.ErrSession):
				// Logout already happened while the refresh was in flight.
				return Failed, err
			case ctx.Err() != nil:
				return Failed, fmt.Errorf("%w: %w", shared.ErrTokenExpired, err)
			}
			e.logger.Error("refresh after 401 failed", "error", err)
			e.Logout()
			return Failed, fmt.Errorf("%w: %w: %w", shared.ErrSession, shared.ErrRefreshFailed, err)
		}
		return ReAuthenticated, nil

	case http.StatusForbidden:
		if e.probe(ctx) {
			e.logger.Info("action restricted for this account", "status", status)
			return Restricted, nil
		}
		e.logger.Error("forbidden and auth probe failed", "status", status)
		e.Logout()
		return Failed, fmt.Errorf("%w: forbidden", shared.ErrSession)

	case http.StatusTooManyRequests:
		e.logger.Error("rate limited by api", "status", status)
		e.Logout()
		return Failed, shared.ErrRateLimited

	default:
		e.logger.Error("unexpected api status", "status", status)
		e.Logout()
		return Failed, fmt.Errorf("%w: %d", shared.ErrUnexpectedStatus, status)
	}
}

// probe checks whether the current token still authenticates against /me.
func (e *Engine) probe(ctx context.Context) bool {
	header, ok := e.AuthHeader()
	if !ok {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.config.APIURL+"/me", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", header)

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("auth probe failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// Logout ends the session and sends the user to the login path. Calling it again is harmless.
func (e *Engine) Logout() {
	e.mu.Lock()
	e.generation++
	e.tokens.Clear()
	e.mu.Unlock()

	e.clearLoginAttempt()
	e.logger.Info("logged out")
	e.navigate(LoginPath)
}

func (e *Engine) clearLoginAttempt() {
	for _, key := range []string{storage.KeyState, storage.KeyCodeVerifier} {
		if err := e.storage.Remove(key); err != nil {
			e.logger.Warn("failed to clear login value", "key", key, "error", err)
		}
	}
}

func (e *Engine) navigate(path string) {
	if e.nav != nil {
		e.nav.Navigate(path)
	}
}
