package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"github.com/zembrodt/showtunes-sub000/internal/auth"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

// Authenticator is the part of [auth.Engine] the gateway relies on.
type Authenticator interface {
	AuthHeader() (string, bool)
	CheckExpiryThreshold(ctx context.Context) (auth.AuthResult, error)
	ClassifyError(ctx context.Context, status int) (auth.AuthResult, error)
}

// APIError is a non-2xx API response that was not recovered.
type APIError struct {
	StatusCode int
	Message    string // error.message from the response body, when present
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("spotify api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("spotify api error: status %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(resp *http.Response, err error) *APIError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	if err == nil {
		err = shared.ErrAPIRequest
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    gjson.GetBytes(body, "error.message").String(),
		Err:        err,
	}
}

// GatewayOpts configures a new [Gateway]
type GatewayOpts struct {
	APIURL    string
	Auth      Authenticator
	Base      http.RoundTripper // defaults to [http.DefaultTransport]
	RateLimit float64           // requests per second, 0 disables throttling
	Logger    *log.Logger
}

// Gateway is the [http.RoundTripper] every API call goes through.
//
// For requests to the API host it attaches the auth header, refreshes a token that is about to expire,
// and on an error status lets the [Authenticator] decide: retry once after re-authentication, resolve a
// restriction as 204 No Content, or fail with an [*APIError]. Other hosts pass through untouched.
type Gateway struct {
	base    http.RoundTripper
	auth    Authenticator
	apiHost string
	limiter *rate.Limiter
	logger  *log.Logger
}

func NewGateway(opts GatewayOpts) (*Gateway, error) {
	u, err := url.Parse(opts.APIURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: api url %q", shared.ErrInvalidConfig, opts.APIURL)
	}

	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Gateway{
		base:    base,
		auth:    opts.Auth,
		apiHost: u.Host,
		limiter: rate.NewLimiter(limit, 1),
		logger:  shared.WithLogger(logger, "component", "gateway"),
	}, nil
}

// Client returns an [http.Client] using the gateway as its transport.
func (g *Gateway) Client() *http.Client {
	return &http.Client{Transport: g}
}

func (g *Gateway) requiresAuth(req *http.Request) bool {
	return req.URL.Host == g.apiHost
}

// RoundTrip implements [http.RoundTripper].
func (g *Gateway) RoundTrip(req *http.Request) (*http.Response, error) {
	if !g.requiresAuth(req) {
		return g.base.RoundTrip(req)
	}

	ctx := req.Context()

	header, ok := g.auth.AuthHeader()
	if !ok {
		return nil, shared.ErrNotAuthenticated
	}

	result, err := g.auth.CheckExpiryThreshold(ctx)
	if err != nil {
		return nil, err
	}
	if result == auth.ReAuthenticated {
		if header, ok = g.auth.AuthHeader(); !ok {
			return nil, shared.ErrNotAuthenticated
		}
	}

	resp, err := g.send(req, header, false)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}

	result, err = g.auth.ClassifyError(ctx, resp.StatusCode)
	switch result {
	case auth.ReAuthenticated:
		drain(resp)
		return g.retry(req)
	case auth.Restricted:
		g.logger.Debug("restricted action resolved as no-op", "method", req.Method, "path", req.URL.Path)
		drain(resp)
		return noContent(req), nil
	default:
		return nil, newAPIError(resp, err)
	}
}

// retry issues req a second time with the refreshed header. Its outcome is final.
func (g *Gateway) retry(req *http.Request) (*http.Response, error) {
	header, ok := g.auth.AuthHeader()
	if !ok {
		return nil, shared.ErrNotAuthenticated
	}

	g.logger.Debug("retrying after re-authentication", "method", req.Method, "path", req.URL.Path)

	resp, err := g.send(req, header, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newAPIError(resp, fmt.Errorf("%w: failed after re-authentication", shared.ErrAPIRequest))
	}
	return resp, nil
}

// send clones req with the given auth header. A replay rebuilds the body through GetBody.
func (g *Gateway) send(req *http.Request, header string, replay bool) (*http.Response, error) {
	if err := g.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	out := req.Clone(req.Context())
	if replay && req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil, fmt.Errorf("%w: request body cannot be replayed", shared.ErrAPIRequest)
		}
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}
	out.Header.Set("Authorization", header)

	resp, err := g.base.RoundTrip(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrTransport, err)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}

func noContent(req *http.Request) *http.Response {
	return &http.Response{
		Status:     "204 No Content",
		StatusCode: http.StatusNoContent,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Body:       http.NoBody,
		Request:    req,
	}
}
