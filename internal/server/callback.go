package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/zembrodt/showtunes-sub000/internal/auth"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

// CallbackExchanger completes a login from the query parameters of the OAuth redirect.
type CallbackExchanger interface {
	HandleCallback(ctx context.Context, state, code, errParam string) error
}

// CallbackHandler serves the OAuth redirect URI and reports the outcome of the login exactly once.
type CallbackHandler struct {
	exchanger   CallbackExchanger
	results     chan error
	once        sync.Once
	mu          sync.Mutex
	callbackHit bool
}

func NewCallbackHandler(exchanger CallbackExchanger) *CallbackHandler {
	return &CallbackHandler{
		exchanger: exchanger,
		results:   make(chan error, 1),
	}
}

// Routes implements [Handler].
func (h *CallbackHandler) Routes() []string {
	return []string{auth.CallbackPath}
}

// ServeHTTP hands state, code and error to the exchanger. Only the first request is processed.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	q := r.URL.Query()
	err := h.exchanger.HandleCallback(r.Context(), q.Get("state"), q.Get("code"), q.Get("error"))
	h.send(err)

	switch {
	case err == nil:
	case errors.Is(err, shared.ErrInvalidState), errors.Is(err, shared.ErrAuthFailed):
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	default:
		http.Error(w, "Token exchange failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

func (h *CallbackHandler) send(err error) {
	h.once.Do(func() {
		h.results <- err
		close(h.results)
	})
}

// Result receives the login outcome, nil on success, and is then closed.
func (h *CallbackHandler) Result() <-chan error {
	return h.results
}

const successPage = `<!DOCTYPE html>
<html>
<head>
    <title>Logged in to Spotify</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #191414; }
        .container { text-align: center; background: #282828; padding: 2rem; border-radius: 8px; }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #b3b3b3; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Logged in</h1>
        <p>You can close this window and return to showtunes.</p>
    </div>
</body>
</html>
`
