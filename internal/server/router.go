package server

import (
	"net/http"
	"strings"
)

// BasicRouter implements [Router] on top of [http.ServeMux] method patterns.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

func NewBasicRouter() *BasicRouter {
	return &BasicRouter{mux: http.NewServeMux()}
}

// Use appends middleware. The first one added is the outermost.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method and path. Other methods on the same path get 405.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Handle(strings.ToUpper(method)+" "+path, r.Apply(handler))
}

// Handler registers every route of handler for GET.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(http.MethodGet+" "+route, wrapped)
	}
}

func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler with the registered middleware.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}
