// Package server runs the local HTTP endpoint that receives the OAuth redirect during login.
//
// [BasicRouter] maps method patterns onto an [http.ServeMux] and wraps every handler in the registered
// [Middleware], outermost first. [RequestLogger] and [Recover] are the middleware used by the CLI.
//
// [CallbackHandler] serves the redirect URI. It passes state, code and error straight to the auth engine,
// which validates state and exchanges the code, and publishes the outcome once on [CallbackHandler.Result].
// Later requests are rejected so an authorization code cannot be replayed.
//
// [Server] binds before returning from Start, so the browser is only opened once the callback can be received.
package server
