// Package services talks to the Spotify Web API.
//
// # Gateway
//
// [Gateway] is an [http.RoundTripper] decorator and the only path to the API host. Every request:
//
//  1. passes through unchanged unless it targets the API host (the token endpoint never does)
//  2. fails with [shared.ErrNotAuthenticated] when there is no token, before any network call
//  3. refreshes a token inside the expiry threshold and uses the new header
//  4. waits on the client-side rate limiter, then is sent
//  5. on an error status asks the [Authenticator] what it means:
//     re-authenticated requests are retried exactly once, restricted actions resolve as 204 No Content
//     and everything else becomes an [*APIError]
//
// Transport failures wrap [shared.ErrTransport] and are never retried.
//
// # Spotify client
//
// [SpotifyService] implements [PlayerService] over any [http.Client], normally [Gateway.Client].
// Responses are mapped into the records of the models package.
//
// [RawClient] sends arbitrary requests through the same client for debugging.
package services
