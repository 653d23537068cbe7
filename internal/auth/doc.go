// Package auth owns the Spotify session: the current token, the OAuth2 login round trip and the
// decisions taken when an API call fails.
//
// [Config] is built once at startup and derives one of three credential modes:
//
//   - [ModePKCE] : public client, code_challenge on authorize and code_verifier on exchange
//   - [ModeSecret] : confidential client, Basic auth on the token endpoint
//   - [ModeThirdParty] : a token broker at Config.TokenURL holds the secret
//
// [Engine] reads and writes the [TokenStore] and the one-shot login values (state, verifier) in
// storage. When a session ends it asks its [Navigator] to go to the login path.
package auth
