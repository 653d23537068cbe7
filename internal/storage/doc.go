// Package storage persists the opaque strings a session needs across restarts.
//
// [SecureStorage] is implemented by [SQLiteStorage] (the default, schema managed by shared migrations)
// and [BoltStorage]. [Sealed] wraps either backend and encrypts values at rest with a key derived
// from the configured storage secret.
//
// Well-known keys:
//   - [KeyState] : OAuth state of the login attempt in progress
//   - [KeyCodeVerifier] : PKCE verifier of the login attempt in progress
//   - [KeyAuthToken] : JSON encoded auth token
//   - [KeyPreviousVolume] : last non-zero volume, used to unmute
package storage
