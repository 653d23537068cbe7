package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig          = fmt.Errorf("configuration not found")
	ErrInvalidConfig          = fmt.Errorf("invalid configuration")
	ErrEngineNotInitialized   = fmt.Errorf("auth engine not initialized")
	ErrUnsupportedStorageType = fmt.Errorf("unsupported storage driver")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrMissingExpiry    = fmt.Errorf("auth token has no expiry")
	ErrInvalidState     = fmt.Errorf("invalid oauth state")
	ErrSession          = fmt.Errorf("session terminated")

	// API and transport errors
	ErrTransport        = fmt.Errorf("transport error")
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrRateLimited      = fmt.Errorf("rate limited")
	ErrRestricted       = fmt.Errorf("action restricted")
	ErrUnexpectedStatus = fmt.Errorf("unexpected API status")

	// Playback errors
	ErrLocked          = fmt.Errorf("player is locked by a pending command")
	ErrNoActiveTrack   = fmt.Errorf("no active track")
	ErrInvalidContext  = fmt.Errorf("invalid context uri")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")

	// Storage errors
	ErrKeyNotFound = fmt.Errorf("key not found")
	ErrSealed      = fmt.Errorf("failed to open sealed value")
)
