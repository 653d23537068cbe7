// Package models defines the value types shared by the session and playback engine.
//
// The package contains two groups of types:
//
// 1. Session state
//   - [AuthToken] : the current OAuth credential, owned by the auth token store
//
// 2. Playback state
//   - [PlaybackSnapshot] : the single mutable mirror of the remote player, owned by the playback store
//   - [Track], [Album], [Playlist], [Device] : immutable records parsed from API responses, compared by ID
//   - [PlayerState], [RepeatState], [Disallows] : player flags
package models
