// Package playback mirrors the remote Spotify player locally.
//
// [Store] owns the single [models.PlaybackSnapshot]. User commands go through the store one at a time:
// each takes the lock, makes exactly one API call and patches the snapshot only when the call succeeds.
//
// [Poller] fetches the remote state on a timer, diffs it against the snapshot and applies only what changed,
// as [Delta] values. While a command holds the lock the poller skips the fetch and only extrapolates progress.
package playback
