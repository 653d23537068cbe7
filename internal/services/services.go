// package services defines interface PlayerService for interacting with the Spotify Web API
package services

import (
	"context"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/models"
)

//go:generate mockgen -destination=../playback/mock_player_service_test.go -package=playback . PlayerService

// PlayerService is the remote player as seen by the playback store and poller.
type PlayerService interface {
	// CurrentPlayback returns nil, nil when nothing is playing.
	CurrentPlayback(ctx context.Context) (*Playback, error)
	IsTrackSaved(ctx context.Context, trackID string) (bool, error)
	Playlist(ctx context.Context, playlistID string) (*models.Playlist, error)
	Devices(ctx context.Context) ([]models.Device, error)

	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(ctx context.Context, position time.Duration) error
	SetShuffle(ctx context.Context, on bool) error
	SetRepeat(ctx context.Context, state models.RepeatState) error
	SetVolume(ctx context.Context, percent int) error
	SaveTrack(ctx context.Context, trackID string) error
	RemoveTrack(ctx context.Context, trackID string) error
	TransferPlayback(ctx context.Context, deviceID string, play bool) error
}

// PlaybackContext is the collection the current track is played from.
type PlaybackContext struct {
	Type string // album, artist, playlist, show
	URI  string
}

// Playback is one observation of the remote player.
//
// Track and Album are nil when the player has no item.
type Playback struct {
	Track     *models.Track
	Album     *models.Album
	Context   *PlaybackContext
	Device    *models.Device
	Progress  time.Duration
	IsPlaying bool
	Shuffle   bool
	Repeat    models.RepeatState
	Disallows models.Disallows
}
