package playback

import (
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/models"
)

// Kind identifies the variant of a [Delta].
type Kind int

const (
	KindTrack Kind = iota
	KindAlbum
	KindPlaylist
	KindDevice
	KindDevices
	KindLiked
	KindProgress
	KindStatus
	KindPlaying
	KindShuffle
	KindRepeat
	KindVolume
	KindPlayerState
)

func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindAlbum:
		return "album"
	case KindPlaylist:
		return "playlist"
	case KindDevice:
		return "device"
	case KindDevices:
		return "devices"
	case KindLiked:
		return "liked"
	case KindProgress:
		return "progress"
	case KindStatus:
		return "status"
	case KindPlaying:
		return "playing"
	case KindShuffle:
		return "shuffle"
	case KindRepeat:
		return "repeat"
	case KindVolume:
		return "volume"
	case KindPlayerState:
		return "player_state"
	default:
		return ""
	}
}

// Delta is one change to a [models.PlaybackSnapshot].
//
// The set of variants is closed: TrackChanged, AlbumChanged, PlaylistChanged, DeviceChanged, DevicesChanged,
// LikedChanged, ProgressChanged, ProgressAdvanced, StatusChanged, PlayingChanged, ShuffleChanged,
// RepeatChanged, VolumeChanged and PlayerStateChanged.
type Delta interface {
	Kind() Kind
	apply(s *models.PlaybackSnapshot)
}

// Apply applies deltas to s in order.
func Apply(s *models.PlaybackSnapshot, deltas ...Delta) {
	for _, d := range deltas {
		d.apply(s)
	}
}

// TrackChanged replaces the current track. The liked flag is reset until it is known for the new track.
type TrackChanged struct{ Track *models.Track }

func (TrackChanged) Kind() Kind { return KindTrack }
func (d TrackChanged) apply(s *models.PlaybackSnapshot) {
	s.Track = d.Track
	s.IsLiked = false
	if d.Track != nil {
		s.Duration = d.Track.Duration
	}
}

type AlbumChanged struct{ Album *models.Album }

func (AlbumChanged) Kind() Kind                          { return KindAlbum }
func (d AlbumChanged) apply(s *models.PlaybackSnapshot) { s.Album = d.Album }

// PlaylistChanged sets or, with a nil Playlist, clears the playlist context.
type PlaylistChanged struct{ Playlist *models.Playlist }

func (PlaylistChanged) Kind() Kind                          { return KindPlaylist }
func (d PlaylistChanged) apply(s *models.PlaybackSnapshot) { s.Playlist = d.Playlist }

type DeviceChanged struct{ Device *models.Device }

func (DeviceChanged) Kind() Kind { return KindDevice }
func (d DeviceChanged) apply(s *models.PlaybackSnapshot) {
	s.Device = d.Device
	if d.Device != nil {
		s.DeviceActive = d.Device.IsActive
	}
}

type DevicesChanged struct{ Devices []models.Device }

func (DevicesChanged) Kind() Kind { return KindDevices }
func (d DevicesChanged) apply(s *models.PlaybackSnapshot) {
	s.AvailableDevices = append([]models.Device(nil), d.Devices...)
}

// LikedChanged only applies while TrackID is still the current track.
type LikedChanged struct {
	TrackID string
	Liked   bool
}

func (LikedChanged) Kind() Kind { return KindLiked }
func (d LikedChanged) apply(s *models.PlaybackSnapshot) {
	if s.TrackID() == d.TrackID {
		s.IsLiked = d.Liked
	}
}

// ProgressChanged sets the position in the current track.
type ProgressChanged struct{ Progress time.Duration }

func (ProgressChanged) Kind() Kind                          { return KindProgress }
func (d ProgressChanged) apply(s *models.PlaybackSnapshot) { s.Progress = d.Progress }

// ProgressAdvanced moves the position forward without asking the API, capped at the track duration.
type ProgressAdvanced struct{ By time.Duration }

func (ProgressAdvanced) Kind() Kind { return KindProgress }
func (d ProgressAdvanced) apply(s *models.PlaybackSnapshot) {
	s.Progress += d.By
	if s.Duration > 0 && s.Progress > s.Duration {
		s.Progress = s.Duration
	}
}

// StatusChanged carries the fields refreshed on every poll.
type StatusChanged struct {
	DeviceActive bool
	Volume       int
	Progress     time.Duration
	IsPlaying    bool
	IsShuffle    bool
	RepeatState  models.RepeatState
	Disallows    models.Disallows
}

func (StatusChanged) Kind() Kind { return KindStatus }
func (d StatusChanged) apply(s *models.PlaybackSnapshot) {
	s.DeviceActive = d.DeviceActive
	s.Volume = d.Volume
	s.Progress = d.Progress
	s.IsPlaying = d.IsPlaying
	s.IsShuffle = d.IsShuffle
	s.RepeatState = d.RepeatState
	s.Disallows = d.Disallows
}

type PlayingChanged struct{ IsPlaying bool }

func (PlayingChanged) Kind() Kind                          { return KindPlaying }
func (d PlayingChanged) apply(s *models.PlaybackSnapshot) { s.IsPlaying = d.IsPlaying }

type ShuffleChanged struct{ IsShuffle bool }

func (ShuffleChanged) Kind() Kind                          { return KindShuffle }
func (d ShuffleChanged) apply(s *models.PlaybackSnapshot) { s.IsShuffle = d.IsShuffle }

type RepeatChanged struct{ RepeatState models.RepeatState }

func (RepeatChanged) Kind() Kind                          { return KindRepeat }
func (d RepeatChanged) apply(s *models.PlaybackSnapshot) { s.RepeatState = d.RepeatState }

type VolumeChanged struct{ Volume int }

func (VolumeChanged) Kind() Kind                          { return KindVolume }
func (d VolumeChanged) apply(s *models.PlaybackSnapshot) { s.Volume = d.Volume }

type PlayerStateChanged struct{ State models.PlayerState }

func (PlayerStateChanged) Kind() Kind                          { return KindPlayerState }
func (d PlayerStateChanged) apply(s *models.PlaybackSnapshot) { s.PlayerState = d.State }
