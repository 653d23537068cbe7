package models

import "time"

// PlayerState describes what the poller last observed.
type PlayerState int

const (
	Idling PlayerState = iota
	Playing
	Refreshing
)

func (s PlayerState) String() string {
	switch s {
	case Idling:
		return "idling"
	case Playing:
		return "playing"
	case Refreshing:
		return "refreshing"
	default:
		return ""
	}
}

// RepeatState mirrors Spotify's repeat_state values.
type RepeatState string

const (
	RepeatOff     RepeatState = "off"
	RepeatContext RepeatState = "context"
	RepeatTrack   RepeatState = "track"
)

// Next cycles off -> context -> track -> off.
func (r RepeatState) Next() RepeatState {
	switch r {
	case RepeatOff:
		return RepeatContext
	case RepeatContext:
		return RepeatTrack
	default:
		return RepeatOff
	}
}

// Valid reports whether r is one of the three known values.
func (r RepeatState) Valid() bool {
	return r == RepeatOff || r == RepeatContext || r == RepeatTrack
}

// Artist is a minimal artist reference.
type Artist struct {
	ID   string
	Name string
	URI  string
}

// Track is the currently playing item.
type Track struct {
	ID       string
	URI      string
	Name     string
	Artists  []Artist
	Duration time.Duration
	Explicit bool
	AlbumID  string
}

// Album is the album of the current track.
type Album struct {
	ID          string
	URI         string
	Name        string
	Artists     []Artist
	ReleaseDate string
	TotalTracks int
	CoverURL    string
}

// Playlist is the playlist the current track is played from, if any.
type Playlist struct {
	ID          string
	URI         string
	Name        string
	Description string
	Owner       string
	TrackCount  int
	CoverURL    string
}

// Device is a Spotify Connect device.
type Device struct {
	ID               string
	Name             string
	Type             string
	Volume           int
	IsActive         bool
	IsPrivateSession bool
	IsRestricted     bool
}

// Disallows lists the player actions the current context forbids.
type Disallows struct {
	InterruptingPlayback  bool `json:"interrupting_playback,omitempty"`
	Pausing               bool `json:"pausing,omitempty"`
	Resuming              bool `json:"resuming,omitempty"`
	Seeking               bool `json:"seeking,omitempty"`
	SkippingNext          bool `json:"skipping_next,omitempty"`
	SkippingPrev          bool `json:"skipping_prev,omitempty"`
	TogglingRepeatContext bool `json:"toggling_repeat_context,omitempty"`
	TogglingShuffle       bool `json:"toggling_shuffle,omitempty"`
	TogglingRepeatTrack   bool `json:"toggling_repeat_track,omitempty"`
	TransferringPlayback  bool `json:"transferring_playback,omitempty"`
}

// PlaybackSnapshot is the local mirror of the remote player.
//
// While Locked is set only Progress may be changed by anyone other than the command holding the lock.
type PlaybackSnapshot struct {
	Track            *Track
	Album            *Album
	Playlist         *Playlist
	Device           *Device
	AvailableDevices []Device
	Progress         time.Duration
	Duration         time.Duration
	Volume           int
	DeviceActive     bool
	IsPlaying        bool
	IsShuffle        bool
	RepeatState      RepeatState
	IsLiked          bool
	PlayerState      PlayerState
	Disallows        Disallows
	Locked           bool
}

// TrackID returns the current track id or "".
func (s *PlaybackSnapshot) TrackID() string {
	if s.Track == nil {
		return ""
	}
	return s.Track.ID
}

// AlbumID returns the current album id or "".
func (s *PlaybackSnapshot) AlbumID() string {
	if s.Album == nil {
		return ""
	}
	return s.Album.ID
}

// PlaylistID returns the current playlist id or "".
func (s *PlaybackSnapshot) PlaylistID() string {
	if s.Playlist == nil {
		return ""
	}
	return s.Playlist.ID
}

// DeviceID returns the current device id or "".
func (s *PlaybackSnapshot) DeviceID() string {
	if s.Device == nil {
		return ""
	}
	return s.Device.ID
}

// Clone returns a deep enough copy for readers: records are immutable, slices are copied.
func (s *PlaybackSnapshot) Clone() PlaybackSnapshot {
	c := *s
	if s.AvailableDevices != nil {
		c.AvailableDevices = append([]Device(nil), s.AvailableDevices...)
	}
	return c
}
