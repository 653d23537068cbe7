// package formatter renders playback state and changes as plain text and JSON for the CLI
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/playback"
)

// FormatDuration renders d as m:ss, or h:mm:ss from one hour up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Artists joins artist names with ", ".
func Artists(artists []models.Artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// TrackLine renders "Artist - Title".
func TrackLine(t *models.Track) string {
	if t == nil {
		return "nothing playing"
	}
	if len(t.Artists) == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s - %s", Artists(t.Artists), t.Name)
}

// SnapshotText renders a multi-line summary of the player.
func SnapshotText(s models.PlaybackSnapshot) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("State: %s\n", s.PlayerState))
	if s.Track == nil {
		buf.WriteString("Nothing playing\n")
		return buf.String()
	}

	status := "paused"
	if s.IsPlaying {
		status = "playing"
	}

	buf.WriteString(fmt.Sprintf("Track: %s\n", TrackLine(s.Track)))
	if s.Album != nil {
		buf.WriteString(fmt.Sprintf("Album: %s\n", s.Album.Name))
	}
	if s.Playlist != nil {
		buf.WriteString(fmt.Sprintf("Playlist: %s\n", s.Playlist.Name))
	}
	buf.WriteString(fmt.Sprintf("Progress: %s / %s [%s]\n", FormatDuration(s.Progress), FormatDuration(s.Duration), status))
	if s.Device != nil {
		buf.WriteString(fmt.Sprintf("Device: %s (%d%%)\n", s.Device.Name, s.Volume))
	}
	buf.WriteString(fmt.Sprintf("Shuffle: %s  Repeat: %s  Liked: %s\n", onOff(s.IsShuffle), s.RepeatState, onOff(s.IsLiked)))

	return buf.String()
}

// DevicesText lists devices one per line, marking the active one with "*".
func DevicesText(devices []models.Device) string {
	if len(devices) == 0 {
		return "No devices available\n"
	}

	var buf bytes.Buffer
	for _, d := range devices {
		marker := " "
		if d.IsActive {
			marker = "*"
		}
		buf.WriteString(fmt.Sprintf("%s %s  %s (%s)\n", marker, d.ID, d.Name, d.Type))
	}
	return buf.String()
}

// DeltaLine renders a single change as one line, or "" for changes not worth printing.
func DeltaLine(d playback.Delta) string {
	switch d := d.(type) {
	case playback.TrackChanged:
		return "▶ " + TrackLine(d.Track)
	case playback.AlbumChanged:
		if d.Album == nil {
			return ""
		}
		return "album: " + d.Album.Name
	case playback.PlaylistChanged:
		if d.Playlist == nil {
			return "playlist: none"
		}
		return "playlist: " + d.Playlist.Name
	case playback.DeviceChanged:
		if d.Device == nil {
			return ""
		}
		return "device: " + d.Device.Name
	case playback.DevicesChanged:
		return fmt.Sprintf("devices: %d available", len(d.Devices))
	case playback.LikedChanged:
		return "liked: " + onOff(d.Liked)
	case playback.PlayingChanged:
		if d.IsPlaying {
			return "resumed"
		}
		return "paused"
	case playback.ShuffleChanged:
		return "shuffle: " + onOff(d.IsShuffle)
	case playback.RepeatChanged:
		return "repeat: " + string(d.RepeatState)
	case playback.VolumeChanged:
		return fmt.Sprintf("volume: %d%%", d.Volume)
	case playback.PlayerStateChanged:
		return "state: " + d.State.String()
	default:
		// Progress and status ticks arrive every poll.
		return ""
	}
}

type snapshotJSON struct {
	State     string             `json:"state"`
	Track     *models.Track      `json:"track,omitempty"`
	Album     *models.Album      `json:"album,omitempty"`
	Playlist  *models.Playlist   `json:"playlist,omitempty"`
	Device    *models.Device     `json:"device,omitempty"`
	Devices   []models.Device    `json:"devices,omitempty"`
	Progress  int64              `json:"progress_ms"`
	Duration  int64              `json:"duration_ms"`
	Volume    int                `json:"volume"`
	Playing   bool               `json:"is_playing"`
	Shuffle   bool               `json:"shuffle"`
	Repeat    models.RepeatState `json:"repeat"`
	Liked     bool               `json:"liked"`
	Disallows models.Disallows   `json:"disallows"`
}

// SnapshotJSON renders s as JSON, indented when pretty is set.
func SnapshotJSON(s models.PlaybackSnapshot, pretty bool) ([]byte, error) {
	out := snapshotJSON{
		State:     s.PlayerState.String(),
		Track:     s.Track,
		Album:     s.Album,
		Playlist:  s.Playlist,
		Device:    s.Device,
		Devices:   s.AvailableDevices,
		Progress:  s.Progress.Milliseconds(),
		Duration:  s.Duration.Milliseconds(),
		Volume:    s.Volume,
		Playing:   s.IsPlaying,
		Shuffle:   s.IsShuffle,
		Repeat:    s.RepeatState,
		Liked:     s.IsLiked,
		Disallows: s.Disallows,
	}
	if pretty {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
