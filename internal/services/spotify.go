// Spotify Web API implementation of [PlayerService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	URI        string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	ReleaseDate string          `json:"release_date"`
	TotalTracks int             `json:"total_tracks"`
	Images      []SpotifyImage  `json:"images"`
	URI         string          `json:"uri"`
}

type Owner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type playlistTracks struct {
	Total int `json:"total"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       Owner          `json:"owner"`
	Tracks      playlistTracks `json:"tracks"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyDevice represents a Spotify Connect device.
type SpotifyDevice struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	VolumePercent    *int   `json:"volume_percent"`
	IsActive         bool   `json:"is_active"`
	IsPrivateSession bool   `json:"is_private_session"`
	IsRestricted     bool   `json:"is_restricted"`
}

// SpotifyContext represents the context a track is played from.
type SpotifyContext struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

type playbackActions struct {
	Disallows models.Disallows `json:"disallows"`
}

// SpotifyPlaybackState represents GET /me/player.
type SpotifyPlaybackState struct {
	Device       SpotifyDevice   `json:"device"`
	RepeatState  string          `json:"repeat_state"`
	ShuffleState bool            `json:"shuffle_state"`
	Context      *SpotifyContext `json:"context"`
	ProgressMS   int             `json:"progress_ms"`
	IsPlaying    bool            `json:"is_playing"`
	Item         *SpotifyTrack   `json:"item"`
	Actions      playbackActions `json:"actions"`
}

// SpotifyService implements [PlayerService] for the Spotify Web API.
//
// It holds no credentials: the [http.Client] is expected to carry a [Gateway] transport.
type SpotifyService struct {
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service for the API at baseURL.
func NewSpotifyService(baseURL string, client *http.Client) *SpotifyService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SpotifyService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// doRequest performs a request against the API and decodes a JSON response into result.
//
// A 204 or an empty body leaves result untouched and reports found = false.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, query url.Values, body any, result any) (found bool, err error) {
	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, newAPIError(resp, nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if resp.StatusCode == http.StatusNoContent || len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return true, nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if _, err := s.doRequest(ctx, http.MethodGet, "/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentPlayback retrieves the player state. It returns nil when no device is playing.
func (s *SpotifyService) CurrentPlayback(ctx context.Context) (*Playback, error) {
	var state SpotifyPlaybackState
	found, err := s.doRequest(ctx, http.MethodGet, "/me/player", url.Values{"additional_types": {"track"}}, nil, &state)
	if err != nil || !found {
		return nil, err
	}
	return state.toPlayback(), nil
}

// IsTrackSaved reports whether the track is in the user's library.
func (s *SpotifyService) IsTrackSaved(ctx context.Context, trackID string) (bool, error) {
	var saved []bool
	if _, err := s.doRequest(ctx, http.MethodGet, "/me/tracks/contains", url.Values{"ids": {trackID}}, nil, &saved); err != nil {
		return false, err
	}
	return len(saved) > 0 && saved[0], nil
}

// Playlist retrieves a playlist by ID.
func (s *SpotifyService) Playlist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	query := url.Values{"fields": {"id,name,description,owner(id,display_name),tracks(total),images,uri"}}

	var playlist SpotifyPlaylist
	if _, err := s.doRequest(ctx, http.MethodGet, "/playlists/"+url.PathEscape(playlistID), query, nil, &playlist); err != nil {
		return nil, err
	}
	return playlist.toModel(), nil
}

// Devices lists the user's available Connect devices.
func (s *SpotifyService) Devices(ctx context.Context) ([]models.Device, error) {
	var response struct {
		Devices []SpotifyDevice `json:"devices"`
	}
	if _, err := s.doRequest(ctx, http.MethodGet, "/me/player/devices", nil, nil, &response); err != nil {
		return nil, err
	}

	devices := make([]models.Device, 0, len(response.Devices))
	for _, d := range response.Devices {
		devices = append(devices, *d.toModel())
	}
	return devices, nil
}

func (s *SpotifyService) command(ctx context.Context, method, endpoint string, query url.Values, body any) error {
	_, err := s.doRequest(ctx, method, endpoint, query, body, nil)
	return err
}

// Play resumes playback on the active device.
func (s *SpotifyService) Play(ctx context.Context) error {
	return s.command(ctx, http.MethodPut, "/me/player/play", nil, nil)
}

// Pause pauses playback on the active device.
func (s *SpotifyService) Pause(ctx context.Context) error {
	return s.command(ctx, http.MethodPut, "/me/player/pause", nil, nil)
}

// Next skips to the next track.
func (s *SpotifyService) Next(ctx context.Context) error {
	return s.command(ctx, http.MethodPost, "/me/player/next", nil, nil)
}

// Previous skips to the previous track.
func (s *SpotifyService) Previous(ctx context.Context) error {
	return s.command(ctx, http.MethodPost, "/me/player/previous", nil, nil)
}

// Seek moves to position in the current track.
func (s *SpotifyService) Seek(ctx context.Context, position time.Duration) error {
	if position < 0 {
		return fmt.Errorf("%w: negative seek position", shared.ErrInvalidArgument)
	}
	query := url.Values{"position_ms": {strconv.FormatInt(position.Milliseconds(), 10)}}
	return s.command(ctx, http.MethodPut, "/me/player/seek", query, nil)
}

// SetShuffle toggles shuffle.
func (s *SpotifyService) SetShuffle(ctx context.Context, on bool) error {
	return s.command(ctx, http.MethodPut, "/me/player/shuffle", url.Values{"state": {strconv.FormatBool(on)}}, nil)
}

// SetRepeat sets the repeat mode.
func (s *SpotifyService) SetRepeat(ctx context.Context, state models.RepeatState) error {
	if !state.Valid() {
		return fmt.Errorf("%w: repeat state %q", shared.ErrInvalidArgument, state)
	}
	return s.command(ctx, http.MethodPut, "/me/player/repeat", url.Values{"state": {string(state)}}, nil)
}

// SetVolume sets the volume of the active device, 0-100.
func (s *SpotifyService) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d outside 0-100", shared.ErrInvalidArgument, percent)
	}
	query := url.Values{"volume_percent": {strconv.Itoa(percent)}}
	return s.command(ctx, http.MethodPut, "/me/player/volume", query, nil)
}

// SaveTrack adds the track to the user's library.
func (s *SpotifyService) SaveTrack(ctx context.Context, trackID string) error {
	return s.command(ctx, http.MethodPut, "/me/tracks", url.Values{"ids": {trackID}}, nil)
}

// RemoveTrack removes the track from the user's library.
func (s *SpotifyService) RemoveTrack(ctx context.Context, trackID string) error {
	return s.command(ctx, http.MethodDelete, "/me/tracks", url.Values{"ids": {trackID}}, nil)
}

// TransferPlayback moves playback to deviceID.
func (s *SpotifyService) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	if deviceID == "" {
		return fmt.Errorf("%w: device id", shared.ErrMissingArgument)
	}
	body := map[string]any{"device_ids": []string{deviceID}, "play": play}
	return s.command(ctx, http.MethodPut, "/me/player", nil, body)
}

func toArtists(in []SpotifyArtist) []models.Artist {
	artists := make([]models.Artist, 0, len(in))
	for _, a := range in {
		artists = append(artists, models.Artist{ID: a.ID, Name: a.Name, URI: a.URI})
	}
	return artists
}

// coverURL picks the largest image.
func coverURL(images []SpotifyImage) string {
	best := ""
	size := -1
	for _, img := range images {
		if img.Width*img.Height > size {
			best, size = img.URL, img.Width*img.Height
		}
	}
	return best
}

func (d *SpotifyDevice) toModel() *models.Device {
	device := &models.Device{
		ID:               d.ID,
		Name:             d.Name,
		Type:             d.Type,
		IsActive:         d.IsActive,
		IsPrivateSession: d.IsPrivateSession,
		IsRestricted:     d.IsRestricted,
	}
	if d.VolumePercent != nil {
		device.Volume = *d.VolumePercent
	}
	return device
}

func (p *SpotifyPlaylist) toModel() *models.Playlist {
	return &models.Playlist{
		ID:          p.ID,
		URI:         p.URI,
		Name:        p.Name,
		Description: p.Description,
		Owner:       p.Owner.DisplayName,
		TrackCount:  p.Tracks.Total,
		CoverURL:    coverURL(p.Images),
	}
}

func (st *SpotifyPlaybackState) toPlayback() *Playback {
	p := &Playback{
		Device:    st.Device.toModel(),
		Progress:  time.Duration(st.ProgressMS) * time.Millisecond,
		IsPlaying: st.IsPlaying,
		Shuffle:   st.ShuffleState,
		Repeat:    models.RepeatState(st.RepeatState),
		Disallows: st.Actions.Disallows,
	}

	if st.Context != nil {
		p.Context = &PlaybackContext{Type: st.Context.Type, URI: st.Context.URI}
	}

	if item := st.Item; item != nil {
		p.Track = &models.Track{
			ID:       item.ID,
			URI:      item.URI,
			Name:     item.Name,
			Artists:  toArtists(item.Artists),
			Duration: time.Duration(item.DurationMS) * time.Millisecond,
			Explicit: item.Explicit,
			AlbumID:  item.Album.ID,
		}
		p.Album = &models.Album{
			ID:          item.Album.ID,
			URI:         item.Album.URI,
			Name:        item.Album.Name,
			Artists:     toArtists(item.Album.Artists),
			ReleaseDate: item.Album.ReleaseDate,
			TotalTracks: item.Album.TotalTracks,
			CoverURL:    coverURL(item.Album.Images),
		}
	}

	return p
}
