package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

const playbackJSON = `{
  "device": {"id": "dev1", "name": "Kitchen", "type": "Speaker", "volume_percent": 42, "is_active": true},
  "repeat_state": "context",
  "shuffle_state": true,
  "context": {"type": "playlist", "uri": "spotify:playlist:ABC123"},
  "progress_ms": 61000,
  "is_playing": true,
  "item": {
    "id": "track1",
    "name": "Song",
    "uri": "spotify:track:track1",
    "duration_ms": 180000,
    "artists": [{"id": "ar1", "name": "Artist"}],
    "album": {
      "id": "album1",
      "name": "Album",
      "release_date": "2020-01-01",
      "images": [{"url": "small", "width": 64, "height": 64}, {"url": "large", "width": 640, "height": 640}]
    }
  },
  "actions": {"disallows": {"skipping_prev": true}}
}`

// recorded is one request seen by the test server.
type recorded struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func newSpotifyServer(t *testing.T, status int, body string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var seen []recorded
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		seen = append(seen, recorded{r.Method, r.URL.Path, r.URL.RawQuery, string(data)})
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		srv := NewSpotifyService("https://api.spotify.com/v1/", nil)

		if srv.baseURL != "https://api.spotify.com/v1" {
			t.Errorf("expected trimmed base url, got %s", srv.baseURL)
		}
		if srv.httpClient != http.DefaultClient {
			t.Error("expected http.DefaultClient to be used")
		}
	})

	t.Run("CurrentPlayback", func(t *testing.T) {
		t.Run("Maps Response", func(t *testing.T) {
			server, seen := newSpotifyServer(t, http.StatusOK, playbackJSON)
			srv := NewSpotifyService(server.URL, server.Client())

			p, err := srv.CurrentPlayback(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if (*seen)[0].Path != "/me/player" {
				t.Errorf("unexpected path %s", (*seen)[0].Path)
			}
			if p.Track == nil || p.Track.ID != "track1" || p.Track.Duration != 3*time.Minute {
				t.Errorf("unexpected track %+v", p.Track)
			}
			if p.Album == nil || p.Album.ID != "album1" || p.Album.CoverURL != "large" {
				t.Errorf("unexpected album %+v", p.Album)
			}
			if p.Context == nil || p.Context.URI != "spotify:playlist:ABC123" {
				t.Errorf("unexpected context %+v", p.Context)
			}
			if p.Device == nil || p.Device.ID != "dev1" || p.Device.Volume != 42 {
				t.Errorf("unexpected device %+v", p.Device)
			}
			if p.Progress != 61*time.Second || !p.IsPlaying || !p.Shuffle || p.Repeat != models.RepeatContext {
				t.Errorf("unexpected flags %+v", p)
			}
			if !p.Disallows.SkippingPrev {
				t.Error("expected skipping_prev disallowed")
			}
		})

		t.Run("No Content", func(t *testing.T) {
			server, _ := newSpotifyServer(t, http.StatusNoContent, "")
			srv := NewSpotifyService(server.URL, server.Client())

			p, err := srv.CurrentPlayback(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p != nil {
				t.Errorf("expected nil playback, got %+v", p)
			}
		})

		t.Run("Null Body", func(t *testing.T) {
			server, _ := newSpotifyServer(t, http.StatusOK, "null")
			srv := NewSpotifyService(server.URL, server.Client())

			p, err := srv.CurrentPlayback(context.Background())
			if err != nil || p != nil {
				t.Errorf("expected nil, nil; got %+v, %v", p, err)
			}
		})

		t.Run("No Item", func(t *testing.T) {
			server, _ := newSpotifyServer(t, http.StatusOK, `{"device":{"id":"d"},"is_playing":false,"item":null}`)
			srv := NewSpotifyService(server.URL, server.Client())

			p, err := srv.CurrentPlayback(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if p == nil || p.Track != nil || p.Album != nil {
				t.Errorf("expected playback without track, got %+v", p)
			}
		})

		t.Run("API Error", func(t *testing.T) {
			server, _ := newSpotifyServer(t, http.StatusNotFound, `{"error":{"status":404,"message":"Device not found"}}`)
			srv := NewSpotifyService(server.URL, server.Client())

			_, err := srv.CurrentPlayback(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Device not found" {
				t.Errorf("unexpected api error %+v", apiErr)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Error("expected ErrAPIRequest")
			}
		})
	})

	t.Run("IsTrackSaved", func(t *testing.T) {
		server, seen := newSpotifyServer(t, http.StatusOK, `[true]`)
		srv := NewSpotifyService(server.URL, server.Client())

		saved, err := srv.IsTrackSaved(context.Background(), "track1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !saved {
			t.Error("expected saved")
		}
		if (*seen)[0].Path != "/me/tracks/contains" || (*seen)[0].Query != "ids=track1" {
			t.Errorf("unexpected request %+v", (*seen)[0])
		}
	})

	t.Run("Playlist", func(t *testing.T) {
		server, seen := newSpotifyServer(t, http.StatusOK,
			`{"id":"ABC123","name":"Mix","owner":{"display_name":"me"},"tracks":{"total":12},"uri":"spotify:playlist:ABC123"}`)
		srv := NewSpotifyService(server.URL, server.Client())

		p, err := srv.Playlist(context.Background(), "ABC123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.ID != "ABC123" || p.Owner != "me" || p.TrackCount != 12 {
			t.Errorf("unexpected playlist %+v", p)
		}
		if (*seen)[0].Path != "/playlists/ABC123" {
			t.Errorf("unexpected path %s", (*seen)[0].Path)
		}

		if _, err := srv.Playlist(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Devices", func(t *testing.T) {
		server, _ := newSpotifyServer(t, http.StatusOK,
			`{"devices":[{"id":"a","name":"Phone","volume_percent":null},{"id":"b","name":"Desk","volume_percent":70,"is_active":true}]}`)
		srv := NewSpotifyService(server.URL, server.Client())

		devices, err := srv.Devices(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(devices) != 2 || devices[0].Volume != 0 || devices[1].Volume != 70 || !devices[1].IsActive {
			t.Errorf("unexpected devices %+v", devices)
		}
	})

	t.Run("Commands", func(t *testing.T) {
		tests := []struct {
			name   string
			call   func(*SpotifyService) error
			method string
			path   string
			query  string
			body   string
		}{
			{"Play", func(s *SpotifyService) error { return s.Play(context.Background()) }, http.MethodPut, "/me/player/play", "", ""},
			{"Pause", func(s *SpotifyService) error { return s.Pause(context.Background()) }, http.MethodPut, "/me/player/pause", "", ""},
			{"Next", func(s *SpotifyService) error { return s.Next(context.Background()) }, http.MethodPost, "/me/player/next", "", ""},
			{"Previous", func(s *SpotifyService) error { return s.Previous(context.Background()) }, http.MethodPost, "/me/player/previous", "", ""},
			{"Seek", func(s *SpotifyService) error { return s.Seek(context.Background(), 1500*time.Millisecond) }, http.MethodPut, "/me/player/seek", "position_ms=1500", ""},
			{"Shuffle", func(s *SpotifyService) error { return s.SetShuffle(context.Background(), true) }, http.MethodPut, "/me/player/shuffle", "state=true", ""},
			{"Repeat", func(s *SpotifyService) error { return s.SetRepeat(context.Background(), models.RepeatTrack) }, http.MethodPut, "/me/player/repeat", "state=track", ""},
			{"Volume", func(s *SpotifyService) error { return s.SetVolume(context.Background(), 30) }, http.MethodPut, "/me/player/volume", "volume_percent=30", ""},
			{"Save", func(s *SpotifyService) error { return s.SaveTrack(context.Background(), "t1") }, http.MethodPut, "/me/tracks", "ids=t1", ""},
			{"Remove", func(s *SpotifyService) error { return s.RemoveTrack(context.Background(), "t1") }, http.MethodDelete, "/me/tracks", "ids=t1", ""},
			{"Transfer", func(s *SpotifyService) error { return s.TransferPlayback(context.Background(), "d1", true) }, http.MethodPut, "/me/player", "", `{"device_ids":["d1"],"play":true}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				server, seen := newSpotifyServer(t, http.StatusNoContent, "")
				srv := NewSpotifyService(server.URL, server.Client())

				if err := tt.call(srv); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}

				got := (*seen)[0]
				if got.Method != tt.method || got.Path != tt.path || got.Query != tt.query {
					t.Errorf("expected %s %s?%s, got %s %s?%s", tt.method, tt.path, tt.query, got.Method, got.Path, got.Query)
				}
				if tt.body != "" {
					var want, have any
					json.Unmarshal([]byte(tt.body), &want)
					json.Unmarshal([]byte(got.Body), &have)
					wantJSON, _ := json.Marshal(want)
					haveJSON, _ := json.Marshal(have)
					if string(wantJSON) != string(haveJSON) {
						t.Errorf("expected body %s, got %s", tt.body, got.Body)
					}
				}
			})
		}
	})

	t.Run("Argument Validation", func(t *testing.T) {
		srv := NewSpotifyService("http://unused", nil)
		ctx := context.Background()

		if err := srv.SetVolume(ctx, 101); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for volume, got %v", err)
		}
		if err := srv.SetRepeat(ctx, "sometimes"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for repeat, got %v", err)
		}
		if err := srv.Seek(ctx, -time.Second); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for seek, got %v", err)
		}
		if err := srv.TransferPlayback(ctx, "", false); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument for transfer, got %v", err)
		}
	})
}
