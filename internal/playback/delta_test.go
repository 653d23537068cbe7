package playback

import (
	"testing"
	"time"

	"github.com/zembrodt/showtunes-sub000/internal/models"
)

func TestDeltas(t *testing.T) {
	t.Run("Track Change Resets Liked", func(t *testing.T) {
		s := models.PlaybackSnapshot{Track: &models.Track{ID: "a"}, IsLiked: true}
		Apply(&s, TrackChanged{Track: &models.Track{ID: "b", Duration: time.Minute}})

		if s.TrackID() != "b" || s.IsLiked || s.Duration != time.Minute {
			t.Errorf("unexpected snapshot %+v", s)
		}
	})

	t.Run("Liked Only For Current Track", func(t *testing.T) {
		s := models.PlaybackSnapshot{Track: &models.Track{ID: "b"}}
		Apply(&s, LikedChanged{TrackID: "a", Liked: true})
		if s.IsLiked {
			t.Error("expected stale liked state to be ignored")
		}

		Apply(&s, LikedChanged{TrackID: "b", Liked: true})
		if !s.IsLiked {
			t.Error("expected liked state for current track")
		}
	})

	t.Run("Progress Advances By Interval", func(t *testing.T) {
		s := models.PlaybackSnapshot{Progress: 10 * time.Second, Duration: 3 * time.Minute}
		Apply(&s, ProgressAdvanced{By: time.Second})
		if s.Progress != 11*time.Second {
			t.Errorf("expected progress 11s, got %v", s.Progress)
		}

		unknown := models.PlaybackSnapshot{Progress: 10 * time.Second}
		Apply(&unknown, ProgressAdvanced{By: 5 * time.Second})
		if unknown.Progress != 15*time.Second {
			t.Errorf("expected uncapped progress 15s without a duration, got %v", unknown.Progress)
		}
	})

	t.Run("Progress Advance Is Capped", func(t *testing.T) {
		s := models.PlaybackSnapshot{Progress: 58 * time.Second, Duration: time.Minute}
		Apply(&s, ProgressAdvanced{By: 5 * time.Second})
		if s.Progress != time.Minute {
			t.Errorf("expected progress capped at 1m, got %v", s.Progress)
		}
	})

	t.Run("Playlist Clear", func(t *testing.T) {
		s := models.PlaybackSnapshot{Playlist: &models.Playlist{ID: "p"}}
		Apply(&s, PlaylistChanged{})
		if s.Playlist != nil {
			t.Error("expected playlist cleared")
		}
	})

	t.Run("Kind Names", func(t *testing.T) {
		if (ProgressAdvanced{}).Kind() != KindProgress || KindProgress.String() != "progress" {
			t.Error("expected progress kind")
		}
		if KindPlayerState.String() != "player_state" {
			t.Errorf("unexpected name %q", KindPlayerState.String())
		}
		if Kind(99).String() != "" {
			t.Error("expected empty name for unknown kind")
		}
	})
}
