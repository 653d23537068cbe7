package playback

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/services"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"github.com/zembrodt/showtunes-sub000/internal/storage"
)

const (
	// SkipPreviousThreshold is how far into a track "previous" restarts it instead of skipping back.
	SkipPreviousThreshold = 3 * time.Second

	// DefaultUnmuteVolume is used when no previous volume was stored.
	DefaultUnmuteVolume = 10
)

// Store owns the playback snapshot and serializes user commands against it.
type Store struct {
	mu   sync.RWMutex
	snap models.PlaybackSnapshot

	service services.PlayerService
	storage storage.SecureStorage
	logger  *log.Logger
	onDelta func(Delta)
}

// StoreOpts configures a new [Store]
type StoreOpts struct {
	Service services.PlayerService
	Storage storage.SecureStorage
	Logger  *log.Logger
	OnDelta func(Delta) // called for every applied delta, outside the lock
}

func NewStore(opts StoreOpts) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		snap:    models.PlaybackSnapshot{RepeatState: models.RepeatOff},
		service: opts.Service,
		storage: opts.Storage,
		logger:  shared.WithLogger(logger, "component", "playback"),
		onDelta: opts.OnDelta,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.PlaybackSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Locked reports whether a command is in flight.
func (s *Store) Locked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Locked
}

// Apply applies deltas unconditionally.
func (s *Store) Apply(deltas ...Delta) {
	s.mu.Lock()
	Apply(&s.snap, deltas...)
	s.mu.Unlock()
	s.emit(deltas)
}

// ApplyPolled applies deltas that came from the poller. While locked only progress deltas are kept.
// It returns the deltas that were applied.
func (s *Store) ApplyPolled(deltas ...Delta) []Delta {
	s.mu.Lock()
	applied := deltas
	if s.snap.Locked {
		applied = make([]Delta, 0, len(deltas))
		for _, d := range deltas {
			if d.Kind() == KindProgress {
				applied = append(applied, d)
			}
		}
	}
	Apply(&s.snap, applied...)
	s.mu.Unlock()

	s.emit(applied)
	return applied
}

// SetPlayerState implements [auth.PlayerStateSetter].
func (s *Store) SetPlayerState(state models.PlayerState) {
	s.Apply(PlayerStateChanged{State: state})
}

func (s *Store) emit(deltas []Delta) {
	if s.onDelta == nil {
		return
	}
	for _, d := range deltas {
		s.onDelta(d)
	}
}

func (s *Store) tryLock() (models.PlaybackSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Locked {
		return models.PlaybackSnapshot{}, false
	}
	s.snap.Locked = true
	return s.snap.Clone(), true
}

func (s *Store) unlock() {
	s.mu.Lock()
	s.snap.Locked = false
	s.mu.Unlock()
}

// run executes one command under the lock. The returned deltas are applied only when call succeeds.
func (s *Store) run(ctx context.Context, name string, call func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error)) error {
	snap, ok := s.tryLock()
	if !ok {
		s.logger.Debug("command rejected", "command", name, "err", shared.ErrLocked)
		return shared.ErrLocked
	}
	defer s.unlock()

	patch, err := call(ctx, snap)
	if err != nil {
		s.logger.Warn("command failed", "command", name, "err", err)
		return err
	}

	s.logger.Debug("command applied", "command", name)
	s.Apply(patch...)
	return nil
}

// Seek moves playback to position.
func (s *Store) Seek(ctx context.Context, position time.Duration) error {
	return s.run(ctx, "seek", func(ctx context.Context, _ models.PlaybackSnapshot) ([]Delta, error) {
		if err := s.service.Seek(ctx, position); err != nil {
			return nil, err
		}
		return []Delta{ProgressChanged{Progress: position}}, nil
	})
}

// SetPlaying resumes or pauses playback.
func (s *Store) SetPlaying(ctx context.Context, playing bool) error {
	return s.run(ctx, "set_playing", func(ctx context.Context, _ models.PlaybackSnapshot) ([]Delta, error) {
		return s.setPlaying(ctx, playing)
	})
}

// TogglePlaying flips the playing state.
func (s *Store) TogglePlaying(ctx context.Context) error {
	return s.run(ctx, "toggle_playing", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		return s.setPlaying(ctx, !snap.IsPlaying)
	})
}

func (s *Store) setPlaying(ctx context.Context, playing bool) ([]Delta, error) {
	call := s.service.Pause
	if playing {
		call = s.service.Play
	}
	if err := call(ctx); err != nil {
		return nil, err
	}
	return []Delta{PlayingChanged{IsPlaying: playing}}, nil
}

// SkipNext skips to the next track.
func (s *Store) SkipNext(ctx context.Context) error {
	return s.run(ctx, "skip_next", func(ctx context.Context, _ models.PlaybackSnapshot) ([]Delta, error) {
		if err := s.service.Next(ctx); err != nil {
			return nil, err
		}
		return []Delta{ProgressChanged{Progress: 0}}, nil
	})
}

// SkipPrevious restarts the current track once it has played past [SkipPreviousThreshold]
// and the track is at least twice that long. Otherwise it skips to the previous track.
func (s *Store) SkipPrevious(ctx context.Context) error {
	return s.run(ctx, "skip_previous", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		var err error
		if snap.Progress > SkipPreviousThreshold && 2*SkipPreviousThreshold <= snap.Duration {
			err = s.service.Seek(ctx, 0)
		} else {
			err = s.service.Previous(ctx)
		}
		if err != nil {
			return nil, err
		}
		return []Delta{ProgressChanged{Progress: 0}}, nil
	})
}

// SetShuffle turns shuffle on or off.
func (s *Store) SetShuffle(ctx context.Context, on bool) error {
	return s.run(ctx, "set_shuffle", func(ctx context.Context, _ models.PlaybackSnapshot) ([]Delta, error) {
		if err := s.service.SetShuffle(ctx, on); err != nil {
			return nil, err
		}
		return []Delta{ShuffleChanged{IsShuffle: on}}, nil
	})
}

// ToggleShuffle flips shuffle.
func (s *Store) ToggleShuffle(ctx context.Context) error {
	return s.run(ctx, "toggle_shuffle", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		if err := s.service.SetShuffle(ctx, !snap.IsShuffle); err != nil {
			return nil, err
		}
		return []Delta{ShuffleChanged{IsShuffle: !snap.IsShuffle}}, nil
	})
}

// SetRepeat sets the repeat state.
func (s *Store) SetRepeat(ctx context.Context, state models.RepeatState) error {
	if !state.Valid() {
		return fmt.Errorf("%w: repeat state %q", shared.ErrInvalidArgument, state)
	}
	return s.run(ctx, "set_repeat", func(ctx context.Context, _ models.PlaybackSnapshot) ([]Delta, error) {
		return s.setRepeat(ctx, state)
	})
}

// CycleRepeat moves repeat to the next state: off, context, track.
func (s *Store) CycleRepeat(ctx context.Context) error {
	return s.run(ctx, "cycle_repeat", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		return s.setRepeat(ctx, snap.RepeatState.Next())
	})
}

func (s *Store) setRepeat(ctx context.Context, state models.RepeatState) ([]Delta, error) {
	if err := s.service.SetRepeat(ctx, state); err != nil {
		return nil, err
	}
	return []Delta{RepeatChanged{RepeatState: state}}, nil
}

// SetVolume sets the device volume in percent.
func (s *Store) SetVolume(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("%w: volume %d", shared.ErrInvalidArgument, percent)
	}
	return s.run(ctx, "set_volume", func(ctx context.Context, _ models.PlaybackSnapshot) ([]Delta, error) {
		if err := s.service.SetVolume(ctx, percent); err != nil {
			return nil, err
		}
		return []Delta{VolumeChanged{Volume: percent}}, nil
	})
}

// ToggleMute mutes an audible device, remembering its volume, or restores the remembered volume.
func (s *Store) ToggleMute(ctx context.Context) error {
	return s.run(ctx, "toggle_mute", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		if snap.Volume > 0 {
			if err := s.service.SetVolume(ctx, 0); err != nil {
				return nil, err
			}
			s.rememberVolume(snap.Volume)
			return []Delta{VolumeChanged{Volume: 0}}, nil
		}

		volume := s.previousVolume()
		if err := s.service.SetVolume(ctx, volume); err != nil {
			return nil, err
		}
		return []Delta{VolumeChanged{Volume: volume}}, nil
	})
}

func (s *Store) rememberVolume(volume int) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(storage.KeyPreviousVolume, strconv.Itoa(volume)); err != nil {
		s.logger.Warn("failed to store previous volume", "err", err)
	}
}

func (s *Store) previousVolume() int {
	if s.storage == nil {
		return DefaultUnmuteVolume
	}
	raw, err := s.storage.Get(storage.KeyPreviousVolume)
	if err != nil {
		s.logger.Warn("failed to read previous volume", "err", err)
		return DefaultUnmuteVolume
	}
	volume, err := strconv.Atoi(raw)
	if err != nil || volume <= 0 || volume > 100 {
		return DefaultUnmuteVolume
	}
	return volume
}

// SetLiked saves or removes the current track from the user's library.
func (s *Store) SetLiked(ctx context.Context, liked bool) error {
	return s.run(ctx, "set_liked", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		return s.setLiked(ctx, snap, liked)
	})
}

// ToggleLiked flips the liked state of the current track.
func (s *Store) ToggleLiked(ctx context.Context) error {
	return s.run(ctx, "toggle_liked", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		return s.setLiked(ctx, snap, !snap.IsLiked)
	})
}

func (s *Store) setLiked(ctx context.Context, snap models.PlaybackSnapshot, liked bool) ([]Delta, error) {
	id := snap.TrackID()
	if id == "" {
		return nil, shared.ErrNoActiveTrack
	}

	call := s.service.RemoveTrack
	if liked {
		call = s.service.SaveTrack
	}
	if err := call(ctx, id); err != nil {
		return nil, err
	}
	return []Delta{LikedChanged{TrackID: id, Liked: liked}}, nil
}

// TransferDevice moves playback to deviceID, keeping the current playing state.
func (s *Store) TransferDevice(ctx context.Context, deviceID string) error {
	if deviceID == "" {
		return fmt.Errorf("%w: device id", shared.ErrMissingArgument)
	}
	return s.run(ctx, "transfer_device", func(ctx context.Context, snap models.PlaybackSnapshot) ([]Delta, error) {
		if err := s.service.TransferPlayback(ctx, deviceID, snap.IsPlaying); err != nil {
			return nil, err
		}

		device := &models.Device{ID: deviceID, IsActive: true}
		for _, d := range snap.AvailableDevices {
			if d.ID == deviceID {
				d.IsActive = true
				device = &d
				break
			}
		}
		return []Delta{DeviceChanged{Device: device}}, nil
	})
}
