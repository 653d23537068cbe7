package playback

import (
	"context"
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
	DefaultIdleInterval   = 5 * time.Second
	DefaultActiveInterval = time.Second
)

// PollerConfig holds configuration for the playback poller.
type PollerConfig struct {
	Service services.PlayerService
	Store   *Store

	// Storage receives the previous volume when the device is muted remotely. Optional.
	Storage storage.SecureStorage

	// Authenticated gates every tick. A nil func always polls.
	// While it reports false the timer is not re-armed; call [Poller.Wake] after login.
	Authenticated func() bool

	// IdleInterval is used while the player state is not Playing.
	IdleInterval time.Duration

	// ActiveInterval is used while the player state is Playing.
	ActiveInterval time.Duration

	// OnError is called when fetching the remote state fails.
	OnError func(err error)

	Logger *log.Logger
}

// Poller keeps a [Store] in sync with the remote player.
type Poller struct {
	config   PollerConfig
	logger   *log.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	wakeCh   chan struct{}
	cancel   context.CancelFunc
	lookups  sync.WaitGroup // liked-state queries started by a track change
	mu       sync.Mutex
	running  bool
	stopping bool
}

func NewPoller(config PollerConfig) *Poller {
	if config.IdleInterval <= 0 {
		config.IdleInterval = DefaultIdleInterval
	}
	if config.ActiveInterval <= 0 {
		config.ActiveInterval = DefaultActiveInterval
	}

	logger := config.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Poller{
		config: config,
		logger: shared.WithLogger(logger, "component", "poller"),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		wakeCh: make(chan struct{}, 1),
	}
}

// Start begins polling until ctx is done or Stop is called.
// Start is safe to call after Stop.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running || p.stopping {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	ctx, p.cancel = context.WithCancel(ctx)
	stopCh, doneCh := p.stopCh, p.doneCh
	p.mu.Unlock()

	go p.pollLoop(ctx, stopCh, doneCh)
}

// Stop halts the polling loop and waits for it and any pending lookups to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running || p.stopping {
		p.mu.Unlock()
		return
	}
	p.stopping = true
	stopCh, doneCh, cancel := p.stopCh, p.doneCh, p.cancel
	p.mu.Unlock()

	close(stopCh)
	cancel()
	<-doneCh
	p.lookups.Wait()

	p.mu.Lock()
	p.running = false
	p.stopping = false
	p.mu.Unlock()
}

// Done returns a channel that closes when the current polling loop exits.
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doneCh
}

// Wake schedules an immediate tick, re-arming a timer that was paused while logged out.
func (p *Poller) Wake() {
	select {
	case p.wakeCh <- struct{}{}:
	default:
	}
}

func (p *Poller) authenticated() bool {
	return p.config.Authenticated == nil || p.config.Authenticated()
}

// Wait blocks until liked-state lookups started by earlier polls have finished.
func (p *Poller) Wait() {
	p.lookups.Wait()
}

// Interval returns the delay before the next tick, chosen from the last observed player state.
func (p *Poller) Interval() time.Duration {
	if p.config.Store.Snapshot().PlayerState == models.Playing {
		return p.config.ActiveInterval
	}
	return p.config.IdleInterval
}

func (p *Poller) pollLoop(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	// The first tick fires immediately and has no elapsed time to extrapolate.
	var elapsed time.Duration
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-p.wakeCh:
			timer.Stop()
			elapsed = 0
			timer.Reset(0)
		case <-timer.C:
			if !p.authenticated() {
				p.logger.Debug("not authenticated, polling paused")
				elapsed = 0
				continue
			}
			_, _ = p.tick(ctx, elapsed)
			elapsed = p.Interval()
			timer.Reset(elapsed)
		}
	}
}

// Poll runs a single tick as if one current interval had elapsed and returns the applied deltas.
func (p *Poller) Poll(ctx context.Context) ([]Delta, error) {
	return p.tick(ctx, p.Interval())
}

func (p *Poller) tick(ctx context.Context, elapsed time.Duration) ([]Delta, error) {
	if !p.authenticated() {
		return nil, nil
	}

	store := p.config.Store
	if store.Locked() {
		return store.ApplyPolled(ProgressAdvanced{By: elapsed}), nil
	}

	playback, err := p.config.Service.CurrentPlayback(ctx)
	if err != nil {
		p.logger.Debug("failed to fetch playback", "err", err)
		if p.config.OnError != nil {
			p.config.OnError(err)
		}
		return nil, err
	}

	deltas, newTrack := p.reconcile(ctx, store.Snapshot(), playback)
	applied := store.ApplyPolled(deltas...)

	if newTrack != "" {
		p.lookupLiked(ctx, newTrack)
	}
	return applied, nil
}

// reconcile diffs playback against snap. It returns the track id whose liked state must be looked up, if any.
func (p *Poller) reconcile(ctx context.Context, snap models.PlaybackSnapshot, playback *services.Playback) ([]Delta, string) {
	if playback == nil || playback.Track == nil {
		if snap.PlayerState == models.Idling {
			return nil, ""
		}
		return []Delta{PlayerStateChanged{State: models.Idling}}, ""
	}

	var (
		deltas   []Delta
		newTrack string
	)

	if playback.Track.ID != snap.TrackID() {
		deltas = append(deltas, TrackChanged{Track: playback.Track})
		newTrack = playback.Track.ID
	}

	if playback.Album != nil && playback.Album.ID != snap.AlbumID() {
		deltas = append(deltas, AlbumChanged{Album: playback.Album})
	}

	if id, ok := playlistID(playback.Context); ok {
		if id != snap.PlaylistID() {
			playlist, err := p.config.Service.Playlist(ctx, id)
			if err != nil {
				p.logger.Warn("failed to fetch playlist", "playlist", id, "err", err)
			} else {
				deltas = append(deltas, PlaylistChanged{Playlist: playlist})
			}
		}
	} else if snap.Playlist != nil {
		deltas = append(deltas, PlaylistChanged{Playlist: nil})
	}

	volume := snap.Volume
	active := false
	if device := playback.Device; device != nil {
		volume = device.Volume
		active = device.IsActive

		if volume == 0 && snap.Volume > 0 {
			p.rememberVolume(snap.Volume)
		}

		if device.ID != snap.DeviceID() {
			deltas = append(deltas, DeviceChanged{Device: device})
			if devices, err := p.config.Service.Devices(ctx); err != nil {
				p.logger.Warn("failed to fetch devices", "err", err)
			} else {
				deltas = append(deltas, DevicesChanged{Devices: devices})
			}
		}
	}

	deltas = append(deltas, StatusChanged{
		DeviceActive: active,
		Volume:       volume,
		Progress:     playback.Progress,
		IsPlaying:    playback.IsPlaying,
		IsShuffle:    playback.Shuffle,
		RepeatState:  playback.Repeat,
		Disallows:    playback.Disallows,
	})

	if snap.PlayerState != models.Playing {
		deltas = append(deltas, PlayerStateChanged{State: models.Playing})
	}
	return deltas, newTrack
}

func (p *Poller) rememberVolume(volume int) {
	if p.config.Storage == nil {
		return
	}
	if err := p.config.Storage.Set(storage.KeyPreviousVolume, strconv.Itoa(volume)); err != nil {
		p.logger.Warn("failed to store previous volume", "err", err)
	}
}

// lookupLiked queries the liked state of trackID in the background.
// The result is dropped if another track is current by the time it arrives.
func (p *Poller) lookupLiked(ctx context.Context, trackID string) {
	p.lookups.Add(1)
	go func() {
		defer p.lookups.Done()

		liked, err := p.config.Service.IsTrackSaved(ctx, trackID)
		if err != nil {
			p.logger.Debug("failed to fetch liked state", "track", trackID, "err", err)
			return
		}
		p.config.Store.ApplyPolled(LikedChanged{TrackID: trackID, Liked: liked})
	}()
}
