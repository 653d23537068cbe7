package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zembrodt/showtunes-sub000/internal/formatter"
	"github.com/zembrodt/showtunes-sub000/internal/models"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

type playerFunc func(ctx context.Context, cmd *cli.Command, s *session) error

// playerAction opens an authenticated session and syncs the store once before running fn,
// so toggles and relative commands act on the current remote state.
func (r *Runner) playerAction(fn playerFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		ctx, s, err := r.openAuthenticated(ctx, cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()

		poller := s.newPoller(r.logger, nil)
		if _, err := poller.Poll(ctx); err != nil {
			return fmt.Errorf("failed to read player state: %w", err)
		}
		poller.Wait()

		return fn(ctx, cmd, s)
	}
}

func (r *Runner) Play(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.SetPlaying(ctx, true); err != nil {
		return err
	}
	return r.writePlain("▶ %s\n", formatter.TrackLine(s.store.Snapshot().Track))
}

func (r *Runner) Pause(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.SetPlaying(ctx, false); err != nil {
		return err
	}
	return r.writePlain("⏸ Paused\n")
}

func (r *Runner) TogglePlay(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.TogglePlaying(ctx); err != nil {
		return err
	}
	if s.store.Snapshot().IsPlaying {
		return r.writePlain("▶ Playing\n")
	}
	return r.writePlain("⏸ Paused\n")
}

func (r *Runner) Next(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.SkipNext(ctx); err != nil {
		return err
	}
	return r.writePlain("⏭ Skipped\n")
}

func (r *Runner) Previous(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.SkipPrevious(ctx); err != nil {
		return err
	}
	return r.writePlain("⏮ Back\n")
}

func (r *Runner) Seek(ctx context.Context, cmd *cli.Command, s *session) error {
	position, err := parsePosition(cmd.StringArg("position"))
	if err != nil {
		return err
	}
	if err := s.store.Seek(ctx, position); err != nil {
		return err
	}
	return r.writePlain("→ %s / %s\n", formatter.FormatDuration(position), formatter.FormatDuration(s.store.Snapshot().Duration))
}

// parsePosition accepts a Go duration ("1m30s") or whole seconds ("90").
func parsePosition(arg string) (time.Duration, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: position", shared.ErrMissingArgument)
	}
	if secs, err := strconv.Atoi(arg); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("%w: position %q", shared.ErrInvalidArgument, arg)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: position %q", shared.ErrInvalidArgument, arg)
	}
	return d, nil
}

func (r *Runner) Shuffle(ctx context.Context, cmd *cli.Command, s *session) error {
	var err error
	switch arg := strings.ToLower(cmd.StringArg("state")); arg {
	case "":
		err = s.store.ToggleShuffle(ctx)
	case "on", "true":
		err = s.store.SetShuffle(ctx, true)
	case "off", "false":
		err = s.store.SetShuffle(ctx, false)
	default:
		return fmt.Errorf("%w: shuffle state %q", shared.ErrInvalidArgument, arg)
	}
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", shuffleLine(s.store.Snapshot().IsShuffle))
}

func shuffleLine(on bool) string {
	if on {
		return "🔀 Shuffle on"
	}
	return "🔀 Shuffle off"
}

func (r *Runner) Repeat(ctx context.Context, cmd *cli.Command, s *session) error {
	var err error
	if arg := strings.ToLower(cmd.StringArg("state")); arg == "" {
		err = s.store.CycleRepeat(ctx)
	} else {
		err = s.store.SetRepeat(ctx, models.RepeatState(arg))
	}
	if err != nil {
		return err
	}
	return r.writePlain("🔁 Repeat %s\n", s.store.Snapshot().RepeatState)
}

func (r *Runner) Volume(ctx context.Context, cmd *cli.Command, s *session) error {
	arg := cmd.StringArg("percent")
	if arg == "" {
		return r.writePlain("🔊 %d%%\n", s.store.Snapshot().Volume)
	}
	percent, err := strconv.Atoi(strings.TrimSuffix(arg, "%"))
	if err != nil {
		return fmt.Errorf("%w: volume %q", shared.ErrInvalidArgument, arg)
	}
	if err := s.store.SetVolume(ctx, percent); err != nil {
		return err
	}
	return r.writePlain("🔊 %d%%\n", percent)
}

func (r *Runner) Mute(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.ToggleMute(ctx); err != nil {
		return err
	}
	if v := s.store.Snapshot().Volume; v > 0 {
		return r.writePlain("🔊 %d%%\n", v)
	}
	return r.writePlain("🔇 Muted\n")
}

func (r *Runner) Like(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.SetLiked(ctx, true); err != nil {
		return err
	}
	return r.writePlain("♥ Saved %s\n", formatter.TrackLine(s.store.Snapshot().Track))
}

func (r *Runner) Unlike(ctx context.Context, _ *cli.Command, s *session) error {
	if err := s.store.SetLiked(ctx, false); err != nil {
		return err
	}
	return r.writePlain("♡ Removed %s\n", formatter.TrackLine(s.store.Snapshot().Track))
}

func (r *Runner) Devices(ctx context.Context, _ *cli.Command, s *session) error {
	devices, err := s.spotify.Devices(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("%s", formatter.DevicesText(devices))
}

func (r *Runner) Transfer(ctx context.Context, cmd *cli.Command, s *session) error {
	if err := s.store.TransferDevice(ctx, cmd.StringArg("device")); err != nil {
		return err
	}
	device := s.store.Snapshot().Device
	name := cmd.StringArg("device")
	if device != nil && device.Name != "" {
		name = device.Name
	}
	return r.writePlain("→ Playing on %s\n", name)
}
