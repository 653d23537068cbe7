package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zembrodt/showtunes-sub000/internal/formatter"
	"github.com/zembrodt/showtunes-sub000/internal/playback"
	"github.com/zembrodt/showtunes-sub000/internal/server"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
	"golang.org/x/sync/errgroup"
)

const loginTimeout = 2 * time.Minute

// Login runs the authorization code flow: it serves the redirect URI locally, opens the browser and waits
// for the callback to complete the token exchange.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	ctx, s, err := r.open(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.engine.Authenticated() && !cmd.Bool("force") {
		return r.writePlain("✓ Already logged in. Use --force to log in again.\n")
	}

	authURL, err := s.engine.BuildAuthorizeURL()
	if err != nil {
		return fmt.Errorf("failed to build authorization url: %w", err)
	}

	addr, err := callbackAddr(s.engine.Config().Domain)
	if err != nil {
		return err
	}

	callback := server.NewCallbackHandler(s.engine)
	router := server.NewBasicRouter()
	router.Use(server.Recover(r.logger), server.RequestLogger(r.logger))
	router.Handler(callback)

	srv := server.New(addr, router, r.logger)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start callback server on %s: %w", addr, err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down callback server", "error", err)
		}
	}()

	r.logger.Debug("login started", "mode", s.engine.Mode(), "callback", addr)

	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else {
		r.writePlain("→ Opening browser for Spotify login...\n")
		if err := r.openBrowser(authURL); err != nil {
			r.logger.Warn("failed to open browser automatically", "error", err)
			r.writePlain("⚠ Could not open browser automatically.\nPlease open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	timeout := cmd.Duration("timeout")
	r.writePlain("→ Waiting for authorization (%s timeout)...\n", timeout)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-callback.Result():
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		return nil
	case err := <-srv.Errors():
		return fmt.Errorf("callback server error: %w", err)
	case <-timer.C:
		return fmt.Errorf("%w: authorization timed out after %s", shared.ErrAuthFailed, timeout)
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

// callbackAddr is the host:port the redirect URI points at.
func callbackAddr(domain string) (string, error) {
	u, err := url.Parse(domain)
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: domain %q", shared.ErrInvalidConfig, domain)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Logout forgets the stored session.
func (r *Runner) Logout(ctx context.Context, cmd *cli.Command) error {
	_, s, err := r.open(ctx, cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if !s.engine.Authenticated() {
		return r.writePlain("Not logged in\n")
	}

	s.engine.Logout()
	return nil
}

// Status polls once and prints the snapshot.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
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

	snap := s.store.Snapshot()
	if cmd.Bool("json") {
		data, err := formatter.SnapshotJSON(snap, cmd.Bool("pretty"))
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return r.writeBytes(data)
	}
	return r.writePlain("%s", formatter.SnapshotText(snap))
}

// Watch prints playback changes until interrupted or until the session ends.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	lines := make(chan string, 64)
	onDelta := func(d playback.Delta) {
		line := formatter.DeltaLine(d)
		if line == "" {
			return
		}
		select {
		case lines <- line:
		default:
			r.logger.Debug("output backlog full, dropping line", "kind", d.Kind())
		}
	}

	ctx, s, err := r.openAuthenticated(ctx, cmd, onDelta)
	if err != nil {
		return err
	}
	defer s.Close()

	poller := s.newPoller(r.logger, func(err error) {
		r.logger.Warn("poll failed", "error", err)
	})

	r.writePlain("→ Watching playback (Ctrl+C to stop)\n")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		poller.Start(gctx)
		<-poller.Done()
		poller.Stop()
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case line := <-lines:
				if err := r.writePlain("%s\n", line); err != nil {
					return err
				}
			case <-gctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if cause := context.Cause(ctx); errors.Is(cause, shared.ErrSession) {
		return cause
	}
	return nil
}
