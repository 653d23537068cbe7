package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"
	"github.com/zembrodt/showtunes-sub000/internal/services"
	"github.com/zembrodt/showtunes-sub000/internal/shared"
)

func (r *Runner) rawClient(ctx context.Context, cmd *cli.Command) (context.Context, *services.RawClient, func(), error) {
	ctx, s, err := r.openAuthenticated(ctx, cmd, nil)
	if err != nil {
		return ctx, nil, nil, err
	}
	return ctx, services.NewRawClient(s.config.Spotify.APIURL, s.gateway.Client()), s.Close, nil
}

// APIGet makes a direct GET request to the API and prints the response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	ctx, client, done, err := r.rawClient(ctx, cmd)
	if err != nil {
		return err
	}
	defer done()

	r.logger.Info("GET request", "path", path)

	resp, err := client.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, cmd.Bool("pretty"))
}

// APISend makes a direct PUT or POST request, named by the subcommand, with an optional JSON body.
func (r *Runner) APISend(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	var body []byte
	if data := cmd.String("data"); data != "" {
		if !gjson.Valid(data) {
			return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidArgument)
		}
		body = []byte(data)
	}

	ctx, client, done, err := r.rawClient(ctx, cmd)
	if err != nil {
		return err
	}
	defer done()

	method := strings.ToUpper(cmd.Name)
	r.logger.Info(method+" request", "path", path)

	resp, err := client.Do(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	return r.writeResponse(resp, true)
}

func (r *Runner) writeResponse(resp *services.APIResponse, pretty bool) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}
	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}
	if len(resp.Body) == 0 {
		return r.writePlain("✓ %d\n", resp.StatusCode)
	}
	return r.writeBytes(resp.Body)
}
