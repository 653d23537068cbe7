// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml if missing and initialize secure storage",
		Action: r.Setup,
	}
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in to Spotify through the browser",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Log in again even if a session exists",
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Print the authorization URL instead of opening it",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "How long to wait for the browser redirect",
				Value: loginTimeout,
			},
		},
		Action: r.Login,
	}
}

func logoutCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Forget the stored Spotify session",
		Action: r.Logout,
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show what is playing",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.Status,
	}
}

func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "watch",
		Usage:  "Follow playback changes until interrupted",
		Action: r.Watch,
	}
}

// playerCommand groups the playback commands. Each one syncs once before it acts.
func playerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "player",
		Aliases: []string{"p"},
		Usage:   "Control playback",
		Commands: []*cli.Command{
			{Name: "play", Usage: "Resume playback", Action: r.playerAction(r.Play)},
			{Name: "pause", Usage: "Pause playback", Action: r.playerAction(r.Pause)},
			{Name: "toggle", Usage: "Toggle play/pause", Action: r.playerAction(r.TogglePlay)},
			{Name: "next", Usage: "Skip to the next track", Action: r.playerAction(r.Next)},
			{Name: "previous", Aliases: []string{"prev"}, Usage: "Restart the track or skip back", Action: r.playerAction(r.Previous)},
			{
				Name:      "seek",
				Usage:     "Seek to a position, e.g. 1m30s or 90",
				Arguments: []cli.Argument{&cli.StringArg{Name: "position"}},
				Action:    r.playerAction(r.Seek),
			},
			{
				Name:      "shuffle",
				Usage:     "Set shuffle on or off, or toggle it without an argument",
				Arguments: []cli.Argument{&cli.StringArg{Name: "state"}},
				Action:    r.playerAction(r.Shuffle),
			},
			{
				Name:      "repeat",
				Usage:     "Set repeat to off, context or track, or cycle it without an argument",
				Arguments: []cli.Argument{&cli.StringArg{Name: "state"}},
				Action:    r.playerAction(r.Repeat),
			},
			{
				Name:      "volume",
				Usage:     "Set volume 0-100",
				Arguments: []cli.Argument{&cli.StringArg{Name: "percent"}},
				Action:    r.playerAction(r.Volume),
			},
			{Name: "mute", Usage: "Mute, or restore the volume from before muting", Action: r.playerAction(r.Mute)},
			{Name: "like", Usage: "Save the current track", Action: r.playerAction(r.Like)},
			{Name: "unlike", Usage: "Remove the current track from saved tracks", Action: r.playerAction(r.Unlike)},
			{Name: "devices", Usage: "List available devices", Action: r.playerAction(r.Devices)},
			{
				Name:      "transfer",
				Usage:     "Move playback to another device",
				Arguments: []cli.Argument{&cli.StringArg{Name: "device"}},
				Action:    r.playerAction(r.Transfer),
			},
		},
	}
}

// apiCommand makes authenticated calls to arbitrary Web API paths.
func apiCommand(r *Runner) *cli.Command {
	pathArg := func() []cli.Argument { return []cli.Argument{&cli.StringArg{Name: "path"}} }
	dataFlag := func() []cli.Flag {
		return []cli.Flag{&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON body to send"}}
	}

	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the Spotify Web API",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "GET a path, e.g. /me, and print the JSON",
				Arguments: pathArg(),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:      "put",
				Usage:     "PUT a path with an optional JSON body",
				Arguments: pathArg(),
				Flags:     dataFlag(),
				Action:    r.APISend,
			},
			{
				Name:      "post",
				Usage:     "POST a path with an optional JSON body",
				Arguments: pathArg(),
				Flags:     dataFlag(),
				Action:    r.APISend,
			},
		},
	}
}
