// Package cli contains the collidedeform command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	sceneFlagScene      = "scene"
	sceneFlagOut        = "out"
	demoFlagResolution  = "resolution"
	demoFlagFrames      = "frames"
	demoFlagSphereLevel = "sphere-height"
)

var app = &cli.App{
	Name:            "collidedeform",
	Usage:           "push one mesh out of another and swell it around the contact",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:    generalFlagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "eval",
			Usage:     "deform the base mesh of a scene against its collision mesh",
			UsageText: "collidedeform [global options] eval --scene <in.json> [--out <out.json>]",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     sceneFlagScene,
					Required: true,
					Usage:    "scene buffer dump to read",
				},
				&cli.PathFlag{
					Name:  sceneFlagOut,
					Usage: "where to write the deformed scene, stdout if unset",
				},
			},
			Action: EvalAction,
		},
		{
			Name:  "demo",
			Usage: "deform a grid plane against a procedural sphere",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  demoFlagResolution,
					Value: 32,
					Usage: "number of grid cells along each side of the plane",
				},
				&cli.IntFlag{
					Name:  demoFlagFrames,
					Value: 1,
					Usage: "frames to drive the displacement through the follower before evaluating",
				},
				&cli.Float64Flag{
					Name:  demoFlagSphereLevel,
					Value: -0.5,
					Usage: "height of the sphere center, the plane lies at 0",
				},
				&cli.PathFlag{
					Name:  sceneFlagOut,
					Usage: "where to write the deformed scene, stdout if unset",
				},
			},
			Action: DemoAction,
		},
		{
			Name:      "watch",
			Usage:     "evaluate a scene again every time its file changes",
			UsageText: "collidedeform [global options] watch --scene <in.json> --out <out.json>",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     sceneFlagScene,
					Required: true,
					Usage:    "scene buffer dump to watch",
				},
				&cli.PathFlag{
					Name:     sceneFlagOut,
					Required: true,
					Usage:    "where to write each deformed scene",
				},
			},
			Action: WatchAction,
		},
		{
			Name:  "stats",
			Usage: "evaluate a scene and print offset statistics and vertex outcomes",
			Flags: []cli.Flag{
				&cli.PathFlag{
					Name:     sceneFlagScene,
					Required: true,
					Usage:    "scene buffer dump to read",
				},
			},
			Action: StatsAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
