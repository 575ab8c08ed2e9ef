package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

var appVersion string

func main() {
	encodeFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "raster",
			Usage:   `Image encoding, "raster" (GS v 0) or "column" (ESC *)`,
		},
		&cli.BoolFlag{
			Name:  "high-density-horizontal",
			Value: true,
			Usage: "Print at full horizontal resolution",
		},
		&cli.BoolFlag{
			Name:  "high-density-vertical",
			Value: true,
			Usage: "Print at full vertical resolution (24 dot strips in column format)",
		},
		&cli.UintFlag{
			Name:    "threshold",
			Aliases: []string{"t"},
			Value:   defaultThreshold,
			Usage:   "Grey level (0-255, after inversion) at or above which a pixel is printed",
		},
		&cli.BoolFlag{
			Name:  "dither",
			Usage: "Use Floyd-Steinberg dithering instead of a fixed threshold",
		},
		&cli.BoolFlag{
			Name:  "init",
			Usage: "Reset the printer (ESC @) before the image",
		},
		&cli.IntFlag{
			Name:  "feed",
			Usage: "Number of blank lines to feed after the image",
		},
	}
	sinkFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "File to write commands to, defaults to stdout",
		},
		&cli.StringFlag{
			Name:    "bluetooth",
			Aliases: []string{"b"},
			Usage:   "Send commands to the Bluetooth printer advertising this name",
		},
	}

	app := cli.NewApp()
	app.Name = "escposimage"
	app.Version = appVersion
	app.Usage = "convert images to ESC/POS thermal printer commands"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML printer profile providing defaults for the other flags",
		},
		&cli.StringFlag{
			Name:  "database",
			Value: defaultDatabase,
			Usage: "SQLite database holding the print queue",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode an image and write the commands to a file, stdout or a printer",
			ArgsUsage: "<image>",
			Flags:     append(append([]cli.Flag{}, encodeFlags...), sinkFlags...),
			Action:    encodeAction,
		},
		{
			Name:      "enqueue",
			Usage:     "Encode an image and add it to the print queue",
			ArgsUsage: "<image>",
			Flags:     encodeFlags,
			Action:    enqueueAction,
		},
		{
			Name:  "jobs",
			Usage: "List queued jobs",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "pending",
					Aliases: []string{"p"},
					Usage:   "Only list jobs that haven't been sent",
				},
			},
			Action: jobsAction,
		},
		{
			Name:      "send",
			Usage:     "Send a queued job, or the oldest pending job if none is given",
			ArgsUsage: "[job-uuid]",
			Flags:     sinkFlags,
			Action:    sendAction,
		},
		{
			Name:      "delete",
			Usage:     "Remove a job from the queue",
			ArgsUsage: "<job-uuid>",
			Action:    deleteAction,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
