package cli

// This file contains the flags shared between commands.

import (
	"github.com/urfave/cli/v2"
)

func buildEventsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "build-events",
		Usage: "File with the build tool's JSON messages, - for stdin",
		Value: "-",
	}
}

func metadataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "metadata",
		Usage:    "File with the build tool's package metadata JSON",
		Required: true,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: human, json or json-pretty (default from config, human)",
	}
}

func detailedFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "detailed",
		Usage: "Include paths and build platforms in human output",
	}
}

func colorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "color",
		Usage: "Colorize human output: auto, always or never",
		Value: "auto",
	}
}

func testListFlags() []cli.Flag {
	return []cli.Flag{
		buildEventsFlag(),
		metadataFlag(),
		formatFlag(),
		detailedFlag(),
		colorFlag(),
		&cli.StringFlag{
			Name:  "binaries-metadata",
			Usage: "Read the binary list from a file written by list-binaries --format json instead of build events",
		},
		&cli.StringFlag{
			Name:  "workspace-remap",
			Usage: "Directory the workspace lives in at run time",
		},
		&cli.StringFlag{
			Name:  "binaries-dir-remap",
			Usage: "Directory all test binaries were moved to",
		},
		&cli.StringFlag{
			Name:  "platform-filter",
			Usage: "Only include binaries built for this platform: host or target",
		},
		&cli.StringFlag{
			Name:  "run-ignored",
			Usage: "Which tests to run: default, ignored-only or all",
			Value: "default",
		},
		&cli.StringFlag{
			Name:  "partition",
			Usage: "Only run one shard of the tests, e.g. count:1/3 or hash:2/3",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Number of binaries listed concurrently (default from config, number of CPUs)",
		},
	}
}
