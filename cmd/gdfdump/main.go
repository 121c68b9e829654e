// gdfdump is a diagnostic tool for inspecting GDF files.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-gdf/gdf"
	"github.com/robert-malhotra/go-gdf/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "gdfdump",
		Usage: "Inspect GDF (General Datafile) files",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-recurse",
				Usage: "Maximum group nesting depth",
				Value: gdf.DefaultMaxRecurse,
			},
			&cli.IntFlag{
				Name:  "max-blocks",
				Usage: "Maximum number of blocks per group",
				Value: gdf.DefaultMaxBlocks,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			infoCmd(),
			treeCmd(),
			jsonCmd(),
			sniffCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadArg loads the file named by the first positional argument, honoring the
// global limit flags.
func loadArg(cmd *cli.Command) (*gdf.File, string, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, "", fmt.Errorf("missing FILE argument")
	}

	log := logger.Default()
	if cmd.Bool("verbose") {
		log = logger.Verbose(os.Stderr)
	}

	f, err := gdf.LoadFile(path,
		gdf.WithMaxRecurse(cmd.Int("max-recurse")),
		gdf.WithMaxBlocks(cmd.Int("max-blocks")),
		gdf.WithLogger(log),
	)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return f, path, nil
}

func sniffCmd() *cli.Command {
	return &cli.Command{
		Name:      "sniff",
		Usage:     "Check whether files are GDF formatted",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() == 0 {
				return fmt.Errorf("missing FILE argument")
			}
			bad := 0
			for _, path := range cmd.Args().Slice() {
				ok, err := gdf.IsGDFFile(path)
				switch {
				case err != nil:
					fmt.Printf("%s: error: %v\n", path, err)
					bad++
				case ok:
					fmt.Printf("%s: GDF\n", path)
				default:
					fmt.Printf("%s: not GDF\n", path)
					bad++
				}
			}
			if bad > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}
