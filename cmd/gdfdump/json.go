package main

import (
	"context"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-gdf/gdf"
)

func jsonCmd() *cli.Command {
	return &cli.Command{
		Name:      "json",
		Usage:     "Dump the whole file as JSON",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Emit unindented JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, _, err := loadArg(cmd)
			if err != nil {
				return err
			}

			doc := map[string]any{
				"creation_time":       f.CreationTime,
				"creator":             f.Creator,
				"destination":         f.Destination,
				"gdf_version":         versionJSON(f.GDFVersion),
				"creator_version":     versionJSON(f.CreatorVersion),
				"destination_version": versionJSON(f.DestinationVersion),
				"blocks":              blocksJSON(f.Blocks),
			}

			enc := json.NewEncoder(os.Stdout)
			if !cmd.Bool("compact") {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(doc)
		},
	}
}

func versionJSON(v gdf.Version) [2]uint8 {
	return [2]uint8{v.Major, v.Minor}
}

func blocksJSON(blocks []gdf.Block) []map[string]any {
	out := make([]map[string]any, 0, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		entry := map[string]any{
			"name":  b.Name,
			"value": b.Value.Interface(),
		}
		if len(b.Children) > 0 {
			entry["children"] = blocksJSON(b.Children)
		}
		out = append(out, entry)
	}
	return out
}
