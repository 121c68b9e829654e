package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-gdf/gdf"
)

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Show header fields and a block summary",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, path, err := loadArg(cmd)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetTitle(path)
			t.AppendRows([]table.Row{
				{"creation time", f.CreationTime.Format("2006-01-02 15:04:05 MST")},
				{"creator", f.Creator},
				{"destination", f.Destination},
				{"gdf version", f.GDFVersion},
				{"creator version", f.CreatorVersion},
				{"destination version", f.DestinationVersion},
			})

			total, groups, maxDepth := 0, 0, 0
			gdf.Walk(f.Blocks, func(p string, depth int, b *gdf.Block) error {
				total++
				if len(b.Children) > 0 {
					groups++
				}
				if depth > maxDepth {
					maxDepth = depth
				}
				return nil
			})
			t.AppendSeparator()
			t.AppendRows([]table.Row{
				{"blocks", total},
				{"groups", groups},
				{"max depth", maxDepth},
			})
			t.Render()
			return nil
		},
	}
}

func treeCmd() *cli.Command {
	return &cli.Command{
		Name:      "tree",
		Usage:     "Print the block tree",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, _, err := loadArg(cmd)
			if err != nil {
				return err
			}
			return gdf.Walk(f.Blocks, func(p string, depth int, b *gdf.Block) error {
				fmt.Printf("%s%s  %s\n", strings.Repeat("  ", depth), displayName(b), describeValue(b.Value))
				return nil
			})
		},
	}
}

func displayName(b *gdf.Block) string {
	if b.Name == "" {
		return "(unnamed)"
	}
	return b.Name
}

// describeValue renders a short type-and-shape summary for one block value.
func describeValue(v gdf.Value) string {
	switch v.Kind() {
	case gdf.KindNil:
		return "null"
	case gdf.KindInt:
		n, _ := v.Int()
		return fmt.Sprintf("int %d", n)
	case gdf.KindFloat:
		x, _ := v.Float()
		return fmt.Sprintf("double %g", x)
	case gdf.KindText:
		s, _ := v.Text()
		return fmt.Sprintf("ascii %q", s)
	case gdf.KindBytes:
		b, _ := v.Bytes()
		return fmt.Sprintf("raw [%d bytes]", len(b))
	case gdf.KindArray:
		arr, _ := v.Array()
		return fmt.Sprintf("array %s", arrayShape(arr))
	default:
		return v.Kind().String()
	}
}

func arrayShape(arr any) string {
	switch a := arr.(type) {
	case []float64:
		return fmt.Sprintf("float64[%d]", len(a))
	case []float32:
		return fmt.Sprintf("float32[%d]", len(a))
	case []int8:
		return fmt.Sprintf("int8[%d]", len(a))
	case []int16:
		return fmt.Sprintf("int16[%d]", len(a))
	case []int32:
		return fmt.Sprintf("int32[%d]", len(a))
	case []int64:
		return fmt.Sprintf("int64[%d]", len(a))
	case []uint8:
		return fmt.Sprintf("uint8[%d]", len(a))
	case []uint16:
		return fmt.Sprintf("uint16[%d]", len(a))
	case []uint32:
		return fmt.Sprintf("uint32[%d]", len(a))
	case []uint64:
		return fmt.Sprintf("uint64[%d]", len(a))
	default:
		return fmt.Sprintf("%T", arr)
	}
}
