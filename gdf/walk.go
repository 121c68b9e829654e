package gdf

import (
	"errors"
	"path"
)

// SkipChildren can be returned by a WalkFunc to skip descending into the
// current block's children without stopping the walk.
var SkipChildren = errors.New("skip this block's children")

// WalkFunc is called for each block during traversal.
// p is the slash-joined path of block names from the root, depth the nesting
// level (0 for root-level blocks). Return nil to continue, SkipChildren to
// prune, or any other error to stop the walk.
type WalkFunc func(p string, depth int, b *Block) error

// Walk traverses the block tree depth-first in document order.
//
// Example:
//
//	gdf.Walk(f.Blocks, func(p string, depth int, b *gdf.Block) error {
//	    fmt.Println(p, b.Value.Kind())
//	    return nil
//	})
func Walk(blocks []Block, fn WalkFunc) error {
	return walkBlocks(blocks, "", 0, fn)
}

func walkBlocks(blocks []Block, prefix string, depth int, fn WalkFunc) error {
	for i := range blocks {
		b := &blocks[i]
		p := path.Join(prefix, b.Name)
		err := fn(p, depth, b)
		if err == SkipChildren {
			continue
		}
		if err != nil {
			return err
		}
		if len(b.Children) > 0 {
			if err := walkBlocks(b.Children, p, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Find returns the first block in the list with the given name, or nil. It
// searches one level only; this is the name-lookup primitive the
// dictionary-shaping layers build on.
func Find(blocks []Block, name string) *Block {
	for i := range blocks {
		if blocks[i].Name == name {
			return &blocks[i]
		}
	}
	return nil
}
