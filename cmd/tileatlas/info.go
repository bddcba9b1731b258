package main

import (
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gogpu/tileatlas"
)

func infoCommand(*flag.FlagSet) func(e *env) error {
	return func(e *env) error {
		if len(e.args) != 1 {
			return errUsage
		}
		b, compressed, err := readAtlas(e.args[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "file\t%s\n", e.args[0])
		fmt.Fprintf(tw, "compressed\t%t\n", compressed)
		fmt.Fprintf(tw, "tile size\t%d\n", b.Size())
		fmt.Fprintf(tw, "groups\t%d\n", len(b.GroupIDs()))
		fmt.Fprintf(tw, "tiles\t%d\n", b.Len())
		fmt.Fprintf(tw, "frames\t%d\n", b.ImageCount())
		fmt.Fprintf(tw, "pages\t%d\n", b.PageCount())
		fmt.Fprintf(tw, "levels\t%d of %d (complete %t)\n",
			b.FindMipLevelCommonMax(), b.MipLevelsMax(), b.MipLevelsComplete())
		fmt.Fprintln(tw)

		lookup := b.BuildLookup()
		fmt.Fprintln(tw, "GROUP\tTILE\tINDEX\tFRAMES\tLEVELS")
		for _, groupID := range b.GroupIDs() {
			g, _ := b.Group(groupID)
			for _, tileID := range g.TileIDs() {
				t, _ := g.Tile(tileID)
				index := "-"
				if entry, ok := lookup.Entry(groupID, tileID); ok {
					index = fmt.Sprint(entry.Index)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					groupID, tileID, index, t.FrameCount(), levelCounts(b, t))
			}
		}
		return tw.Flush()
	}
}

// levelCounts lists the frame count of every level of t, "-" for empty ones.
func levelCounts(b *tileatlas.Builder, t *tileatlas.TileSet) string {
	parts := make([]string, 0, b.MipLevelsMax())
	for l := range b.MipLevelsMax() {
		seq, ok := t.Level(l)
		if !ok || seq.Len() == 0 {
			parts = append(parts, "-")
			continue
		}
		parts = append(parts, fmt.Sprint(seq.Len()))
	}
	return strings.Join(parts, " ")
}
