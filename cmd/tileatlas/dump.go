package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/tileatlas/internal/image"
)

func dumpCommand(fs *flag.FlagSet) func(e *env) error {
	dir := fs.String("o", "pages", "output directory")
	return func(e *env) error {
		if len(e.args) != 1 {
			return errUsage
		}
		b, _, err := readAtlas(e.args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(*dir, 0o755); err != nil {
			return err
		}

		img := b.BuildImage()
		for page := range img.PageCount() {
			for level := range img.LevelCount() {
				data, ok := img.Page(page, level)
				if !ok {
					return fmt.Errorf("page %d level %d out of range", page, level)
				}
				edge := int(b.PageEdge(level))
				buf, err := image.FromRaw(data, edge, edge)
				if err != nil {
					return err
				}
				path := filepath.Join(*dir, fmt.Sprintf("page-p%d-l%d.png", page, level))
				if err := buf.SavePNG(path); err != nil {
					return err
				}
				e.log.Debug("wrote page", "path", path, "edge", edge)
			}
		}
		e.log.Info("dumped atlas", "dir", *dir, "pages", img.PageCount(), "levels", img.LevelCount())
		return nil
	}
}
