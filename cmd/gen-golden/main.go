package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/starldoc"
	"pkt.systems/starldoc/internal/docfile"
)

func main() {
	root := "testdata"
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if _, err := docfile.FormatFromPath(path); err == nil {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no documents found under %s", root)
	}
	for _, path := range paths {
		doc, err := docfile.Load(path)
		if err != nil {
			fatalf("load %s: %v", path, err)
		}
		goldenPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".golden"
		out := starldoc.RenderDocItem(doc.Name, doc.Item) + "\n"
		if err := os.WriteFile(goldenPath, []byte(out), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
