// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FindFilesByName recursively searches rootPath for files whose base name is
// one of names and returns their full paths in lexical order. Hidden
// directories (".git", ".idea", ...) are not descended into.
func FindFilesByName(rootPath string, names ...string) ([]string, error) {
	if len(names) == 0 {
		panic("names must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(names, d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// FindFirst returns the first of names that exists as a regular file in dir,
// or "" when none does.
func FindFirst(dir string, names ...string) string {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}
