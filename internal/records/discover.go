package records

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AndreyAkinshin/voltcheck/internal/errors"
)

// isExcludedDir returns true for directories never searched for records.
func isExcludedDir(name string) bool {
	excluded := map[string]bool{
		"node_modules": true,
		"vendor":       true,
		"testdata":     true,
		"templates":    true,
		"reports":      true,
		"build":        true,
		"dist":         true,
		"out":          true,
	}
	return excluded[name]
}

// isRecordFile reports whether a file name looks like a record file.
// Office lock files ("~$board.xlsx") are skipped.
func isRecordFile(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	_, ok := FormatOf(name)
	return ok
}

// Discover expands paths into record files. Files are kept as given, in
// order; directories are walked and their record files appended sorted.
// Hidden and excluded directories are skipped.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NotFound("path", p)
			}
			return nil, errors.WrapKind(errors.KindInput, p, err, "cannot access path")
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != p && (strings.HasPrefix(name, ".") || isExcludedDir(name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if isRecordFile(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.WrapKind(errors.KindInput, p, err, "cannot read directory")
		}
		if len(found) == 0 {
			return nil, errors.Input(p, "no record files (.json, .yaml, .yml, .xlsx) found")
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}
