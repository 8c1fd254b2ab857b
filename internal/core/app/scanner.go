package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"swiftslice/internal/engine/parser"
)

// ScanSources lists every Swift file under root that the exclude filter
// keeps, as sorted absolute paths. A missing root yields no files.
func (s *Service) ScanSources(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		s.logger.Debug("sources directory not found, scanning nothing", "path", abs)
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(abs, path)
		if relErr != nil {
			return relErr
		}
		if d.IsDir() {
			if s.filter.SkipDir(filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !parser.IsSourceFile(path) || s.filter.SkipFile(filepath.ToSlash(rel)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
