package util

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// PathFilter decides which directories and files a source walk skips.
// Patterns match either the base name or the slash-separated path relative
// to the walk root; `*` does not cross separators, `**` does.
type PathFilter struct {
	dirs  []glob.Glob
	files []glob.Glob
}

func NewPathFilter(excludeDirs, excludeFiles []string) (*PathFilter, error) {
	dirs, err := compileGlobs(excludeDirs)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude dir pattern: %w", err)
	}
	files, err := compileGlobs(excludeFiles)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude file pattern: %w", err)
	}
	return &PathFilter{dirs: dirs, files: files}, nil
}

// ValidatePattern reports malformed exclude patterns. glob.Compile accepts
// an unterminated `{` or `[`, so brackets are checked here first.
func ValidatePattern(pattern string) error {
	var open []rune
	escaped := false
	for _, r := range pattern {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '{', '[':
			if len(open) > 0 && open[len(open)-1] == '[' {
				continue
			}
			open = append(open, r)
		case '}', ']':
			want := '{'
			if r == ']' {
				want = '['
			}
			if len(open) == 0 || open[len(open)-1] != want {
				if len(open) > 0 && open[len(open)-1] == '[' {
					continue
				}
				return fmt.Errorf("unbalanced %q", r)
			}
			open = open[:len(open)-1]
		}
	}
	if escaped {
		return fmt.Errorf("trailing escape")
	}
	if len(open) > 0 {
		return fmt.Errorf("unterminated %q", open[len(open)-1])
	}
	_, err := glob.Compile(NormalizePatternPath(pattern), '/')
	return err
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if err := ValidatePattern(p); err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		g, err := glob.Compile(NormalizePatternPath(p), '/')
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// SkipDir reports whether the directory at rel (relative to the root) is
// excluded. The root itself is never excluded.
func (f *PathFilter) SkipDir(rel string) bool {
	rel = NormalizePatternPath(rel)
	if f == nil || rel == "" {
		return false
	}
	return matchAny(f.dirs, rel)
}

// SkipFile reports whether the file at rel is excluded.
func (f *PathFilter) SkipFile(rel string) bool {
	rel = NormalizePatternPath(rel)
	if f == nil || rel == "" {
		return false
	}
	return matchAny(f.files, rel)
}

func matchAny(globs []glob.Glob, rel string) bool {
	base := filepath.Base(filepath.FromSlash(rel))
	for _, g := range globs {
		if g.Match(base) || g.Match(rel) {
			return true
		}
	}
	return false
}
