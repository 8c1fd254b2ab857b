package resolver

import (
	"path/filepath"
	"sort"

	"swiftslice/internal/engine/graph"
)

// FileSet is the whole-file variant of a resolution.
type FileSet struct {
	Files []string
	// Excluded lists base names of files skipped for carrying an entry point.
	Excluded []string
}

// ResolveFiles runs the closure over whole files. A file carrying an entry
// point is excluded unless it is startFile, which is never excluded.
func (r *Resolver) ResolveFiles(index *graph.Index, startFile string, seeds []string) *FileSet {
	queue := []string{startFile}
	for _, seed := range seeds {
		if r.registry.Contains(seed) {
			continue
		}
		queue = append(queue, r.filesOf(index, seed)...)
	}

	resolved := make(map[string]bool)
	excluded := make(map[string]bool)
	for head := 0; head < len(queue); head++ {
		path := queue[head]
		if resolved[path] || excluded[path] {
			continue
		}
		rec, ok := index.Record(path)
		if !ok {
			continue
		}
		if path != startFile && rec.HasEntryPoint() {
			excluded[path] = true
			continue
		}
		resolved[path] = true

		for _, decl := range rec.Declarations {
			for _, name := range decl.ReferencedTypes {
				if r.registry.Contains(name) {
					continue
				}
				queue = append(queue, r.filesOf(index, name)...)
			}
			for _, name := range decl.DeclaredTypes {
				for _, ext := range index.Extensions(name) {
					queue = append(queue, ext.File)
				}
			}
		}
	}

	out := &FileSet{}
	for path := range resolved {
		out.Files = append(out.Files, path)
	}
	sort.Strings(out.Files)

	names := make(map[string]bool)
	for path := range excluded {
		names[filepath.Base(path)] = true
	}
	for name := range names {
		out.Excluded = append(out.Excluded, name)
	}
	sort.Strings(out.Excluded)

	r.logger.Debug("file closure resolved", "start", startFile, "files", len(out.Files), "excluded", len(out.Excluded))
	return out
}

// filesOf returns the files declaring or extending name.
func (r *Resolver) filesOf(index *graph.Index, name string) []string {
	var out []string
	for _, decl := range index.Declarers(name) {
		out = append(out, decl.File)
	}
	for _, decl := range index.Extensions(name) {
		out = append(out, decl.File)
	}
	return out
}
