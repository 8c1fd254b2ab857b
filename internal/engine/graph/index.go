// Package graph indexes collected declarations by the type names they
// declare and extend.
package graph

import (
	"sort"

	"swiftslice/internal/engine/parser"
	"swiftslice/internal/shared/observability"
)

// Index is the reverse lookup over every collected file. It is built once
// per resolve and never mutated afterwards.
type Index struct {
	records      []*parser.FileRecord
	declarations []*parser.Declaration

	declarers  map[string][]*parser.Declaration // type name -> declaring declarations
	extensions map[string][]*parser.Declaration // type name -> extension declarations
	byFile     map[string]*parser.FileRecord
}

// NewIndex indexes records. Declarations keep the order in which records and
// their declarations are given.
func NewIndex(records []*parser.FileRecord) *Index {
	x := &Index{
		records:    records,
		declarers:  make(map[string][]*parser.Declaration),
		extensions: make(map[string][]*parser.Declaration),
		byFile:     make(map[string]*parser.FileRecord, len(records)),
	}

	for _, rec := range records {
		x.byFile[rec.Path] = rec
		for _, decl := range rec.Declarations {
			x.declarations = append(x.declarations, decl)
			for _, name := range decl.DeclaredTypes {
				x.declarers[name] = append(x.declarers[name], decl)
			}
			if decl.ExtendedType != "" {
				x.extensions[decl.ExtendedType] = append(x.extensions[decl.ExtendedType], decl)
			}
		}
	}

	observability.IndexedDeclarations.Set(float64(len(x.declarations)))
	observability.IndexedTypeNames.Set(float64(len(x.declarers)))
	return x
}

// Declarers returns every declaration that declares name. Several files may
// declare the same name; all of them are returned.
func (x *Index) Declarers(name string) []*parser.Declaration {
	return x.declarers[name]
}

// Extensions returns every extension of name.
func (x *Index) Extensions(name string) []*parser.Declaration {
	return x.extensions[name]
}

// Declarations returns all declarations in discovery order.
func (x *Index) Declarations() []*parser.Declaration {
	return x.declarations
}

func (x *Index) Records() []*parser.FileRecord {
	return x.records
}

func (x *Index) Record(path string) (*parser.FileRecord, bool) {
	rec, ok := x.byFile[path]
	return rec, ok
}

// FileDeclarations returns the declarations of path in file order.
func (x *Index) FileDeclarations(path string) []*parser.Declaration {
	if rec, ok := x.byFile[path]; ok {
		return rec.Declarations
	}
	return nil
}

// Imports returns the modules imported by path.
func (x *Index) Imports(path string) []string {
	if rec, ok := x.byFile[path]; ok {
		return rec.Imports
	}
	return nil
}

// TypeNames returns every declared type name in sorted order.
func (x *Index) TypeNames() []string {
	names := make([]string, 0, len(x.declarers))
	for name := range x.declarers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (x *Index) Len() int {
	return len(x.declarations)
}
