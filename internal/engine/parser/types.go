package parser

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ItemKind is the closed set of top-level items a Swift file is made of.
type ItemKind int

const (
	// ItemStatement covers top-level code that is neither a declaration nor
	// an import: expression statements, operator declarations, recovered
	// syntax errors.
	ItemStatement ItemKind = iota
	ItemImport
	ItemType
	ItemExtension
	ItemFunction
	ItemConstant
	ItemTypeAlias
	ItemSnippet
)

func (k ItemKind) String() string {
	switch k {
	case ItemImport:
		return "import"
	case ItemType:
		return "type"
	case ItemExtension:
		return "extension"
	case ItemFunction:
		return "function"
	case ItemConstant:
		return "constant"
	case ItemTypeAlias:
		return "typealias"
	case ItemSnippet:
		return "snippet"
	default:
		return "statement"
	}
}

// Declaration is one top-level unit of a source file plus the names it
// introduces and mentions.
type Declaration struct {
	Kind ItemKind
	// SourceText is the exact byte span of the item, including directly
	// attached leading comments.
	SourceText string
	// DeclaredTypes lists nominal names introduced by the item, nested
	// types included. Sorted, unique.
	DeclaredTypes []string
	// ReferencedTypes lists every capitalized identifier in the item that is
	// not in DeclaredTypes. Sorted, unique.
	ReferencedTypes []string
	// ExtendedType is set only for extensions.
	ExtendedType string
	EntryPoint   bool
	File         string
	Line         int
	// Index orders declarations for output: file order, then in-file order.
	Index int
}

func (d *Declaration) IsExtension() bool {
	return d.ExtendedType != ""
}

// IsFree reports whether the declaration neither declares nor extends a
// type, i.e. a free function, constant or top-level statement.
func (d *Declaration) IsFree() bool {
	return len(d.DeclaredTypes) == 0 && d.ExtendedType == ""
}

func (d *Declaration) Declares(name string) bool {
	i := sort.SearchStrings(d.DeclaredTypes, name)
	return i < len(d.DeclaredTypes) && d.DeclaredTypes[i] == name
}

// Title is a short human label used in logs and the inspector.
func (d *Declaration) Title() string {
	switch {
	case d.ExtendedType != "":
		return "extension " + d.ExtendedType
	case len(d.DeclaredTypes) > 0:
		return d.Kind.String() + " " + d.DeclaredTypes[0]
	}
	first := strings.TrimSpace(d.SourceText)
	for _, line := range strings.Split(first, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*") {
			continue
		}
		first = line
		break
	}
	if utf8.RuneCountInString(first) > 60 {
		first = string([]rune(first)[:57]) + "..."
	}
	return first
}

// FileRecord is one parsed source file.
type FileRecord struct {
	Path         string
	Imports      []string
	Declarations []*Declaration
}

func (f *FileRecord) HasEntryPoint() bool {
	for _, decl := range f.Declarations {
		if decl.EntryPoint {
			return true
		}
	}
	return false
}

// NumberDeclarations assigns discovery indexes across records in the given
// order and returns the total number of declarations.
func NumberDeclarations(records []*FileRecord) int {
	next := 0
	for _, rec := range records {
		for _, decl := range rec.Declarations {
			decl.Index = next
			next++
		}
	}
	return next
}

type Location struct {
	File   string
	Line   int
	Column int
}
