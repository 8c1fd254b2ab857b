package graph

import (
	"testing"

	"swiftslice/internal/engine/parser"
)

func typeDecl(file, name string, refs ...string) *parser.Declaration {
	return &parser.Declaration{
		Kind:            parser.ItemType,
		File:            file,
		DeclaredTypes:   []string{name},
		ReferencedTypes: refs,
		SourceText:      "struct " + name + " {}",
	}
}

func extDecl(file, name string, refs ...string) *parser.Declaration {
	return &parser.Declaration{
		Kind:            parser.ItemExtension,
		File:            file,
		ExtendedType:    name,
		ReferencedTypes: append([]string{name}, refs...),
		SourceText:      "extension " + name + " {}",
	}
}

func TestIndex_Lookups(t *testing.T) {
	a := typeDecl("/a.swift", "A", "B")
	b1 := typeDecl("/b.swift", "B")
	b2 := typeDecl("/dup.swift", "B")
	extB := extDecl("/a.swift", "B", "Hashable")

	x := NewIndex([]*parser.FileRecord{
		{Path: "/a.swift", Imports: []string{"SwiftUI"}, Declarations: []*parser.Declaration{a, extB}},
		{Path: "/b.swift", Declarations: []*parser.Declaration{b1}},
		{Path: "/dup.swift", Declarations: []*parser.Declaration{b2}},
	})

	if x.Len() != 4 {
		t.Fatalf("expected 4 declarations, got %d", x.Len())
	}
	if got := x.Declarers("B"); len(got) != 2 || got[0] != b1 || got[1] != b2 {
		t.Errorf("expected both B declarers in file order, got %v", got)
	}
	if got := x.Extensions("B"); len(got) != 1 || got[0] != extB {
		t.Errorf("expected extension of B, got %v", got)
	}
	if len(x.Declarers("Hashable")) != 0 {
		t.Error("Hashable is never declared")
	}
	if got := x.FileDeclarations("/a.swift"); len(got) != 2 || got[0] != a {
		t.Errorf("unexpected declarations for /a.swift: %v", got)
	}
	if got := x.Imports("/a.swift"); len(got) != 1 || got[0] != "SwiftUI" {
		t.Errorf("unexpected imports: %v", got)
	}
	if x.FileDeclarations("/missing.swift") != nil || x.Imports("/missing.swift") != nil {
		t.Error("unknown files must yield nothing")
	}
	if _, ok := x.Record("/b.swift"); !ok {
		t.Error("Record lookup failed")
	}
	if names := x.TypeNames(); len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected type names: %v", names)
	}
	if all := x.Declarations(); all[0] != a || all[1] != extB || all[2] != b1 || all[3] != b2 {
		t.Error("declarations must keep record order")
	}
}
