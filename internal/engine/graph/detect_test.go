package graph

import (
	"reflect"
	"testing"

	"swiftslice/internal/engine/parser"
)

func TestDetectCycles(t *testing.T) {
	// A -> B -> C -> A, D -> A
	x := NewIndex([]*parser.FileRecord{
		{Path: "/a.swift", Declarations: []*parser.Declaration{typeDecl("/a.swift", "A", "B", "String")}},
		{Path: "/b.swift", Declarations: []*parser.Declaration{typeDecl("/b.swift", "B", "C")}},
		{Path: "/c.swift", Declarations: []*parser.Declaration{typeDecl("/c.swift", "C", "A")}},
		{Path: "/d.swift", Declarations: []*parser.Declaration{typeDecl("/d.swift", "D", "A")}},
	})

	cycles := x.DetectCycles(nil)
	if len(cycles) != 1 {
		t.Fatalf("Expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if !reflect.DeepEqual(cycles[0], []string{"A", "B", "C"}) {
		t.Errorf("Unexpected cycle content: %v", cycles[0])
	}
}

func TestDetectCycles_ThroughExtension(t *testing.T) {
	x := NewIndex([]*parser.FileRecord{
		{Path: "/a.swift", Declarations: []*parser.Declaration{typeDecl("/a.swift", "A"), extDecl("/a.swift", "A", "B")}},
		{Path: "/b.swift", Declarations: []*parser.Declaration{typeDecl("/b.swift", "B", "A")}},
	})

	cycles := x.DetectCycles(nil)
	if len(cycles) != 1 || len(cycles[0]) != 2 {
		t.Fatalf("expected one two-node cycle, got %v", cycles)
	}
}

func TestReferenceChain(t *testing.T) {
	x := NewIndex([]*parser.FileRecord{
		{Path: "/a.swift", Declarations: []*parser.Declaration{
			typeDecl("/a.swift", "Screen", "Header", "Body"),
			typeDecl("/a.swift", "Header", "Avatar"),
			typeDecl("/a.swift", "Body", "Avatar", "Footer"),
			typeDecl("/a.swift", "Avatar"),
			typeDecl("/a.swift", "Footer"),
		}},
	})

	chain, ok := x.ReferenceChain("Screen", "Avatar", nil)
	if !ok {
		t.Fatal("expected a chain from Screen to Avatar")
	}
	if !reflect.DeepEqual(chain, []string{"Screen", "Body", "Avatar"}) {
		t.Errorf("expected sorted-neighbour shortest chain, got %v", chain)
	}

	if chain, ok := x.ReferenceChain("Screen", "Screen", nil); !ok || len(chain) != 1 {
		t.Errorf("self chain should be trivial, got %v", chain)
	}
	if _, ok := x.ReferenceChain("Footer", "Screen", nil); ok {
		t.Error("no chain should exist from Footer to Screen")
	}
	if _, ok := x.ReferenceChain("Missing", "Screen", nil); ok {
		t.Error("unknown source must not resolve")
	}

	skipBody := func(name string) bool { return name == "Body" }
	chain, ok = x.ReferenceChain("Screen", "Footer", skipBody)
	if ok {
		t.Errorf("skipped names must not be traversed, got %v", chain)
	}
}
