package graph

import (
	"sort"

	"swiftslice/internal/engine/parser"
)

// typeEdges returns the type names reachable in one step from name: the
// names referenced by its declarers and extensions that some file declares.
func (x *Index) typeEdges(name string, skip func(string) bool) []string {
	seen := make(map[string]bool)
	var out []string
	visit := func(decls []*parser.Declaration) {
		for _, decl := range decls {
			for _, ref := range decl.ReferencedTypes {
				if ref == name || seen[ref] || (skip != nil && skip(ref)) {
					continue
				}
				if _, ok := x.declarers[ref]; !ok {
					continue
				}
				seen[ref] = true
				out = append(out, ref)
			}
		}
	}
	visit(x.declarers[name])
	visit(x.extensions[name])
	sort.Strings(out)
	return out
}

// DetectCycles reports groups of declared types that reference each other.
// skip filters names that must not be followed, typically builtins.
func (x *Index) DetectCycles(skip func(string) bool) [][]string {
	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	for _, name := range x.TypeNames() {
		if !visited[name] {
			x.findCycles(name, skip, visited, onStack, []string{}, &cycles)
		}
	}

	return cycles
}

func (x *Index) findCycles(curr string, skip func(string) bool, visited, onStack map[string]bool, path []string, cycles *[][]string) {
	visited[curr] = true
	onStack[curr] = true
	path = append(path, curr)

	for _, next := range x.typeEdges(curr, skip) {
		if onStack[next] {
			cycleStart := -1
			for i, name := range path {
				if name == next {
					cycleStart = i
					break
				}
			}
			if cycleStart != -1 {
				cycle := make([]string, len(path)-cycleStart)
				copy(cycle, path[cycleStart:])
				*cycles = append(*cycles, cycle)
			}
		} else if !visited[next] {
			x.findCycles(next, skip, visited, onStack, path, cycles)
		}
	}

	onStack[curr] = false
}

// ReferenceChain returns the shortest chain of type references leading from
// one declared type to another, explaining why `to` is pulled in by `from`.
func (x *Index) ReferenceChain(from, to string, skip func(string) bool) ([]string, bool) {
	if _, ok := x.declarers[from]; !ok {
		return nil, false
	}
	if _, ok := x.declarers[to]; !ok {
		return nil, false
	}
	if from == to {
		return []string{from}, true
	}

	queue := []string{from}
	visited := map[string]bool{from: true}
	prev := make(map[string]string)

	for head := 0; head < len(queue); head++ {
		curr := queue[head]
		for _, next := range x.typeEdges(curr, skip) {
			if visited[next] {
				continue
			}
			visited[next] = true
			prev[next] = curr

			if next == to {
				path := []string{to}
				for node := to; node != from; {
					p, ok := prev[node]
					if !ok {
						return nil, false
					}
					path = append(path, p)
					node = p
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, true
			}

			queue = append(queue, next)
		}
	}

	return nil, false
}
