package domain

import (
	"maps"
	"slices"
	"strings"

	m "layermap.dev/pkg/layermap/internal/model"
)

// moduleIndex resolves import names to declarations.
type moduleIndex struct {
	decls  []m.ModuleDeclaration
	byName map[string][]int
}

func newModuleIndex(decls []m.ModuleDeclaration) moduleIndex {
	idx := moduleIndex{decls: decls, byName: make(map[string][]int, len(decls))}
	for i, decl := range decls {
		idx.byName[decl.Name] = append(idx.byName[decl.Name], i)
	}

	return idx
}

// resolve maps an import such as `UsersModule` to a declaration. The import
// loses its `Module` suffix and is lowercased to find declarations by file
// name. When several share that name the one declaring the imported class
// wins. An import matching no file name falls back to the declared class.
func (idx moduleIndex) resolve(imported string) (int, bool) {
	candidates := idx.byName[strings.ToLower(strings.TrimSuffix(imported, "Module"))]

	for _, i := range candidates {
		if idx.decls[i].ClassName == imported {
			return i, true
		}
	}

	if len(candidates) > 0 {
		return candidates[0], true
	}

	for i, decl := range idx.decls {
		if decl.ClassName != "" && decl.ClassName == imported {
			return i, true
		}
	}

	return 0, false
}

// BuildModuleTree builds the import tree rooted at the declaration named
// rootName. Every path from the root is followed independently: a module
// reached again along the current path becomes a circular leaf, while the
// same module reached through two sibling branches is expanded in both.
// Unresolvable imports are dropped. A missing root yields nil.
func BuildModuleTree(rootName string, decls []m.ModuleDeclaration) *m.ModuleNode {
	idx := newModuleIndex(decls)

	roots := idx.byName[rootName]
	if len(roots) == 0 {
		return nil
	}

	return idx.build(roots[0], map[m.Path]struct{}{})
}

func (idx moduleIndex) build(at int, visited map[m.Path]struct{}) *m.ModuleNode {
	decl := idx.decls[at]
	node := &m.ModuleNode{Name: decl.Name, Path: decl.Path}

	if _, seen := visited[decl.Path]; seen {
		node.Circular = true
		return node
	}

	visited[decl.Path] = struct{}{}

	var children []int

	for _, imported := range decl.Imports {
		child, ok := idx.resolve(imported)
		if !ok || slices.Contains(children, child) {
			continue
		}

		children = append(children, child)
	}

	for _, child := range children {
		node.Children = append(node.Children, idx.build(child, maps.Clone(visited)))
	}

	return node
}

// SortModules orders declarations for display: the root module first, then
// shared modules, then the rest, each group by name and path.
func SortModules(decls []m.ModuleDeclaration, rootName string) []m.ModuleDeclaration {
	sorted := slices.Clone(decls)

	group := func(decl m.ModuleDeclaration) int {
		switch {
		case decl.Name == rootName:
			return 0
		case decl.Shared:
			return 1
		default:
			return 2
		}
	}

	slices.SortStableFunc(sorted, func(a, b m.ModuleDeclaration) int {
		if ga, gb := group(a), group(b); ga != gb {
			return ga - gb
		}

		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(string(a.Path), string(b.Path))
	})

	return sorted
}

// CircularNodes counts the circular leaves of a module tree.
func CircularNodes(root *m.ModuleNode) int {
	if root == nil {
		return 0
	}

	if root.Circular {
		return 1
	}

	count := 0
	for _, child := range root.Children {
		count += CircularNodes(child)
	}

	return count
}
