package domain

import (
	"path"
	"path/filepath"
	"slices"

	"layermap.dev/pkg/layermap/internal/adapter"
	m "layermap.dev/pkg/layermap/internal/model"
)

// BuildDirTree folds the walk of root into a directory tree. Each directory
// node records whether its subtree holds any file.
func BuildDirTree(fs adapter.SourceFSAdapter, root m.Path, exclude m.ExcludeSet) *m.DirNode {
	tree := &m.DirNode{
		Name:  filepath.Base(string(root)),
		Path:  ".",
		IsDir: true,
		Empty: fs.IsEmptyDir(root, exclude),
	}

	// open[d] is the directory that receives entries of depth d+1.
	open := []*m.DirNode{tree}

	for entry := range fs.Walk(root, exclude) {
		node := &m.DirNode{Name: entry.Name, Path: entry.Rel, IsDir: entry.IsDir}

		parent := open[entry.Depth-1]
		parent.Children = append(parent.Children, node)

		if entry.IsDir {
			node.Empty = fs.IsEmptyDir(entry.Path, exclude)
			open = append(open[:entry.Depth], node)
		}
	}

	return tree
}

// EmptyDirs lists every empty directory below the domain, HTTP and infra
// layer directories, sorted, as root-relative paths. The layer directories
// themselves are not reported.
func EmptyDirs(fs adapter.SourceFSAdapter, root m.Path, layout Layout) []m.Path {
	var empty []m.Path

	for _, layer := range []string{layout.Domain, layout.HTTP, layout.Infra} {
		segments := layout.layerDirs(layer)
		dir := fs.JoinPath(append([]string{string(root)}, segments...)...)
		prefix := path.Join(segments...)

		for entry := range fs.Walk(dir, layout.Exclude) {
			if entry.IsDir && fs.IsEmptyDir(entry.Path, layout.Exclude) {
				empty = append(empty, m.Path(path.Join(prefix, string(entry.Rel))))
			}
		}
	}

	slices.Sort(empty)

	return slices.Compact(empty)
}
