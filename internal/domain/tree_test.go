package domain

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"layermap.dev/pkg/layermap/internal/adapter"
	m "layermap.dev/pkg/layermap/internal/model"
)

func TestBuildDirTree(t *testing.T) {
	root := writeProject(t, map[string]string{
		"package.json":                   "{}",
		"src/main.ts":                    "",
		"src/domain/identity/user.ts":    "",
		"src/domain/billing/invoices/":   "",
		"src/http/":                      "",
		"node_modules/@nestjs/core/a.js": "",
	})

	tree := BuildDirTree(adapter.NewLocalSourceFSAdapter(), m.Path(root), m.NewExcludeSet(DefaultExcludes...))

	want := &m.DirNode{
		Name:  filepath.Base(root),
		Path:  ".",
		IsDir: true,
		Children: []*m.DirNode{
			{Name: "src", Path: "src", IsDir: true, Children: []*m.DirNode{
				{Name: "domain", Path: "src/domain", IsDir: true, Children: []*m.DirNode{
					{Name: "billing", Path: "src/domain/billing", IsDir: true, Empty: true, Children: []*m.DirNode{
						{Name: "invoices", Path: "src/domain/billing/invoices", IsDir: true, Empty: true},
					}},
					{Name: "identity", Path: "src/domain/identity", IsDir: true, Children: []*m.DirNode{
						{Name: "user.ts", Path: "src/domain/identity/user.ts"},
					}},
				}},
				{Name: "http", Path: "src/http", IsDir: true, Empty: true},
				{Name: "main.ts", Path: "src/main.ts"},
			}},
			{Name: "package.json", Path: "package.json"},
		},
	}

	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("BuildDirTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDirTree_EmptyRoot(t *testing.T) {
	root := t.TempDir()

	tree := BuildDirTree(adapter.NewLocalSourceFSAdapter(), m.Path(root), nil)

	assert.True(t, tree.IsDir)
	assert.True(t, tree.Empty)
	assert.Empty(t, tree.Children)
}

func TestEmptyDirs(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/domain/identity/user.entity.ts": "",
		"src/domain/billing/":                "",
		"src/domain/storage/events/":         "",
		"src/http/users/dto/":                "",
		"src/http/users/users.controller.ts": "",
		"src/infra/":                         "",
		"src/infra/cache/node_modules/x.js":  "",
		"docs/drafts/":                       "",
	})

	got := EmptyDirs(adapter.NewLocalSourceFSAdapter(), m.Path(root), DefaultLayout())

	assert.Equal(t, []m.Path{
		"src/domain/billing",
		"src/domain/storage",
		"src/domain/storage/events",
		"src/http/users/dto",
		"src/infra/cache",
	}, got)
}

func TestEmptyDirs_MissingLayers(t *testing.T) {
	root := writeProject(t, map[string]string{"README.md": ""})

	assert.Empty(t, EmptyDirs(adapter.NewLocalSourceFSAdapter(), m.Path(root), DefaultLayout()))
}
