package spectree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRoot(t *testing.T, tree *Tree) {
	t.Helper()
	require.NotNil(t, tree)
	assert.Equal(t, RootPath, tree.Root.Name)
	assert.Equal(t, RootPath, tree.Root.Relative)
	assert.Equal(t, KindDirectory, tree.Root.Kind())
	assert.Nil(t, tree.Root.Parent)
	assert.False(t, tree.Root.Collapsed)
	root, ok := tree.Lookup(RootPath)
	assert.True(t, ok)
	assert.Same(t, tree.Root, root)
}

// assertLinks checks the parent/child invariants of every registered directory
// and every file below the root.
func assertLinks(t *testing.T, tree *Tree) {
	t.Helper()
	for path, dir := range tree.Registry {
		assert.Equal(t, path, dir.Relative)
		if dir.IsRoot() {
			continue
		}
		want := dir.Name
		if !dir.Parent.IsRoot() {
			want = dir.Parent.Relative + tree.Separator + dir.Name
		}
		assert.Equal(t, want, dir.Relative)
		assert.True(t, dir.Parent.Has(dir), "%q not linked under %q", dir.Relative, dir.Parent.Relative)
		assert.NotZero(t, len(CollectFiles(dir)), "%q has no files", dir.Relative)
	}
	for _, f := range CollectFiles(tree.Root) {
		leaf, parent := SplitPath(f.Data.Relative, tree.Separator)
		assert.Equal(t, leaf, f.Name)
		if IsRootLevel(f.Data.Relative, tree.Separator) {
			assert.Same(t, tree.Root, f.Parent)
		} else {
			assert.Equal(t, parent, f.Parent.Relative)
		}
	}
}

func TestDerive_NestedSpec(t *testing.T) {
	tree, err := Derive([]Spec{createSpec("cypress/e2e", "foo")}, Options{})
	require.NoError(t, err)
	assertRoot(t, tree)

	cypressDir := onlyDir(tree.Root.Children())
	require.NotNil(t, cypressDir)
	assert.Equal(t, "cypress", cypressDir.Name)
	assert.Equal(t, "cypress", cypressDir.Relative)
	assert.Equal(t, 1, cypressDir.Len())

	e2eDir := onlyDir(cypressDir.Children())
	require.NotNil(t, e2eDir)
	assert.Equal(t, "e2e", e2eDir.Name)
	assert.Equal(t, "cypress/e2e", e2eDir.Relative)
	assert.Same(t, cypressDir, e2eDir.Parent)

	files := Files(e2eDir.Children())
	require.Len(t, files, 1)
	assert.Equal(t, "foo.cy.ts", files[0].Name)
	assert.Equal(t, "cypress/e2e/foo.cy.ts", files[0].Data.Relative)
	assert.Equal(t, "cypress/e2e", files[0].Parent.Relative)
}

func TestDerive_SeveralNestedSpecs(t *testing.T) {
	tree, err := Derive([]Spec{
		createSpec("cypress", "foo"),
		createSpec("cypress/e2e", "bar"),
		createSpec("cypress/e2e/bar", "qux"),
	}, Options{})
	require.NoError(t, err)
	assertRoot(t, tree)
	assertLinks(t, tree)

	cypressDir := onlyDir(tree.Root.Children())
	require.NotNil(t, cypressDir)
	require.Equal(t, 2, cypressDir.Len())

	fooSpec := Files(cypressDir.Children())
	require.Len(t, fooSpec, 1)
	assert.Equal(t, "foo.cy.ts", fooSpec[0].Name)
	assert.Equal(t, "cypress", fooSpec[0].Parent.Relative)

	e2eDir := onlyDir(cypressDir.Children())
	require.NotNil(t, e2eDir)
	assert.Equal(t, "cypress/e2e", e2eDir.Relative)
	assert.Same(t, cypressDir, e2eDir.Parent)
	assert.False(t, e2eDir.Collapsed)
}

func TestDerive_RootLevelSpec(t *testing.T) {
	tree, err := Derive([]Spec{createSpec("", "smoke")}, Options{})
	require.NoError(t, err)
	assertRoot(t, tree)

	children := tree.Root.Children()
	require.Len(t, children, 1)
	file, ok := children[0].(*FileNode)
	require.True(t, ok)
	assert.Equal(t, "smoke.cy.ts", file.Name)
	assert.Equal(t, "smoke.cy.ts", file.Data.Relative)
	assert.Equal(t, RootPath, file.Parent.Relative)
	assert.Len(t, tree.Registry, 1)
}

func TestDerive_Depth(t *testing.T) {
	tree, err := Derive([]Spec{
		createSpec("cypress", "s1"),
		createSpec("cypress/d1", "s2"),
		createSpec("cypress/d1/d2", "s3"),
	}, Options{})
	require.NoError(t, err)
	assertLinks(t, tree)

	require.Equal(t, 1, tree.Root.Len())
	cypress := onlyDir(tree.Root.Children())
	require.NotNil(t, cypress)
	assert.Equal(t, "cypress", cypress.Relative)

	dirs, files := Group(cypress)
	require.Len(t, dirs, 1)
	require.Len(t, files, 1)
	assert.Equal(t, "s1.cy.ts", files[0].Name)
	assert.Equal(t, "d1", dirs[0].Name)

	dirs, files = Group(dirs[0])
	require.Len(t, dirs, 1)
	require.Len(t, files, 1)
	assert.Equal(t, "s2.cy.ts", files[0].Name)
	assert.Equal(t, "d2", dirs[0].Name)

	d2 := dirs[0]
	dirs, files = Group(d2)
	assert.Empty(t, dirs)
	require.Len(t, files, 1)
	assert.Equal(t, "s3.cy.ts", files[0].Name)
}

func TestDerive_DirectoryUniqueness(t *testing.T) {
	tree, err := Derive([]Spec{createSpec("cypress", "q1"), createSpec("cypress", "q2")}, Options{})
	require.NoError(t, err)

	require.Equal(t, 1, tree.Root.Len())
	cypress := onlyDir(tree.Root.Children())
	require.NotNil(t, cypress)
	assert.Len(t, Files(cypress.Children()), 2)
	assert.Empty(t, Directories(cypress.Children()))
	assert.Len(t, tree.Registry, 2)
}

func TestDerive_Completeness(t *testing.T) {
	specs := []Spec{
		createSpec("", "smoke"),
		createSpec("cypress/e2e", "foo"),
		createSpec("cypress/e2e/hello", "bar"),
		createSpec("cypress", "q1"),
		createSpec("cypress", "q2"),
		createSpec("cypress/foo/bar/bax/merp", "loz"),
	}

	tree, err := Derive(specs, Options{})
	require.NoError(t, err)
	assertRoot(t, tree)
	assertLinks(t, tree)

	var want []*Spec
	for i := range specs {
		want = append(want, &specs[i])
	}
	assert.ElementsMatch(t, want, CollectSpecs(tree.Root))

	for _, p := range []string{"cypress", "cypress/e2e", "cypress/e2e/hello", "cypress/foo", "cypress/foo/bar", "cypress/foo/bar/bax", "cypress/foo/bar/bax/merp"} {
		_, ok := tree.Lookup(p)
		assert.True(t, ok, "missing directory %q", p)
	}
	assert.Len(t, tree.Registry, 8)
}

func TestDerive_ReferencesCallerSpecs(t *testing.T) {
	specs := []Spec{createSpec("cypress", "q1")}
	tree, err := Derive(specs, Options{})
	require.NoError(t, err)

	got := CollectFiles(tree.Root)
	require.Len(t, got, 1)
	assert.Same(t, &specs[0], got[0].Data)

	// Filtering by search keeps the same identity.
	specs = append(specs, createSpec("cypress", "q2"))
	tree, err = Derive(specs, Options{Search: "q2"})
	require.NoError(t, err)
	got = CollectFiles(tree.Root)
	require.Len(t, got, 1)
	assert.Same(t, &specs[1], got[0].Data)
}

func TestDerive_Idempotent(t *testing.T) {
	specs := []Spec{
		createSpec("", "smoke"),
		createSpec("cypress/e2e", "foo"),
		createSpec("cypress/e2e/hello", "bar"),
		createSpec("cypress/foo/bar/bax/merp", "loz"),
	}

	first, err := Derive(specs, Options{})
	require.NoError(t, err)
	second, err := Derive(specs, Options{})
	require.NoError(t, err)

	assert.NotSame(t, first.Root, second.Root)
	assert.Equal(t, shape(first), shape(second))
}

func TestDerive_SearchPrunes(t *testing.T) {
	specs := []Spec{
		createSpec("", "smoke"),
		createSpec("cypress/e2e", "foo"),
		createSpec("cypress/e2e/bar", "qux"),
		createSpec("cypress/other", "qux2"),
		createSpec("cypress/empty", "nope"),
	}

	tree, err := Derive(specs, Options{Search: "qux"})
	require.NoError(t, err)
	assertRoot(t, tree)
	assertLinks(t, tree)

	files := CollectFiles(tree.Root)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.Contains(t, f.Data.Relative, "qux")
	}

	_, ok := tree.Lookup("cypress/empty")
	assert.False(t, ok)
	_, ok = tree.Lookup("cypress/e2e/bar")
	assert.True(t, ok)

	// cypress/e2e survives through its matching child directory only.
	e2e, ok := tree.Lookup("cypress/e2e")
	require.True(t, ok)
	assert.Empty(t, Files(e2e.Children()))
	assert.Len(t, Directories(e2e.Children()), 1)

	for _, n := range tree.Root.Children() {
		assert.NotEqual(t, KindFile, n.Kind(), "smoke spec should be filtered out")
	}
}

func TestDerive_SearchIsCaseSensitive(t *testing.T) {
	tree, err := Derive([]Spec{createSpec("cypress", "Qux")}, Options{Search: "qux"})
	require.NoError(t, err)
	assert.Zero(t, tree.Root.Len())
	assert.Len(t, tree.Registry, 1)
}

func TestDerive_TrivialInputs(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
		opts  Options
		files int
	}{
		{"nil specs", nil, Options{}, 0},
		{"empty search keeps all", []Spec{createSpec("a", "b")}, Options{Search: ""}, 1},
		{"no matches", []Spec{createSpec("a", "b")}, Options{Search: "zzz"}, 0},
		{"identical paths", []Spec{createSpec("a", "b"), createSpec("a", "b")}, Options{}, 2},
		{"root level only", []Spec{createSpec("", "x"), createSpec("", "y")}, Options{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Derive(tt.specs, tt.opts)
			require.NoError(t, err)
			assertRoot(t, tree)
			assertLinks(t, tree)
			assert.Len(t, CollectFiles(tree.Root), tt.files)
		})
	}
}

func TestDerive_CustomSeparator(t *testing.T) {
	specs := []Spec{
		{Relative: `cypress\e2e\foo.cy.ts`},
		{Relative: `cypress\bar.cy.ts`},
		{Relative: "smoke.cy.ts"},
	}

	tree, err := Derive(specs, Options{Separator: `\`})
	require.NoError(t, err)
	assertLinks(t, tree)
	assert.Equal(t, `\`, tree.Separator)

	e2e, ok := tree.Lookup(`cypress\e2e`)
	require.True(t, ok)
	assert.Equal(t, "e2e", e2e.Name)
	assert.Equal(t, "cypress", e2e.Parent.Relative)
	assert.Len(t, tree.Root.Children(), 2)
}

func TestDerive_RepeatedSegmentName(t *testing.T) {
	tree, err := Derive([]Spec{{Relative: "a/a"}, {Relative: "a/a/a"}}, Options{})
	require.NoError(t, err)
	assertLinks(t, tree)

	a, ok := tree.Lookup("a")
	require.True(t, ok)
	assert.Len(t, Files(a.Children()), 1)
	assert.Len(t, Directories(a.Children()), 1)
	assert.Empty(t, Files(tree.Root.Children()))
}

func TestDerive_CollapsedDirs(t *testing.T) {
	tree, err := Derive([]Spec{
		createSpec("cypress/e2e", "foo"),
		createSpec("cypress/component", "bar"),
	}, Options{CollapsedDirs: []string{"cypress/e2e", RootPath, "missing"}})
	require.NoError(t, err)

	e2e, _ := tree.Lookup("cypress/e2e")
	component, _ := tree.Lookup("cypress/component")
	assert.True(t, e2e.Collapsed)
	assert.False(t, component.Collapsed)
	assert.False(t, tree.Root.Collapsed)
}

func TestDerive_DeepTreeIsAcyclic(t *testing.T) {
	segments := make([]string, 50)
	for i := range segments {
		segments[i] = "d"
	}
	tree, err := Derive([]Spec{createSpec(strings.Join(segments, "/"), "deep")}, Options{})
	require.NoError(t, err)
	assertLinks(t, tree)

	leaf := CollectFiles(tree.Root)[0]
	depth := 0
	for d := leaf.Parent; d != nil; d = d.Parent {
		depth++
		require.LessOrEqual(t, depth, 51)
	}
	assert.Equal(t, 51, depth)
}
