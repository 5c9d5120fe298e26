package spectree

import "sort"

// Group splits the children of dir into directories and files, each sorted by
// name. Files sharing a name are ordered by relative path.
func Group(dir *DirectoryNode) ([]*DirectoryNode, []*FileNode) {
	children := dir.Children()
	dirs := Directories(children)
	files := Files(children)

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool {
		if files[i].Name != files[j].Name {
			return files[i].Name < files[j].Name
		}
		return files[i].Data.Relative < files[j].Data.Relative
	})
	return dirs, files
}

// Walk visits every node below the root, depth-first, directories before
// files. Returning false from fn for a directory skips its children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	var visit func(dir *DirectoryNode, depth int)
	visit = func(dir *DirectoryNode, depth int) {
		dirs, files := Group(dir)
		for _, d := range dirs {
			if fn(d, depth) {
				visit(d, depth+1)
			}
		}
		for _, f := range files {
			fn(f, depth)
		}
	}
	visit(t.Root, 0)
}
