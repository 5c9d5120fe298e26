package ui

import "github.com/jesspatton/spectree/spectree"

// DisplayNode is one visible row of the explorer.
type DisplayNode struct {
	Node        spectree.Node
	DisplayName string
	Depth       int
	// Path is the directory's relative path or the spec's relative path.
	Path  string
	IsDir bool
}

// flattenNodes performs a depth-first traversal to create a flat list of nodes,
// directories first and each group sorted by name. Chains of directories with
// a single child directory and no files are merged into one row, and children
// of collapsed directories are skipped.
func flattenNodes(tree *spectree.Tree, collapsed func(path string) bool) []DisplayNode {
	nodes := []DisplayNode{}
	if tree == nil {
		return nodes
	}
	if collapsed == nil {
		collapsed = func(string) bool { return false }
	}

	var getCompacted func(*spectree.DirectoryNode, string) (*spectree.DirectoryNode, string)
	getCompacted = func(d *spectree.DirectoryNode, name string) (*spectree.DirectoryNode, string) {
		if collapsed(d.Relative) || d.Len() != 1 {
			return d, name
		}
		dirs, _ := spectree.Group(d)
		if len(dirs) != 1 {
			return d, name
		}
		return getCompacted(dirs[0], name+tree.Separator+dirs[0].Name)
	}

	var traverse func(*spectree.DirectoryNode, int)
	traverse = func(d *spectree.DirectoryNode, depth int) {
		dirs, files := spectree.Group(d)
		for _, child := range dirs {
			final, name := getCompacted(child, child.Name)
			nodes = append(nodes, DisplayNode{
				Node:        final,
				DisplayName: name,
				Depth:       depth,
				Path:        final.Relative,
				IsDir:       true,
			})
			if !collapsed(final.Relative) {
				traverse(final, depth+1)
			}
		}
		for _, f := range files {
			nodes = append(nodes, DisplayNode{
				Node:        f,
				DisplayName: f.Name,
				Depth:       depth,
				Path:        f.Data.Relative,
			})
		}
	}
	traverse(tree.Root, 0)
	return nodes
}
