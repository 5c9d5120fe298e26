package spectree

import (
	"sort"
)

// createSpec builds a spec named name.cy.ts under the directory p.
func createSpec(p, name string) Spec {
	prefix := ""
	if p != "" {
		prefix = p + "/"
	}
	rel := prefix + name + ".cy.ts"
	return NewSpec(rel, "/"+rel)
}

// shape flattens a tree into sorted "kind:path" entries so two trees can be
// compared without relying on node identity.
func shape(t *Tree) []string {
	var out []string
	var visit func(d *DirectoryNode)
	visit = func(d *DirectoryNode) {
		for _, n := range d.Children() {
			switch n := n.(type) {
			case *DirectoryNode:
				out = append(out, "dir:"+n.Relative+"<"+n.Parent.Relative)
				visit(n)
			case *FileNode:
				out = append(out, "file:"+n.Data.Relative+"<"+n.Parent.Relative)
			}
		}
	}
	visit(t.Root)
	sort.Strings(out)
	return out
}

func onlyDir(nodes []Node) *DirectoryNode {
	dirs := Directories(nodes)
	if len(dirs) != 1 {
		return nil
	}
	return dirs[0]
}
