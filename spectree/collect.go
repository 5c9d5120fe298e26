package spectree

import (
	"fmt"
	"sort"
	"strings"
)

// CollectFiles returns every file node beneath dir, depth-first. The order
// between siblings is unspecified.
func CollectFiles(dir *DirectoryNode) []*FileNode {
	var files []*FileNode
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *FileNode:
			files = append(files, n)
		case *DirectoryNode:
			for child := range n.children {
				walk(child)
			}
		}
	}
	if dir != nil {
		walk(dir)
	}
	return files
}

// CollectSpecs returns the specs of every file node beneath dir.
func CollectSpecs(dir *DirectoryNode) []*Spec {
	files := CollectFiles(dir)
	specs := make([]*Spec, len(files))
	for i, f := range files {
		specs[i] = f.Data
	}
	return specs
}

// Summary describes the files contained in a directory.
type Summary struct {
	Count int
	Names []string
}

// String renders the summary as "3 specs: a.cy.ts, b.cy.ts, c.cy.ts".
func (s Summary) String() string {
	noun := "specs"
	if s.Count == 1 {
		noun = "spec"
	}
	if s.Count == 0 {
		return "0 specs"
	}
	return fmt.Sprintf("%d %s: %s", s.Count, noun, strings.Join(s.Names, ", "))
}

// Summarize counts the specs beneath dir and lists their display names sorted.
func Summarize(dir *DirectoryNode) Summary {
	files := CollectFiles(dir)
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Data.DisplayName()
	}
	sort.Strings(names)
	return Summary{Count: len(files), Names: names}
}
