package spectree

// RootPath is the relative path and name of every tree root.
const RootPath = "/"

// Kind discriminates the two node types.
type Kind int

const (
	KindDirectory Kind = iota
	KindFile
)

func (k Kind) String() string {
	if k == KindFile {
		return "file"
	}
	return "directory"
}

// Node is either a *DirectoryNode or a *FileNode.
type Node interface {
	Kind() Kind
	// Label is the last path segment of the node.
	Label() string
}

// DirectoryNode is an internal vertex of the tree.
type DirectoryNode struct {
	Name      string
	Relative  string
	Parent    *DirectoryNode
	Collapsed bool

	children map[Node]struct{}
}

func newDirectory(name, relative string, parent *DirectoryNode) *DirectoryNode {
	return &DirectoryNode{
		Name:     name,
		Relative: relative,
		Parent:   parent,
		children: make(map[Node]struct{}),
	}
}

func (d *DirectoryNode) Kind() Kind    { return KindDirectory }
func (d *DirectoryNode) Label() string { return d.Name }

// IsRoot reports whether d is the root of its tree.
func (d *DirectoryNode) IsRoot() bool { return d.Parent == nil }

// Children returns the direct children in no particular order.
// Use Group for a stable ordering.
func (d *DirectoryNode) Children() []Node {
	out := make([]Node, 0, len(d.children))
	for n := range d.children {
		out = append(out, n)
	}
	return out
}

// Len returns the number of direct children.
func (d *DirectoryNode) Len() int { return len(d.children) }

// Has reports whether n is a direct child of d.
func (d *DirectoryNode) Has(n Node) bool {
	_, ok := d.children[n]
	return ok
}

// add inserts n; inserting the same node twice is a no-op.
func (d *DirectoryNode) add(n Node) bool {
	if _, ok := d.children[n]; ok {
		return false
	}
	d.children[n] = struct{}{}
	return true
}

// FileNode is a leaf wrapping a single spec.
type FileNode struct {
	Name   string
	Data   *Spec
	Parent *DirectoryNode
}

func (f *FileNode) Kind() Kind    { return KindFile }
func (f *FileNode) Label() string { return f.Name }

// Files keeps the file nodes of nodes.
func Files(nodes []Node) []*FileNode {
	var out []*FileNode
	for _, n := range nodes {
		if f, ok := n.(*FileNode); ok {
			out = append(out, f)
		}
	}
	return out
}

// Directories keeps the directory nodes of nodes.
func Directories(nodes []Node) []*DirectoryNode {
	var out []*DirectoryNode
	for _, n := range nodes {
		if d, ok := n.(*DirectoryNode); ok {
			out = append(out, d)
		}
	}
	return out
}
