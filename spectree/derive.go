package spectree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInconsistent marks a tree that could not be built because one of the
// construction invariants did not hold. It never results from bad input.
var ErrInconsistent = errors.New("spectree: inconsistent tree")

// Options configures Derive.
type Options struct {
	// Separator delimits path segments. Empty means DefaultSeparator.
	Separator string
	// Search keeps only specs whose relative path contains it.
	Search string
	// CollapsedDirs lists directory paths whose nodes start collapsed.
	CollapsedDirs []string
}

func (o Options) separator() string {
	if o.Separator == "" {
		return DefaultSeparator
	}
	return o.Separator
}

// Registry maps a directory's relative path to its node. The root is stored
// under RootPath.
type Registry map[string]*DirectoryNode

// Tree is the result of a single Derive call.
type Tree struct {
	Root      *DirectoryNode
	Registry  Registry
	Separator string
}

// Lookup returns the directory registered under path.
func (t *Tree) Lookup(path string) (*DirectoryNode, bool) {
	d, ok := t.Registry[path]
	return d, ok
}

// Derive builds a fresh tree from specs. Specs are filtered by opts.Search
// before any directory is created, so directories without a matching file never
// appear. The returned file nodes reference the elements of specs directly.
func Derive(specs []Spec, opts Options) (*Tree, error) {
	sep := opts.separator()

	retained := Filter(specs, opts.Search)

	root := newDirectory(RootPath, RootPath, nil)
	registry := Registry{RootPath: root}

	for _, spec := range retained {
		if IsRootLevel(spec.Relative, sep) {
			continue
		}
		_, parentPath := SplitPath(spec.Relative, sep)

		parent := root
		prefix := ""
		for i, segment := range strings.Split(parentPath, sep) {
			if i == 0 {
				prefix = segment
			} else {
				prefix += sep + segment
			}
			dir, ok := registry[prefix]
			if !ok {
				dir = newDirectory(segment, prefix, parent)
				registry[prefix] = dir
			}
			parent = dir
		}
	}

	for _, dir := range registry {
		// Once a node is already linked, every ancestor above it is too.
		for n := dir; n.Parent != nil; n = n.Parent {
			if !n.Parent.add(n) {
				break
			}
		}
	}

	for _, spec := range retained {
		leaf, parentPath := SplitPath(spec.Relative, sep)

		dir := root
		if !IsRootLevel(spec.Relative, sep) {
			var ok bool
			if dir, ok = registry[parentPath]; !ok {
				return nil, fmt.Errorf("attach %q: no directory registered for %q: %w", spec.Relative, parentPath, ErrInconsistent)
			}
		}
		dir.add(&FileNode{Name: leaf, Data: spec, Parent: dir})
	}

	if r, ok := registry[RootPath]; !ok || r != root {
		return nil, fmt.Errorf("root missing from registry: %w", ErrInconsistent)
	}

	for _, path := range opts.CollapsedDirs {
		if dir, ok := registry[path]; ok && !dir.IsRoot() {
			dir.Collapsed = true
		}
	}

	return &Tree{Root: root, Registry: registry, Separator: sep}, nil
}
