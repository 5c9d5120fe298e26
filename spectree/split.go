package spectree

import "strings"

// DefaultSeparator delimits path segments when no separator is configured.
const DefaultSeparator = "/"

// SplitPath splits path at the last occurrence of sep into the leaf name and the
// parent path. When path contains no separator both return values equal path,
// which marks a root-level entry.
func SplitPath(path, sep string) (leaf, parent string) {
	idx := strings.LastIndex(path, sep)
	if sep == "" || idx < 0 {
		return path, path
	}
	return path[idx+len(sep):], path[:idx]
}

// IsRootLevel reports whether path attaches directly under the root.
func IsRootLevel(path, sep string) bool {
	return sep == "" || !strings.Contains(path, sep)
}
