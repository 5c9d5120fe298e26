package filesystem

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns are skipped in every project.
var DefaultIgnorePatterns = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".DS_Store",
	"*.log",
}

// Ignorer matches paths below a project root against default patterns, the
// root .gitignore and any extra patterns from the configuration.
type Ignorer struct {
	root     string
	patterns []string
}

// NewIgnorer creates a new Ignorer and loads patterns from .gitignore if present.
func NewIgnorer(root string, extra ...string) *Ignorer {
	ign := &Ignorer{root: root}
	ign.patterns = append(ign.patterns, DefaultIgnorePatterns...)
	ign.patterns = append(ign.patterns, extra...)

	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err == nil {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			ign.patterns = append(ign.patterns, line)
		}
	}
	return ign
}

// ShouldIgnore reports whether the absolute path p is excluded. Patterns
// starting with "/" are anchored at the root; others match the base name or any
// leading part of the root-relative path.
func (i *Ignorer) ShouldIgnore(p string) bool {
	name := filepath.Base(p)
	rel, err := filepath.Rel(i.root, p)
	if err != nil {
		rel = name
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range i.patterns {
		clean := strings.TrimSuffix(pattern, "/")
		anchored := strings.HasPrefix(clean, "/")
		clean = strings.TrimPrefix(clean, "/")
		if clean == "" {
			continue
		}

		if hasPrefixPath(rel, clean) {
			return true
		}
		if anchored {
			continue
		}
		if ok, _ := path.Match(clean, name); ok {
			return true
		}
		for _, segment := range strings.Split(rel, "/") {
			if ok, _ := path.Match(clean, segment); ok {
				return true
			}
		}
	}
	return false
}

func hasPrefixPath(rel, prefix string) bool {
	return rel == prefix || strings.HasPrefix(rel, prefix+"/")
}
