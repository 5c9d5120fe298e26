package filesystem

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ChangedFiles returns the absolute paths of files that git reports as
// modified, added or untracked in the repository containing root.
func ChangedFiles(root string) ([]string, error) {
	top, err := git(root, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	top = strings.TrimSpace(top)

	output, err := git(root, "status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 4 {
			continue
		}
		// "XY path" or "R  old -> new" for renames.
		relPath := line[3:]
		if i := strings.Index(relPath, " -> "); i >= 0 {
			relPath = relPath[i+4:]
		}
		relPath = strings.Trim(relPath, "\"")

		files = append(files, filepath.Join(top, filepath.FromSlash(relPath)))
	}

	return files, nil
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}
